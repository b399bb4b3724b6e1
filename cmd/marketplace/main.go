// Package main runs the marketplace apps and deals service: the public
// listings API, the submission review queue, and the celebration tracker.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	app "github.com/growthlab-hq/apps-deals-service/internal/app"
	"github.com/growthlab-hq/apps-deals-service/internal/app/httpapi"
	"github.com/growthlab-hq/apps-deals-service/internal/app/metrics"
	"github.com/growthlab-hq/apps-deals-service/internal/app/storage"
	filestore "github.com/growthlab-hq/apps-deals-service/internal/app/storage/file"
	"github.com/growthlab-hq/apps-deals-service/internal/app/storage/memory"
	"github.com/growthlab-hq/apps-deals-service/internal/app/storage/postgres"
	redisstore "github.com/growthlab-hq/apps-deals-service/internal/app/storage/redis"
	"github.com/growthlab-hq/apps-deals-service/internal/config"
	"github.com/growthlab-hq/apps-deals-service/internal/middleware"
	"github.com/growthlab-hq/apps-deals-service/internal/seed"
	"github.com/growthlab-hq/apps-deals-service/pkg/logger"
)

func main() {
	configPath := flag.String("config", "config/marketplace.yaml", "Path to configuration file")
	envFile := flag.String("env", "", "Optional .env file to load before reading config")
	flag.Parse()

	if *envFile != "" {
		if err := godotenv.Load(*envFile); err != nil {
			logger.NewDefault("marketplace").WithError(err).Warnf("could not load env file %s", *envFile)
		}
	}

	cfg, err := config.LoadOrDefault(*configPath)
	if err != nil {
		logger.NewDefault("marketplace").WithError(err).Error("invalid configuration")
		os.Exit(1)
	}

	log := logger.New("marketplace", logger.ParseLevel(cfg.LogLevel), os.Stderr)

	store, cleanup, err := newStore(cfg, log)
	if err != nil {
		log.WithError(err).Error("failed to initialize storage backend")
		os.Exit(1)
	}
	defer cleanup()

	apps := seed.Apps(cfg.Seed.AppsFile, log)
	deals := seed.Deals(cfg.Seed.DealsFile, log)
	subs := seed.Submissions(cfg.Seed.SubmissionsFile, log)
	log.Infof("loaded seed data: %d apps, %d deals, %d submissions", len(apps), len(deals), len(subs))

	application, err := app.New(app.Options{
		Store:               store,
		SeedApps:            apps,
		SeedDeals:           deals,
		SeedSubmissions:     subs,
		CelebrationSchedule: cfg.Celebrations.Schedule,
		Logger:              log,
	})
	if err != nil {
		log.WithError(err).Error("failed to assemble application")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := application.Start(ctx); err != nil {
		log.WithError(err).Error("failed to start application services")
		os.Exit(1)
	}

	api := httpapi.NewHandler(application)

	cors := middleware.NewCORSMiddleware(cfg.Server.CORSOrigins)
	limiter := middleware.NewRateLimiter(cfg.Server.RequestsPerSecond, cfg.Server.RateBurst, log)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.Handle("/", metrics.InstrumentHandler(cors.Handler(limiter.Handler(api))))

	server := &http.Server{
		Addr:         cfg.Server.ListenAddr(),
		Handler:      mux,
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		log.Infof("received %s, shutting down", sig)
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("server error")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Std())
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Warn("graceful shutdown did not complete")
	}
	if err := application.Stop(shutdownCtx); err != nil {
		log.WithError(err).Warn("application services did not stop cleanly")
	}
	log.Info("shutdown complete")
}

func newStore(cfg *config.Config, log *logger.Logger) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case "memory":
		return memory.New(), noop, nil

	case "file":
		s, err := filestore.New(cfg.Storage.FileDir)
		if err != nil {
			return nil, noop, err
		}
		return s, noop, nil

	case "redis":
		s := redisstore.New(cfg.Storage.RedisAddr, cfg.Storage.RedisPassword, cfg.Storage.RedisDB)
		if err := s.Ping(context.Background()); err != nil {
			return nil, noop, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.WithError(err).Warn("closing redis connection")
			}
		}, nil

	case "postgres":
		s, err := postgres.Open(cfg.Storage.PostgresDSN)
		if err != nil {
			return nil, noop, err
		}
		if err := s.EnsureSchema(context.Background()); err != nil {
			s.Close()
			return nil, noop, err
		}
		return s, func() {
			if err := s.Close(); err != nil {
				log.WithError(err).Warn("closing postgres connection")
			}
		}, nil
	}

	// config.Validate rejects unknown backends before we get here.
	return memory.New(), noop, nil
}
