// Package app wires the marketplace services together and manages their
// lifecycle.
package app

import (
	"context"
	"fmt"

	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/listing"
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/submission"
	"github.com/growthlab-hq/apps-deals-service/internal/app/services/catalog"
	"github.com/growthlab-hq/apps-deals-service/internal/app/services/celebrations"
	"github.com/growthlab-hq/apps-deals-service/internal/app/services/submissions"
	"github.com/growthlab-hq/apps-deals-service/internal/app/storage"
	"github.com/growthlab-hq/apps-deals-service/internal/app/storage/memory"
	"github.com/growthlab-hq/apps-deals-service/internal/app/system"
	"github.com/growthlab-hq/apps-deals-service/pkg/logger"
)

// Options configures a new Application. A nil Store defaults to the
// in-memory backend.
type Options struct {
	Store storage.Store

	SeedApps        []listing.App
	SeedDeals       []listing.Deal
	SeedSubmissions []submission.Submission

	// CelebrationSchedule is the cron spec for re-evaluating pending
	// celebrations; empty uses the evaluator default.
	CelebrationSchedule string

	Logger *logger.Logger
}

// Application ties the marketplace services together and manages their
// lifecycle.
type Application struct {
	manager *system.Manager
	log     *logger.Logger

	Catalog      *catalog.Service
	Submissions  *submissions.Service
	Celebrations *celebrations.Service
}

// New builds a fully initialised application with the provided options.
func New(opts Options) (*Application, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewDefault("app")
	}

	store := opts.Store
	if store == nil {
		store = memory.New()
	}

	catalogService := catalog.New(store, opts.SeedApps, opts.SeedDeals, log)
	submissionService := submissions.New(store, catalogService, opts.SeedSubmissions, log)
	celebrationService := celebrations.New(store, catalogService, log)

	manager := system.NewManager()
	evaluator := celebrations.NewEvaluator(celebrationService, opts.CelebrationSchedule, log)
	if err := manager.Register(evaluator); err != nil {
		return nil, fmt.Errorf("register %s: %w", evaluator.Name(), err)
	}

	return &Application{
		manager:      manager,
		log:          log,
		Catalog:      catalogService,
		Submissions:  submissionService,
		Celebrations: celebrationService,
	}, nil
}

// Attach registers an additional lifecycle-managed service. Call before Start.
func (a *Application) Attach(service system.Service) error {
	return a.manager.Register(service)
}

// Start begins all registered services.
func (a *Application) Start(ctx context.Context) error {
	return a.manager.Start(ctx)
}

// Stop stops all services.
func (a *Application) Stop(ctx context.Context) error {
	return a.manager.Stop(ctx)
}
