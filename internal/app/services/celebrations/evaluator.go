package celebrations

import (
	"context"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/growthlab-hq/apps-deals-service/internal/app/metrics"
	"github.com/growthlab-hq/apps-deals-service/internal/app/system"
	"github.com/growthlab-hq/apps-deals-service/pkg/logger"
)

var _ system.Service = (*Evaluator)(nil)

// Evaluator periodically re-evaluates the pending celebration, standing in
// for the UI's "apps ready" signal, and mirrors the result into a gauge.
type Evaluator struct {
	service  *Service
	log      *logger.Logger
	schedule string

	mu      sync.Mutex
	cron    *cron.Cron
	running bool
}

// NewEvaluator creates a lifecycle-managed evaluator. Schedule accepts cron
// expressions including @every forms; empty defaults to once a minute.
func NewEvaluator(service *Service, schedule string, log *logger.Logger) *Evaluator {
	if log == nil {
		log = logger.NewDefault("celebrations-evaluator")
	}
	if schedule == "" {
		schedule = "@every 1m"
	}
	return &Evaluator{
		service:  service,
		log:      log,
		schedule: schedule,
	}
}

func (e *Evaluator) Name() string { return "celebrations-evaluator" }

func (e *Evaluator) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return nil
	}

	runner := cron.New()
	if _, err := runner.AddFunc(e.schedule, func() { e.tick(context.Background()) }); err != nil {
		return err
	}
	runner.Start()

	e.cron = runner
	e.running = true
	e.tick(ctx)
	e.log.WithField("schedule", e.schedule).Info("celebration evaluator started")
	return nil
}

func (e *Evaluator) Stop(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return nil
	}

	stopCtx := e.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	e.cron = nil
	e.running = false
	e.log.Info("celebration evaluator stopped")
	return nil
}

func (e *Evaluator) tick(ctx context.Context) {
	ev, ok := e.service.Next(ctx)
	metrics.SetCelebrationPending(ok)
	if ok {
		e.log.WithField("app_id", ev.AppID).WithField("kind", string(ev.Kind)).Debugf("celebration pending")
	}
}
