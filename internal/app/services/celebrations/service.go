// Package celebrations computes the single pending launch or milestone event
// across live apps and persists the "already shown" bookkeeping that makes
// each event fire exactly once.
package celebrations

import (
	"context"
	"sort"
	"sync"

	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/celebration"
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/listing"
	"github.com/growthlab-hq/apps-deals-service/internal/app/metrics"
	"github.com/growthlab-hq/apps-deals-service/internal/app/services/catalog"
	"github.com/growthlab-hq/apps-deals-service/internal/app/storage"
	"github.com/growthlab-hq/apps-deals-service/pkg/logger"
)

// Service evaluates pending celebrations over the catalog's live apps.
type Service struct {
	store   storage.Store
	catalog *catalog.Service
	log     *logger.Logger

	mu sync.Mutex
}

// New constructs the tracker.
func New(store storage.Store, cat *catalog.Service, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("celebrations")
	}
	return &Service{
		store:   store,
		catalog: cat,
		log:     log,
	}
}

// Next returns the highest-priority pending celebration, or false when
// nothing is pending. Only apps in the live registry are eligible, so seed
// apps never celebrate a launch. Launch events outrank milestone events;
// among milestones the smallest threshold wins. At most one event is surfaced
// per evaluation: after a dismissal the tracker must be asked again.
func (s *Service) Next(ctx context.Context) (celebration.Event, bool) {
	apps := s.catalog.ApprovedApps(ctx)
	liveIDs := make(map[string]struct{})
	for _, app := range s.catalog.LiveApps(ctx) {
		liveIDs[app.ID] = struct{}{}
	}

	launchShown := s.launchShown(ctx)
	milestonesShown := s.milestonesShown(ctx)

	type candidate struct {
		app       listing.App
		kind      celebration.Kind
		milestone int
	}
	var pending []candidate

	for _, app := range apps {
		if _, live := liveIDs[app.ID]; !live {
			continue
		}

		if _, shown := launchShown[app.ID]; !shown {
			pending = append(pending, candidate{app: app, kind: celebration.KindLaunch})
			continue
		}

		count := usageCount(app)
		shown := milestonesShown[app.ID]
		for _, threshold := range celebration.Thresholds {
			if count >= threshold && !containsInt(shown, threshold) {
				pending = append(pending, candidate{app: app, kind: celebration.KindMilestone, milestone: threshold})
				break
			}
		}
	}

	sort.SliceStable(pending, func(i, j int) bool {
		if pending[i].kind != pending[j].kind {
			return pending[i].kind == celebration.KindLaunch
		}
		if pending[i].kind == celebration.KindMilestone {
			return pending[i].milestone < pending[j].milestone
		}
		return false
	})

	if len(pending) == 0 {
		return celebration.Event{}, false
	}

	first := pending[0]
	return celebration.Event{
		Kind:        first.kind,
		AppID:       first.app.ID,
		AppName:     first.app.Name,
		StartupName: first.app.Publisher.Name,
		ImageURL:    first.app.ImageURL,
		UsersCount:  first.app.UsersCount,
		DealsCount:  first.app.DealsCount,
		Milestone:   first.milestone,
	}, true
}

// Dismiss records that the event was shown, persisting immediately. Marking
// an already-recorded flag or threshold again is harmless.
func (s *Service) Dismiss(ctx context.Context, ev celebration.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch ev.Kind {
	case celebration.KindLaunch:
		shown := s.launchShown(ctx)
		if _, ok := shown[ev.AppID]; ok {
			return
		}
		shown[ev.AppID] = struct{}{}
		ids := make([]string, 0, len(shown))
		for id := range shown {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		if err := storage.SetJSON(ctx, s.store, storage.KeyLaunchShown, ids); err != nil {
			s.log.WithError(err).WithField("app_id", ev.AppID).Warn("persist launch shown set")
			return
		}
	case celebration.KindMilestone:
		if ev.Milestone == 0 {
			return
		}
		shownMap := s.milestonesShown(ctx)
		if containsInt(shownMap[ev.AppID], ev.Milestone) {
			return
		}
		thresholds := append(shownMap[ev.AppID], ev.Milestone)
		sort.Ints(thresholds)
		shownMap[ev.AppID] = thresholds
		if err := storage.SetJSON(ctx, s.store, storage.KeyMilestonesShown, shownMap); err != nil {
			s.log.WithError(err).WithField("app_id", ev.AppID).Warn("persist milestone shown map")
			return
		}
	default:
		return
	}

	metrics.RecordCelebrationDismissed(string(ev.Kind))
	s.log.WithField("app_id", ev.AppID).WithField("kind", string(ev.Kind)).Info("celebration dismissed")
}

func (s *Service) launchShown(ctx context.Context) map[string]struct{} {
	var ids []string
	storage.GetJSON(ctx, s.store, storage.KeyLaunchShown, &ids)
	out := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out
}

func (s *Service) milestonesShown(ctx context.Context) map[string][]int {
	shown := make(map[string][]int)
	storage.GetJSON(ctx, s.store, storage.KeyMilestonesShown, &shown)
	return shown
}

// usageCount is the app's usage counter for milestone checks: users count,
// falling back to downloads, defaulting to zero.
func usageCount(app listing.App) int {
	if app.UsersCount > 0 {
		return app.UsersCount
	}
	if app.Downloads > 0 {
		return app.Downloads
	}
	return 0
}

func containsInt(values []int, v int) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
