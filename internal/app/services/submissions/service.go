// Package submissions owns the review queue: the merged submission list and
// the moderation state transitions that feed approved listings into the
// catalog.
package submissions

import (
	"context"
	"sort"
	"sync"

	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/submission"
	"github.com/growthlab-hq/apps-deals-service/internal/app/materialize"
	"github.com/growthlab-hq/apps-deals-service/internal/app/metrics"
	"github.com/growthlab-hq/apps-deals-service/internal/app/services/catalog"
	"github.com/growthlab-hq/apps-deals-service/internal/app/storage"
	"github.com/growthlab-hq/apps-deals-service/pkg/logger"
)

// Service owns the submission set and its status transitions. Every operation
// is total over the store's state: a missing or corrupt store behaves as an
// empty collection, and acting on an unknown ID is a no-op whose unchanged
// output is the caller's "not found" signal.
type Service struct {
	store   storage.Store
	catalog *catalog.Service
	seed    []submission.Submission
	log     *logger.Logger

	// Serializes read-modify-write cycles within this process.
	mu sync.Mutex
}

// New constructs the repository. Seed submissions are the static fixtures
// merged into every listing; persisted entries override seed entries sharing
// an ID.
func New(store storage.Store, cat *catalog.Service, seed []submission.Submission, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("submissions")
	}
	return &Service{
		store:   store,
		catalog: cat,
		seed:    seed,
		log:     log,
	}
}

// List returns all submissions, seed and persisted merged, most recent first.
// The projection is pure: calling it twice without an intervening mutation
// yields identical output in identical order.
func (s *Service) List(ctx context.Context) []submission.Submission {
	var stored []submission.Submission
	storage.GetJSON(ctx, s.store, storage.KeySubmissions, &stored)
	return mergeSorted(s.seed, stored)
}

// Get returns the submission with the given ID from the merged view.
func (s *Service) Get(ctx context.Context, id string) (submission.Submission, bool) {
	for _, sub := range s.List(ctx) {
		if sub.ID == id {
			return sub, true
		}
	}
	return submission.Submission{}, false
}

// Add appends a new submission to the persisted set. Adding an ID that is
// already persisted is a silent no-op so retried submit actions stay
// idempotent. The updated merged list is returned.
func (s *Service) Add(ctx context.Context, sub submission.Submission) []submission.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	var stored []submission.Submission
	storage.GetJSON(ctx, s.store, storage.KeySubmissions, &stored)
	for _, existing := range stored {
		if existing.ID == sub.ID {
			return mergeSorted(s.seed, stored)
		}
	}

	stored = append([]submission.Submission{sub.Clone()}, stored...)
	if err := storage.SetJSON(ctx, s.store, storage.KeySubmissions, stored); err != nil {
		s.log.WithError(err).WithField("submission_id", sub.ID).Warn("persist submissions")
		return mergeSorted(s.seed, stored)
	}
	metrics.RecordSubmissionCreated(string(sub.Kind))
	s.log.WithField("submission_id", sub.ID).WithField("kind", string(sub.Kind)).Info("submission queued")
	return mergeSorted(s.seed, stored)
}

// Approve marks the submission approved and registers its materialized
// listing. Unknown IDs and already-approved submissions are no-ops returning
// the unchanged list. The registry's own ID guard keeps a second approval
// from producing a second listing.
func (s *Service) Approve(ctx context.Context, id string) []submission.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.List(ctx)
	target, found := findByID(merged, id)
	if !found || target.Status == submission.StatusApproved {
		return merged
	}

	updated := setStatus(merged, id, submission.StatusApproved, "")
	s.persist(ctx, updated)
	metrics.RecordReviewAction("approve")

	approved := target.Clone()
	approved.Status = submission.StatusApproved
	switch approved.Kind {
	case submission.KindDeal:
		s.catalog.RegisterDeal(ctx, materialize.Deal(approved))
	default:
		s.catalog.RegisterApp(ctx, materialize.App(approved))
	}
	s.log.WithField("submission_id", id).Info("submission approved")
	return updated
}

// Reject marks the submission rejected. Non-empty notes replace the stored
// review notes; empty notes leave them untouched. The listing registry is
// never affected: an already-materialized listing stays live.
func (s *Service) Reject(ctx context.Context, id, notes string) []submission.Submission {
	return s.transition(ctx, id, submission.StatusRejected, notes, "reject")
}

// RequestRevision marks the submission needs_revision with the same
// notes-replacement rule as Reject.
func (s *Service) RequestRevision(ctx context.Context, id, notes string) []submission.Submission {
	return s.transition(ctx, id, submission.StatusNeedsRevision, notes, "request_revision")
}

func (s *Service) transition(ctx context.Context, id string, status submission.Status, notes, action string) []submission.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.List(ctx)
	if _, found := findByID(merged, id); !found {
		return merged
	}

	updated := setStatus(merged, id, status, notes)
	s.persist(ctx, updated)
	metrics.RecordReviewAction(action)
	s.log.WithField("submission_id", id).WithField("status", string(status)).Info("submission reviewed")
	return updated
}

// persist writes the full merged list, so reviewed seed entries become
// persisted overrides of their fixtures.
func (s *Service) persist(ctx context.Context, subs []submission.Submission) {
	if err := storage.SetJSON(ctx, s.store, storage.KeySubmissions, subs); err != nil {
		s.log.WithError(err).Warn("persist submissions")
	}
}

func findByID(subs []submission.Submission, id string) (submission.Submission, bool) {
	for _, sub := range subs {
		if sub.ID == id {
			return sub, true
		}
	}
	return submission.Submission{}, false
}

func setStatus(subs []submission.Submission, id string, status submission.Status, notes string) []submission.Submission {
	out := make([]submission.Submission, 0, len(subs))
	for _, sub := range subs {
		if sub.ID == id {
			sub = sub.Clone()
			sub.Status = status
			if notes != "" {
				sub.ReviewNotes = notes
			}
		}
		out = append(out, sub)
	}
	return out
}

// mergeSorted merges seed and persisted submissions (persisted wins on ID
// collision) and orders the result by submission time descending, breaking
// ties by ID so repeated calls produce identical orderings.
func mergeSorted(seed, stored []submission.Submission) []submission.Submission {
	byID := make(map[string]int, len(seed)+len(stored))
	merged := make([]submission.Submission, 0, len(seed)+len(stored))
	for _, sub := range seed {
		if idx, ok := byID[sub.ID]; ok {
			merged[idx] = sub
			continue
		}
		byID[sub.ID] = len(merged)
		merged = append(merged, sub)
	}
	for _, sub := range stored {
		if idx, ok := byID[sub.ID]; ok {
			merged[idx] = sub
			continue
		}
		byID[sub.ID] = len(merged)
		merged = append(merged, sub)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		ti, tj := merged[i].SubmittedAt, merged[j].SubmittedAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return merged[i].ID < merged[j].ID
	})
	return merged
}
