// Package catalog owns the live listing registry and the merged approved
// views combining seed fixtures with materialized listings.
package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/listing"
	"github.com/growthlab-hq/apps-deals-service/internal/app/metrics"
	"github.com/growthlab-hq/apps-deals-service/internal/app/storage"
	"github.com/growthlab-hq/apps-deals-service/pkg/logger"
)

// Claim records one redemption of a deal.
type Claim struct {
	DealID     string    `json:"dealId"`
	UserID     string    `json:"userId,omitempty"`
	Email      string    `json:"email,omitempty"`
	CouponCode string    `json:"couponCode,omitempty"`
	ClaimedAt  time.Time `json:"claimedAt"`
}

// Service merges static seed listings with the persisted live registry. Seed
// listings are configured once at construction and treated as read-only.
type Service struct {
	store     storage.Store
	seedApps  []listing.App
	seedDeals []listing.Deal
	log       *logger.Logger

	// Serializes read-modify-write cycles within this process. Cross-process
	// writers are not coordinated; the last write to the store wins.
	mu sync.Mutex
}

// New constructs the registry over the given blob store and seed fixtures.
func New(store storage.Store, seedApps []listing.App, seedDeals []listing.Deal, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewDefault("catalog")
	}
	return &Service{
		store:     store,
		seedApps:  seedApps,
		seedDeals: seedDeals,
		log:       log,
	}
}

// ApprovedApps returns seed apps that are not pending or rejected, followed
// by all live apps, preserving insertion order within each group. Seed items
// come first: downstream consumers rely on them as stable anchors.
func (s *Service) ApprovedApps(ctx context.Context) []listing.App {
	out := make([]listing.App, 0, len(s.seedApps))
	for _, app := range s.seedApps {
		if app.Status.Visible() {
			out = append(out, app)
		}
	}
	return append(out, s.LiveApps(ctx)...)
}

// ApprovedDeals is the deal-variant merged view.
func (s *Service) ApprovedDeals(ctx context.Context) []listing.Deal {
	out := make([]listing.Deal, 0, len(s.seedDeals))
	for _, deal := range s.seedDeals {
		if deal.Status.Visible() {
			out = append(out, deal)
		}
	}
	return append(out, s.LiveDeals(ctx)...)
}

// LiveApps returns only the persisted (materialized) apps. Seed apps never
// appear here, so they cannot trigger launch celebrations.
func (s *Service) LiveApps(ctx context.Context) []listing.App {
	var live []listing.App
	storage.GetJSON(ctx, s.store, storage.KeyLiveApps, &live)
	return live
}

// LiveDeals returns only the persisted (materialized) deals.
func (s *Service) LiveDeals(ctx context.Context) []listing.Deal {
	var live []listing.Deal
	storage.GetJSON(ctx, s.store, storage.KeyLiveDeals, &live)
	return live
}

// AppByID looks up an app in the merged approved view.
func (s *Service) AppByID(ctx context.Context, id string) (listing.App, bool) {
	for _, app := range s.ApprovedApps(ctx) {
		if app.ID == id {
			return app, true
		}
	}
	return listing.App{}, false
}

// DealByID looks up a deal in the merged approved view.
func (s *Service) DealByID(ctx context.Context, id string) (listing.Deal, bool) {
	for _, deal := range s.ApprovedDeals(ctx) {
		if deal.ID == id {
			return deal, true
		}
	}
	return listing.Deal{}, false
}

// RegisterApp appends a materialized app to the live registry. Registering an
// ID that is already present is a no-op; the return value reports whether the
// app was added. This guard keeps repeated approvals from producing duplicate
// listings.
func (s *Service) RegisterApp(ctx context.Context, app listing.App) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var live []listing.App
	storage.GetJSON(ctx, s.store, storage.KeyLiveApps, &live)
	for _, existing := range live {
		if existing.ID == app.ID {
			return false
		}
	}

	live = append(live, app)
	if err := storage.SetJSON(ctx, s.store, storage.KeyLiveApps, live); err != nil {
		s.log.WithError(err).WithField("app_id", app.ID).Warn("persist live apps")
		return false
	}
	metrics.RecordMaterialization("app")
	s.log.WithField("app_id", app.ID).Info("app listing registered")
	return true
}

// RegisterDeal appends a materialized deal to the live registry with the same
// ID-presence guard as RegisterApp.
func (s *Service) RegisterDeal(ctx context.Context, deal listing.Deal) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	var live []listing.Deal
	storage.GetJSON(ctx, s.store, storage.KeyLiveDeals, &live)
	for _, existing := range live {
		if existing.ID == deal.ID {
			return false
		}
	}

	live = append(live, deal)
	if err := storage.SetJSON(ctx, s.store, storage.KeyLiveDeals, live); err != nil {
		s.log.WithError(err).WithField("deal_id", deal.ID).Warn("persist live deals")
		return false
	}
	metrics.RecordMaterialization("deal")
	s.log.WithField("deal_id", deal.ID).Info("deal listing registered")
	return true
}

// ClaimDeal records a redemption of the identified deal and returns the claim
// including the deal's coupon code. The second return is false when the deal
// is not in the approved view.
func (s *Service) ClaimDeal(ctx context.Context, dealID, userID, email string) (Claim, bool) {
	deal, ok := s.DealByID(ctx, dealID)
	if !ok {
		return Claim{}, false
	}

	claim := Claim{
		DealID:     deal.ID,
		UserID:     userID,
		Email:      email,
		CouponCode: deal.CouponCode,
		ClaimedAt:  time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var claims []Claim
	storage.GetJSON(ctx, s.store, storage.KeyDealClaims, &claims)
	claims = append(claims, claim)
	if err := storage.SetJSON(ctx, s.store, storage.KeyDealClaims, claims); err != nil {
		s.log.WithError(err).WithField("deal_id", dealID).Warn("persist deal claims")
	}
	return claim, true
}

// Claims returns the recorded deal redemptions.
func (s *Service) Claims(ctx context.Context) []Claim {
	var claims []Claim
	storage.GetJSON(ctx, s.store, storage.KeyDealClaims, &claims)
	return claims
}
