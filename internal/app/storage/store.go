// Package storage defines the keyed blob store the marketplace persists its
// state in, together with tolerant JSON helpers. Backends live in
// subpackages; all of them hold opaque JSON blobs under stable string keys.
package storage

import "context"

// Store persists keyed JSON blobs. Get reports presence explicitly so callers
// can distinguish an absent key from an empty value.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// Persisted-state keys. These must stay stable across sessions: the
// celebration "already shown" guarantees depend on them.
const (
	KeySubmissions     = "growthlab_submissions"
	KeyLiveApps        = "growthlab_live_apps"
	KeyLiveDeals       = "growthlab_live_deals"
	KeyDealClaims      = "growthlab_deal_claims"
	KeyLaunchShown     = "growthlab_launch_celebration_shown"
	KeyMilestonesShown = "growthlab_milestone_celebration_shown"
)
