package catalog

import (
	"context"
	"testing"

	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/listing"
	"github.com/growthlab-hq/apps-deals-service/internal/app/storage/memory"
	"github.com/growthlab-hq/apps-deals-service/pkg/testutil"
)

func seedApps() []listing.App {
	return []listing.App{
		{ID: "seed-app-1", Name: "Alpha", Status: listing.StatusApproved},
		{ID: "seed-app-2", Name: "Beta"}, // no status recorded
		{ID: "seed-app-3", Name: "Gamma", Status: listing.StatusPending},
		{ID: "seed-app-4", Name: "Delta", Status: listing.StatusRejected},
	}
}

func TestApprovedAppsFiltersSeedStatuses(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), seedApps(), nil, testutil.QuietLogger())

	apps := svc.ApprovedApps(ctx)
	if len(apps) != 2 {
		t.Fatalf("expected 2 visible seed apps, got %d", len(apps))
	}
	// Absent status counts as approved.
	if apps[0].ID != "seed-app-1" || apps[1].ID != "seed-app-2" {
		t.Fatalf("unexpected visible apps: %s, %s", apps[0].ID, apps[1].ID)
	}
}

func TestApprovedAppsSeedBeforeLive(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), seedApps(), nil, testutil.QuietLogger())

	if !svc.RegisterApp(ctx, listing.App{ID: "live-1", Name: "Live One"}) {
		t.Fatalf("expected registration to succeed")
	}

	apps := svc.ApprovedApps(ctx)
	if len(apps) != 3 {
		t.Fatalf("expected 3 apps, got %d", len(apps))
	}
	if apps[2].ID != "live-1" {
		t.Fatalf("live apps must follow seed apps, got %s last", apps[2].ID)
	}
}

func TestRegisterAppDuplicateIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), nil, nil, testutil.QuietLogger())

	if !svc.RegisterApp(ctx, listing.App{ID: "a", Name: "first"}) {
		t.Fatalf("first registration should succeed")
	}
	if svc.RegisterApp(ctx, listing.App{ID: "a", Name: "second"}) {
		t.Fatalf("duplicate registration should report false")
	}

	live := svc.LiveApps(ctx)
	if len(live) != 1 || live[0].Name != "first" {
		t.Fatalf("duplicate registration must not overwrite, got %+v", live)
	}
}

func TestRegisterDealDuplicateIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), nil, nil, testutil.QuietLogger())

	if !svc.RegisterDeal(ctx, listing.Deal{ID: "d", Title: "first"}) {
		t.Fatalf("first registration should succeed")
	}
	if svc.RegisterDeal(ctx, listing.Deal{ID: "d", Title: "second"}) {
		t.Fatalf("duplicate registration should report false")
	}
	if live := svc.LiveDeals(ctx); len(live) != 1 {
		t.Fatalf("expected one live deal, got %d", len(live))
	}
}

func TestSeedAppsNeverAppearLive(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), seedApps(), nil, testutil.QuietLogger())
	if live := svc.LiveApps(ctx); len(live) != 0 {
		t.Fatalf("seed apps must not appear in live registry, got %d", len(live))
	}
}

func TestAppByID(t *testing.T) {
	ctx := context.Background()
	svc := New(memory.New(), seedApps(), nil, testutil.QuietLogger())

	if _, ok := svc.AppByID(ctx, "seed-app-1"); !ok {
		t.Fatalf("expected seed app found")
	}
	// Pending seed apps are invisible.
	if _, ok := svc.AppByID(ctx, "seed-app-3"); ok {
		t.Fatalf("pending seed app must not resolve")
	}
	if _, ok := svc.AppByID(ctx, "ghost"); ok {
		t.Fatalf("unknown id must not resolve")
	}
}

func TestClaimDeal(t *testing.T) {
	ctx := context.Background()
	seed := []listing.Deal{{ID: "deal-1", Title: "Half off", CouponCode: "HALF"}}
	svc := New(memory.New(), nil, seed, testutil.QuietLogger())

	claim, ok := svc.ClaimDeal(ctx, "deal-1", "user-9", "u@example.com")
	if !ok {
		t.Fatalf("expected claim to succeed")
	}
	if claim.CouponCode != "HALF" || claim.DealID != "deal-1" {
		t.Fatalf("unexpected claim %+v", claim)
	}
	if claim.ClaimedAt.IsZero() {
		t.Fatalf("expected claim timestamp to be set")
	}

	if _, ok := svc.ClaimDeal(ctx, "ghost", "user-9", ""); ok {
		t.Fatalf("claiming an unknown deal must fail")
	}

	claims := svc.Claims(ctx)
	if len(claims) != 1 || claims[0].UserID != "user-9" {
		t.Fatalf("expected recorded claim, got %+v", claims)
	}
}

func TestCorruptLiveBlobDegradesToEmpty(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewRecordingStore()
	store.Put("growthlab_live_apps", []byte("[{broken"))

	svc := New(store, seedApps(), nil, testutil.QuietLogger())
	if live := svc.LiveApps(ctx); len(live) != 0 {
		t.Fatalf("corrupt blob must degrade to empty, got %d", len(live))
	}
	if apps := svc.ApprovedApps(ctx); len(apps) != 2 {
		t.Fatalf("merged view must still show seed apps, got %d", len(apps))
	}
}
