package submissions

import (
	"context"
	"testing"
	"time"

	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/listing"
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/submission"
	"github.com/growthlab-hq/apps-deals-service/internal/app/services/catalog"
	"github.com/growthlab-hq/apps-deals-service/internal/app/storage/memory"
	"github.com/growthlab-hq/apps-deals-service/pkg/testutil"
)

var baseTime = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

func newSubmission(id string, kind submission.Kind, offset time.Duration) submission.Submission {
	sub := submission.Submission{
		ID:          id,
		Kind:        kind,
		Title:       "Listing " + id,
		Company:     "Startup " + id,
		Description: "description for " + id,
		Status:      submission.StatusPending,
		Priority:    submission.PriorityNormal,
		SubmittedAt: baseTime.Add(offset),
	}
	switch kind {
	case submission.KindDeal:
		sub.DealData = &submission.DealFormData{
			Title:    sub.Title,
			Company:  sub.Company,
			Discount: "25% off",
		}
	default:
		sub.AppData = &submission.AppFormData{
			Title:   sub.Title,
			Company: sub.Company,
		}
	}
	return sub
}

func newService(seed []submission.Submission) (*Service, *catalog.Service) {
	store := memory.New()
	cat := catalog.New(store, nil, nil, testutil.QuietLogger())
	return New(store, cat, seed, testutil.QuietLogger()), cat
}

func TestListMergesSeedAndStored(t *testing.T) {
	ctx := context.Background()
	seed := []submission.Submission{newSubmission("seed-1", submission.KindApp, 0)}
	svc, _ := newService(seed)

	list := svc.List(ctx)
	if len(list) != 1 || list[0].ID != "seed-1" {
		t.Fatalf("expected seed-only list, got %+v", list)
	}

	svc.Add(ctx, newSubmission("new-1", submission.KindApp, time.Hour))
	list = svc.List(ctx)
	if len(list) != 2 {
		t.Fatalf("expected 2 submissions, got %d", len(list))
	}
	// Most recent first.
	if list[0].ID != "new-1" || list[1].ID != "seed-1" {
		t.Fatalf("unexpected order: %s, %s", list[0].ID, list[1].ID)
	}
}

func TestListStableOrdering(t *testing.T) {
	ctx := context.Background()
	// Same timestamp: ordering falls back to ID.
	seed := []submission.Submission{
		newSubmission("b", submission.KindApp, 0),
		newSubmission("a", submission.KindApp, 0),
	}
	svc, _ := newService(seed)

	first := svc.List(ctx)
	second := svc.List(ctx)
	if len(first) != 2 || first[0].ID != "a" || first[1].ID != "b" {
		t.Fatalf("expected deterministic tie-break by id, got %+v", first)
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("repeated listings disagree at %d: %s vs %s", i, first[i].ID, second[i].ID)
		}
	}
}

func TestAddDuplicateIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(nil)

	sub := newSubmission("dup", submission.KindApp, 0)
	svc.Add(ctx, sub)

	altered := sub
	altered.Title = "changed"
	list := svc.Add(ctx, altered)
	if len(list) != 1 {
		t.Fatalf("expected 1 submission after duplicate add, got %d", len(list))
	}
	if list[0].Title != sub.Title {
		t.Fatalf("duplicate add must not overwrite, got title %q", list[0].Title)
	}
}

func TestApproveMaterializesApp(t *testing.T) {
	ctx := context.Background()
	svc, cat := newService(nil)

	svc.Add(ctx, newSubmission("app-1", submission.KindApp, 0))
	list := svc.Approve(ctx, "app-1")

	got, found := findByID(list, "app-1")
	if !found || got.Status != submission.StatusApproved {
		t.Fatalf("expected approved submission, got %+v", got)
	}

	live := cat.LiveApps(ctx)
	if len(live) != 1 || live[0].ID != "app-1" {
		t.Fatalf("expected materialized app listing, got %+v", live)
	}
	if live[0].Status != listing.StatusApproved {
		t.Fatalf("expected approved listing, got %q", live[0].Status)
	}
}

func TestApproveMaterializesDeal(t *testing.T) {
	ctx := context.Background()
	svc, cat := newService(nil)

	svc.Add(ctx, newSubmission("deal-1", submission.KindDeal, 0))
	svc.Approve(ctx, "deal-1")

	live := cat.LiveDeals(ctx)
	if len(live) != 1 || live[0].ID != "deal-1" {
		t.Fatalf("expected materialized deal listing, got %+v", live)
	}
	if live[0].Discount != "25% off" {
		t.Fatalf("expected discount carried over, got %q", live[0].Discount)
	}
}

func TestApproveTwiceKeepsOneListing(t *testing.T) {
	ctx := context.Background()
	svc, cat := newService(nil)

	svc.Add(ctx, newSubmission("app-1", submission.KindApp, 0))
	svc.Approve(ctx, "app-1")
	svc.Approve(ctx, "app-1")

	if live := cat.LiveApps(ctx); len(live) != 1 {
		t.Fatalf("expected exactly one live app after repeat approval, got %d", len(live))
	}
}

func TestApproveUnknownIDIsNoOp(t *testing.T) {
	ctx := context.Background()
	svc, cat := newService(nil)

	svc.Add(ctx, newSubmission("app-1", submission.KindApp, 0))
	before := svc.List(ctx)
	after := svc.Approve(ctx, "ghost")
	if len(after) != len(before) {
		t.Fatalf("expected unchanged list, got %d vs %d", len(after), len(before))
	}
	if live := cat.LiveApps(ctx); len(live) != 0 {
		t.Fatalf("expected no listings, got %d", len(live))
	}
}

func TestRejectAfterApproveKeepsListingLive(t *testing.T) {
	ctx := context.Background()
	svc, cat := newService(nil)

	svc.Add(ctx, newSubmission("app-1", submission.KindApp, 0))
	svc.Approve(ctx, "app-1")
	list := svc.Reject(ctx, "app-1", "changed our mind")

	got, _ := findByID(list, "app-1")
	if got.Status != submission.StatusRejected {
		t.Fatalf("expected rejected status, got %q", got.Status)
	}
	if live := cat.LiveApps(ctx); len(live) != 1 {
		t.Fatalf("rejection must not retract a live listing, got %d listings", len(live))
	}
}

func TestReviewNotesReplacement(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(nil)

	svc.Add(ctx, newSubmission("app-1", submission.KindApp, 0))
	list := svc.RequestRevision(ctx, "app-1", "needs screenshots")
	got, _ := findByID(list, "app-1")
	if got.Status != submission.StatusNeedsRevision || got.ReviewNotes != "needs screenshots" {
		t.Fatalf("unexpected state after revision request: %+v", got)
	}

	// Empty notes leave the previous notes untouched.
	list = svc.Reject(ctx, "app-1", "")
	got, _ = findByID(list, "app-1")
	if got.Status != submission.StatusRejected {
		t.Fatalf("expected rejected status, got %q", got.Status)
	}
	if got.ReviewNotes != "needs screenshots" {
		t.Fatalf("empty notes must not clear prior notes, got %q", got.ReviewNotes)
	}
}

func TestReviewedSeedEntryBecomesPersisted(t *testing.T) {
	ctx := context.Background()
	seed := []submission.Submission{newSubmission("seed-1", submission.KindApp, 0)}
	svc, _ := newService(seed)

	svc.Approve(ctx, "seed-1")

	// A fresh service over the same store without the seed fixture must still
	// see the approved entry: approval persisted the full merged list.
	store := svc.store
	fresh := New(store, svc.catalog, nil, testutil.QuietLogger())
	got, found := fresh.Get(ctx, "seed-1")
	if !found || got.Status != submission.StatusApproved {
		t.Fatalf("expected persisted override for seed entry, got %+v found=%v", got, found)
	}
}

func TestCorruptStoreDegradesToSeedOnly(t *testing.T) {
	ctx := context.Background()
	store := testutil.NewRecordingStore()
	store.Put("growthlab_submissions", []byte("{not json"))

	cat := catalog.New(store, nil, nil, testutil.QuietLogger())
	seed := []submission.Submission{newSubmission("seed-1", submission.KindApp, 0)}
	svc := New(store, cat, seed, testutil.QuietLogger())

	list := svc.List(ctx)
	if len(list) != 1 || list[0].ID != "seed-1" {
		t.Fatalf("expected corrupt blob to degrade to seed fixtures, got %+v", list)
	}
}

func TestFailingStoreBehavesEmpty(t *testing.T) {
	ctx := context.Background()
	store := &testutil.FailingStore{Err: context.DeadlineExceeded}
	cat := catalog.New(store, nil, nil, testutil.QuietLogger())
	svc := New(store, cat, nil, testutil.QuietLogger())

	if list := svc.List(ctx); len(list) != 0 {
		t.Fatalf("expected empty list over failing store, got %d", len(list))
	}
	// Writes fail too; the operation still returns the updated view.
	list := svc.Add(ctx, newSubmission("x", submission.KindApp, 0))
	if len(list) != 1 {
		t.Fatalf("expected add to report queued submission despite write failure, got %d", len(list))
	}
}
