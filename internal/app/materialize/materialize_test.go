package materialize

import (
	"testing"
	"time"

	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/listing"
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/submission"
)

func appSubmission() submission.Submission {
	return submission.Submission{
		ID:          "sub-100",
		Kind:        submission.KindApp,
		Title:       "TaskFlow",
		Company:     "FlowWorks",
		Description: "Task automation for small teams",
		Status:      submission.StatusApproved,
		SubmittedAt: time.Date(2026, 3, 14, 15, 9, 26, 0, time.UTC),
		AppData: &submission.AppFormData{
			Title:       "TaskFlow",
			Company:     "FlowWorks",
			Description: "Task automation for small teams",
			Category:    "Developer Tools",
		},
	}
}

func TestAppDefaults(t *testing.T) {
	sub := appSubmission()
	sub.AppData.Category = ""

	app := App(sub)
	if app.ID != sub.ID {
		t.Fatalf("expected listing id %q, got %q", sub.ID, app.ID)
	}
	if app.Status != listing.StatusApproved {
		t.Fatalf("expected approved status, got %q", app.Status)
	}
	if app.Category != "Productivity" {
		t.Fatalf("expected default category, got %q", app.Category)
	}
	if app.ImageURL != defaultAppImage {
		t.Fatalf("expected placeholder image, got %q", app.ImageURL)
	}
	if app.Publisher.ID != "p-sub-100" || app.Publisher.Name != "FlowWorks" {
		t.Fatalf("unexpected publisher %+v", app.Publisher)
	}
	if app.UsersCount != 0 || app.DealsCount != 0 {
		t.Fatalf("expected zeroed counters, got users=%d deals=%d", app.UsersCount, app.DealsCount)
	}
	if len(app.Badges) != 1 || app.Badges[0] != listing.BadgeNew {
		t.Fatalf("expected [New] badges, got %v", app.Badges)
	}
	if app.CreatedAt != "2026-03-14" {
		t.Fatalf("expected creation date truncated to day, got %q", app.CreatedAt)
	}
}

func TestAppOptionalFieldsStayAbsent(t *testing.T) {
	app := App(appSubmission())
	if app.LongDescription != "" {
		t.Fatalf("expected no long description, got %q", app.LongDescription)
	}
	if app.Screenshots != nil {
		t.Fatalf("expected nil screenshots, got %v", app.Screenshots)
	}
	if app.Videos != nil {
		t.Fatalf("expected nil videos, got %v", app.Videos)
	}
}

func TestAppCopiesOptionalFields(t *testing.T) {
	sub := appSubmission()
	sub.AppData.LongDescription = "Full story"
	sub.AppData.Screenshots = []string{"a.png", "b.png"}

	app := App(sub)
	if app.LongDescription != "Full story" {
		t.Fatalf("expected long description copied, got %q", app.LongDescription)
	}
	if len(app.Screenshots) != 2 {
		t.Fatalf("expected screenshots copied, got %v", app.Screenshots)
	}

	// Mutating the source must not leak into the listing.
	sub.AppData.Screenshots[0] = "mutated"
	if app.Screenshots[0] != "a.png" {
		t.Fatalf("listing aliases submission payload")
	}
}

func TestAppDeterministic(t *testing.T) {
	sub := appSubmission()
	first := App(sub)
	second := App(sub)
	if first.ID != second.ID || first.CreatedAt != second.CreatedAt || first.Category != second.Category {
		t.Fatalf("conversion not deterministic: %+v vs %+v", first, second)
	}
}

func dealSubmission() submission.Submission {
	return submission.Submission{
		ID:          "sub-200",
		Kind:        submission.KindDeal,
		Title:       "50% off TaskFlow Pro",
		Company:     "FlowWorks",
		Description: "Half price for the first year",
		SubmittedAt: time.Date(2026, 5, 2, 8, 0, 0, 0, time.UTC),
		DealData: &submission.DealFormData{
			Title:       "50% off TaskFlow Pro",
			Company:     "FlowWorks",
			Description: "Half price for the first year",
			Discount:    "50% off",
			CouponCode:  "FLOW50",
		},
	}
}

func TestDealOfferPrecedence(t *testing.T) {
	sub := dealSubmission()

	deal := Deal(sub)
	if deal.Discount != "50% off" {
		t.Fatalf("expected discount label, got %q", deal.Discount)
	}

	sub.DealData.Discount = ""
	sub.DealData.Value = "$100 credits"
	deal = Deal(sub)
	if deal.Discount != "$100 credits" {
		t.Fatalf("expected value fallback, got %q", deal.Discount)
	}

	sub.DealData.Value = ""
	deal = Deal(sub)
	if deal.Discount != defaultOffer {
		t.Fatalf("expected fixed fallback, got %q", deal.Discount)
	}
}

func TestDealDefaults(t *testing.T) {
	deal := Deal(dealSubmission())
	if deal.DealType != listing.DealDiscount {
		t.Fatalf("expected default deal type, got %q", deal.DealType)
	}
	if deal.Category != "General" {
		t.Fatalf("expected default category, got %q", deal.Category)
	}
	if deal.AppID != "" {
		t.Fatalf("submitted deals carry no source app, got %q", deal.AppID)
	}
	if deal.AppName != "FlowWorks" {
		t.Fatalf("expected company as app name, got %q", deal.AppName)
	}
	if deal.CouponCode != "FLOW50" {
		t.Fatalf("expected coupon code copied, got %q", deal.CouponCode)
	}
	if deal.CreatedAt != "2026-05-02" {
		t.Fatalf("expected creation date truncated to day, got %q", deal.CreatedAt)
	}
	if len(deal.Badges) != 1 || deal.Badges[0] != listing.BadgeDeal {
		t.Fatalf("expected [Deal] badges, got %v", deal.Badges)
	}
}

func TestDealExplicitType(t *testing.T) {
	sub := dealSubmission()
	sub.DealData.Type = "free_trial"
	deal := Deal(sub)
	if deal.DealType != listing.DealFreeTrial {
		t.Fatalf("expected explicit deal type kept, got %q", deal.DealType)
	}
}

func TestNilPayloadFallsBackToSummary(t *testing.T) {
	sub := appSubmission()
	sub.AppData = nil
	app := App(sub)
	if app.Name != "TaskFlow" || app.Publisher.Name != "FlowWorks" {
		t.Fatalf("expected summary fields used, got name=%q publisher=%q", app.Name, app.Publisher.Name)
	}

	dsub := dealSubmission()
	dsub.DealData = nil
	deal := Deal(dsub)
	if deal.Title != "50% off TaskFlow Pro" || deal.Discount != defaultOffer {
		t.Fatalf("expected summary fields and fallback offer, got title=%q offer=%q", deal.Title, deal.Discount)
	}
}
