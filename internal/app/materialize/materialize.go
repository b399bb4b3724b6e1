// Package materialize converts approved submissions into published listings.
// Conversion is pure and deterministic: replaying it for the same submission
// always yields the same listing, so repeated approvals cannot diverge.
package materialize

import (
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/listing"
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/submission"
)

// Placeholder artwork used when a submission carries no imagery.
const (
	defaultAppImage  = "https://images.unsplash.com/photo-1551288049-bebda4e38f71?w=400&h=240&fit=crop"
	defaultDealImage = "https://images.unsplash.com/photo-1607083206869-4c7672e72a8a?w=400&h=240&fit=crop"
)

// Fallback offer label when a deal submission names neither a discount nor a
// value.
const defaultOffer = "Special offer"

// App builds the published App listing for an app-kind submission. The
// listing ID equals the submission ID; counters start at zero; the creation
// date is the submission date truncated to the calendar day. Optional payload
// fields are copied only when present and non-empty so they stay absent
// downstream.
func App(sub submission.Submission) listing.App {
	data := sub.AppData
	if data == nil {
		data = &submission.AppFormData{}
	}

	app := listing.App{
		ID:          sub.ID,
		Type:        "app",
		Name:        firstNonEmpty(data.Title, sub.Title),
		Status:      listing.StatusApproved,
		Description: firstNonEmpty(data.Description, sub.Description),
		ImageURL:    defaultAppImage,
		Publisher: listing.Publisher{
			ID:   "p-" + sub.ID,
			Name: firstNonEmpty(data.Company, sub.Company),
		},
		UsersCount: 0,
		DealsCount: 0,
		Category:   firstNonEmpty(data.Category, "Productivity"),
		Badges:     []string{listing.BadgeNew},
		CreatedAt:  sub.SubmittedAt.UTC().Format("2006-01-02"),
	}

	if data.LongDescription != "" {
		app.LongDescription = data.LongDescription
	}
	if len(data.Screenshots) > 0 {
		app.Screenshots = append([]string(nil), data.Screenshots...)
	}
	if len(data.Videos) > 0 {
		app.Videos = append([]string(nil), data.Videos...)
	}
	return app
}

// Deal builds the published Deal listing for a deal-kind submission. The
// offer label prefers the explicit discount, then the generic value, then a
// fixed fallback. Deals submitted this way carry no source app reference.
func Deal(sub submission.Submission) listing.Deal {
	data := sub.DealData
	if data == nil {
		data = &submission.DealFormData{}
	}

	dealType := listing.DealType(data.Type)
	if dealType == "" {
		dealType = listing.DealDiscount
	}

	return listing.Deal{
		ID:          sub.ID,
		Type:        "deal",
		Title:       firstNonEmpty(data.Title, sub.Title),
		Status:      listing.StatusApproved,
		Description: firstNonEmpty(data.Description, sub.Description),
		ImageURL:    defaultDealImage,
		AppID:       "",
		AppName:     firstNonEmpty(data.Company, sub.Company),
		Publisher: listing.Publisher{
			ID:   "p-" + sub.ID,
			Name: firstNonEmpty(data.Company, sub.Company),
		},
		Discount:   firstNonEmpty(data.Discount, data.Value, defaultOffer),
		DealType:   dealType,
		Category:   firstNonEmpty(data.Category, "General"),
		Badges:     []string{listing.BadgeDeal},
		CreatedAt:  sub.SubmittedAt.UTC().Format("2006-01-02"),
		CouponCode: data.CouponCode,
		Deadline:   data.Deadline,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
