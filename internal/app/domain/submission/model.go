// Package submission defines listing requests awaiting moderation and their
// kind-specific form payloads.
package submission

import "time"

// Kind discriminates the submission payload shape.
type Kind string

const (
	KindApp  Kind = "app"
	KindDeal Kind = "deal"
)

// Status of a submission in the review queue.
type Status string

const (
	StatusDraft         Status = "draft"
	StatusPending       Status = "pending"
	StatusUnderReview   Status = "under_review"
	StatusApproved      Status = "approved"
	StatusRejected      Status = "rejected"
	StatusNeedsRevision Status = "needs_revision"
	StatusPublished     Status = "published"
)

// Priority is advisory only; no transition or ordering reads it.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// AppFormData is the payload of an app-kind submission.
type AppFormData struct {
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Description     string   `json:"description"`
	LongDescription string   `json:"longDescription,omitempty"`
	Screenshots     []string `json:"screenshots,omitempty"`
	Videos          []string `json:"videos,omitempty"`
	Website         string   `json:"website"`
	ContactEmail    string   `json:"contactEmail"`
	ContactPhone    string   `json:"contactPhone"`
	Type            string   `json:"type"`
	Category        string   `json:"category"`
	TrialPeriod     string   `json:"trialPeriod"`
	Pricing         string   `json:"pricing"`
	TargetAudience  string   `json:"targetAudience"`
	KeyFeatures     string   `json:"keyFeatures"`
	TermsAccepted   bool     `json:"termsAccepted"`
	PrivacyAccepted bool     `json:"privacyAccepted"`
}

// DealFormData is the payload of a deal-kind submission.
type DealFormData struct {
	Title           string `json:"title"`
	Company         string `json:"company"`
	Description     string `json:"description"`
	Website         string `json:"website"`
	ContactEmail    string `json:"contactEmail"`
	ContactPhone    string `json:"contactPhone"`
	Type            string `json:"type"`
	Value           string `json:"value"`
	Discount        string `json:"discount"`
	Deadline        string `json:"deadline"`
	Location        string `json:"location"`
	Category        string `json:"category"`
	Requirements    string `json:"requirements"`
	Benefits        string `json:"benefits"`
	CouponCode      string `json:"couponCode"`
	Terms           string `json:"terms"`
	TermsAccepted   bool   `json:"termsAccepted"`
	PrivacyAccepted bool   `json:"privacyAccepted"`
}

// ReviewEvent records one moderation action for audit history.
type ReviewEvent struct {
	Status     string    `json:"status"`
	Notes      string    `json:"notes"`
	ReviewedBy string    `json:"reviewedBy"`
	Timestamp  time.Time `json:"timestamp"`
}

// Submission is a pending request to add a listing. Exactly one of AppData
// and DealData is set, matching Kind. Submissions are append-only: rejected
// ones stay in history.
type Submission struct {
	ID             string        `json:"id"`
	Kind           Kind          `json:"type"`
	Title          string        `json:"title"`
	Company        string        `json:"company"`
	Description    string        `json:"description"`
	Status         Status        `json:"status"`
	Priority       Priority      `json:"priority"`
	SubmittedAt    time.Time     `json:"submittedAt"`
	SubmittedBy    string        `json:"submittedBy"`
	SubmitterEmail string        `json:"submitterEmail"`
	ReviewNotes    string        `json:"reviewNotes"`
	AppData        *AppFormData  `json:"appData,omitempty"`
	DealData       *DealFormData `json:"dealData,omitempty"`
	ReviewHistory  []ReviewEvent `json:"reviewHistory,omitempty"`
}

// Clone returns a deep copy so callers can mutate without aliasing stored
// state.
func (s Submission) Clone() Submission {
	out := s
	if s.AppData != nil {
		data := *s.AppData
		data.Screenshots = append([]string(nil), s.AppData.Screenshots...)
		data.Videos = append([]string(nil), s.AppData.Videos...)
		out.AppData = &data
	}
	if s.DealData != nil {
		data := *s.DealData
		out.DealData = &data
	}
	out.ReviewHistory = append([]ReviewEvent(nil), s.ReviewHistory...)
	return out
}
