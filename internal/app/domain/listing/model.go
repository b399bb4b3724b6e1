// Package listing defines the published marketplace entities: apps and deals.
package listing

// Status of a published listing. Seed fixtures may omit it entirely; an
// absent status is treated as approved for backward compatibility.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Visible reports whether a listing with this status belongs in the merged
// approved view. The zero value (no status recorded) counts as approved.
func (s Status) Visible() bool {
	return s != StatusPending && s != StatusRejected
}

// ProgramType describes how an app is offered to users.
type ProgramType string

const (
	ProgramTrial      ProgramType = "trial"
	ProgramBeta       ProgramType = "beta"
	ProgramPilot      ProgramType = "pilot"
	ProgramValidation ProgramType = "validation"
	ProgramFree       ProgramType = "free"
	ProgramDemo       ProgramType = "demo"
	ProgramEnterprise ProgramType = "enterprise"
)

// DealType classifies what a deal offers.
type DealType string

const (
	DealDiscount     DealType = "discount"
	DealFreeTrial    DealType = "free_trial"
	DealCredits      DealType = "credits"
	DealFreeDownload DealType = "free_download"
	DealBundle       DealType = "bundle"
	DealPartnership  DealType = "partnership"
	DealFree         DealType = "free"
)

// Badge labels shown on listing cards.
const (
	BadgeNew         = "New"
	BadgeFeatured    = "Featured"
	BadgeDeal        = "Deal"
	BadgeLimitedTime = "Limited time"
)

// Publisher identifies the startup behind a listing.
type Publisher struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Avatar   string `json:"avatar,omitempty"`
	Verified bool   `json:"verified,omitempty"`
	About    string `json:"about,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Review is a single user review with a star rating.
type Review struct {
	ID       string  `json:"id"`
	UserName string  `json:"userName"`
	Rating   float64 `json:"rating"`
	Title    string  `json:"title,omitempty"`
	Content  string  `json:"content"`
	Date     string  `json:"date"`
	Helpful  int     `json:"helpful,omitempty"`
	Verified bool    `json:"verified,omitempty"`
}

// LaunchInfo carries slot and progress counters for beta, pilot and
// validation programs.
type LaunchInfo struct {
	PilotSlots       int      `json:"pilotSlots,omitempty"`
	PilotSlotsFilled int      `json:"pilotSlotsFilled,omitempty"`
	BetaUsers        int      `json:"betaUsers,omitempty"`
	MaxBetaUsers     int      `json:"maxBetaUsers,omitempty"`
	ValidationGoal   string   `json:"validationGoal,omitempty"`
	Progress         int      `json:"progress,omitempty"`
	Goals            []string `json:"goals,omitempty"`
}

// DistributionOption tells users where to get an app.
type DistributionOption struct {
	Type  string `json:"type"`
	URL   string `json:"url"`
	Label string `json:"label,omitempty"`
}

// RewardTier is one crowdfunding pledge level.
type RewardTier struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	Desc  string `json:"desc"`
}

// Crowdfunding links an app to its ecosystem crowdfunding campaign.
type Crowdfunding struct {
	CampaignID string       `json:"campaignId"`
	GoalAmount float64      `json:"goalAmount"`
	Raised     float64      `json:"raised"`
	Backers    int          `json:"backers"`
	DaysLeft   int          `json:"daysLeft"`
	Tiers      []RewardTier `json:"tiers,omitempty"`
}

// App is a published application listing. Optional fields stay absent (not
// empty) when unset so downstream consumers can distinguish "not provided"
// from "provided empty".
type App struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	Name            string    `json:"name"`
	Status          Status    `json:"status,omitempty"`
	Description     string    `json:"description"`
	LongDescription string    `json:"longDescription,omitempty"`
	ImageURL        string    `json:"imageUrl"`
	Screenshots     []string  `json:"screenshots,omitempty"`
	Videos          []string  `json:"videos,omitempty"`
	Publisher       Publisher `json:"publisher"`
	UsersCount      int       `json:"usersCount"`
	DealsCount      int       `json:"dealsCount"`
	Category        string    `json:"category"`
	Badges          []string  `json:"badges"`
	CreatedAt       string    `json:"createdAt"`

	AppType                ProgramType          `json:"appType,omitempty"`
	SeekingBetaTesters     bool                 `json:"seekingBetaTesters,omitempty"`
	SeekingPilotUsers      bool                 `json:"seekingPilotUsers,omitempty"`
	SeekingValidationUsers bool                 `json:"seekingValidationUsers,omitempty"`
	LaunchInfo             *LaunchInfo          `json:"launchInfo,omitempty"`
	TrialPeriod            string               `json:"trialPeriod,omitempty"`
	Pricing                string               `json:"pricing,omitempty"`
	Rating                 float64              `json:"rating,omitempty"`
	RatingCount            int                  `json:"ratingCount,omitempty"`
	Reviews                []Review             `json:"reviews,omitempty"`
	Features               []string             `json:"features,omitempty"`
	Downloads              int                  `json:"downloads,omitempty"`
	Website                string               `json:"website,omitempty"`
	DistributionOptions    []DistributionOption `json:"distributionOptions,omitempty"`
	Crowdfunding           *Crowdfunding        `json:"crowdfunding,omitempty"`
	Platforms              []string             `json:"platforms,omitempty"`
}

// Deal is a published deal listing. AppID/AppName reference the originating
// app when the deal was created from one; independently submitted deals leave
// AppID blank.
type Deal struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Status      Status    `json:"status,omitempty"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	AppID       string    `json:"appId"`
	AppName     string    `json:"appName"`
	Publisher   Publisher `json:"publisher"`
	Discount    string    `json:"discount"`
	DealType    DealType  `json:"dealType,omitempty"`
	Category    string    `json:"category"`
	Badges      []string  `json:"badges"`
	CreatedAt   string    `json:"createdAt"`
	CouponCode  string    `json:"couponCode,omitempty"`
	Deadline    string    `json:"deadline,omitempty"`
}

// Kind returns the deal's offer type, defaulting to discount when unset.
func (d Deal) Kind() DealType {
	if d.DealType == "" {
		return DealDiscount
	}
	return d.DealType
}
