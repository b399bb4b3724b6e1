// Package celebration defines the one-time launch and usage-milestone events
// surfaced for live apps.
package celebration

// Kind of celebration event. Launch events always outrank milestone events.
type Kind string

const (
	KindLaunch    Kind = "launch"
	KindMilestone Kind = "milestone"
)

// Thresholds are the usage counts that trigger a milestone celebration, in
// ascending order. Each fires at most once per app.
var Thresholds = []int{100, 500, 1000, 5000, 10000, 25000, 50000, 100000}

// Event is a pending celebration for a single live app. Milestone is set only
// when Kind is KindMilestone.
type Event struct {
	Kind        Kind   `json:"kind"`
	AppID       string `json:"appId"`
	AppName     string `json:"appName"`
	StartupName string `json:"startupName"`
	ImageURL    string `json:"imageUrl"`
	UsersCount  int    `json:"usersCount"`
	DealsCount  int    `json:"dealsCount"`
	Milestone   int    `json:"milestone,omitempty"`
}
