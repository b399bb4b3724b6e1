// Package seed loads the static fixture dataset merged into every
// marketplace view. Fixtures are an external input: a missing or malformed
// file degrades to an empty set instead of failing startup.
package seed

import (
	"encoding/json"
	"os"

	"github.com/tidwall/gjson"

	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/listing"
	"github.com/growthlab-hq/apps-deals-service/internal/app/domain/submission"
	"github.com/growthlab-hq/apps-deals-service/pkg/logger"
)

// Category is a browsable marketplace category.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Count int    `json:"count,omitempty"`
}

// DefaultCategories mirrors the category set of the bundled dataset.
func DefaultCategories() []Category {
	return []Category{
		{ID: "all", Name: "All Categories", Icon: "LayoutGrid", Count: 156},
		{ID: "crm", Name: "CRM & Sales", Icon: "Users", Count: 23},
		{ID: "analytics", Name: "Analytics & BI", Icon: "BarChart3", Count: 18},
		{ID: "marketing", Name: "Marketing", Icon: "TrendingUp", Count: 31},
		{ID: "finance", Name: "Finance", Icon: "DollarSign", Count: 15},
		{ID: "productivity", Name: "Productivity", Icon: "Target", Count: 22},
		{ID: "development", Name: "Development", Icon: "Code", Count: 28},
		{ID: "ai", Name: "AI & ML", Icon: "Brain", Count: 25},
		{ID: "ecommerce", Name: "E-commerce", Icon: "ShoppingCart", Count: 7},
	}
}

// Apps loads seed app listings from the JSON file at path.
func Apps(path string, log *logger.Logger) []listing.App {
	var apps []listing.App
	load(path, &apps, log)
	return apps
}

// Deals loads seed deal listings from the JSON file at path.
func Deals(path string, log *logger.Logger) []listing.Deal {
	var deals []listing.Deal
	load(path, &deals, log)
	return deals
}

// Submissions loads seed submissions from the JSON file at path.
func Submissions(path string, log *logger.Logger) []submission.Submission {
	var subs []submission.Submission
	load(path, &subs, log)
	return subs
}

func load(path string, dst interface{}, log *logger.Logger) {
	if log == nil {
		log = logger.NewDefault("seed")
	}
	if path == "" {
		return
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).WithField("path", path).Warn("read seed fixture")
		}
		return
	}
	if !gjson.ValidBytes(raw) {
		log.WithField("path", path).Warn("seed fixture is not valid JSON; ignoring")
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		log.WithError(err).WithField("path", path).Warn("decode seed fixture")
	}
}
