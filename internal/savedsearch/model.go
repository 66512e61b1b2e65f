package savedsearch

import "time"

// Alert frequencies.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// Criteria holds the stored property filter re-executed on each scan.
type Criteria struct {
	City        string `json:"city,omitempty"`
	Type        string `json:"type,omitempty"`
	MinPriceGBP int64  `json:"min_price_gbp,omitempty"`
	MaxPriceGBP int64  `json:"max_price_gbp,omitempty"`
	MinBedrooms int    `json:"min_bedrooms,omitempty"`
}

// SavedSearch represents a stored search with alerting enabled.
type SavedSearch struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Name      string     `json:"name"`
	Criteria  Criteria   `json:"criteria"`
	Frequency string     `json:"frequency"`
	LastRunAt *time.Time `json:"last_run_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// MatchedProperty is the subset of listing data included in alerts.
type MatchedProperty struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	City     string `json:"city"`
	PriceGBP int64  `json:"price_gbp"`
}
