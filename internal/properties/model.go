package properties

import "time"

// Listing status values.
const (
	StatusDraft      = "draft"
	StatusPublished  = "published"
	StatusUnderOffer = "under_offer"
	StatusSold       = "sold"
	StatusWithdrawn  = "withdrawn"
)

// Property represents a listed property.
type Property struct {
	ID          string    `json:"id"`
	Reference   string    `json:"reference"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	PriceGBP    int64     `json:"price_gbp"`
	Bedrooms    int       `json:"bedrooms"`
	Bathrooms   int       `json:"bathrooms"`
	AddressLine string    `json:"address_line"`
	City        string    `json:"city"`
	Postcode    string    `json:"postcode"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
