package properties

type CreatePropertyRequest struct {
	Reference   string `json:"reference" validate:"required,max=50"`
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type" validate:"required,oneof=house flat bungalow maisonette studio commercial"`
	PriceGBP    int64  `json:"price_gbp" validate:"required,gt=0"`
	Bedrooms    int    `json:"bedrooms" validate:"gte=0,lte=50"`
	Bathrooms   int    `json:"bathrooms" validate:"gte=0,lte=50"`
	AddressLine string `json:"address_line" validate:"required,max=200"`
	City        string `json:"city" validate:"required,max=100"`
	Postcode    string `json:"postcode" validate:"required,max=10"`
}

type UpdatePropertyRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=draft published under_offer sold withdrawn"`
	PriceGBP    *int64  `json:"price_gbp,omitempty" validate:"omitempty,gt=0"`
	Bedrooms    *int    `json:"bedrooms,omitempty" validate:"omitempty,gte=0,lte=50"`
	Bathrooms   *int    `json:"bathrooms,omitempty" validate:"omitempty,gte=0,lte=50"`
}

type ListPropertiesRequest struct {
	City        string
	Status      string
	MinPriceGBP int64
	MaxPriceGBP int64
	MinBedrooms int
	Page        int
	PerPage     int
}
