package dashboards

// PlatformSummary backs the super-admin and admin dashboards.
type PlatformSummary struct {
	TotalUsers        int `json:"total_users"`
	ActiveUsers       int `json:"active_users"`
	TotalProperties   int `json:"total_properties"`
	PublishedListings int `json:"published_listings"`
	PendingBookings   int `json:"pending_bookings"`
}

// ManagerSummary backs the property-manager dashboard.
type ManagerSummary struct {
	ManagedListings   int `json:"managed_listings"`
	UpcomingViewings  int `json:"upcoming_viewings"`
	CancelledViewings int `json:"cancelled_viewings"`
}

// ContractorSummary backs the contractor dashboard.
type ContractorSummary struct {
	AssignedViewings  int `json:"assigned_viewings"`
	CompletedViewings int `json:"completed_viewings"`
}

// SellerSummary backs the seller dashboard.
type SellerSummary struct {
	OwnListings  int `json:"own_listings"`
	UnderOffer   int `json:"under_offer"`
	SoldListings int `json:"sold_listings"`
}
