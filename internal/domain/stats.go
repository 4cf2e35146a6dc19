package domain

// Stats is the dashboard read model. Recomputed on demand, never cached.
type Stats struct {
	TotalVehicles     int `json:"totalVehicles"`
	AvailableVehicles int `json:"availableVehicles"`
	FeaturedVehicles  int `json:"featuredVehicles"`

	TotalOffers      int `json:"totalOffers"`
	ActiveOffers     int `json:"activeOffers"`
	TotalRedemptions int `json:"totalRedemptions"`

	TotalLeads        int `json:"totalLeads"`
	NewLeads          int `json:"newLeads"`
	HighPriorityLeads int `json:"highPriorityLeads"`
	ConvertedLeads    int `json:"convertedLeads"`

	// Converted / total leads as a percentage, one decimal, 0 when there
	// are no leads.
	ConversionRate float64 `json:"conversionRate"`

	// Entries with next_service_date inside the rolling 30-day window.
	MaintenanceDue int `json:"maintenanceDue"`
}

// PublicStats is the reduced counter set exposed without authentication.
type PublicStats struct {
	TotalVehicles int `json:"totalVehicles"`
	TotalOffers   int `json:"totalOffers"`
	TotalLeads    int `json:"totalLeads"`
	NewLeads      int `json:"newLeads"`
}
