package domain

// Vehicle is the canonical fleet record. Pricing is per-day with optional
// weekly/monthly/weekend tiers; Arabic display fields sit next to their
// English counterparts.
type Vehicle struct {
	ID     string `db:"id" json:"id"`
	Brand  string `db:"brand" json:"brand"`
	Model  string `db:"model" json:"model"`
	Name   string `db:"name" json:"name"`
	NameAr string `db:"name_ar" json:"name_ar,omitempty"`
	Year   int    `db:"year" json:"year,omitempty"`

	PricePerDay   float64  `db:"price_per_day" json:"price_per_day"`
	PricePerWeek  *float64 `db:"price_per_week" json:"price_per_week,omitempty"`
	PricePerMonth *float64 `db:"price_per_month" json:"price_per_month,omitempty"`
	WeekendPrice  *float64 `db:"weekend_price" json:"weekend_price,omitempty"`

	PrimaryImage string `db:"primary_image" json:"primary_image"`

	CollectionID     string `db:"collection_id" json:"collection,omitempty"`
	CollectionName   string `db:"collection_name" json:"collection_name,omitempty"`
	CollectionNameAr string `db:"collection_name_ar" json:"collection_name_ar,omitempty"`
	Category         string `db:"category" json:"category,omitempty"`

	Description   string `db:"description" json:"description,omitempty"`
	DescriptionAr string `db:"description_ar" json:"description_ar,omitempty"`

	// Open-ended spec map (engine, transmission, seats...) stored as a JSON
	// blob; decoded only for detail responses.
	SpecsJSON string         `db:"specs_json" json:"-"`
	Specs     map[string]any `db:"-" json:"specs,omitempty"`

	IsFeatured  bool `db:"is_featured" json:"is_featured"`
	IsAvailable bool `db:"is_available" json:"is_available"`

	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`

	Images []VehicleImage `db:"-" json:"images,omitempty"`
}

// VehicleImage is a gallery entry. At most one image per vehicle carries
// IsPrimary; the swap happens inside one transaction.
type VehicleImage struct {
	ID           int64  `db:"id" json:"id"`
	VehicleID    string `db:"vehicle_id" json:"vehicle_id"`
	ImageURL     string `db:"image_url" json:"image_url"`
	DisplayOrder int    `db:"display_order" json:"display_order"`
	IsPrimary    bool   `db:"is_primary" json:"is_primary"`
	Caption      string `db:"caption" json:"caption,omitempty"`
	CreatedAt    string `db:"created_at" json:"created_at,omitempty"`
}

// VehicleFilters narrows fleet listings; zero values mean "no constraint".
type VehicleFilters struct {
	Category   string
	Collection string
	Available  *bool
	Featured   *bool
	PriceMin   *float64
	PriceMax   *float64
	Search     string
}
