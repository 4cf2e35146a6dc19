package domain

// Offer applicability scopes.
const (
	AppliesAll              = "all"
	AppliesCategory         = "category"
	AppliesSpecificVehicles = "specific_vehicles"
)

// Offer is a promotional package. An offer is redeemable only while
// IsActive, inside its validity window, and under its usage limit.
type Offer struct {
	ID            string `db:"id" json:"id"`
	Title         string `db:"title" json:"title"`
	TitleAr       string `db:"title_ar" json:"title_ar,omitempty"`
	Description   string `db:"description" json:"description,omitempty"`
	DescriptionAr string `db:"description_ar" json:"description_ar,omitempty"`

	DiscountText    string   `db:"discount_text" json:"discount_text,omitempty"`
	DiscountPercent *float64 `db:"discount_percent" json:"discount_percent,omitempty"`
	DiscountAmount  *float64 `db:"discount_amount" json:"discount_amount,omitempty"`

	OfferCode string `db:"offer_code" json:"offer_code,omitempty"`

	ValidFrom  string `db:"valid_from" json:"valid_from,omitempty"`
	ValidUntil string `db:"valid_until" json:"valid_until,omitempty"`

	AppliesTo string `db:"applies_to" json:"applies_to"`

	// JSON-encoded string arrays; decoded for detail responses.
	ApplicableCategoriesJSON string   `db:"applicable_categories_json" json:"-"`
	ApplicableVehicleIDsJSON string   `db:"applicable_vehicle_ids_json" json:"-"`
	ApplicableCategories     []string `db:"-" json:"applicable_categories,omitempty"`
	ApplicableVehicleIDs     []string `db:"-" json:"applicable_vehicle_ids,omitempty"`

	UsageLimit *int `db:"usage_limit" json:"usage_limit,omitempty"`
	UsageCount int  `db:"usage_count" json:"usage_count"`

	ImageURL string `db:"image_url" json:"image_url,omitempty"`
	Terms    string `db:"terms" json:"terms,omitempty"`
	IsActive bool   `db:"is_active" json:"is_active"`

	CreatedAt string `db:"created_at" json:"created_at,omitempty"`
	UpdatedAt string `db:"updated_at" json:"updated_at,omitempty"`
}

// OfferRedemption ties an offer to the customer who used it. Writing one
// increments the parent offer's usage_count in the same transaction.
type OfferRedemption struct {
	ID            string `db:"id" json:"id"`
	OfferID       string `db:"offer_id" json:"offer_id"`
	OfferCode     string `db:"offer_code" json:"offer_code,omitempty"`
	LeadID        string `db:"lead_id" json:"lead_id,omitempty"`
	CustomerName  string `db:"customer_name" json:"customer_name,omitempty"`
	CustomerEmail string `db:"customer_email" json:"customer_email,omitempty"`
	CustomerPhone string `db:"customer_phone" json:"customer_phone,omitempty"`
	RedeemedAt    string `db:"redeemed_at" json:"redeemed_at,omitempty"`
}
