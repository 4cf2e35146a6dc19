package repos

import (
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"velofleet/internal/domain"
)

type OfferRepo struct{ db *sqlx.DB }

func NewOfferRepo(db *sqlx.DB) *OfferRepo { return &OfferRepo{db: db} }

const offerCols = `
  id, title, title_ar, description, description_ar,
  discount_text, discount_percent, discount_amount, offer_code,
  valid_from, valid_until, applies_to,
  applicable_categories_json, applicable_vehicle_ids_json,
  usage_limit, usage_count, image_url, terms, is_active,
  created_at, updated_at`

func (r *OfferRepo) List(activeOnly bool) ([]domain.Offer, error) {
	q := `SELECT ` + offerCols + ` FROM offers`
	if activeOnly {
		q += ` WHERE is_active = 1`
	}
	q += ` ORDER BY datetime(created_at) DESC`
	var out []domain.Offer
	err := r.db.Select(&out, q)
	return out, err
}

func (r *OfferRepo) Get(id string) (domain.Offer, error) {
	var o domain.Offer
	err := r.db.Get(&o, `SELECT `+offerCols+` FROM offers WHERE id = ?`, id)
	return o, err
}

// GetByCode fetches the raw record; redeemability is judged by the service.
func (r *OfferRepo) GetByCode(code string) (domain.Offer, error) {
	var o domain.Offer
	err := r.db.Get(&o, `SELECT `+offerCols+` FROM offers WHERE offer_code = ? AND offer_code != ''`, code)
	return o, err
}

func (r *OfferRepo) Upsert(o domain.Offer) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO offers(
	    id, title, title_ar, description, description_ar,
	    discount_text, discount_percent, discount_amount, offer_code,
	    valid_from, valid_until, applies_to,
	    applicable_categories_json, applicable_vehicle_ids_json,
	    usage_limit, usage_count, image_url, terms, is_active, updated_at
	  ) VALUES (
	    :id, :title, :title_ar, :description, :description_ar,
	    :discount_text, :discount_percent, :discount_amount, :offer_code,
	    :valid_from, :valid_until, :applies_to,
	    :applicable_categories_json, :applicable_vehicle_ids_json,
	    :usage_limit, :usage_count, :image_url, :terms, :is_active, :updated_at
	  )
	  ON CONFLICT(id) DO UPDATE SET
	    title=excluded.title, title_ar=excluded.title_ar,
	    description=excluded.description, description_ar=excluded.description_ar,
	    discount_text=excluded.discount_text, discount_percent=excluded.discount_percent,
	    discount_amount=excluded.discount_amount, offer_code=excluded.offer_code,
	    valid_from=excluded.valid_from, valid_until=excluded.valid_until,
	    applies_to=excluded.applies_to,
	    applicable_categories_json=excluded.applicable_categories_json,
	    applicable_vehicle_ids_json=excluded.applicable_vehicle_ids_json,
	    usage_limit=excluded.usage_limit, usage_count=excluded.usage_count,
	    image_url=excluded.image_url, terms=excluded.terms,
	    is_active=excluded.is_active, updated_at=excluded.updated_at
	`, map[string]any{
		"id": o.ID, "title": o.Title, "title_ar": o.TitleAr,
		"description": o.Description, "description_ar": o.DescriptionAr,
		"discount_text": o.DiscountText, "discount_percent": o.DiscountPercent,
		"discount_amount": o.DiscountAmount, "offer_code": o.OfferCode,
		"valid_from": o.ValidFrom, "valid_until": o.ValidUntil,
		"applies_to":                  o.AppliesTo,
		"applicable_categories_json":  o.ApplicableCategoriesJSON,
		"applicable_vehicle_ids_json": o.ApplicableVehicleIDsJSON,
		"usage_limit": o.UsageLimit, "usage_count": o.UsageCount,
		"image_url": o.ImageURL, "terms": o.Terms, "is_active": o.IsActive,
		"updated_at": nowUTC(),
	})
	return err
}

func (r *OfferRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM offers WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *OfferRepo) ToggleActive(id string) (bool, error) {
	res, err := r.db.Exec(`UPDATE offers SET is_active = NOT is_active, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *OfferRepo) BulkUpsert(offers []domain.Offer) (int, error) {
	count := 0
	for _, o := range offers {
		if o.ID == "" {
			continue
		}
		if err := r.Upsert(o); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Redeem performs the conditional usage_count increment and writes the
// redemption row in the same transaction. The UPDATE carries the full
// redeemability predicate, so a concurrent redemption that exhausts the
// limit makes this one report failure instead of overshooting.
func (r *OfferRepo) Redeem(red domain.OfferRedemption) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec(`
	  UPDATE offers SET usage_count = usage_count + 1, updated_at = ?
	  WHERE id = ?
	    AND is_active = 1
	    AND (valid_until = '' OR datetime(valid_until) >= datetime('now'))
	    AND (usage_limit IS NULL OR usage_count < usage_limit)
	`, nowUTC(), red.OfferID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, nil
	}

	if red.ID == "" {
		red.ID = uuid.NewString()
	}
	if _, err := tx.Exec(`
	  INSERT INTO offer_redemptions(id, offer_id, offer_code, lead_id, customer_name, customer_email, customer_phone)
	  VALUES(?,?,?,?,?,?,?)`,
		red.ID, red.OfferID, red.OfferCode, red.LeadID,
		red.CustomerName, red.CustomerEmail, red.CustomerPhone); err != nil {
		return false, err
	}
	return true, tx.Commit()
}

func (r *OfferRepo) ListRedemptions(offerID string) ([]domain.OfferRedemption, error) {
	var out []domain.OfferRedemption
	err := r.db.Select(&out, `
	  SELECT id, offer_id, offer_code, lead_id, customer_name, customer_email, customer_phone, redeemed_at
	  FROM offer_redemptions WHERE offer_id = ?
	  ORDER BY datetime(redeemed_at) DESC`, offerID)
	return out, err
}
