package repos

import (
	"strings"

	"github.com/jmoiron/sqlx"

	"velofleet/internal/domain"
)

type VehicleRepo struct{ db *sqlx.DB }

func NewVehicleRepo(db *sqlx.DB) *VehicleRepo { return &VehicleRepo{db: db} }

const vehicleCols = `
  id, brand, model, name, name_ar, year,
  price_per_day, price_per_week, price_per_month, weekend_price,
  primary_image, collection_id, collection_name, collection_name_ar, category,
  description, description_ar, specs_json, is_featured, is_available,
  created_at, updated_at`

// List applies every filter as a SQL predicate; newest first.
func (r *VehicleRepo) List(f domain.VehicleFilters) ([]domain.Vehicle, error) {
	where := `1=1`
	args := []any{}
	if f.Category != "" {
		where += ` AND category = ?`
		args = append(args, f.Category)
	}
	if f.Collection != "" {
		where += ` AND collection_id = ?`
		args = append(args, f.Collection)
	}
	if f.Available != nil {
		where += ` AND is_available = ?`
		args = append(args, *f.Available)
	}
	if f.Featured != nil {
		where += ` AND is_featured = ?`
		args = append(args, *f.Featured)
	}
	if f.PriceMin != nil {
		where += ` AND price_per_day >= ?`
		args = append(args, *f.PriceMin)
	}
	if f.PriceMax != nil {
		where += ` AND price_per_day <= ?`
		args = append(args, *f.PriceMax)
	}
	if f.Search != "" {
		where += ` AND (LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(model) LIKE ?)`
		needle := "%" + strings.ToLower(f.Search) + "%"
		args = append(args, needle, needle, needle)
	}

	var out []domain.Vehicle
	err := r.db.Select(&out, `SELECT `+vehicleCols+` FROM vehicles WHERE `+where+`
	  ORDER BY datetime(created_at) DESC`, args...)
	return out, err
}

func (r *VehicleRepo) Get(id string) (domain.Vehicle, error) {
	var v domain.Vehicle
	err := r.db.Get(&v, `SELECT `+vehicleCols+` FROM vehicles WHERE id = ?`, id)
	return v, err
}

// Upsert inserts or fully replaces the record under its id. created_at is
// preserved across replaces.
func (r *VehicleRepo) Upsert(v domain.Vehicle) error {
	_, err := r.db.NamedExec(`
	  INSERT INTO vehicles(
	    id, brand, model, name, name_ar, year,
	    price_per_day, price_per_week, price_per_month, weekend_price,
	    primary_image, collection_id, collection_name, collection_name_ar, category,
	    description, description_ar, specs_json, is_featured, is_available, updated_at
	  ) VALUES (
	    :id, :brand, :model, :name, :name_ar, :year,
	    :price_per_day, :price_per_week, :price_per_month, :weekend_price,
	    :primary_image, :collection_id, :collection_name, :collection_name_ar, :category,
	    :description, :description_ar, :specs_json, :is_featured, :is_available, :updated_at
	  )
	  ON CONFLICT(id) DO UPDATE SET
	    brand=excluded.brand, model=excluded.model, name=excluded.name,
	    name_ar=excluded.name_ar, year=excluded.year,
	    price_per_day=excluded.price_per_day, price_per_week=excluded.price_per_week,
	    price_per_month=excluded.price_per_month, weekend_price=excluded.weekend_price,
	    primary_image=excluded.primary_image, collection_id=excluded.collection_id,
	    collection_name=excluded.collection_name, collection_name_ar=excluded.collection_name_ar,
	    category=excluded.category, description=excluded.description,
	    description_ar=excluded.description_ar, specs_json=excluded.specs_json,
	    is_featured=excluded.is_featured, is_available=excluded.is_available,
	    updated_at=excluded.updated_at
	`, map[string]any{
		"id": v.ID, "brand": v.Brand, "model": v.Model, "name": v.Name,
		"name_ar": v.NameAr, "year": v.Year,
		"price_per_day": v.PricePerDay, "price_per_week": v.PricePerWeek,
		"price_per_month": v.PricePerMonth, "weekend_price": v.WeekendPrice,
		"primary_image": v.PrimaryImage, "collection_id": v.CollectionID,
		"collection_name": v.CollectionName, "collection_name_ar": v.CollectionNameAr,
		"category": v.Category, "description": v.Description,
		"description_ar": v.DescriptionAr, "specs_json": v.SpecsJSON,
		"is_featured": v.IsFeatured, "is_available": v.IsAvailable,
		"updated_at": nowUTC(),
	})
	return err
}

func (r *VehicleRepo) Delete(id string) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM vehicles WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ToggleFeatured flips the flag in a single statement; false means no such
// vehicle.
func (r *VehicleRepo) ToggleFeatured(id string) (bool, error) {
	res, err := r.db.Exec(`UPDATE vehicles SET is_featured = NOT is_featured, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *VehicleRepo) ToggleAvailability(id string) (bool, error) {
	res, err := r.db.Exec(`UPDATE vehicles SET is_available = NOT is_available, updated_at = ? WHERE id = ?`, nowUTC(), id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ---------- Images ----------

func (r *VehicleRepo) ListImages(vehicleID string) ([]domain.VehicleImage, error) {
	var out []domain.VehicleImage
	err := r.db.Select(&out, `
	  SELECT id, vehicle_id, image_url, display_order, is_primary, caption, created_at
	  FROM vehicle_images WHERE vehicle_id = ?
	  ORDER BY display_order, id`, vehicleID)
	return out, err
}

func (r *VehicleRepo) AddImage(img domain.VehicleImage) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO vehicle_images(vehicle_id, image_url, display_order, is_primary, caption)
	  VALUES(?,?,?,?,?)`,
		img.VehicleID, img.ImageURL, img.DisplayOrder, img.IsPrimary, img.Caption)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *VehicleRepo) DeleteImage(imageID int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM vehicle_images WHERE id = ?`, imageID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// SetPrimaryImage swaps the primary flag inside one transaction so at most
// one image per vehicle wins.
func (r *VehicleRepo) SetPrimaryImage(vehicleID string, imageID int64) (bool, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`UPDATE vehicle_images SET is_primary = 0 WHERE vehicle_id = ?`, vehicleID); err != nil {
		return false, err
	}
	res, err := tx.Exec(`UPDATE vehicle_images SET is_primary = 1 WHERE id = ? AND vehicle_id = ?`, imageID, vehicleID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return false, nil // nothing matched, rollback discards the unset
	}
	return true, tx.Commit()
}

// BulkUpsert seeds a batch and reports how many records were written.
// Records without an id are skipped.
func (r *VehicleRepo) BulkUpsert(vehicles []domain.Vehicle) (int, error) {
	count := 0
	for _, v := range vehicles {
		if v.ID == "" {
			continue
		}
		if err := r.Upsert(v); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}
