package repos

import (
	"github.com/jmoiron/sqlx"

	"velofleet/internal/domain"
)

type MaintenanceRepo struct{ db *sqlx.DB }

func NewMaintenanceRepo(db *sqlx.DB) *MaintenanceRepo { return &MaintenanceRepo{db: db} }

const maintenanceCols = `
  id, vehicle_id, maintenance_type, description, cost,
  performed_by, performed_at, next_service_date, notes, created_at`

func (r *MaintenanceRepo) ListByVehicle(vehicleID string) ([]domain.VehicleMaintenance, error) {
	var out []domain.VehicleMaintenance
	err := r.db.Select(&out, `
	  SELECT `+maintenanceCols+` FROM vehicle_maintenance
	  WHERE vehicle_id = ?
	  ORDER BY datetime(performed_at) DESC`, vehicleID)
	return out, err
}

func (r *MaintenanceRepo) Insert(m domain.VehicleMaintenance) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO vehicle_maintenance(vehicle_id, maintenance_type, description, cost,
	    performed_by, performed_at, next_service_date, notes)
	  VALUES(?,?,?,?,?,?,?,?)`,
		m.VehicleID, m.MaintenanceType, m.Description, m.Cost,
		m.PerformedBy, m.PerformedAt, m.NextServiceDate, m.Notes)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *MaintenanceRepo) Delete(id int64) (bool, error) {
	res, err := r.db.Exec(`DELETE FROM vehicle_maintenance WHERE id = ?`, id)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Upcoming lists entries due inside the rolling window, soonest first.
func (r *MaintenanceRepo) Upcoming(daysAhead int) ([]domain.VehicleMaintenance, error) {
	var out []domain.VehicleMaintenance
	err := r.db.Select(&out, `
	  SELECT `+maintenanceCols+` FROM vehicle_maintenance
	  WHERE next_service_date != ''
	    AND datetime(next_service_date) >= datetime('now')
	    AND datetime(next_service_date) <= datetime('now', '+' || ? || ' days')
	  ORDER BY datetime(next_service_date) ASC`, daysAhead)
	return out, err
}
