package domain

// Maintenance entry types.
const (
	MaintenanceService    = "service"
	MaintenanceRepair     = "repair"
	MaintenanceInspection = "inspection"
	MaintenanceCleaning   = "cleaning"
)

// VehicleMaintenance is a service-history entry. NextServiceDate feeds the
// rolling-window "upcoming maintenance" queries.
type VehicleMaintenance struct {
	ID              int64    `db:"id" json:"id"`
	VehicleID       string   `db:"vehicle_id" json:"vehicle_id"`
	MaintenanceType string   `db:"maintenance_type" json:"maintenance_type"`
	Description     string   `db:"description" json:"description"`
	Cost            *float64 `db:"cost" json:"cost,omitempty"`
	PerformedBy     string   `db:"performed_by" json:"performed_by,omitempty"`
	PerformedAt     string   `db:"performed_at" json:"performed_at"`
	NextServiceDate string   `db:"next_service_date" json:"next_service_date,omitempty"`
	Notes           string   `db:"notes" json:"notes,omitempty"`
	CreatedAt       string   `db:"created_at" json:"created_at,omitempty"`
}
