package repos

import (
	"github.com/jmoiron/sqlx"

	"velofleet/internal/domain"
)

// StatsRepo issues the dashboard counting queries. Nothing here is cached;
// every call hits the store.
type StatsRepo struct{ db *sqlx.DB }

func NewStatsRepo(db *sqlx.DB) *StatsRepo { return &StatsRepo{db: db} }

func (r *StatsRepo) count(query string, args ...any) (int, error) {
	var n int
	err := r.db.Get(&n, query, args...)
	return n, err
}

// PublicCounts gathers only the counters the unauthenticated endpoint
// exposes.
func (r *StatsRepo) PublicCounts() (domain.PublicStats, error) {
	var s domain.PublicStats
	var err error

	if s.TotalVehicles, err = r.count(`SELECT COUNT(*) FROM vehicles`); err != nil {
		return s, err
	}
	if s.TotalOffers, err = r.count(`SELECT COUNT(*) FROM offers`); err != nil {
		return s, err
	}
	if s.TotalLeads, err = r.count(`SELECT COUNT(*) FROM leads`); err != nil {
		return s, err
	}
	if s.NewLeads, err = r.count(`SELECT COUNT(*) FROM leads WHERE status = 'new'`); err != nil {
		return s, err
	}
	return s, nil
}

// Counts gathers the full dashboard read model. The counts are independent
// statements, so the snapshot is only as consistent as the store is between
// them.
func (r *StatsRepo) Counts(maintenanceWindowDays int) (domain.Stats, error) {
	var s domain.Stats
	var err error

	if s.TotalVehicles, err = r.count(`SELECT COUNT(*) FROM vehicles`); err != nil {
		return s, err
	}
	if s.AvailableVehicles, err = r.count(`SELECT COUNT(*) FROM vehicles WHERE is_available = 1`); err != nil {
		return s, err
	}
	if s.FeaturedVehicles, err = r.count(`SELECT COUNT(*) FROM vehicles WHERE is_featured = 1`); err != nil {
		return s, err
	}
	if s.TotalOffers, err = r.count(`SELECT COUNT(*) FROM offers`); err != nil {
		return s, err
	}
	if s.ActiveOffers, err = r.count(`SELECT COUNT(*) FROM offers WHERE is_active = 1`); err != nil {
		return s, err
	}
	if s.TotalRedemptions, err = r.count(`SELECT COUNT(*) FROM offer_redemptions`); err != nil {
		return s, err
	}
	if s.TotalLeads, err = r.count(`SELECT COUNT(*) FROM leads`); err != nil {
		return s, err
	}
	if s.NewLeads, err = r.count(`SELECT COUNT(*) FROM leads WHERE status = 'new'`); err != nil {
		return s, err
	}
	if s.HighPriorityLeads, err = r.count(`SELECT COUNT(*) FROM leads WHERE priority IN ('high','urgent')`); err != nil {
		return s, err
	}
	if s.ConvertedLeads, err = r.count(`SELECT COUNT(*) FROM leads WHERE status = 'converted'`); err != nil {
		return s, err
	}
	if s.MaintenanceDue, err = r.count(`
	  SELECT COUNT(*) FROM vehicle_maintenance
	  WHERE next_service_date != ''
	    AND datetime(next_service_date) >= datetime('now')
	    AND datetime(next_service_date) <= datetime('now', '+' || ? || ' days')`,
		maintenanceWindowDays); err != nil {
		return s, err
	}
	return s, nil
}
