package services

import (
	"math"

	"velofleet/internal/domain"
	"velofleet/internal/repos"
)

// Rolling window for "maintenance due" counters.
const maintenanceWindowDays = 30

type StatsService struct {
	Stats *repos.StatsRepo
}

func NewStatsService(stats *repos.StatsRepo) *StatsService {
	return &StatsService{Stats: stats}
}

// Dashboard recomputes the full read model on every call.
func (s *StatsService) Dashboard() (domain.Stats, error) {
	st, err := s.Stats.Counts(maintenanceWindowDays)
	if err != nil {
		return domain.Stats{}, err
	}
	st.ConversionRate = ConversionRate(st.ConvertedLeads, st.TotalLeads)
	return st, nil
}

// Public returns the reduced counter set for the unauthenticated endpoint.
func (s *StatsService) Public() (domain.PublicStats, error) {
	return s.Stats.PublicCounts()
}

// ConversionRate is converted/total as a percentage with one decimal.
// Zero total yields 0, never NaN.
func ConversionRate(converted, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(converted)/float64(total)*1000) / 10
}
