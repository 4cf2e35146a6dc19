package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"velofleet/internal/domain"
	"velofleet/internal/repos"
	"velofleet/internal/services"
)

func TestConversionRate(t *testing.T) {
	cases := []struct {
		converted, total int
		want             float64
	}{
		{0, 0, 0},
		{0, 10, 0},
		{1, 4, 25},
		{1, 3, 33.3},
		{2, 3, 66.7},
		{3, 3, 100},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, services.ConversionRate(tc.converted, tc.total),
			"%d of %d", tc.converted, tc.total)
	}
}

func TestDashboardCounts(t *testing.T) {
	db := memdb(t)
	fleet := services.NewFleetService(repos.NewVehicleRepo(db))
	offers := services.NewOfferService(repos.NewOfferRepo(db))
	leads := services.NewLeadService(repos.NewLeadRepo(db))
	maint := repos.NewMaintenanceRepo(db)
	stats := services.NewStatsService(repos.NewStatsRepo(db))

	v1 := testVehicle("huracan-evo")
	v1.IsFeatured = true
	_, err := fleet.Save(v1)
	require.NoError(t, err)
	v2 := testVehicle("urus")
	v2.IsAvailable = false
	_, err = fleet.Save(v2)
	require.NoError(t, err)

	_, err = offers.Save(testOffer("o-1", "CODE1"))
	require.NoError(t, err)
	off2 := testOffer("o-2", "CODE2")
	off2.IsActive = false
	_, err = offers.Save(off2)
	require.NoError(t, err)
	_, err = offers.Redeem("CODE1", domain.OfferRedemption{CustomerName: "Amira"})
	require.NoError(t, err)

	l1, err := leads.Create(testLead("Amira"))
	require.NoError(t, err)
	_, err = leads.Create(testLead("Hafiz"))
	require.NoError(t, err)
	l3, err := leads.Create(testLead("Mei"))
	require.NoError(t, err)
	_, err = leads.UpdateStatus(l1.ID, domain.LeadStatusConverted)
	require.NoError(t, err)
	_, err = leads.SetPriority(l3.ID, domain.PriorityUrgent)
	require.NoError(t, err)

	// One entry due inside the 30-day window, one already past, one beyond.
	for _, due := range []string{rfc3339In(10 * 24 * time.Hour), rfc3339In(-24 * time.Hour), rfc3339In(60 * 24 * time.Hour)} {
		_, err = maint.Insert(domain.VehicleMaintenance{
			VehicleID:       "huracan-evo",
			MaintenanceType: domain.MaintenanceService,
			Description:     "Scheduled service",
			PerformedAt:     rfc3339In(-48 * time.Hour),
			NextServiceDate: due,
		})
		require.NoError(t, err)
	}

	st, err := stats.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 2, st.TotalVehicles)
	assert.Equal(t, 1, st.AvailableVehicles)
	assert.Equal(t, 1, st.FeaturedVehicles)
	assert.Equal(t, 2, st.TotalOffers)
	assert.Equal(t, 1, st.ActiveOffers)
	assert.Equal(t, 1, st.TotalRedemptions)
	assert.Equal(t, 3, st.TotalLeads)
	assert.Equal(t, 2, st.NewLeads)
	assert.Equal(t, 1, st.HighPriorityLeads)
	assert.Equal(t, 1, st.ConvertedLeads)
	assert.Equal(t, 33.3, st.ConversionRate)
	assert.Equal(t, 1, st.MaintenanceDue)

	// The public counters agree with the dashboard over the same store.
	pub, err := stats.Public()
	require.NoError(t, err)
	assert.Equal(t, domain.PublicStats{TotalVehicles: 2, TotalOffers: 2, TotalLeads: 3, NewLeads: 2}, pub)
}

func TestPublicStatsSubset(t *testing.T) {
	db := memdb(t)
	leads := services.NewLeadService(repos.NewLeadRepo(db))
	stats := services.NewStatsService(repos.NewStatsRepo(db))

	_, err := leads.Create(testLead("Amira"))
	require.NoError(t, err)

	st, err := stats.Public()
	require.NoError(t, err)
	assert.Equal(t, domain.PublicStats{TotalVehicles: 0, TotalOffers: 0, TotalLeads: 1, NewLeads: 1}, st)
}

func TestDashboardEmptyStore(t *testing.T) {
	db := memdb(t)
	stats := services.NewStatsService(repos.NewStatsRepo(db))

	st, err := stats.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 0, st.TotalLeads)
	assert.Equal(t, 0.0, st.ConversionRate, "zero leads must not divide by zero")
}
