package services_test

import (
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"velofleet/internal/domain"
	"velofleet/internal/repos"
	"velofleet/internal/services"
)

func memdb(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func fleetSvc(t *testing.T) (*services.FleetService, *sqlx.DB) {
	db := memdb(t)
	return services.NewFleetService(repos.NewVehicleRepo(db)), db
}

func offerSvc(t *testing.T) (*services.OfferService, *sqlx.DB) {
	db := memdb(t)
	return services.NewOfferService(repos.NewOfferRepo(db)), db
}

func leadSvc(t *testing.T) (*services.LeadService, *sqlx.DB) {
	db := memdb(t)
	return services.NewLeadService(repos.NewLeadRepo(db)), db
}

func testVehicle(id string) domain.Vehicle {
	return domain.Vehicle{
		ID:           id,
		Brand:        "Lamborghini",
		Model:        "Huracan EVO",
		Name:         "Lamborghini Huracan EVO",
		Year:         2023,
		PricePerDay:  3500,
		PrimaryImage: "https://cdn.example.com/huracan.jpg",
		Category:     "supercar",
		IsAvailable:  true,
	}
}

func testOffer(id, code string) domain.Offer {
	return domain.Offer{
		ID:        id,
		Title:     "Weekend Special",
		OfferCode: code,
		AppliesTo: domain.AppliesAll,
		IsActive:  true,
	}
}

func testLead(name string) domain.Lead {
	return domain.Lead{
		Name:    name,
		Email:   "guest@example.com",
		Phone:   "+60123456789",
		Message: "Interested in a weekend rental.",
	}
}

func rfc3339In(d time.Duration) string {
	return time.Now().UTC().Add(d).Format(time.RFC3339)
}
