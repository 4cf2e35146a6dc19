package handlers

import (
	"github.com/jmoiron/sqlx"

	"velofleet/internal/repos"
	"velofleet/internal/services"
)

type Deps struct {
	AuthHandler        *AuthHandler
	FleetHandler       *FleetHandler
	OfferHandler       *OfferHandler
	LeadHandler        *LeadHandler
	MaintenanceHandler *MaintenanceHandler
	StatsHandler       *StatsHandler
	AdminHandler       *AdminHandler
}

func NewDeps(db *sqlx.DB, auth *services.AuthService) *Deps {
	vehicleRepo := repos.NewVehicleRepo(db)
	offerRepo := repos.NewOfferRepo(db)
	leadRepo := repos.NewLeadRepo(db)
	maintRepo := repos.NewMaintenanceRepo(db)
	statsRepo := repos.NewStatsRepo(db)

	fleetSvc := services.NewFleetService(vehicleRepo)
	offerSvc := services.NewOfferService(offerRepo)
	leadSvc := services.NewLeadService(leadRepo)
	statsSvc := services.NewStatsService(statsRepo)

	return &Deps{
		AuthHandler:        &AuthHandler{Auth: auth},
		FleetHandler:       &FleetHandler{Fleet: fleetSvc},
		OfferHandler:       &OfferHandler{Offers: offerSvc},
		LeadHandler:        &LeadHandler{Leads: leadSvc},
		MaintenanceHandler: &MaintenanceHandler{Maintenance: maintRepo},
		StatsHandler:       &StatsHandler{Stats: statsSvc},
		AdminHandler:       &AdminHandler{Admins: auth.Admins, Auth: auth},
	}
}
