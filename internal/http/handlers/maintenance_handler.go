package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"velofleet/internal/domain"
	applog "velofleet/internal/log"
	"velofleet/internal/repos"
	"velofleet/internal/validate"
)

type MaintenanceHandler struct {
	Maintenance *repos.MaintenanceRepo
}

// GET /admin/fleet/:id/maintenance
func (h *MaintenanceHandler) ListByVehicle(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
	}
	entries, err := h.Maintenance.ListByVehicle(id)
	if err != nil {
		applog.Error(c, "maintenance.list.fail", err, map[string]any{"vehicle_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch maintenance log")
	}
	if entries == nil {
		entries = []domain.VehicleMaintenance{}
	}
	return jsonOK(c, entries)
}

// POST /admin/fleet/:id/maintenance
func (h *MaintenanceHandler) Add(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
	}
	var m domain.VehicleMaintenance
	if err := c.BodyParser(&m); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := validate.MaintenanceType(m.MaintenanceType); !ok {
		return jsonFail(c, fiber.StatusBadRequest, "invalid maintenance type")
	}
	if m.Description == "" || m.PerformedAt == "" {
		return jsonFail(c, fiber.StatusBadRequest, "description and performed_at are required")
	}
	m.VehicleID = id
	entryID, err := h.Maintenance.Insert(m)
	if err != nil {
		applog.Error(c, "maintenance.add.fail", err, map[string]any{"vehicle_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to add maintenance entry")
	}
	m.ID = entryID
	applog.Audit(c, "maintenance.add", map[string]any{"vehicle_id": id, "entry_id": entryID})
	return jsonOK(c, m)
}

// DELETE /admin/maintenance/:id
func (h *MaintenanceHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid maintenance id")
	}
	ok, err := h.Maintenance.Delete(id)
	if err != nil {
		applog.Error(c, "maintenance.delete.fail", err, map[string]any{"entry_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to delete maintenance entry")
	}
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "maintenance entry not found")
	}
	applog.Audit(c, "maintenance.delete", map[string]any{"entry_id": id})
	return jsonMsg(c, "maintenance entry deleted")
}

// GET /admin/maintenance/upcoming?days=N
func (h *MaintenanceHandler) Upcoming(c *fiber.Ctx) error {
	days := validate.Days(c.Query("days"), 30)
	entries, err := h.Maintenance.Upcoming(days)
	if err != nil {
		applog.Error(c, "maintenance.upcoming.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch upcoming maintenance")
	}
	if entries == nil {
		entries = []domain.VehicleMaintenance{}
	}
	return jsonOK(c, entries)
}
