package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "velofleet/internal/log"
	"velofleet/internal/services"
)

type StatsHandler struct {
	Stats *services.StatsService
}

// GET /stats — public counters.
func (h *StatsHandler) Public(c *fiber.Ctx) error {
	st, err := h.Stats.Public()
	if err != nil {
		applog.Error(c, "stats.public.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}
	return jsonOK(c, st)
}

// GET /admin/stats — full dashboard read model.
func (h *StatsHandler) Dashboard(c *fiber.Ctx) error {
	st, err := h.Stats.Dashboard()
	if err != nil {
		applog.Error(c, "stats.dashboard.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch stats")
	}
	return jsonOK(c, st)
}
