package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"velofleet/internal/domain"
	applog "velofleet/internal/log"
	"velofleet/internal/services"
	"velofleet/internal/validate"
)

type FleetHandler struct {
	Fleet *services.FleetService
}

func parseVehicleFilters(c *fiber.Ctx) domain.VehicleFilters {
	f := domain.VehicleFilters{
		Category:   strings.TrimSpace(c.Query("category")),
		Collection: strings.TrimSpace(c.Query("collection")),
		Search:     strings.TrimSpace(c.Query("q")),
	}
	if v := c.Query("available"); v != "" {
		b := v == "true" || v == "1"
		f.Available = &b
	}
	if v := c.Query("featured"); v != "" {
		b := v == "true" || v == "1"
		f.Featured = &b
	}
	if v := c.Query("price_min"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.PriceMin = &n
		}
	}
	if v := c.Query("price_max"); v != "" {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			f.PriceMax = &n
		}
	}
	return f
}

// GET /fleet
func (h *FleetHandler) List(c *fiber.Ctx) error {
	vehicles, err := h.Fleet.List(parseVehicleFilters(c))
	if err != nil {
		applog.Error(c, "fleet.list.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch fleet")
	}
	if vehicles == nil {
		vehicles = []domain.Vehicle{}
	}
	return jsonOK(c, vehicles)
}

// GET /fleet/:id
func (h *FleetHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
	}
	v, err := h.Fleet.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
		}
		applog.Error(c, "fleet.get.fail", err, map[string]any{"vehicle_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch vehicle")
	}
	return jsonOK(c, v)
}

// POST /admin/fleet — upsert; the id must come with the record.
func (h *FleetHandler) Save(c *fiber.Ctx) error {
	var v domain.Vehicle
	if err := c.BodyParser(&v); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := validate.ID(v.ID); !ok {
		return jsonFail(c, fiber.StatusBadRequest, "vehicle ID is required")
	}
	if v.Brand == "" || v.Model == "" || v.Name == "" || v.PricePerDay <= 0 {
		return jsonFail(c, fiber.StatusBadRequest, "brand, model, name and a positive daily price are required")
	}
	saved, err := h.Fleet.Save(v)
	if err != nil {
		applog.Error(c, "fleet.save.fail", err, map[string]any{"vehicle_id": v.ID})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to save vehicle")
	}
	applog.Audit(c, "fleet.save", map[string]any{"vehicle_id": v.ID})
	return jsonOK(c, saved)
}

// DELETE /admin/fleet/:id
func (h *FleetHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
	}
	if err := h.Fleet.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
		}
		applog.Error(c, "fleet.delete.fail", err, map[string]any{"vehicle_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to delete vehicle")
	}
	applog.Audit(c, "fleet.delete", map[string]any{"vehicle_id": id})
	return jsonMsg(c, "vehicle deleted")
}

// POST /admin/fleet/bulk — seeding only, reports how many were written.
func (h *FleetHandler) BulkSave(c *fiber.Ctx) error {
	var vehicles []domain.Vehicle
	if err := c.BodyParser(&vehicles); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "expected an array of vehicles")
	}
	count, err := h.Fleet.BulkSave(vehicles)
	if err != nil {
		applog.Error(c, "fleet.bulk.fail", err, map[string]any{"written": count})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to bulk save vehicles")
	}
	applog.Audit(c, "fleet.bulk", map[string]any{"count": count})
	return jsonCount(c, strconv.Itoa(count)+" vehicles saved", count)
}

// POST /admin/fleet/:id/featured
func (h *FleetHandler) ToggleFeatured(c *fiber.Ctx) error {
	return h.toggle(c, "featured", h.Fleet.ToggleFeatured)
}

// POST /admin/fleet/:id/availability
func (h *FleetHandler) ToggleAvailability(c *fiber.Ctx) error {
	return h.toggle(c, "availability", h.Fleet.ToggleAvailability)
}

func (h *FleetHandler) toggle(c *fiber.Ctx, what string, fn func(string) (domain.Vehicle, error)) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
	}
	v, err := fn(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
		}
		applog.Error(c, "fleet.toggle."+what+".fail", err, map[string]any{"vehicle_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to update vehicle")
	}
	applog.Audit(c, "fleet.toggle."+what, map[string]any{"vehicle_id": id})
	return jsonOK(c, v)
}

// ---------- Images ----------

// GET /admin/fleet/:id/images
func (h *FleetHandler) ListImages(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
	}
	imgs, err := h.Fleet.ListImages(id)
	if err != nil {
		applog.Error(c, "fleet.images.list.fail", err, map[string]any{"vehicle_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch images")
	}
	if imgs == nil {
		imgs = []domain.VehicleImage{}
	}
	return jsonOK(c, imgs)
}

// POST /admin/fleet/:id/images
func (h *FleetHandler) AddImage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
	}
	var img domain.VehicleImage
	if err := c.BodyParser(&img); err != nil || img.ImageURL == "" {
		return jsonFail(c, fiber.StatusBadRequest, "image_url is required")
	}
	img.VehicleID = id
	saved, err := h.Fleet.AddImage(img)
	if err != nil {
		applog.Error(c, "fleet.images.add.fail", err, map[string]any{"vehicle_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to add image")
	}
	applog.Audit(c, "fleet.images.add", map[string]any{"vehicle_id": id, "image_id": saved.ID})
	return jsonOK(c, saved)
}

// POST /admin/fleet/:id/images/:imageID/primary
func (h *FleetHandler) SetPrimaryImage(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "vehicle not found")
	}
	imageID, err := strconv.ParseInt(c.Params("imageID"), 10, 64)
	if err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid image id")
	}
	if err := h.Fleet.SetPrimaryImage(id, imageID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "image not found")
		}
		applog.Error(c, "fleet.images.primary.fail", err, map[string]any{"vehicle_id": id, "image_id": imageID})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to set primary image")
	}
	applog.Audit(c, "fleet.images.primary", map[string]any{"vehicle_id": id, "image_id": imageID})
	return jsonMsg(c, "primary image updated")
}

// DELETE /admin/images/:imageID
func (h *FleetHandler) DeleteImage(c *fiber.Ctx) error {
	imageID, err := strconv.ParseInt(c.Params("imageID"), 10, 64)
	if err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid image id")
	}
	if err := h.Fleet.DeleteImage(imageID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "image not found")
		}
		applog.Error(c, "fleet.images.delete.fail", err, map[string]any{"image_id": imageID})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to delete image")
	}
	applog.Audit(c, "fleet.images.delete", map[string]any{"image_id": imageID})
	return jsonMsg(c, "image deleted")
}
