package handlers

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"velofleet/internal/domain"
	applog "velofleet/internal/log"
	"velofleet/internal/services"
	"velofleet/internal/validate"
)

type OfferHandler struct {
	Offers *services.OfferService
}

// GET /offers
func (h *OfferHandler) List(c *fiber.Ctx) error {
	activeOnly := c.Query("active") == "true" || c.Query("active") == "1"
	offers, err := h.Offers.List(activeOnly)
	if err != nil {
		applog.Error(c, "offers.list.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch offers")
	}
	if offers == nil {
		offers = []domain.Offer{}
	}
	return jsonOK(c, offers)
}

// GET /offers/:id
func (h *OfferHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "offer not found")
	}
	o, err := h.Offers.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "offer not found")
		}
		applog.Error(c, "offers.get.fail", err, map[string]any{"offer_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch offer")
	}
	return jsonOK(c, o)
}

// offerFailure maps redemption guard errors to envelope responses.
func offerFailure(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrOfferInactive):
		return jsonFail(c, fiber.StatusNotFound, "offer not found")
	case errors.Is(err, services.ErrOfferExpired):
		return jsonFail(c, fiber.StatusConflict, "offer has expired")
	case errors.Is(err, services.ErrOfferLimitReached):
		return jsonFail(c, fiber.StatusConflict, "offer usage limit reached")
	default:
		applog.Error(c, "offers.code.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch offer")
	}
}

// GET /offers/code/:code — redeemability check, read only.
func (h *OfferHandler) GetByCode(c *fiber.Ctx) error {
	code, ok := validate.OfferCode(c.Params("code"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "offer not found")
	}
	o, err := h.Offers.GetByCode(code)
	if err != nil {
		return offerFailure(c, err)
	}
	return jsonOK(c, o)
}

type redeemRequest struct {
	LeadID        string `json:"lead_id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	CustomerPhone string `json:"customer_phone"`
}

// POST /offers/code/:code/redeem — atomic conditional increment plus
// redemption record.
func (h *OfferHandler) Redeem(c *fiber.Ctx) error {
	code, ok := validate.OfferCode(c.Params("code"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "offer not found")
	}
	var req redeemRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid request body")
	}
	o, err := h.Offers.Redeem(code, domain.OfferRedemption{
		LeadID:        req.LeadID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
	})
	if err != nil {
		return offerFailure(c, err)
	}
	applog.Audit(c, "offers.redeem", map[string]any{"offer_id": o.ID, "code": code})
	return jsonOK(c, o)
}

// POST /admin/offers
func (h *OfferHandler) Save(c *fiber.Ctx) error {
	var o domain.Offer
	if err := c.BodyParser(&o); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid request body")
	}
	if _, ok := validate.ID(o.ID); !ok {
		return jsonFail(c, fiber.StatusBadRequest, "offer ID is required")
	}
	if o.Title == "" {
		return jsonFail(c, fiber.StatusBadRequest, "title is required")
	}
	if o.OfferCode != "" {
		code, ok := validate.OfferCode(o.OfferCode)
		if !ok {
			return jsonFail(c, fiber.StatusBadRequest, "offer_code must be 2-32 letters, digits, - or _")
		}
		o.OfferCode = code
	}
	if o.DiscountPercent != nil && (*o.DiscountPercent < 0 || *o.DiscountPercent > 100) {
		return jsonFail(c, fiber.StatusBadRequest, "discount_percent must be between 0 and 100")
	}
	saved, err := h.Offers.Save(o)
	if err != nil {
		applog.Error(c, "offers.save.fail", err, map[string]any{"offer_id": o.ID})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to save offer")
	}
	applog.Audit(c, "offers.save", map[string]any{"offer_id": o.ID})
	return jsonOK(c, saved)
}

// DELETE /admin/offers/:id
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "offer not found")
	}
	if err := h.Offers.Delete(id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "offer not found")
		}
		applog.Error(c, "offers.delete.fail", err, map[string]any{"offer_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to delete offer")
	}
	applog.Audit(c, "offers.delete", map[string]any{"offer_id": id})
	return jsonMsg(c, "offer deleted")
}

// POST /admin/offers/bulk
func (h *OfferHandler) BulkSave(c *fiber.Ctx) error {
	var offers []domain.Offer
	if err := c.BodyParser(&offers); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "expected an array of offers")
	}
	count, err := h.Offers.BulkSave(offers)
	if err != nil {
		applog.Error(c, "offers.bulk.fail", err, map[string]any{"written": count})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to bulk save offers")
	}
	applog.Audit(c, "offers.bulk", map[string]any{"count": count})
	return jsonCount(c, strconv.Itoa(count)+" offers saved", count)
}

// POST /admin/offers/:id/active
func (h *OfferHandler) ToggleActive(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "offer not found")
	}
	o, err := h.Offers.ToggleActive(id)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return jsonFail(c, fiber.StatusNotFound, "offer not found")
		}
		applog.Error(c, "offers.toggle.fail", err, map[string]any{"offer_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to update offer")
	}
	applog.Audit(c, "offers.toggle", map[string]any{"offer_id": id, "is_active": o.IsActive})
	return jsonOK(c, o)
}

// GET /admin/offers/:id/redemptions
func (h *OfferHandler) Redemptions(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "offer not found")
	}
	reds, err := h.Offers.ListRedemptions(id)
	if err != nil {
		applog.Error(c, "offers.redemptions.fail", err, map[string]any{"offer_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch redemptions")
	}
	if reds == nil {
		reds = []domain.OfferRedemption{}
	}
	return jsonOK(c, reds)
}
