package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	applog "velofleet/internal/log"
	"velofleet/internal/services"
	"velofleet/internal/validate"
)

type AuthHandler struct {
	Auth *services.AuthService
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /admin/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid request body")
	}
	email, ok := validate.Email(req.Email)
	if !ok || !validate.Password(req.Password) {
		applog.Security(c, "auth.login.fail", map[string]any{"email": req.Email, "reason": "bad_format"})
		return jsonFail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	admin, token, err := h.Auth.Login(email, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInactiveAdmin) {
			applog.Security(c, "auth.login.fail", map[string]any{"email": email, "reason": "inactive"})
			return jsonFail(c, fiber.StatusForbidden, "account is inactive")
		}
		applog.Security(c, "auth.login.fail", map[string]any{"email": email})
		return jsonFail(c, fiber.StatusUnauthorized, "invalid email or password")
	}

	applog.Audit(c, "auth.login.success", map[string]any{"email": email})
	return jsonOK(c, fiber.Map{"token": token, "admin": admin})
}

// GET /admin/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	return jsonOK(c, currentAdmin(c))
}
