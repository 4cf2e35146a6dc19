package handlers

import (
	"github.com/gofiber/fiber/v2"

	"velofleet/internal/domain"
	applog "velofleet/internal/log"
	"velofleet/internal/repos"
	"velofleet/internal/services"
	"velofleet/internal/validate"
)

// AdminHandler manages back-office accounts; every route here sits behind
// RequireSuperAdmin.
type AdminHandler struct {
	Admins *repos.AdminRepo
	Auth   *services.AuthService
}

// GET /admin/admins
func (h *AdminHandler) List(c *fiber.Ctx) error {
	admins, err := h.Admins.List()
	if err != nil {
		applog.Error(c, "admins.list.fail", err, nil)
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch admins")
	}
	if admins == nil {
		admins = []domain.Admin{}
	}
	return jsonOK(c, admins)
}

type createAdminRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
}

// POST /admin/admins
func (h *AdminHandler) Create(c *fiber.Ctx) error {
	var req createAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return jsonFail(c, fiber.StatusBadRequest, "invalid request body")
	}
	email, ok := validate.Email(req.Email)
	if !ok {
		return jsonFail(c, fiber.StatusBadRequest, "invalid email address")
	}
	if !validate.Password(req.Password) {
		return jsonFail(c, fiber.StatusBadRequest, "password must be at least 8 characters")
	}
	role, ok := validate.AdminRole(req.Role)
	if !ok {
		return jsonFail(c, fiber.StatusBadRequest, "invalid role")
	}
	if req.FullName == "" {
		return jsonFail(c, fiber.StatusBadRequest, "full_name is required")
	}

	a, err := h.Auth.CreateAdmin(email, req.Password, req.FullName, role, req.Phone)
	if err != nil {
		applog.Error(c, "admins.create.fail", err, map[string]any{"email": email})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to create admin")
	}
	applog.Audit(c, "admins.create", map[string]any{"admin_id": a.ID, "role": role})
	return jsonOK(c, a)
}

// POST /admin/admins/:id/active
func (h *AdminHandler) ToggleActive(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return jsonFail(c, fiber.StatusNotFound, "admin not found")
	}
	if me := currentAdmin(c); me != nil && me.ID == id {
		return jsonFail(c, fiber.StatusBadRequest, "cannot deactivate your own account")
	}
	changed, err := h.Admins.ToggleActive(id)
	if err != nil {
		applog.Error(c, "admins.toggle.fail", err, map[string]any{"admin_id": id})
		return jsonFail(c, fiber.StatusInternalServerError, "failed to update admin")
	}
	if !changed {
		return jsonFail(c, fiber.StatusNotFound, "admin not found")
	}
	a, err := h.Admins.ByID(id)
	if err != nil {
		return jsonFail(c, fiber.StatusInternalServerError, "failed to fetch admin")
	}
	applog.Audit(c, "admins.toggle", map[string]any{"admin_id": id, "is_active": a.IsActive})
	return jsonOK(c, a)
}
