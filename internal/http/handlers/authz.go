package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"velofleet/internal/domain"
	applog "velofleet/internal/log"
	"velofleet/internal/services"
)

func bearerToken(c *fiber.Ctx) string {
	h := c.Get("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return parts[1]
}

// RequireAdmin gates the back-office routes behind a valid, unexpired
// session token bound to a live account.
func RequireAdmin(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tok := bearerToken(c)
		if tok == "" {
			return jsonFail(c, fiber.StatusUnauthorized, "missing bearer token")
		}
		a, err := auth.CurrentAdmin(tok)
		if err != nil {
			applog.Security(c, "access.denied.admin", map[string]any{"reason": err.Error()})
			return jsonFail(c, fiber.StatusUnauthorized, "invalid or expired session")
		}
		c.Locals("admin", a)
		c.Locals("admin_id", a.ID)
		return c.Next()
	}
}

// RequireSuperAdmin additionally restricts account management.
func RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, ok := c.Locals("admin").(*domain.Admin)
		if !ok || a.Role != domain.RoleSuperAdmin {
			applog.Security(c, "access.denied.superadmin", nil)
			return jsonFail(c, fiber.StatusForbidden, "access denied")
		}
		return c.Next()
	}
}

func currentAdmin(c *fiber.Ctx) *domain.Admin {
	a, _ := c.Locals("admin").(*domain.Admin)
	return a
}
