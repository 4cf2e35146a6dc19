package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"velofleet/internal/http/handlers"
	"velofleet/internal/repos"
	"velofleet/internal/services"
)

// newTestApp assembles the real route table over an in-memory store. Global
// middlewares (request id, helmet, limiters) are left off; the tests that
// need one mount it per-route.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *services.AuthService) {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	authSvc := services.NewAuthService(repos.NewAdminRepo(db), "test-secret", time.Hour)
	deps := handlers.NewDeps(db, authSvc)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "error": "internal server error",
			})
		},
	})

	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	app.Get("/fleet", deps.FleetHandler.List)
	app.Get("/fleet/:id", deps.FleetHandler.Get)

	app.Get("/offers", deps.OfferHandler.List)
	app.Get("/offers/code/:code", deps.OfferHandler.GetByCode)
	app.Post("/offers/code/:code/redeem", deps.OfferHandler.Redeem)
	app.Get("/offers/:id", deps.OfferHandler.Get)

	app.Post("/leads", deps.LeadHandler.Create)
	app.Get("/stats", deps.StatsHandler.Public)

	app.Post("/admin/login", deps.AuthHandler.Login)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/me", deps.AuthHandler.Me)

	admin.Post("/fleet", deps.FleetHandler.Save)
	admin.Post("/fleet/bulk", deps.FleetHandler.BulkSave)
	admin.Delete("/fleet/:id", deps.FleetHandler.Delete)
	admin.Post("/fleet/:id/featured", deps.FleetHandler.ToggleFeatured)
	admin.Post("/fleet/:id/availability", deps.FleetHandler.ToggleAvailability)
	admin.Get("/fleet/:id/maintenance", deps.MaintenanceHandler.ListByVehicle)
	admin.Post("/fleet/:id/maintenance", deps.MaintenanceHandler.Add)
	admin.Delete("/maintenance/:id", deps.MaintenanceHandler.Delete)
	admin.Get("/maintenance/upcoming", deps.MaintenanceHandler.Upcoming)

	admin.Post("/offers", deps.OfferHandler.Save)
	admin.Delete("/offers/:id", deps.OfferHandler.Delete)
	admin.Post("/offers/:id/active", deps.OfferHandler.ToggleActive)
	admin.Get("/offers/:id/redemptions", deps.OfferHandler.Redemptions)

	admin.Get("/leads/export", deps.LeadHandler.ExportCSV)
	admin.Get("/leads", deps.LeadHandler.List)
	admin.Get("/leads/:id", deps.LeadHandler.Get)
	admin.Put("/leads/:id/status", deps.LeadHandler.UpdateStatus)
	admin.Put("/leads/:id/assign", deps.LeadHandler.Assign)
	admin.Put("/leads/:id/priority", deps.LeadHandler.SetPriority)
	admin.Delete("/leads/:id", deps.LeadHandler.Delete)
	admin.Get("/leads/:id/notes", deps.LeadHandler.Notes)
	admin.Post("/leads/:id/notes", deps.LeadHandler.AddNote)

	admin.Get("/stats", deps.StatsHandler.Dashboard)

	accounts := admin.Group("/admins", handlers.RequireSuperAdmin())
	accounts.Get("/", deps.AdminHandler.List)
	accounts.Post("/", deps.AdminHandler.Create)
	accounts.Post("/:id/active", deps.AdminHandler.ToggleActive)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "error": "not found",
		})
	})

	return app, db, authSvc
}

// jsonReq builds a request with an optional JSON body and bearer token.
func jsonReq(method, path string, body any, token string) *http.Request {
	var rd io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

// envelope decodes the standard response shape.
func envelope(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return out
}

// loginAs exchanges credentials for a session token through the real
// endpoint.
func loginAs(t *testing.T, app *fiber.App, email, password string) string {
	t.Helper()
	resp, err := app.Test(jsonReq("POST", "/admin/login", fiber.Map{"email": email, "password": password}, ""))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login as %s: status %d", email, resp.StatusCode)
	}
	env := envelope(t, resp)
	data, _ := env["data"].(map[string]any)
	tok, _ := data["token"].(string)
	if tok == "" {
		t.Fatal("login response carries no token")
	}
	return tok
}

// seedCreds matches the bootstrap super admin inserted on first open.
const (
	seedEmail    = "admin@veloluxury.my"
	seedPassword = "ChangeMe!2024"
)
