package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"velofleet/internal/config"
	"velofleet/internal/http/handlers"
	applog "velofleet/internal/log"
	"velofleet/internal/repos"
	"velofleet/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			mw := io.MultiWriter(os.Stdout, f)
			log.SetOutput(mw)
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	adminRepo := repos.NewAdminRepo(db)
	authSvc := services.NewAuthService(adminRepo, cfg.JWTSecret, cfg.TokenTTL)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"success": false, "error": "internal server error",
			})
		},
	})
	// Global body size guard
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	// The public surface carries nothing the site doesn't already expose.
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Content-Type, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, authSvc)

	// ---------- Public API ----------
	app.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })

	app.Get("/fleet", deps.FleetHandler.List)
	app.Get("/fleet/:id", deps.FleetHandler.Get)

	app.Get("/offers", deps.OfferHandler.List)
	app.Get("/offers/code/:code", deps.OfferHandler.GetByCode)
	app.Post("/offers/code/:code/redeem", deps.OfferHandler.Redeem)
	app.Get("/offers/:id", deps.OfferHandler.Get)

	// Form submissions are throttled harder than reads.
	leadLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|leads"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.leads.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "error": "rate limit exceeded, retry soon",
			})
		},
	})
	app.Post("/leads", leadLimiter, deps.LeadHandler.Create)

	app.Get("/stats", deps.StatsHandler.Public)

	// ---------- Admin API ----------
	app.Post("/admin/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false, "error": "too many attempts, try again later",
			})
		},
	}), deps.AuthHandler.Login)

	admin := app.Group("/admin", handlers.RequireAdmin(authSvc))
	admin.Get("/me", deps.AuthHandler.Me)

	admin.Post("/fleet", deps.FleetHandler.Save)
	admin.Post("/fleet/bulk", deps.FleetHandler.BulkSave)
	admin.Delete("/fleet/:id", deps.FleetHandler.Delete)
	admin.Post("/fleet/:id/featured", deps.FleetHandler.ToggleFeatured)
	admin.Post("/fleet/:id/availability", deps.FleetHandler.ToggleAvailability)
	admin.Get("/fleet/:id/images", deps.FleetHandler.ListImages)
	admin.Post("/fleet/:id/images", deps.FleetHandler.AddImage)
	admin.Post("/fleet/:id/images/:imageID/primary", deps.FleetHandler.SetPrimaryImage)
	admin.Delete("/images/:imageID", deps.FleetHandler.DeleteImage)
	admin.Get("/fleet/:id/maintenance", deps.MaintenanceHandler.ListByVehicle)
	admin.Post("/fleet/:id/maintenance", deps.MaintenanceHandler.Add)
	admin.Delete("/maintenance/:id", deps.MaintenanceHandler.Delete)
	admin.Get("/maintenance/upcoming", deps.MaintenanceHandler.Upcoming)

	admin.Post("/offers", deps.OfferHandler.Save)
	admin.Post("/offers/bulk", deps.OfferHandler.BulkSave)
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
	admin.Get("/leads/:id/reminders", deps.LeadHandler.Reminders)
	admin.Post("/leads/:id/reminders", deps.LeadHandler.AddReminder)
	admin.Post("/reminders/:id/complete", deps.LeadHandler.CompleteReminder)
	admin.Get("/reminders/upcoming", deps.LeadHandler.UpcomingReminders)

	admin.Get("/stats", deps.StatsHandler.Dashboard)

	accounts := admin.Group("/admins", handlers.RequireSuperAdmin())
	accounts.Get("/", deps.AdminHandler.List)
	accounts.Post("/", deps.AdminHandler.Create)
	accounts.Post("/:id/active", deps.AdminHandler.ToggleActive)

	// 404 fallthrough keeps the envelope shape.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false, "error": "not found",
		})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
