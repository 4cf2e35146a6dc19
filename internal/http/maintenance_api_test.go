package handlers_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"velofleet/internal/domain"
	"velofleet/internal/repos"
	"velofleet/internal/services"
)

func seedVehicle(t *testing.T, db *sqlx.DB, id string) {
	t.Helper()
	svc := services.NewFleetService(repos.NewVehicleRepo(db))
	if _, err := svc.Save(domain.Vehicle{
		ID: id, Brand: "Lamborghini", Model: "Urus", Name: "Lamborghini Urus",
		Year: 2023, PricePerDay: 2500, Category: "suv", IsAvailable: true,
	}); err != nil {
		t.Fatalf("seed vehicle %s: %v", id, err)
	}
}

func TestMaintenanceLogFlow(t *testing.T) {
	app, db, _ := newTestApp(t)
	tok := loginAs(t, app, seedEmail, seedPassword)
	seedVehicle(t, db, "urus")

	// bad type -> 400
	resp, err := app.Test(jsonReq("POST", "/admin/fleet/urus/maintenance", fiber.Map{
		"maintenance_type": "tuneup", "description": "x", "performed_at": rfcIn(0),
	}, tok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("bad type: expected 400, got %d", resp.StatusCode)
	}

	// valid entry, due for service in 10 days
	resp, err = app.Test(jsonReq("POST", "/admin/fleet/urus/maintenance", fiber.Map{
		"maintenance_type":  "service",
		"description":       "Annual service",
		"performed_at":      rfcIn(-24 * time.Hour),
		"next_service_date": rfcIn(10 * 24 * time.Hour),
	}, tok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add entry: expected 200, got %d", resp.StatusCode)
	}
	env := envelope(t, resp)
	entry, _ := env["data"].(map[string]any)
	entryID, _ := entry["id"].(float64)
	if entryID == 0 {
		t.Fatal("no entry id assigned")
	}

	resp, err = app.Test(jsonReq("GET", "/admin/fleet/urus/maintenance", nil, tok))
	if err != nil {
		t.Fatal(err)
	}
	env = envelope(t, resp)
	if list, _ := env["data"].([]any); len(list) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(list))
	}

	// shows up in the default 30-day upcoming window
	resp, err = app.Test(jsonReq("GET", "/admin/maintenance/upcoming", nil, tok))
	if err != nil {
		t.Fatal(err)
	}
	env = envelope(t, resp)
	if list, _ := env["data"].([]any); len(list) != 1 {
		t.Fatalf("expected 1 upcoming entry, got %d", len(list))
	}

	// a 5-day window excludes it
	resp, err = app.Test(jsonReq("GET", "/admin/maintenance/upcoming?days=5", nil, tok))
	if err != nil {
		t.Fatal(err)
	}
	env = envelope(t, resp)
	if list, _ := env["data"].([]any); len(list) != 0 {
		t.Fatalf("expected empty 5-day window, got %d entries", len(list))
	}

	resp, err = app.Test(jsonReq("DELETE", fmt.Sprintf("/admin/maintenance/%d", int64(entryID)), nil, tok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete entry: expected 200, got %d", resp.StatusCode)
	}
	resp, err = app.Test(jsonReq("DELETE", fmt.Sprintf("/admin/maintenance/%d", int64(entryID)), nil, tok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("double delete: expected 404, got %d", resp.StatusCode)
	}
}
