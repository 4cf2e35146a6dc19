package handlers_test

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"golang.org/x/crypto/bcrypt"

	"velofleet/internal/http/handlers"
	"velofleet/internal/repos"
	"velofleet/internal/services"
)

// Seeded passwords must be stored hashed, never plaintext.
func TestSeededPasswordsAreHashed(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()

	var hashes []string
	if err := db.Select(&hashes, `SELECT password_hash FROM admins`); err != nil {
		t.Fatalf("select hashes: %v", err)
	}
	if len(hashes) == 0 {
		t.Fatal("no admins seeded")
	}
	for _, h := range hashes {
		if strings.Contains(h, seedPassword) {
			t.Fatal("hash contains plaintext password")
		}
		if !strings.HasPrefix(h, "$2") {
			t.Fatalf("unexpected hash format: %s", h)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(h), []byte(seedPassword)); err != nil {
			t.Fatalf("seed hash does not validate known password: %v", err)
		}
	}
}

func TestLoginSuccessAndFailure(t *testing.T) {
	app, _, _ := newTestApp(t)

	// wrong password -> 401 with envelope error
	resp, err := app.Test(jsonReq("POST", "/admin/login", fiber.Map{"email": seedEmail, "password": "wrongpass!"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad creds, got %d", resp.StatusCode)
	}
	env := envelope(t, resp)
	if env["success"] != false || env["error"] == "" {
		t.Fatalf("unexpected failure envelope: %v", env)
	}

	// unknown account gets the same message as a bad password
	resp, err = app.Test(jsonReq("POST", "/admin/login", fiber.Map{"email": "nobody@veloluxury.my", "password": "wrongpass!"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 for unknown account, got %d", resp.StatusCode)
	}

	// good credentials -> token plus admin without the hash
	resp, err = app.Test(jsonReq("POST", "/admin/login", fiber.Map{"email": seedEmail, "password": seedPassword}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on login, got %d", resp.StatusCode)
	}
	env = envelope(t, resp)
	data, _ := env["data"].(map[string]any)
	if tok, _ := data["token"].(string); tok == "" {
		t.Fatal("no token in login response")
	}
	adminObj, _ := data["admin"].(map[string]any)
	if _, leaked := adminObj["password_hash"]; leaked {
		t.Fatal("password hash leaked in login response")
	}
	if adminObj["email"] != seedEmail {
		t.Fatalf("unexpected admin in response: %v", adminObj)
	}
}

func TestLoginTokenGrantsAccess(t *testing.T) {
	app, _, _ := newTestApp(t)
	tok := loginAs(t, app, seedEmail, seedPassword)

	resp, err := app.Test(jsonReq("GET", "/admin/me", nil, tok))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 on /admin/me, got %d", resp.StatusCode)
	}
	env := envelope(t, resp)
	data, _ := env["data"].(map[string]any)
	if data["email"] != seedEmail {
		t.Fatalf("wrong identity on /admin/me: %v", data)
	}
}

// Login throttling: the production route carries a 5-per-10-minutes limiter.
func TestLoginThrottle(t *testing.T) {
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	authSvc := services.NewAuthService(repos.NewAdminRepo(db), "test-secret", time.Hour)
	authH := &handlers.AuthHandler{Auth: authSvc}

	app := fiber.New()
	app.Post("/admin/login", limiter.New(limiter.Config{Max: 2, Expiration: time.Minute}), authH.Login)

	for i := 0; i < 2; i++ {
		resp, err := app.Test(jsonReq("POST", "/admin/login", fiber.Map{"email": seedEmail, "password": "wrongpass!"}, ""))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, resp.StatusCode)
		}
	}
	resp, err := app.Test(jsonReq("POST", "/admin/login", fiber.Map{"email": seedEmail, "password": "wrongpass!"}, ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after throttle, got %d", resp.StatusCode)
	}
}
