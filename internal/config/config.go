package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port    string
	DBDSN   string
	LogFile string

	SiteURL string

	// JWT session signing.
	JWTSecret string
	TokenTTL  time.Duration

	// Contact details surfaced to the public site.
	ContactPhone   string
	WhatsAppNumber string
	ContactEmail   string

	// Analytics tag IDs; empty disables the integration (non-fatal).
	GTMID       string
	MetaPixelID string
}

func Load() Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:           getenv("PORT", "8080"),
		DBDSN:          getenv("DB_DSN", "velofleet.db"),
		LogFile:        getenv("LOG_FILE", "./velofleet.log"),
		SiteURL:        getenv("SITE_URL", "https://veloluxury.my"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		ContactPhone:   getenv("CONTACT_PHONE", "+60123456789"),
		WhatsAppNumber: getenv("WHATSAPP_NUMBER", "60123456789"),
		ContactEmail:   getenv("CONTACT_EMAIL", "info@veloluxury.my"),
		GTMID:          os.Getenv("GTM_ID"),
		MetaPixelID:    os.Getenv("META_PIXEL_ID"),
	}

	ttl := 24 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			ttl = d
		}
	}
	cfg.TokenTTL = ttl

	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "dev-only-secret-change-me"
		log.Printf("[warn] JWT_SECRET not set, using insecure development default")
	}
	if cfg.GTMID == "" {
		log.Printf("[warn] GTM_ID not set, tag manager integration disabled")
	}
	if cfg.MetaPixelID == "" {
		log.Printf("[warn] META_PIXEL_ID not set, pixel integration disabled")
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s SITE_URL=%s TOKEN_TTL=%s",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.SiteURL, cfg.TokenTTL)
	return cfg
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
