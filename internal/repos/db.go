package repos

import (
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// SQLite takes one writer at a time; a single pooled connection also
	// keeps the foreign_keys pragma and :memory: databases stable.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Ensure a super admin exists (idempotent; safe to run every start).
	if err := seedAdmins(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Fleet
CREATE TABLE IF NOT EXISTS vehicles(
  id TEXT PRIMARY KEY,
  brand TEXT NOT NULL,
  model TEXT NOT NULL,
  name TEXT NOT NULL,
  name_ar TEXT NOT NULL DEFAULT '',
  year INTEGER NOT NULL DEFAULT 0,
  price_per_day NUMERIC NOT NULL CHECK (price_per_day > 0),
  price_per_week NUMERIC,
  price_per_month NUMERIC,
  weekend_price NUMERIC,
  primary_image TEXT NOT NULL DEFAULT '',
  collection_id TEXT NOT NULL DEFAULT '',
  collection_name TEXT NOT NULL DEFAULT '',
  collection_name_ar TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  description_ar TEXT NOT NULL DEFAULT '',
  specs_json TEXT NOT NULL DEFAULT '{}',
  is_featured INTEGER NOT NULL DEFAULT 0,
  is_available INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_vehicles_category   ON vehicles(category);
CREATE INDEX IF NOT EXISTS idx_vehicles_collection ON vehicles(collection_id);
CREATE INDEX IF NOT EXISTS idx_vehicles_available  ON vehicles(is_available);
CREATE INDEX IF NOT EXISTS idx_vehicles_created_at ON vehicles(created_at);

CREATE TABLE IF NOT EXISTS vehicle_images(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  vehicle_id TEXT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
  image_url TEXT NOT NULL,
  display_order INTEGER NOT NULL DEFAULT 0,
  is_primary INTEGER NOT NULL DEFAULT 0,
  caption TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_vehicle_images_vehicle ON vehicle_images(vehicle_id);

CREATE TABLE IF NOT EXISTS vehicle_maintenance(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  vehicle_id TEXT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
  maintenance_type TEXT NOT NULL CHECK (maintenance_type IN ('service','repair','inspection','cleaning')),
  description TEXT NOT NULL,
  cost NUMERIC,
  performed_by TEXT NOT NULL DEFAULT '',
  performed_at TEXT NOT NULL,
  next_service_date TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_maintenance_vehicle ON vehicle_maintenance(vehicle_id);
CREATE INDEX IF NOT EXISTS idx_maintenance_next    ON vehicle_maintenance(next_service_date);

-- Offers
CREATE TABLE IF NOT EXISTS offers(
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  title_ar TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  description_ar TEXT NOT NULL DEFAULT '',
  discount_text TEXT NOT NULL DEFAULT '',
  discount_percent NUMERIC CHECK (discount_percent IS NULL OR (discount_percent >= 0 AND discount_percent <= 100)),
  discount_amount NUMERIC,
  offer_code TEXT NOT NULL DEFAULT '',
  valid_from TEXT NOT NULL DEFAULT '',
  valid_until TEXT NOT NULL DEFAULT '',
  applies_to TEXT NOT NULL DEFAULT 'all' CHECK (applies_to IN ('all','category','specific_vehicles')),
  applicable_categories_json TEXT NOT NULL DEFAULT '[]',
  applicable_vehicle_ids_json TEXT NOT NULL DEFAULT '[]',
  usage_limit INTEGER,
  usage_count INTEGER NOT NULL DEFAULT 0,
  image_url TEXT NOT NULL DEFAULT '',
  terms TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_offers_code ON offers(offer_code) WHERE offer_code != '';
CREATE INDEX IF NOT EXISTS idx_offers_active ON offers(is_active);

CREATE TABLE IF NOT EXISTS offer_redemptions(
  id TEXT PRIMARY KEY,
  offer_id TEXT NOT NULL REFERENCES offers(id) ON DELETE CASCADE,
  offer_code TEXT NOT NULL DEFAULT '',
  lead_id TEXT NOT NULL DEFAULT '',
  customer_name TEXT NOT NULL DEFAULT '',
  customer_email TEXT NOT NULL DEFAULT '',
  customer_phone TEXT NOT NULL DEFAULT '',
  redeemed_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_redemptions_offer ON offer_redemptions(offer_id);

-- Leads
CREATE TABLE IF NOT EXISTS leads(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL,
  phone TEXT NOT NULL,
  subject TEXT NOT NULL DEFAULT '',
  message TEXT NOT NULL DEFAULT '',
  type TEXT NOT NULL DEFAULT 'general' CHECK (type IN ('contact','booking','quote','general')),
  status TEXT NOT NULL DEFAULT 'new' CHECK (status IN ('new','contacted','qualified','converted','closed','lost')),
  priority TEXT NOT NULL DEFAULT 'normal' CHECK (priority IN ('low','normal','high','urgent')),
  assigned_to TEXT NOT NULL DEFAULT '',
  source TEXT NOT NULL DEFAULT '',
  language TEXT NOT NULL DEFAULT 'en',
  vehicle_id TEXT NOT NULL DEFAULT '',
  offer_code TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
  last_contacted_at TEXT NOT NULL DEFAULT '',
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_leads_status     ON leads(status);
CREATE INDEX IF NOT EXISTS idx_leads_priority   ON leads(priority);
CREATE INDEX IF NOT EXISTS idx_leads_created_at ON leads(created_at);

CREATE TABLE IF NOT EXISTS lead_notes(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  lead_id TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
  note TEXT NOT NULL,
  note_type TEXT NOT NULL DEFAULT 'comment' CHECK (note_type IN ('comment','call','email','meeting','whatsapp')),
  created_by TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_lead_notes_lead ON lead_notes(lead_id);

CREATE TABLE IF NOT EXISTS lead_reminders(
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  lead_id TEXT NOT NULL REFERENCES leads(id) ON DELETE CASCADE,
  reminder_date TEXT NOT NULL,
  reminder_note TEXT NOT NULL DEFAULT '',
  is_completed INTEGER NOT NULL DEFAULT 0,
  completed_at TEXT NOT NULL DEFAULT '',
  assigned_to TEXT NOT NULL DEFAULT '',
  created_by TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_lead_reminders_lead ON lead_reminders(lead_id);
CREATE INDEX IF NOT EXISTS idx_lead_reminders_date ON lead_reminders(reminder_date);

-- Back office
CREATE TABLE IF NOT EXISTS admins(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  full_name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'staff' CHECK (role IN ('super_admin','admin','manager','staff')),
  phone TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  last_login_at TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ','now')),
  updated_at TEXT NOT NULL DEFAULT ''
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_admins_email ON admins(LOWER(email));
`
	_, err := db.Exec(schema)
	return err
}

// seedAdmins ensures the bootstrap super admin exists. The default
// credentials are for local development; deployments override via env
// before first start.
func seedAdmins(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM admins`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] creating bootstrap super admin")
	h, err := bcrypt.GenerateFromPassword([]byte("ChangeMe!2024"), 12)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO admins(id,email,password_hash,full_name,role)
		VALUES(?,?,?,?,'super_admin')
		ON CONFLICT(email) DO NOTHING
	`, uuid.NewString(), "admin@veloluxury.my", string(h), "Administrator")
	return err
}

// nowUTC is the canonical timestamp format for every table.
func nowUTC() string {
	return time.Now().UTC().Format(time.RFC3339)
}
