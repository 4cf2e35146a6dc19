package validate

import (
	"regexp"
	"strconv"
	"strings"
)

// Bounds carried over from the public form contracts.
const (
	MinNameLen    = 2
	MaxNameLen    = 100
	MinMessageLen = 10
	MaxMessageLen = 1000
)

var (
	reEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// International formats with optional country code, separators and
	// parentheses.
	rePhone = regexp.MustCompile(`^[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,9}$`)
	reID    = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reCode  = regexp.MustCompile(`^[A-Z0-9_-]{2,32}$`)

	leadTypes      = map[string]bool{"contact": true, "booking": true, "quote": true, "general": true}
	leadStatuses   = map[string]bool{"new": true, "contacted": true, "qualified": true, "converted": true, "closed": true, "lost": true}
	leadPriorities = map[string]bool{"low": true, "normal": true, "high": true, "urgent": true}
	noteTypes      = map[string]bool{"comment": true, "call": true, "email": true, "meeting": true, "whatsapp": true}
	maintTypes     = map[string]bool{"service": true, "repair": true, "inspection": true, "cleaning": true}
	adminRoles     = map[string]bool{"super_admin": true, "admin": true, "manager": true, "staff": true}
)

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 254 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

func Phone(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 20 {
		return "", false
	}
	return s, rePhone.MatchString(s)
}

func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) < MinNameLen || len(s) > MaxNameLen {
		return "", false
	}
	return s, true
}

// Message validates an optional free-text body; empty is allowed, anything
// present must respect the length window.
func Message(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", true
	}
	if len(s) < MinMessageLen || len(s) > MaxMessageLen {
		return s, false
	}
	return s, true
}

// ID validates a resource identifier (vehicle/offer/lead ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

// OfferCode normalizes and validates a redemption code.
func OfferCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	return s, reCode.MatchString(s)
}

func LeadType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, leadTypes[s]
}

func LeadStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, leadStatuses[s]
}

func LeadPriority(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, leadPriorities[s]
}

func NoteType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, noteTypes[s]
}

func MaintenanceType(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, maintTypes[s]
}

func AdminRole(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, adminRoles[s]
}

// Days parses a rolling-window size with a default, clamped to a year.
func Days(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return def
	}
	if n > 365 {
		return 365
	}
	return n
}

// Password enforces a length window for admin credentials (72 is the
// bcrypt input cap).
func Password(s string) bool {
	return len(s) >= 8 && len(s) <= 72
}
