package validate

import "testing"

func TestEmail(t *testing.T) {
	good := []string{"a@b.co", "amira@veloluxury.my", "x.y+z@sub.domain.org"}
	bad := []string{"", "plain", "a@b", "a b@c.d", "@x.y", "a@.y"}
	for _, s := range good {
		if _, ok := Email(s); !ok {
			t.Errorf("Email(%q) rejected", s)
		}
	}
	for _, s := range bad {
		if _, ok := Email(s); ok {
			t.Errorf("Email(%q) accepted", s)
		}
	}
}

func TestPhone(t *testing.T) {
	good := []string{"+60123456789", "0123456789", "(03) 1234 5678", "+971 50 1234567"}
	bad := []string{"", "call me", "12345678901234567890123", "++60"}
	for _, s := range good {
		if _, ok := Phone(s); !ok {
			t.Errorf("Phone(%q) rejected", s)
		}
	}
	for _, s := range bad {
		if _, ok := Phone(s); ok {
			t.Errorf("Phone(%q) accepted", s)
		}
	}
}

func TestOfferCodeNormalizes(t *testing.T) {
	code, ok := OfferCode("  velo20 ")
	if !ok || code != "VELO20" {
		t.Fatalf("got %q ok=%v", code, ok)
	}
	if _, ok := OfferCode("x"); ok {
		t.Error("single-char code accepted")
	}
	if _, ok := OfferCode("has space"); ok {
		t.Error("code with space accepted")
	}
}

func TestMessageWindow(t *testing.T) {
	if _, ok := Message(""); !ok {
		t.Error("empty message should be allowed")
	}
	if _, ok := Message("too short"); ok {
		t.Error("9-char message accepted")
	}
	if _, ok := Message("exactly ten"); !ok {
		t.Error("11-char message rejected")
	}
}

func TestEnumValidators(t *testing.T) {
	if _, ok := LeadStatus("contacted"); !ok {
		t.Error("contacted rejected")
	}
	if _, ok := LeadStatus("stale"); ok {
		t.Error("stale accepted")
	}
	if _, ok := LeadPriority("urgent"); !ok {
		t.Error("urgent rejected")
	}
	if _, ok := MaintenanceType("repair"); !ok {
		t.Error("repair rejected")
	}
	if _, ok := AdminRole("root"); ok {
		t.Error("root accepted")
	}
}

func TestDaysClamp(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"", 30, 30},
		{"abc", 7, 7},
		{"0", 7, 7},
		{"-3", 7, 7},
		{"14", 30, 14},
		{"9999", 30, 365},
	}
	for _, tc := range cases {
		if got := Days(tc.in, tc.def); got != tc.want {
			t.Errorf("Days(%q, %d) = %d, want %d", tc.in, tc.def, got, tc.want)
		}
	}
}

func TestPasswordWindow(t *testing.T) {
	if Password("short") {
		t.Error("5-char password accepted")
	}
	if !Password("longenough") {
		t.Error("10-char password rejected")
	}
	if Password(string(make([]byte, 73))) {
		t.Error("73-byte password accepted")
	}
}
