package format

import (
	"testing"
	"time"
)

func TestPhone(t *testing.T) {
	cases := []struct {
		in    string
		valid bool
		norm  string
	}{
		{"+2348031234567", true, "+2348031234567"},
		{"2348031234567", true, "+2348031234567"},
		{"08031234567", true, "+2348031234567"},
		{" 0803 123 4567 ", true, "+2348031234567"},
		{"0803-123-4567", true, "+2348031234567"},
		{"+234 (803) 123 4567", true, "+2348031234567"},
		{"8031234567", false, ""},
		{"+44803123456", false, ""},
		{"0803123456", false, ""},
		{"080312345678", false, ""},
		{"0803abc4567", false, ""},
		{"", false, ""},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := ValidPhone(tc.in); got != tc.valid {
				t.Fatalf("ValidPhone(%q)=%v", tc.in, got)
			}
			got, err := NormalizePhone(tc.in)
			if tc.valid && (err != nil || got != tc.norm) {
				t.Fatalf("NormalizePhone(%q)=%q,%v", tc.in, got, err)
			}
			if !tc.valid && err != ErrInvalidPhone {
				t.Fatalf("expected ErrInvalidPhone, got %v", err)
			}
		})
	}
}

func TestDisplayPhoneAndWhatsApp(t *testing.T) {
	if got := DisplayPhone("08031234567"); got != "+234 803 123 4567" {
		t.Fatalf("DisplayPhone: %q", got)
	}
	if got := DisplayPhone(" nope "); got != "nope" {
		t.Fatalf("DisplayPhone invalid: %q", got)
	}
	if got := WhatsAppLink("+2348031234567"); got != "https://wa.me/2348031234567" {
		t.Fatalf("WhatsAppLink: %q", got)
	}
	if WhatsAppLink("123") != "" {
		t.Fatalf("WhatsAppLink invalid should be empty")
	}
}

func TestValidEmail(t *testing.T) {
	for s, want := range map[string]bool{
		"ada@example.com":  true,
		" ada@mail.ng ":    true,
		"ada@example":      false,
		"ada example@x.ng": false,
		"@x.ng":            false,
		"":                 false,
	} {
		if got := ValidEmail(s); got != want {
			t.Fatalf("ValidEmail(%q)=%v want %v", s, got, want)
		}
	}
}

func TestNaira(t *testing.T) {
	for in, want := range map[int64]string{
		0:        "₦0",
		950:      "₦950",
		450000:   "₦450,000",
		1200000:  "₦1,200,000",
		-2500000: "-₦2,500,000",
	} {
		if got := Naira(in); got != want {
			t.Fatalf("Naira(%d)=%q want %q", in, got, want)
		}
	}
}

func TestDates(t *testing.T) {
	// 2025-01-31 23:30 UTC is Feb 1 00:30 in WAT.
	ms := time.Date(2025, 1, 31, 23, 30, 0, 0, time.UTC).UnixMilli()
	if got := Date(ms); got != "Feb 1, 2025" {
		t.Fatalf("Date: %q", got)
	}
	if got := DateTime(ms); got != "Feb 1, 2025, 12:30 AM" {
		t.Fatalf("DateTime: %q", got)
	}
}

func TestParseDayAndBeforeToday(t *testing.T) {
	now := time.Date(2025, 3, 10, 23, 30, 0, 0, time.UTC) // Mar 11 00:30 WAT

	today, err := ParseDay("2025-03-11")
	if err != nil {
		t.Fatalf("ParseDay: %v", err)
	}
	if BeforeToday(today, now) {
		t.Fatalf("today must not count as past")
	}
	yesterday, _ := ParseDay("2025-03-10")
	if !BeforeToday(yesterday, now) {
		t.Fatalf("yesterday should be past")
	}
	if _, err := ParseDay("10/03/2025"); err == nil {
		t.Fatalf("expected layout error")
	}
}
