// Package format holds the locale helpers of the portal: Nigerian phone
// numbers, e-mail addresses, Naira amounts and West Africa Time dates.
package format

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WAT is West Africa Time (UTC+1, no daylight saving).
var WAT = time.FixedZone("WAT", 60*60)

// ErrInvalidPhone is returned for numbers that are not Nigerian mobile or
// landline numbers in one of the accepted shapes.
var ErrInvalidPhone = errors.New("invalid Nigerian phone number")

var (
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\+234[0-9]{10}$`),
		regexp.MustCompile(`^234[0-9]{10}$`),
		regexp.MustCompile(`^0[0-9]{10}$`),
	}
	phoneNoise = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", "\t", "")
	emailRE    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func cleanPhone(s string) string {
	return phoneNoise.Replace(strings.TrimSpace(s))
}

// ValidPhone reports whether s is +234XXXXXXXXXX, 234XXXXXXXXXX or
// 0XXXXXXXXXX once spaces, dashes and parentheses are removed.
func ValidPhone(s string) bool {
	c := cleanPhone(s)
	for _, re := range phonePatterns {
		if re.MatchString(c) {
			return true
		}
	}
	return false
}

// NormalizePhone returns s in +234XXXXXXXXXX form.
func NormalizePhone(s string) (string, error) {
	if !ValidPhone(s) {
		return "", ErrInvalidPhone
	}
	c := cleanPhone(s)
	switch {
	case strings.HasPrefix(c, "+234"):
		return c, nil
	case strings.HasPrefix(c, "234"):
		return "+" + c, nil
	default:
		return "+234" + c[1:], nil
	}
}

// DisplayPhone renders a number for humans: digits grouped as
// +234 803 123 4567. Unrecognized input is returned trimmed.
func DisplayPhone(s string) string {
	n, err := NormalizePhone(s)
	if err != nil {
		return strings.TrimSpace(s)
	}
	d := n[4:]
	return "+234 " + d[:3] + " " + d[3:6] + " " + d[6:]
}

// WhatsAppLink returns the wa.me deep link for a phone number, or "" when
// the number is invalid.
func WhatsAppLink(s string) string {
	n, err := NormalizePhone(s)
	if err != nil {
		return ""
	}
	return "https://wa.me/" + n[1:]
}

// ValidEmail reports whether s looks like an e-mail address.
func ValidEmail(s string) bool {
	return emailRE.MatchString(strings.TrimSpace(s))
}

var naira = message.NewPrinter(language.English)

// Naira formats whole Naira with thousands separators and no decimals,
// e.g. ₦1,200,000.
func Naira(amount int64) string {
	if amount < 0 {
		return "-₦" + naira.Sprintf("%d", -amount)
	}
	return "₦" + naira.Sprintf("%d", amount)
}

// Date formats epoch milliseconds as "Jan 2, 2006" in WAT.
func Date(ms int64) string {
	return time.UnixMilli(ms).In(WAT).Format("Jan 2, 2006")
}

// DateTime formats epoch milliseconds as "Jan 2, 2006, 3:04 PM" in WAT.
func DateTime(ms int64) string {
	return time.UnixMilli(ms).In(WAT).Format("Jan 2, 2006, 3:04 PM")
}

// DayLayout is the layout of calendar-day inputs such as move-in dates.
const DayLayout = "2006-01-02"

// ParseDay parses a YYYY-MM-DD calendar day as midnight WAT.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), WAT)
}

// BeforeToday reports whether day falls on a calendar day before now's, both
// taken in WAT.
func BeforeToday(day, now time.Time) bool {
	n := now.In(WAT)
	today := time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, WAT)
	return day.In(WAT).Before(today)
}
