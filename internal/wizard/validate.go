package wizard

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/hammamikhairi/skiphire/internal/domain"
)

var (
	postcodeRe = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}$`)
	emailRe    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phoneRe    = regexp.MustCompile(`^\+?[0-9]{10,14}$`)
)

// NormalizePostcode upper-cases a postcode and puts a single space before
// the inward code.
func NormalizePostcode(raw string) string {
	s := strings.ToUpper(strings.Join(strings.Fields(raw), ""))
	if len(s) < 5 {
		return s
	}
	return s[:len(s)-3] + " " + s[len(s)-3:]
}

// ValidPostcode reports whether raw looks like a UK postcode.
func ValidPostcode(raw string) bool {
	return postcodeRe.MatchString(NormalizePostcode(raw))
}

// ValidEmail is a shape check only.
func ValidEmail(raw string) bool {
	return emailRe.MatchString(strings.TrimSpace(raw))
}

// ValidPhone accepts 10 to 14 digits with an optional leading plus.
// Spaces, dashes and brackets are ignored.
func ValidPhone(raw string) bool {
	clean := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(raw)
	return phoneRe.MatchString(clean)
}

func incomplete(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrStepIncomplete, fmt.Sprintf(format, args...))
}

// checkDates enforces that collection never precedes delivery, with at
// least one full day between two single dates.
func checkDates(delivery, collection domain.DateSpec) error {
	if delivery.IsZero() {
		return incomplete("choose a delivery date")
	}
	if collection.IsZero() {
		return incomplete("choose a collection date")
	}
	dStart, _, ok := delivery.Bounds()
	if !ok {
		return incomplete("delivery date %q is not a valid date", delivery)
	}
	cStart, _, ok := collection.Bounds()
	if !ok {
		return incomplete("collection date %q is not a valid date", collection)
	}
	if cStart.Before(dStart) {
		return incomplete("collection cannot be before delivery")
	}
	if !delivery.IsRange() && !collection.IsRange() && cStart.Before(dStart.Add(24*time.Hour)) {
		return incomplete("collection must be at least one day after delivery")
	}
	return nil
}

func checkCustomer(c domain.Customer) error {
	switch {
	case strings.TrimSpace(c.Name) == "":
		return incomplete("enter your name")
	case !ValidEmail(c.Email):
		return incomplete("enter a valid email address")
	case !ValidPhone(c.Phone):
		return incomplete("enter a valid phone number")
	}
	return nil
}
