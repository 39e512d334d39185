package pricing

import (
	"fmt"
	"math"

	"github.com/hammamikhairi/skiphire/internal/domain"
)

// RoundPence rounds v to the minor currency unit, half away from zero.
// Apply it when presenting a value, never between calculation steps.
func RoundPence(v float64) float64 {
	return math.Round(v*100) / 100
}

// FormatGBP renders v as pounds and pence, e.g. "£258.00".
func FormatGBP(v float64) string {
	r := RoundPence(v)
	if r < 0 {
		return fmt.Sprintf("-£%.2f", -r)
	}
	return fmt.Sprintf("£%.2f", r)
}

// RoundTotals returns a copy of t with every field rounded for display.
func RoundTotals(t domain.Totals) domain.Totals {
	return domain.Totals{
		Base:   RoundPence(t.Base),
		Extras: RoundPence(t.Extras),
		Permit: RoundPence(t.Permit),
		VAT:    RoundPence(t.VAT),
		Total:  RoundPence(t.Total),
	}
}
