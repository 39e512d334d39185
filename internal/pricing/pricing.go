// Package pricing computes checkout totals and provider comparison prices.
//
// Two formulas live here on purpose. CalculateTotals is item-price and
// quantity accurate and feeds checkout. ProviderPrice is a flat per-item
// estimate used only to rank providers. They disagree on extras for the
// same basket; callers must not mix them.
package pricing

import (
	"math"

	"github.com/hammamikhairi/skiphire/internal/domain"
)

const (
	// VATRate is applied to base, extras and permit alike.
	VATRate = 0.20
	// RoadPermitFee is charged when the container sits on a public road.
	RoadPermitFee = 50.0
	// FlatItemSurcharge is the per-item estimate used for provider ranking.
	FlatItemSurcharge = 15.0
)

// Engine evaluates prices against a fixed set of price tables.
type Engine struct {
	tables domain.PriceTables
}

// New creates a pricing engine over the given tables.
func New(tables domain.PriceTables) *Engine {
	return &Engine{tables: tables}
}

// Tables returns the engine's price tables.
func (e *Engine) Tables() domain.PriceTables { return e.tables }

// BasePrice returns the checkout base price for size, 0 when unknown.
func (e *Engine) BasePrice(size domain.Size) float64 {
	return e.tables.BasePrices[size]
}

// ItemPrice returns the unit price of label and whether it is known.
func (e *Engine) ItemPrice(label string) (float64, bool) {
	p, ok := e.tables.ItemPrices[label]
	return p, ok
}

// CalculateExtras sums unit price times quantity over items. Unknown labels
// contribute 0; a missing quantity counts as 1 and quantities below 1 are
// clamped to 1.
func (e *Engine) CalculateExtras(items []string, quantities map[string]int) float64 {
	var sum float64
	for _, item := range items {
		price := e.tables.ItemPrices[item]
		sum += price * float64(Quantity(quantities, item))
	}
	return sum
}

// Quantity returns the effective quantity for item: at least 1.
func Quantity(quantities map[string]int, item string) int {
	q, ok := quantities[item]
	if !ok || q < 1 {
		return 1
	}
	return q
}

// CalculatePermit returns the road permit fee for placement.
func CalculatePermit(placement domain.Placement) float64 {
	if placement == domain.PlacementRoad {
		return RoadPermitFee
	}
	return 0
}

// CalculateTotals returns the checkout breakdown. An unset size yields an
// all-zero breakdown.
func (e *Engine) CalculateTotals(size domain.Size, items []string, placement domain.Placement, quantities map[string]int) domain.Totals {
	if size == "" {
		return domain.Totals{}
	}
	base := e.tables.BasePrices[size]
	extras := e.CalculateExtras(items, quantities)
	permit := CalculatePermit(placement)
	vat := (base + extras + permit) * VATRate
	return domain.Totals{
		Base:   base,
		Extras: extras,
		Permit: permit,
		VAT:    vat,
		Total:  base + extras + permit + vat,
	}
}

// TotalsFor computes the checkout breakdown from a journey state.
func (e *Engine) TotalsFor(s domain.JourneyState) domain.Totals {
	return e.CalculateTotals(s.Size, s.Items, s.Placement, s.ItemQuantities)
}

// ProviderPrice is the simplified all-in price used for ranking: provider
// base for size, a flat surcharge per item, the road permit, plus VAT.
func ProviderPrice(p *domain.Provider, size domain.Size, items []string, placement domain.Placement) float64 {
	base := p.PriceBySize[size]
	extras := float64(len(items)) * FlatItemSurcharge
	subtotal := base + extras + CalculatePermit(placement)
	return subtotal + subtotal*VATRate
}

// ProviderQuote is the card breakdown for one provider. It extends
// ProviderPrice with extra hire days beyond the provider's standard period.
func ProviderQuote(p *domain.Provider, size domain.Size, items []string, placement domain.Placement, delivery, collection domain.DateSpec) domain.ProviderQuote {
	base := p.PriceBySize[size]
	extras := float64(len(items)) * FlatItemSurcharge
	permit := CalculatePermit(placement)
	span := HireSpanDays(delivery, collection)
	extraDays := ExtraDays(span, p.StandardHireDays)
	extraCost := float64(extraDays) * p.ExtraDayRate

	subtotal := base + extras + permit + extraCost
	vat := subtotal * VATRate
	return domain.ProviderQuote{
		Provider:      p,
		Base:          base,
		Extras:        extras,
		Permit:        permit,
		HireDays:      span,
		ExtraDays:     extraDays,
		ExtraDaysCost: extraCost,
		Subtotal:      subtotal,
		VAT:           vat,
		Total:         subtotal + vat,
	}
}

// HireSpanDays returns the shortest hire period the two dates allow. The
// effective delivery is the end of a delivery range and the effective
// collection is the start of a collection range. It returns 0 when either
// date is unset or the collection precedes the delivery.
func HireSpanDays(delivery, collection domain.DateSpec) int {
	_, deliverBy, ok := delivery.Bounds()
	if !ok {
		return 0
	}
	collectFrom, _, ok := collection.Bounds()
	if !ok {
		return 0
	}
	days := math.Ceil(collectFrom.Sub(deliverBy).Hours() / 24)
	if days < 0 {
		return 0
	}
	return int(days)
}

// ExtraDays returns the days beyond the standard included hire period.
func ExtraDays(spanDays, standardDays int) int {
	if extra := spanDays - standardDays; extra > 0 {
		return extra
	}
	return 0
}
