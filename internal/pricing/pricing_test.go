package pricing

import (
	"math"
	"testing"

	"github.com/hammamikhairi/skiphire/internal/domain"
)

const tolerance = 1e-9

func testTables() domain.PriceTables {
	return domain.PriceTables{
		BasePrices: map[domain.Size]float64{"4yd": 240, "6yd": 280, "8yd": 320},
		ItemPrices: map[string]float64{"Mattress": 25, "Sofa": 35, "Tyre": 15},
		ItemOrder:  []string{"Mattress", "Sofa", "Tyre"},
	}
}

func TestCalculateExtras(t *testing.T) {
	eng := New(testTables())

	tests := []struct {
		name  string
		items []string
		qty   map[string]int
		want  float64
	}{
		{"none", nil, nil, 0},
		{"default quantity", []string{"Mattress"}, nil, 25},
		{"explicit quantity", []string{"Mattress", "Sofa"}, map[string]int{"Sofa": 2}, 25 + 70},
		{"unknown label", []string{"Piano"}, map[string]int{"Piano": 3}, 0},
		{"quantity clamped", []string{"Tyre"}, map[string]int{"Tyre": 0}, 15},
		{"negative clamped", []string{"Tyre"}, map[string]int{"Tyre": -4}, 15},
		{"quantity for unselected item ignored", []string{"Tyre"}, map[string]int{"Sofa": 9}, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := eng.CalculateExtras(tt.items, tt.qty); got != tt.want {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestCalculatePermit(t *testing.T) {
	tests := []struct {
		placement domain.Placement
		want      float64
	}{
		{domain.PlacementRoad, 50},
		{domain.PlacementProperty, 0},
		{domain.PlacementUnset, 0},
	}
	for _, tt := range tests {
		if got := CalculatePermit(tt.placement); got != tt.want {
			t.Fatalf("CalculatePermit(%q) = %v, want %v", tt.placement, got, tt.want)
		}
	}
}

func TestCalculateTotalsUnsetSize(t *testing.T) {
	eng := New(testTables())
	got := eng.CalculateTotals("", []string{"Sofa"}, domain.PlacementRoad, nil)
	if got != (domain.Totals{}) {
		t.Fatalf("expected zero totals, got %+v", got)
	}
}

func TestCalculateTotals(t *testing.T) {
	eng := New(testTables())
	got := eng.CalculateTotals("6yd", []string{"Mattress", "Sofa"}, domain.PlacementRoad, map[string]int{"Mattress": 2})

	if got.Base != 280 || got.Extras != 85 || got.Permit != 50 {
		t.Fatalf("unexpected breakdown: %+v", got)
	}
	if math.Abs(got.VAT-83) > tolerance {
		t.Fatalf("expected VAT 83, got %v", got.VAT)
	}
	if math.Abs(got.Total-498) > tolerance {
		t.Fatalf("expected total 498, got %v", got.Total)
	}
}

func TestTotalsInvariants(t *testing.T) {
	eng := New(testTables())
	itemSets := [][]string{nil, {"Mattress"}, {"Mattress", "Sofa", "Tyre"}, {"Piano", "Sofa"}}
	placements := []domain.Placement{domain.PlacementUnset, domain.PlacementProperty, domain.PlacementRoad}
	qtys := []map[string]int{nil, {"Mattress": 3, "Tyre": 4}}

	for _, size := range []domain.Size{"4yd", "6yd", "8yd", "99yd"} {
		for _, items := range itemSets {
			for _, pl := range placements {
				for _, q := range qtys {
					got := eng.CalculateTotals(size, items, pl, q)
					sum := got.Base + got.Extras + got.Permit + got.VAT
					if math.Abs(got.Total-sum) > tolerance {
						t.Fatalf("total %v != parts %v for %s %v %s", got.Total, sum, size, items, pl)
					}
					if got.VAT != (got.Base+got.Extras+got.Permit)*VATRate {
						t.Fatalf("VAT %v is not 20%% of %v", got.VAT, got.Base+got.Extras+got.Permit)
					}
				}
			}
		}
	}
}

func TestProviderPrice(t *testing.T) {
	p := &domain.Provider{ID: "rapid-waste", PriceBySize: map[domain.Size]float64{"6yd": 215}}

	tests := []struct {
		name      string
		size      domain.Size
		items     []string
		placement domain.Placement
		want      float64
	}{
		{"base only", "6yd", nil, domain.PlacementProperty, 258},
		{"flat items ignore real prices", "6yd", []string{"Fridge/Freezer", "Sofa"}, domain.PlacementProperty, (215 + 30) * 1.2},
		{"road permit", "6yd", nil, domain.PlacementRoad, (215 + 50) * 1.2},
		{"unknown size", "16yd", nil, domain.PlacementProperty, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ProviderPrice(p, tt.size, tt.items, tt.placement); math.Abs(got-tt.want) > tolerance {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestHireSpanDays(t *testing.T) {
	tests := []struct {
		name       string
		delivery   domain.DateSpec
		collection domain.DateSpec
		want       int
	}{
		{"single dates", "2025-01-01", "2025-01-20", 19},
		{"delivery range uses end", "2025-01-01|2025-01-03", "2025-01-10", 7},
		{"collection range uses start", "2025-01-01", "2025-01-08|2025-01-12", 7},
		{"unset delivery", "", "2025-01-10", 0},
		{"unset collection", "2025-01-01", "", 0},
		{"collection before delivery", "2025-01-10", "2025-01-01", 0},
		{"malformed", "soon", "2025-01-10", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HireSpanDays(tt.delivery, tt.collection); got != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestProviderQuoteExtraDays(t *testing.T) {
	p := &domain.Provider{
		ID:               "eco-skips",
		PriceBySize:      map[domain.Size]float64{"6yd": 245},
		StandardHireDays: 14,
		ExtraDayRate:     5,
	}

	q := ProviderQuote(p, "6yd", nil, domain.PlacementProperty, "2025-01-01", "2025-01-20")
	if q.HireDays != 19 || q.ExtraDays != 5 || q.ExtraDaysCost != 25 {
		t.Fatalf("unexpected extra days: %+v", q)
	}
	if q.Subtotal != 270 {
		t.Fatalf("expected extra-day cost inside subtotal (270), got %v", q.Subtotal)
	}
	if math.Abs(q.Total-324) > tolerance {
		t.Fatalf("expected total 324, got %v", q.Total)
	}

	// Range delivery: effective delivery is the range end, giving 7 days.
	q = ProviderQuote(p, "6yd", nil, domain.PlacementProperty, "2025-01-01|2025-01-03", "2025-01-10")
	if q.HireDays != 7 || q.ExtraDays != 0 || q.ExtraDaysCost != 0 {
		t.Fatalf("unexpected range quote: %+v", q)
	}

	short := *p
	short.StandardHireDays = 5
	q = ProviderQuote(&short, "6yd", nil, domain.PlacementProperty, "2025-01-01|2025-01-03", "2025-01-10")
	if q.ExtraDays != 2 || q.ExtraDaysCost != 10 {
		t.Fatalf("expected 2 extra days from the 7-day span, got %+v", q)
	}
}

func TestFormatGBP(t *testing.T) {
	tests := map[float64]string{
		258:      "£258.00",
		0.125:    "£0.13",
		83.3333:  "£83.33",
		-12.5:    "-£12.50",
		1499.999: "£1500.00",
	}
	for in, want := range tests {
		if got := FormatGBP(in); got != want {
			t.Fatalf("FormatGBP(%v) = %q, want %q", in, got, want)
		}
	}
}
