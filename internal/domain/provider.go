package domain

// Provider is a waste-hire company in the static comparison catalog.
// Catalog records are shared by reference and never mutated.
type Provider struct {
	ID                  string           `json:"id"`
	Name                string           `json:"name"`
	PriceBySize         map[Size]float64 `json:"price_by_size"`
	Rating              float64          `json:"rating"`
	ReviewCount         int              `json:"review_count"`
	RecyclingPct        float64          `json:"recycling_pct"`
	OnTimePct           float64          `json:"on_time_pct"`
	Badges              []string         `json:"badges"`
	DistanceMiles       float64          `json:"distance_miles"`
	EarliestDay         string           `json:"earliest_day"`  // "Mon", "Tue", ...
	EarliestTime        string           `json:"earliest_time"` // "7am"
	Includes            []string         `json:"includes"`
	WasteCarrierLicence string           `json:"waste_carrier_licence"`
	EnvironmentPermit   string           `json:"environment_permit"`
	StandardHireDays    int              `json:"standard_hire_days"`
	ExtraDayRate        float64          `json:"extra_day_rate"`
}

// SortMode selects a provider ranking strategy.
type SortMode string

const (
	SortRecommended SortMode = "recommended"
	SortCheapest    SortMode = "cheapest"
	SortEarliest    SortMode = "earliest"
)

// ParseSortMode maps user input to a mode. Unknown input yields the default.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortCheapest, SortEarliest:
		return SortMode(s)
	case "price", "cheap":
		return SortCheapest
	case "soonest", "fastest":
		return SortEarliest
	default:
		return SortRecommended
	}
}

// ProviderQuote is the per-provider card price breakdown.
type ProviderQuote struct {
	Provider      *Provider `json:"provider"`
	Base          float64   `json:"base"`
	Extras        float64   `json:"extras"`
	Permit        float64   `json:"permit"`
	HireDays      int       `json:"hire_days"`
	ExtraDays     int       `json:"extra_days"`
	ExtraDaysCost float64   `json:"extra_days_cost"`
	Subtotal      float64   `json:"subtotal"`
	VAT           float64   `json:"vat"`
	Total         float64   `json:"total"`
}

// PriceTables is the static checkout pricing configuration.
type PriceTables struct {
	BasePrices map[Size]float64   `json:"base_prices"`
	ItemPrices map[string]float64 `json:"item_prices"`
	ItemOrder  []string           `json:"item_order"` // display order of ItemPrices keys
}
