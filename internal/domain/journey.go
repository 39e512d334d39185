// Package domain defines the core types and interfaces for the skip hire
// booking journey. All other packages depend on domain; domain depends on
// nothing.
package domain

import "strings"

// Placement is where the container will sit.
type Placement string

const (
	PlacementUnset    Placement = ""
	PlacementProperty Placement = "driveway"
	PlacementRoad     Placement = "road"
)

// ParsePlacement accepts the loose spellings used by the wizard and API.
func ParsePlacement(s string) (Placement, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "driveway", "property", "on-property", "private":
		return PlacementProperty, true
	case "road", "on-road", "street", "public":
		return PlacementRoad, true
	case "":
		return PlacementUnset, true
	default:
		return PlacementUnset, false
	}
}

// String returns a human-readable placement.
func (p Placement) String() string {
	switch p {
	case PlacementProperty:
		return "on property"
	case PlacementRoad:
		return "on the road"
	default:
		return "unset"
	}
}

// WasteType is a free-form category tag drawn from WasteTypes.
type WasteType string

// WasteTypes is the fixed waste classification catalog.
var WasteTypes = []WasteType{
	"mixed-general",
	"construction",
	"soil-and-stone",
	"garden",
	"wood",
	"plasterboard",
}

// ParseWasteType matches s against the catalog, case-insensitively.
func ParseWasteType(s string) (WasteType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, w := range WasteTypes {
		if string(w) == s {
			return w, true
		}
	}
	return "", false
}

// Size is a container volume class.
type Size string

// Sizes lists every container size in ascending volume order.
var Sizes = []Size{"2yd", "3yd", "4yd", "6yd", "8yd", "12yd", "14yd", "16yd"}

// ParseSize accepts "6", "6yd", "6 yard" and "6 yards".
func ParseSize(s string) (Size, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, suffix := range []string{" yards", " yard", "yards", "yard", "yd"} {
		s = strings.TrimSuffix(s, suffix)
	}
	s = strings.TrimSpace(s)
	for _, sz := range Sizes {
		if string(sz) == s+"yd" {
			return sz, true
		}
	}
	return "", false
}

// DefaultLat and DefaultLng are the fixed city-centre coordinate a journey
// starts from before an address is chosen.
const (
	DefaultLat = 51.5074
	DefaultLng = -0.1278
)

// Location describes where the container is delivered.
type Location struct {
	Postcode string  `json:"postcode"`
	Address  string  `json:"address"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	WordCode string  `json:"word_code"` // assigned after placement confirmation
}

// Totals is a price breakdown. Total equals Base+Extras+Permit+VAT when all
// fields come from a single pricing call.
type Totals struct {
	Base   float64 `json:"base"`
	Extras float64 `json:"extras"`
	Permit float64 `json:"permit"`
	VAT    float64 `json:"vat"`
	Total  float64 `json:"total"`
}

// Customer holds the contact details collected at the final step.
type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// MaxCompare bounds the provider compare list.
const MaxCompare = 3

// JourneyState is the in-progress booking.
type JourneyState struct {
	Location       Location       `json:"location"`
	Placement      Placement      `json:"placement"`
	WasteType      WasteType      `json:"waste_type"`
	Size           Size           `json:"size"`
	Items          []string       `json:"items"`
	ItemQuantities map[string]int `json:"item_quantities"`
	DeliveryDate   DateSpec       `json:"delivery_date"`
	CollectionDate DateSpec       `json:"collection_date"`
	ProviderID     string         `json:"provider_id"`
	Totals         Totals         `json:"totals"`
	Customer       Customer       `json:"customer"`
	CompareList    []string       `json:"compare_list"`
}

// DefaultJourneyState returns the state a journey starts with.
func DefaultJourneyState() JourneyState {
	return JourneyState{
		Location: Location{
			Lat: DefaultLat,
			Lng: DefaultLng,
		},
		Items:          []string{},
		ItemQuantities: map[string]int{},
		CompareList:    []string{},
	}
}

// Clone returns a deep copy of the state.
func (s JourneyState) Clone() JourneyState {
	out := s
	out.Items = append([]string{}, s.Items...)
	out.CompareList = append([]string{}, s.CompareList...)
	out.ItemQuantities = make(map[string]int, len(s.ItemQuantities))
	for k, v := range s.ItemQuantities {
		out.ItemQuantities[k] = v
	}
	return out
}

// HasItem reports whether label is selected.
func (s JourneyState) HasItem(label string) bool {
	for _, it := range s.Items {
		if it == label {
			return true
		}
	}
	return false
}

// Submission is the read-only snapshot handed to the submission step.
type Submission struct {
	Size           Size           `json:"size"`
	Items          []string       `json:"items"`
	ItemQuantities map[string]int `json:"item_quantities"`
	Placement      Placement      `json:"placement"`
	Totals         Totals         `json:"totals"`
	ProviderID     string         `json:"provider_id"`
	Customer       Customer       `json:"customer"`
}

// Confirmation is returned once a submission has been accepted.
type Confirmation struct {
	Reference  string     `json:"reference"`
	Submission Submission `json:"submission"`
}
