// Package ranking orders the provider catalog under the three sort modes.
package ranking

import (
	"sort"
	"strings"

	"github.com/hammamikhairi/skiphire/internal/domain"
	"github.com/hammamikhairi/skiphire/internal/pricing"
)

// Recommended score weights. They sum to 1 and, with the scaling constants
// below, must stay fixed so identical catalogs rank identically.
const (
	weightPrice     = 0.35
	weightDay       = 0.25
	weightRating    = 0.20
	weightRecycling = 0.20

	dayScale       = 50
	ratingScale    = 100
	recyclingScale = 2
)

var weekIndex = map[string]int{
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
}

var weekdayIndex = map[string]int{
	"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4,
}

// DayIndex maps an earliest-availability token to Monday=0 .. Sunday=6.
// Unrecognised tokens return -1 and therefore sort first.
func DayIndex(day string) int {
	return lookupDay(weekIndex, day)
}

// WeekdayIndex is DayIndex restricted to Monday..Friday. Weekend and
// unrecognised tokens return -1, which the recommended score treats as
// the best case.
func WeekdayIndex(day string) int {
	return lookupDay(weekdayIndex, day)
}

func lookupDay(table map[string]int, day string) int {
	key := strings.ToLower(strings.TrimSpace(day))
	if len(key) > 3 {
		key = key[:3]
	}
	if idx, ok := table[key]; ok {
		return idx
	}
	return -1
}

// Score is the recommended-mode composite. Lower is better.
func Score(p *domain.Provider, size domain.Size, items []string, placement domain.Placement) float64 {
	price := pricing.ProviderPrice(p, size, items, placement)
	day := float64(WeekdayIndex(p.EarliestDay))
	return price*weightPrice +
		day*dayScale*weightDay +
		(5-p.Rating)*ratingScale*weightRating +
		(100-p.RecyclingPct)*recyclingScale*weightRecycling
}

// SortProviders returns a new slice ordered by mode. The sort is stable, so
// ties keep catalog order, and the input slice is never modified. Unknown
// modes sort as recommended.
func SortProviders(providers []*domain.Provider, mode domain.SortMode, size domain.Size, items []string, placement domain.Placement) []*domain.Provider {
	out := make([]*domain.Provider, len(providers))
	copy(out, providers)

	switch mode {
	case domain.SortCheapest:
		prices := make(map[*domain.Provider]float64, len(out))
		for _, p := range out {
			prices[p] = pricing.ProviderPrice(p, size, items, placement)
		}
		sort.SliceStable(out, func(i, j int) bool {
			return prices[out[i]] < prices[out[j]]
		})

	case domain.SortEarliest:
		sort.SliceStable(out, func(i, j int) bool {
			di, dj := DayIndex(out[i].EarliestDay), DayIndex(out[j].EarliestDay)
			if di != dj {
				return di < dj
			}
			return out[i].Rating > out[j].Rating
		})

	default:
		scores := make(map[*domain.Provider]float64, len(out))
		for _, p := range out {
			scores[p] = Score(p, size, items, placement)
		}
		sort.SliceStable(out, func(i, j int) bool {
			return scores[out[i]] < scores[out[j]]
		})
	}
	return out
}

// Quotes ranks providers and returns their card breakdowns in rank order.
func Quotes(providers []*domain.Provider, mode domain.SortMode, s domain.JourneyState) []domain.ProviderQuote {
	ranked := SortProviders(providers, mode, s.Size, s.Items, s.Placement)
	out := make([]domain.ProviderQuote, 0, len(ranked))
	for _, p := range ranked {
		out = append(out, pricing.ProviderQuote(p, s.Size, s.Items, s.Placement, s.DeliveryDate, s.CollectionDate))
	}
	return out
}
