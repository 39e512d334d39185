package catalog

import (
	"strings"

	"github.com/hammamikhairi/skiphire/internal/domain"
)

// PriceTables returns the checkout base-price and extra-item tables.
func PriceTables() domain.PriceTables {
	return domain.PriceTables{
		BasePrices: map[domain.Size]float64{
			"2yd":  180,
			"3yd":  210,
			"4yd":  240,
			"6yd":  280,
			"8yd":  320,
			"12yd": 400,
			"14yd": 440,
			"16yd": 480,
		},
		ItemPrices: map[string]float64{
			"Mattress":       25,
			"Sofa":           35,
			"Fridge/Freezer": 45,
			"Tyre":           15,
			"TV/Monitor":     20,
			"Carpet":         10,
			"Paint tin":      12,
			"Gas bottle":     30,
		},
		ItemOrder: []string{
			"Mattress", "Sofa", "Fridge/Freezer", "Tyre",
			"TV/Monitor", "Carpet", "Paint tin", "Gas bottle",
		},
	}
}

// ItemLabel resolves loose user input to a canonical item label. Exact
// labels win, then case-insensitive prefixes.
func ItemLabel(tables domain.PriceTables, query string) (string, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return "", false
	}
	for _, label := range tables.ItemOrder {
		if strings.ToLower(label) == q {
			return label, true
		}
	}
	for _, label := range tables.ItemOrder {
		if strings.HasPrefix(strings.ToLower(label), q) {
			return label, true
		}
	}
	return "", false
}

func prices(p2, p3, p4, p6, p8, p12, p14, p16 float64) map[domain.Size]float64 {
	return map[domain.Size]float64{
		"2yd": p2, "3yd": p3, "4yd": p4, "6yd": p6,
		"8yd": p8, "12yd": p12, "14yd": p14, "16yd": p16,
	}
}

func defaultProviders() []*domain.Provider {
	return []*domain.Provider{
		{
			ID:                  "eco-skips",
			Name:                "EcoSkips Direct",
			PriceBySize:         prices(165, 185, 210, 245, 285, 355, 395, 430),
			Rating:              4.8,
			ReviewCount:         1243,
			RecyclingPct:        95,
			OnTimePct:           98,
			Badges:              []string{"Top rated", "Eco champion"},
			DistanceMiles:       2.4,
			EarliestDay:         "Tue",
			EarliestTime:        "7am",
			Includes:            []string{"Delivery & collection", "14 day hire", "Waste transfer note"},
			WasteCarrierLicence: "CBDU184422",
			EnvironmentPermit:   "EPR/AB1234CD",
			StandardHireDays:    14,
			ExtraDayRate:        5,
		},
		{
			ID:                  "rapid-waste",
			Name:                "Rapid Waste Solutions",
			PriceBySize:         prices(149, 169, 189, 215, 259, 329, 365, 399),
			Rating:              4.3,
			ReviewCount:         512,
			RecyclingPct:        82,
			OnTimePct:           91,
			Badges:              []string{"Best price"},
			DistanceMiles:       4.1,
			EarliestDay:         "Mon",
			EarliestTime:        "8am",
			Includes:            []string{"Delivery & collection", "14 day hire"},
			WasteCarrierLicence: "CBDU200915",
			EnvironmentPermit:   "EPR/RW5521XY",
			StandardHireDays:    14,
			ExtraDayRate:        6,
		},
		{
			ID:                  "city-skips",
			Name:                "City Skip Hire",
			PriceBySize:         prices(159, 179, 205, 235, 275, 345, 380, 415),
			Rating:              4.7,
			ReviewCount:         876,
			RecyclingPct:        88,
			OnTimePct:           96,
			Badges:              []string{"Next day"},
			DistanceMiles:       1.2,
			EarliestDay:         "Mon",
			EarliestTime:        "9am",
			Includes:            []string{"Delivery & collection", "7 day hire", "Permit handling"},
			WasteCarrierLicence: "CBDU310077",
			EnvironmentPermit:   "EPR/CS7781QP",
			StandardHireDays:    7,
			ExtraDayRate:        8,
		},
		{
			ID:                  "greenbin",
			Name:                "GreenBin Recycling",
			PriceBySize:         prices(175, 195, 220, 255, 295, 365, 405, 445),
			Rating:              4.9,
			ReviewCount:         2104,
			RecyclingPct:        98,
			OnTimePct:           97,
			Badges:              []string{"Eco champion", "Most reviewed"},
			DistanceMiles:       5.8,
			EarliestDay:         "Wed",
			EarliestTime:        "7am",
			Includes:            []string{"Delivery & collection", "14 day hire", "Recycling certificate"},
			WasteCarrierLicence: "CBDU118830",
			EnvironmentPermit:   "EPR/GB4410LM",
			StandardHireDays:    14,
			ExtraDayRate:        5,
		},
		{
			ID:                  "budget-bins",
			Name:                "Budget Bins",
			PriceBySize:         prices(145, 165, 192, 219, 262, 335, 370, 405),
			Rating:              4.0,
			ReviewCount:         301,
			RecyclingPct:        70,
			OnTimePct:           85,
			Badges:              []string{"Low cost"},
			DistanceMiles:       7.3,
			EarliestDay:         "Thu",
			EarliestTime:        "10am",
			Includes:            []string{"Delivery & collection", "7 day hire"},
			WasteCarrierLicence: "CBDU402268",
			EnvironmentPermit:   "EPR/BB9902TT",
			StandardHireDays:    7,
			ExtraDayRate:        10,
		},
		{
			ID:                  "skipco",
			Name:                "SkipCo Nationwide",
			PriceBySize:         prices(162, 182, 207, 239, 279, 349, 389, 425),
			Rating:              4.5,
			ReviewCount:         3320,
			RecyclingPct:        85,
			OnTimePct:           93,
			Badges:              []string{"Most reviewed", "Nationwide"},
			DistanceMiles:       3.6,
			EarliestDay:         "Tue",
			EarliestTime:        "8am",
			Includes:            []string{"Delivery & collection", "14 day hire", "Online tracking"},
			WasteCarrierLicence: "CBDU099341",
			EnvironmentPermit:   "EPR/SC3307NN",
			StandardHireDays:    14,
			ExtraDayRate:        7,
		},
		{
			ID:                  "yard-masters",
			Name:                "Yard Masters",
			PriceBySize:         prices(169, 189, 214, 249, 289, 359, 399, 439),
			Rating:              4.7,
			ReviewCount:         640,
			RecyclingPct:        90,
			OnTimePct:           95,
			Badges:              []string{"Family run"},
			DistanceMiles:       2.9,
			EarliestDay:         "Fri",
			EarliestTime:        "7am",
			Includes:            []string{"Delivery & collection", "10 day hire", "Wait & load option"},
			WasteCarrierLicence: "CBDU277654",
			EnvironmentPermit:   "EPR/YM6620RS",
			StandardHireDays:    10,
			ExtraDayRate:        6,
		},
		{
			ID:                  "weekend-waste",
			Name:                "Weekend Waste Co",
			PriceBySize:         prices(155, 175, 199, 229, 269, 339, 375, 409),
			Rating:              4.2,
			ReviewCount:         188,
			RecyclingPct:        80,
			OnTimePct:           88,
			Badges:              []string{"Weekend delivery"},
			DistanceMiles:       6.2,
			EarliestDay:         "Sat",
			EarliestTime:        "9am",
			Includes:            []string{"Delivery & collection", "14 day hire"},
			WasteCarrierLicence: "CBDU355102",
			EnvironmentPermit:   "EPR/WW1189KD",
			StandardHireDays:    14,
			ExtraDayRate:        5,
		},
	}
}
