package matcher

import (
	"hash/fnv"
	"math"
	"strings"
)

// PriceTable drives the synthesized estimate for catalog entries, which carry
// no native price column. The estimate is a stand-in pricing oracle, not a
// source of truth; callers must treat it as approximate.
type PriceTable struct {
	CategoryBase    map[string]float64
	DefaultBase     float64
	PremiumBrands   map[string]float64
	DefaultPremium  float64
	NameMultipliers []NameMultiplier
	Variation       float64
}

// NameMultiplier scales the estimate when any of its triggers appears in the
// product name.
type NameMultiplier struct {
	Triggers []string
	Factor   float64
}

// DefaultPriceTable returns the production estimation table.
func DefaultPriceTable() PriceTable {
	return PriceTable{
		CategoryBase: map[string]float64{
			"tools":       80,
			"hvac":        60,
			"electronics": 55,
			"lighting":    45,
			"plumbing":    40,
			"electrical":  35,
			"safety":      25,
			"paint":       20,
			"cleaning":    12,
			"fasteners":   8,
		},
		DefaultBase: 30,
		PremiumBrands: map[string]float64{
			"hilti":   1.40,
			"bosch":   1.35,
			"makita":  1.30,
			"dewalt":  1.30,
			"siemens": 1.30,
			"3m":      1.25,
			"philips": 1.20,
		},
		DefaultPremium: 1.05,
		NameMultipliers: []NameMultiplier{
			{Triggers: []string{"drill", "saw", "grinder", "wrench", "tool"}, Factor: 4.0},
			{Triggers: []string{"safety", "helmet", "glove", "goggle", "harness"}, Factor: 2.0},
			{Triggers: []string{"cable", "wire", "cord"}, Factor: 1.5},
			{Triggers: []string{"cleaner", "detergent", "soap", "degreaser"}, Factor: 0.6},
		},
		Variation: 0.20,
	}
}

// estimatePrice synthesizes a deterministic unit price for the product.
// Anomalies degrade to the category base rather than propagate.
func estimatePrice(table PriceTable, name, category, brand string) float64 {
	base, ok := table.CategoryBase[strings.ToLower(category)]
	if !ok || base <= 0 {
		base = table.DefaultBase
	}

	price := base * brandFactor(table, brand)

	nameLower := strings.ToLower(name)
	for _, nm := range table.NameMultipliers {
		for _, trigger := range nm.Triggers {
			if strings.Contains(nameLower, trigger) {
				price *= nm.Factor
				break
			}
		}
	}

	// deterministic variation: same name always estimates the same price
	price *= 1 - table.Variation + 2*table.Variation*hashUnit(name)

	if price <= 0 || math.IsNaN(price) || math.IsInf(price, 0) {
		return round2(base)
	}
	return round2(price)
}

func brandFactor(table PriceTable, brand string) float64 {
	brand = strings.ToLower(strings.TrimSpace(brand))
	if brand == "" || brand == "no brand" || brand == "generic" {
		return 1.0
	}
	if factor, ok := table.PremiumBrands[brand]; ok {
		return factor
	}
	return table.DefaultPremium
}

// hashUnit maps a string to a reproducible value in [0,1) via FNV-1a,
// independent of process hash seeds.
func hashUnit(input string) float64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(strings.ToLower(input)))
	return float64(h.Sum64()%10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
