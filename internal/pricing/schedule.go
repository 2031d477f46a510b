package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/quotewise/rfq-backend/pkg/enums"
)

// Schedule is the immutable rate card the calculator prices against.
// Constructed once at startup; tests substitute fixtures.
type Schedule struct {
	CategoryMarkup map[string]decimal.Decimal
	DefaultMarkup  decimal.Decimal

	BrandPremium map[string]decimal.Decimal

	VolumeTiers          []VolumeTier
	CategoryDiscountRate map[string]decimal.Decimal
	DefaultDiscountRate  decimal.Decimal

	PriorityAdjustment map[enums.Priority]decimal.Decimal

	CategoryMinMargin map[string]decimal.Decimal
	DefaultMinMargin  decimal.Decimal
}

// VolumeTier maps a quantity threshold to a multiplier on the category's
// base discount rate. Tiers must be ordered by descending MinQuantity.
type VolumeTier struct {
	MinQuantity int
	Multiplier  decimal.Decimal
}

// DefaultSchedule returns the production rate card.
func DefaultSchedule() Schedule {
	return Schedule{
		CategoryMarkup: map[string]decimal.Decimal{
			"tools":       decimal.NewFromFloat(0.35),
			"lighting":    decimal.NewFromFloat(0.28),
			"electrical":  decimal.NewFromFloat(0.30),
			"safety":      decimal.NewFromFloat(0.25),
			"plumbing":    decimal.NewFromFloat(0.32),
			"fasteners":   decimal.NewFromFloat(0.40),
			"cleaning":    decimal.NewFromFloat(0.20),
			"hvac":        decimal.NewFromFloat(0.30),
			"paint":       decimal.NewFromFloat(0.25),
			"electronics": decimal.NewFromFloat(0.33),
		},
		DefaultMarkup: decimal.NewFromFloat(0.30),

		BrandPremium: map[string]decimal.Decimal{
			"hilti":   decimal.NewFromFloat(1.20),
			"bosch":   decimal.NewFromFloat(1.15),
			"makita":  decimal.NewFromFloat(1.15),
			"siemens": decimal.NewFromFloat(1.15),
			"dewalt":  decimal.NewFromFloat(1.12),
			"3m":      decimal.NewFromFloat(1.10),
			"philips": decimal.NewFromFloat(1.08),
		},

		VolumeTiers: []VolumeTier{
			{MinQuantity: 500, Multiplier: decimal.NewFromFloat(1.5)},
			{MinQuantity: 200, Multiplier: decimal.NewFromFloat(1.2)},
			{MinQuantity: 100, Multiplier: decimal.NewFromFloat(1.0)},
			{MinQuantity: 50, Multiplier: decimal.NewFromFloat(0.7)},
			{MinQuantity: 20, Multiplier: decimal.NewFromFloat(0.4)},
			{MinQuantity: 10, Multiplier: decimal.NewFromFloat(0.2)},
		},
		CategoryDiscountRate: map[string]decimal.Decimal{
			"tools":     decimal.NewFromFloat(0.08),
			"lighting":  decimal.NewFromFloat(0.10),
			"safety":    decimal.NewFromFloat(0.10),
			"cleaning":  decimal.NewFromFloat(0.15),
			"fasteners": decimal.NewFromFloat(0.12),
		},
		DefaultDiscountRate: decimal.NewFromFloat(0.10),

		PriorityAdjustment: map[enums.Priority]decimal.Decimal{
			enums.PriorityHigh:   decimal.NewFromFloat(0.05),
			enums.PriorityMedium: decimal.Zero,
			enums.PriorityLow:    decimal.NewFromFloat(-0.02),
		},

		CategoryMinMargin: map[string]decimal.Decimal{
			"tools":       decimal.NewFromFloat(0.18),
			"electronics": decimal.NewFromFloat(0.20),
			"cleaning":    decimal.NewFromFloat(0.10),
			"fasteners":   decimal.NewFromFloat(0.12),
		},
		DefaultMinMargin: decimal.NewFromFloat(0.15),
	}
}
