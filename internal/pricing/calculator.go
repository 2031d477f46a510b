package pricing

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/quotewise/rfq-backend/pkg/enums"
)

var oneHundred = decimal.NewFromInt(100)

// Breakdown is the result of one price computation. Values carry full
// precision; call Rounded before reporting or persisting.
type Breakdown struct {
	BasePrice  decimal.Decimal `json:"base_price"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`

	MarkupPercent         decimal.Decimal `json:"markup_percent"`
	BrandPremiumPercent   decimal.Decimal `json:"brand_premium_percent"`
	VolumeDiscountPercent decimal.Decimal `json:"volume_discount_percent"`
	PriorityAdjustPercent decimal.Decimal `json:"priority_adjust_percent"`
	MarginPercent         decimal.Decimal `json:"margin_percent"`
}

// Rounded returns a copy with every value rounded to two decimal places, the
// reporting boundary.
func (b Breakdown) Rounded() Breakdown {
	return Breakdown{
		BasePrice:             b.BasePrice.Round(2),
		UnitPrice:             b.UnitPrice.Round(2),
		TotalPrice:            b.TotalPrice.Round(2),
		MarkupPercent:         b.MarkupPercent.Round(2),
		BrandPremiumPercent:   b.BrandPremiumPercent.Round(2),
		VolumeDiscountPercent: b.VolumeDiscountPercent.Round(2),
		PriorityAdjustPercent: b.PriorityAdjustPercent.Round(2),
		MarginPercent:         b.MarginPercent.Round(2),
	}
}

// Calculator prices one line from the schedule. Pure: no side effects, no
// I/O, identical inputs produce identical breakdowns.
type Calculator struct {
	schedule Schedule
}

// NewCalculator builds a calculator over the provided rate card.
func NewCalculator(schedule Schedule) *Calculator {
	return &Calculator{schedule: schedule}
}

// Price computes the layered unit and total price. Steps compound in order:
// category markup, brand premium, volume discount, priority adjustment, then
// the minimum-margin floor.
func (c *Calculator) Price(basePrice decimal.Decimal, quantity int, category, brand string, priority enums.Priority) Breakdown {
	if basePrice.IsNegative() {
		basePrice = decimal.Zero
	}
	category = strings.ToLower(strings.TrimSpace(category))

	markupRate := c.markupRate(category)
	price := basePrice.Mul(decimal.NewFromInt(1).Add(markupRate))

	brandMult := c.brandMultiplier(brand)
	price = price.Mul(brandMult)

	discountRate := c.volumeDiscountRate(category, quantity)
	price = price.Sub(price.Mul(discountRate))

	priorityAdj := c.schedule.PriorityAdjustment[priority]
	price = price.Mul(decimal.NewFromInt(1).Add(priorityAdj))

	floor := basePrice.Mul(decimal.NewFromInt(1).Add(c.minMargin(category)))
	if price.LessThan(floor) {
		price = floor
	}

	margin := decimal.Zero
	if price.IsPositive() {
		margin = price.Sub(basePrice).Div(price).Mul(oneHundred)
	}

	return Breakdown{
		BasePrice:             basePrice,
		UnitPrice:             price,
		TotalPrice:            price.Mul(decimal.NewFromInt(int64(quantity))),
		MarkupPercent:         markupRate.Mul(oneHundred),
		BrandPremiumPercent:   brandMult.Sub(decimal.NewFromInt(1)).Mul(oneHundred),
		VolumeDiscountPercent: discountRate.Mul(oneHundred),
		PriorityAdjustPercent: priorityAdj.Mul(oneHundred),
		MarginPercent:         margin,
	}
}

func (c *Calculator) markupRate(category string) decimal.Decimal {
	if rate, ok := c.schedule.CategoryMarkup[category]; ok {
		return rate
	}
	return c.schedule.DefaultMarkup
}

func (c *Calculator) brandMultiplier(brand string) decimal.Decimal {
	if mult, ok := c.schedule.BrandPremium[strings.ToLower(strings.TrimSpace(brand))]; ok {
		return mult
	}
	return decimal.NewFromInt(1)
}

// volumeDiscountRate resolves the quantity tier multiplier and scales it by
// the category's base discount rate.
func (c *Calculator) volumeDiscountRate(category string, quantity int) decimal.Decimal {
	baseRate, ok := c.schedule.CategoryDiscountRate[category]
	if !ok {
		baseRate = c.schedule.DefaultDiscountRate
	}
	for _, tier := range c.schedule.VolumeTiers {
		if quantity >= tier.MinQuantity {
			return tier.Multiplier.Mul(baseRate)
		}
	}
	return decimal.Zero
}

func (c *Calculator) minMargin(category string) decimal.Decimal {
	if margin, ok := c.schedule.CategoryMinMargin[category]; ok {
		return margin
	}
	return c.schedule.DefaultMinMargin
}
