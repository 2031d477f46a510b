package pricing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/quotewise/rfq-backend/pkg/enums"
)

func TestPriceIsIdempotent(t *testing.T) {
	calc := NewCalculator(DefaultSchedule())
	base := decimal.NewFromFloat(52.4)

	first := calc.Price(base, 120, "Tools", "Makita", enums.PriorityHigh)
	second := calc.Price(base, 120, "Tools", "Makita", enums.PriorityHigh)

	if !first.UnitPrice.Equal(second.UnitPrice) || !first.TotalPrice.Equal(second.TotalPrice) {
		t.Fatalf("expected identical breakdowns, got %v and %v", first, second)
	}
	if !first.MarginPercent.Equal(second.MarginPercent) {
		t.Fatalf("margin differs across identical calls")
	}
}

func TestPriceEnforcesMarginFloor(t *testing.T) {
	schedule := DefaultSchedule()
	calc := NewCalculator(schedule)

	categories := []string{"Tools", "Cleaning", "Fasteners", "Lighting", "Unknown"}
	quantities := []int{1, 10, 50, 200, 500, 1200}
	priorities := []enums.Priority{enums.PriorityHigh, enums.PriorityMedium, enums.PriorityLow}

	for _, category := range categories {
		minMargin, ok := schedule.CategoryMinMargin[strings.ToLower(category)]
		if !ok {
			minMargin = schedule.DefaultMinMargin
		}
		for _, qty := range quantities {
			for _, priority := range priorities {
				base := decimal.NewFromFloat(37.81)
				b := calc.Price(base, qty, category, "", priority)
				floor := base.Mul(decimal.NewFromInt(1).Add(minMargin))
				if b.UnitPrice.LessThan(floor) {
					t.Fatalf("category %s qty %d priority %v: unit %s below floor %s",
						category, qty, priority, b.UnitPrice, floor)
				}
			}
		}
	}
}

func TestPriceVolumeDiscountAt500Units(t *testing.T) {
	schedule := DefaultSchedule()
	schedule.CategoryDiscountRate["widgets"] = decimal.NewFromFloat(0.15)
	calc := NewCalculator(schedule)

	b := calc.Price(decimal.NewFromInt(100), 500, "Widgets", "", enums.PriorityMedium)

	// 1.5 tier multiplier x 0.15 category rate = 22.5%
	if !b.VolumeDiscountPercent.Equal(decimal.NewFromFloat(22.5)) {
		t.Fatalf("expected 22.5%% volume discount, got %s", b.VolumeDiscountPercent)
	}
}

func TestPriceVolumeTierBoundaries(t *testing.T) {
	calc := NewCalculator(DefaultSchedule())
	base := decimal.NewFromInt(100)

	cases := []struct {
		qty  int
		rate string
	}{
		{9, "0"},
		{10, "2"},    // 0.2 x 0.10 default rate
		{20, "4"},
		{50, "7"},
		{100, "10"},
		{200, "12"},
		{499, "12"},
		{500, "15"},
	}
	for _, tc := range cases {
		b := calc.Price(base, tc.qty, "Unknown", "", enums.PriorityMedium)
		want, _ := decimal.NewFromString(tc.rate)
		if !b.VolumeDiscountPercent.Equal(want) {
			t.Errorf("qty %d: expected discount %s%%, got %s%%", tc.qty, want, b.VolumeDiscountPercent)
		}
	}
}

func TestPricePriorityAdjustment(t *testing.T) {
	calc := NewCalculator(DefaultSchedule())
	base := decimal.NewFromInt(100)

	high := calc.Price(base, 1, "Tools", "", enums.PriorityHigh)
	medium := calc.Price(base, 1, "Tools", "", enums.PriorityMedium)
	low := calc.Price(base, 1, "Tools", "", enums.PriorityLow)

	if !high.UnitPrice.GreaterThan(medium.UnitPrice) {
		t.Errorf("expected high priority to cost more: %s <= %s", high.UnitPrice, medium.UnitPrice)
	}
	if !low.UnitPrice.LessThan(medium.UnitPrice) {
		t.Errorf("expected low priority to cost less: %s >= %s", low.UnitPrice, medium.UnitPrice)
	}
	if !high.PriorityAdjustPercent.Equal(decimal.NewFromInt(5)) {
		t.Errorf("expected +5%% adjustment, got %s", high.PriorityAdjustPercent)
	}
	if !low.PriorityAdjustPercent.Equal(decimal.NewFromInt(-2)) {
		t.Errorf("expected -2%% adjustment, got %s", low.PriorityAdjustPercent)
	}
}

func TestPriceBrandPremium(t *testing.T) {
	calc := NewCalculator(DefaultSchedule())
	base := decimal.NewFromInt(100)

	branded := calc.Price(base, 1, "Tools", "Makita", enums.PriorityMedium)
	plain := calc.Price(base, 1, "Tools", "", enums.PriorityMedium)

	if !branded.BrandPremiumPercent.Equal(decimal.NewFromInt(15)) {
		t.Errorf("expected 15%% brand premium, got %s", branded.BrandPremiumPercent)
	}
	if !branded.UnitPrice.GreaterThan(plain.UnitPrice) {
		t.Errorf("expected branded price above plain: %s <= %s", branded.UnitPrice, plain.UnitPrice)
	}
}

func TestPriceFloorBindsUnderDeepDiscount(t *testing.T) {
	calc := NewCalculator(DefaultSchedule())
	base := decimal.NewFromInt(100)

	// cleaning: 20% markup, 500 units -> 1.5 x 0.15 = 22.5% discount,
	// 1.20 x 0.775 = 0.93 < 1.10 floor
	b := calc.Price(base, 500, "Cleaning", "", enums.PriorityMedium)
	if !b.UnitPrice.Equal(decimal.NewFromInt(110)) {
		t.Fatalf("expected floor price 110, got %s", b.UnitPrice)
	}
	if !b.TotalPrice.Equal(decimal.NewFromInt(55000)) {
		t.Fatalf("expected total 55000, got %s", b.TotalPrice)
	}
}

func TestPriceTotalIsUnitTimesQuantity(t *testing.T) {
	calc := NewCalculator(DefaultSchedule())

	b := calc.Price(decimal.NewFromFloat(19.99), 37, "Lighting", "Philips", enums.PriorityHigh)
	if !b.TotalPrice.Equal(b.UnitPrice.Mul(decimal.NewFromInt(37))) {
		t.Fatalf("total %s != unit %s x 37", b.TotalPrice, b.UnitPrice)
	}
}

func TestPriceNegativeBaseClampsToZero(t *testing.T) {
	calc := NewCalculator(DefaultSchedule())

	b := calc.Price(decimal.NewFromInt(-5), 10, "Tools", "", enums.PriorityMedium)
	if !b.UnitPrice.IsZero() || !b.TotalPrice.IsZero() {
		t.Fatalf("expected zero prices for negative base, got unit %s total %s", b.UnitPrice, b.TotalPrice)
	}
	if !b.MarginPercent.IsZero() {
		t.Fatalf("expected zero margin, got %s", b.MarginPercent)
	}
}

func TestBreakdownRounded(t *testing.T) {
	calc := NewCalculator(DefaultSchedule())

	b := calc.Price(decimal.NewFromFloat(33.333), 7, "Paint", "", enums.PriorityHigh).Rounded()
	if b.UnitPrice.Exponent() < -2 {
		t.Fatalf("expected unit price rounded to 2dp, got %s", b.UnitPrice)
	}
	if b.MarginPercent.Exponent() < -2 {
		t.Fatalf("expected margin rounded to 2dp, got %s", b.MarginPercent)
	}
}
