package services

import (
	"github.com/shopspring/decimal"

	"github.com/projectkingz/LocalPerks-WEB-sub000/models"
)

// maxDiscountTiers caps GetAvailableDiscounts. It is a presentation
// convenience for partner apps, not a business rule, but callers rely on
// the cap so it lives here rather than in a handler.
const maxDiscountTiers = 20

// CalculatePointsFaceValue returns the monetary worth of a point balance.
func CalculatePointsFaceValue(points int64, cfg models.TenantPointsConfig) decimal.Decimal {
	if points <= 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(points).Mul(cfg.PointFaceValue).Round(2)
}

// CalculatePointsForDiscount returns the points needed to fund a requested
// discount. The division rounds up so the platform never under-charges
// points for a discount.
func CalculatePointsForDiscount(discountAmount decimal.Decimal, cfg models.TenantPointsConfig) int64 {
	if discountAmount.Sign() <= 0 || cfg.PointFaceValue.Sign() <= 0 {
		return 0
	}
	return discountAmount.Div(cfg.PointFaceValue).Ceil().IntPart()
}

// GetAvailableDiscounts enumerates the whole-pound discounts a balance can
// afford, ascending from £1, capped at maxDiscountTiers entries.
func GetAvailableDiscounts(points int64, cfg models.TenantPointsConfig) []int64 {
	if points <= 0 || cfg.PointFaceValue.Sign() <= 0 {
		return nil
	}
	max := decimal.NewFromInt(points).Mul(cfg.PointFaceValue).Floor().IntPart()
	if max > maxDiscountTiers {
		max = maxDiscountTiers
	}
	if max < 1 {
		return nil
	}
	discounts := make([]int64, 0, max)
	for value := int64(1); value <= max; value++ {
		discounts = append(discounts, value)
	}
	return discounts
}

// CalculatePlatformCharge returns the platform's levy on a gross
// transaction amount, for partner billing reconciliation. Independent of
// point math.
func CalculatePlatformCharge(amount decimal.Decimal, cfg models.TenantPointsConfig) decimal.Decimal {
	if amount.Sign() <= 0 {
		return decimal.Zero
	}
	return amount.Mul(cfg.PlatformChargePercentage).Div(decimal.NewFromInt(100)).Round(2)
}
