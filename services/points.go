package services

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/projectkingz/LocalPerks-WEB-sub000/models"
)

// RoundAmount applies a tenant's monetary rounding rule before any point
// math runs. Halves round away from zero.
func RoundAmount(amount decimal.Decimal, rule models.RoundingRule) decimal.Decimal {
	switch rule {
	case models.RoundFivePence:
		twenty := decimal.NewFromInt(20)
		return amount.Mul(twenty).Round(0).Div(twenty)
	case models.RoundTenPence:
		ten := decimal.NewFromInt(10)
		return amount.Mul(ten).Round(0).Div(ten)
	case models.RoundPound:
		return amount.Round(0)
	default:
		return amount.Round(2)
	}
}

func roundPoints(points decimal.Decimal, up bool) int64 {
	if up {
		return points.Ceil().IntPart()
	}
	return points.Floor().IntPart()
}

// selectTier picks the tier with the largest MinAmount the amount
// qualifies for. MaxAmount deliberately plays no part in selection; the
// boundary behavior of the tier table depends on that.
func selectTier(tiers []models.PointsTier, amount decimal.Decimal) *models.PointsTier {
	var best *models.PointsTier
	for i := range tiers {
		tier := &tiers[i]
		if amount.LessThan(tier.MinAmount) {
			continue
		}
		if best == nil || tier.MinAmount.GreaterThan(best.MinAmount) {
			best = tier
		}
	}
	return best
}

// PointsBreakdown is the detailed result of a point calculation, shown on
// receipt-scan previews and audit views.
type PointsBreakdown struct {
	BasePoints   int64    `json:"basePoints"`
	BonusPoints  int64    `json:"bonusPoints"`
	TotalPoints  int64    `json:"totalPoints"`
	AppliedRules []string `json:"appliedRules"`
}

// CalculatePoints turns a monetary amount into a point award with a full
// audit breakdown: round the money, gate on minimum spend, price the full
// rounded amount at the tier rate, apply the bonus multiplier, then round
// the fractional points once per RoundPointsUp.
//
// CalculatePointsWithConfig is a deliberately separate algorithm; see its
// comment before changing either.
func CalculatePoints(amount decimal.Decimal, cfg models.TenantPointsConfig, date time.Time, calendar HolidayCalendar) PointsBreakdown {
	rounded := RoundAmount(amount, cfg.RoundingRule)

	if rounded.Sign() <= 0 {
		return PointsBreakdown{}
	}
	if cfg.MinimumSpend.Sign() > 0 && rounded.LessThan(cfg.MinimumSpend) {
		return PointsBreakdown{
			AppliedRules: []string{"below minimum spend of £" + cfg.MinimumSpend.StringFixed(2)},
		}
	}

	rate, tierDescription := tierRate(cfg, rounded)
	basePoints := rounded.Mul(rate)

	bonus := EvaluateBonus(rounded, date, cfg.BonusRules, calendar)

	total := roundPoints(basePoints.Mul(bonus.Multiplier), cfg.RoundPointsUp)
	if total < 0 {
		total = 0
	}
	baseFloor := basePoints.Floor().IntPart()

	return PointsBreakdown{
		BasePoints:   baseFloor,
		BonusPoints:  total - baseFloor,
		TotalPoints:  total,
		AppliedRules: append([]string{tierDescription}, bonus.AppliedRules...),
	}
}

// CalculatePointsWithConfig is the award algorithm the transaction
// endpoint persists: it floors the base points before the bonus multiplier
// is applied, then rounds again per RoundPointsUp. This differs from
// CalculatePoints for fractional base amounts; existing call sites are
// pinned to one path or the other, so the two must not be unified without
// recalculating every stored award.
func CalculatePointsWithConfig(amount decimal.Decimal, cfg models.TenantPointsConfig, date time.Time, calendar HolidayCalendar) int64 {
	rounded := RoundAmount(amount, cfg.RoundingRule)

	if rounded.Sign() <= 0 {
		return 0
	}
	if cfg.MinimumSpend.Sign() > 0 && rounded.LessThan(cfg.MinimumSpend) {
		return 0
	}

	rate, _ := tierRate(cfg, rounded)
	base := rounded.Mul(rate).Floor()

	bonus := EvaluateBonus(rounded, date, cfg.BonusRules, calendar)

	total := roundPoints(base.Mul(bonus.Multiplier), cfg.RoundPointsUp)
	if total < 0 {
		total = 0
	}
	return total
}

func tierRate(cfg models.TenantPointsConfig, amount decimal.Decimal) (decimal.Decimal, string) {
	if tier := selectTier(cfg.Tiers, amount); tier != nil {
		desc := fmt.Sprintf("%s points per £1", tier.PointsPerPound.String())
		if tier.Description != "" {
			desc = fmt.Sprintf("%s (%s)", desc, tier.Description)
		}
		return tier.PointsPerPound, desc
	}
	return cfg.BasePointsPerPound, fmt.Sprintf("%s points per £1 (base rate)", cfg.BasePointsPerPound.String())
}

// PointsEngine binds the calculators to tenant config resolution so
// request handlers can award points from an amount and a tenant id alone.
type PointsEngine struct {
	configs  *ConfigService
	calendar HolidayCalendar
	log      zerolog.Logger
}

func NewPointsEngine(configs *ConfigService, calendar HolidayCalendar, log zerolog.Logger) *PointsEngine {
	return &PointsEngine{configs: configs, calendar: calendar, log: log}
}

// CalculatePointsForTransaction resolves the tenant's config and returns
// the integer award to embed in a new EARNED transaction. Pinned to the
// CalculatePointsWithConfig path.
func (e *PointsEngine) CalculatePointsForTransaction(amount decimal.Decimal, tenantID string) int64 {
	cfg := e.configs.ResolveConfig(tenantID)
	points := CalculatePointsWithConfig(amount, cfg, time.Now().UTC(), e.calendar)
	e.log.Debug().
		Str("tenant_id", tenantID).
		Str("amount", amount.String()).
		Int64("points", points).
		Msg("calculated transaction points")
	return points
}

// Preview resolves the tenant's config and returns the full breakdown for
// the detailed CalculatePoints path.
func (e *PointsEngine) Preview(amount decimal.Decimal, tenantID string, date time.Time) PointsBreakdown {
	cfg := e.configs.ResolveConfig(tenantID)
	return CalculatePoints(amount, cfg, date, e.calendar)
}
