package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Stored tenant configs carry amounts and rates as plain JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// RoundingRule governs how a monetary amount is rounded before the point
// calculation runs.
type RoundingRule string

const (
	RoundPenny     RoundingRule = "PENNY"
	RoundFivePence RoundingRule = "FIVE_PENCE"
	RoundTenPence  RoundingRule = "TEN_PENCE"
	RoundPound     RoundingRule = "POUND"
)

type BonusRuleType string

const (
	BonusDayOfWeek    BonusRuleType = "DAY_OF_WEEK"
	BonusDateRange    BonusRuleType = "DATE_RANGE"
	BonusMinimumSpend BonusRuleType = "MINIMUM_SPEND"
	BonusBankHoliday  BonusRuleType = "BANK_HOLIDAY"
)

// ISODate is a calendar date that accepts both "2006-01-02" and full
// RFC 3339 timestamps in stored config JSON.
type ISODate struct {
	time.Time
}

func (d *ISODate) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

func (d ISODate) MarshalJSON() ([]byte, error) {
	if d.Time.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Time.UTC().Format("2006-01-02") + `"`), nil
}

// PointsTier awards PointsPerPound to amounts at or above MinAmount.
// Selection is by the largest qualifying MinAmount; MaxAmount is retained
// for display only.
type PointsTier struct {
	MinAmount      decimal.Decimal  `json:"minAmount"`
	MaxAmount      *decimal.Decimal `json:"maxAmount,omitempty"`
	PointsPerPound decimal.Decimal  `json:"pointsPerPound"`
	Description    string           `json:"description"`
}

// BonusRuleConditions holds the per-type parameters of a bonus rule. Only
// the fields relevant to the rule's type are populated.
type BonusRuleConditions struct {
	DaysOfWeek   []int            `json:"daysOfWeek,omitempty"` // 0=Sunday .. 6=Saturday
	StartDate    *ISODate         `json:"startDate,omitempty"`
	EndDate      *ISODate         `json:"endDate,omitempty"`
	MinimumSpend *decimal.Decimal `json:"minimumSpend,omitempty"`
}

// BonusRule multiplies the base point award when its conditions match.
// Rules compose multiplicatively and never exclude each other.
type BonusRule struct {
	Type        BonusRuleType       `json:"type"`
	Multiplier  decimal.Decimal     `json:"multiplier"`
	Conditions  BonusRuleConditions `json:"conditions"`
	Description string              `json:"description"`
}

// TenantPointsConfig is the fully resolved points configuration for one
// tenant. It is a value object: resolved per calculation and never mutated
// after load.
type TenantPointsConfig struct {
	BasePointsPerPound       decimal.Decimal `json:"basePointsPerPound"`
	Tiers                    []PointsTier    `json:"tiers"`
	BonusRules               []BonusRule     `json:"bonusRules"`
	RoundingRule             RoundingRule    `json:"roundingRule"`
	MinimumSpend             decimal.Decimal `json:"minimumSpend"`
	RoundPointsUp            bool            `json:"roundPointsUp"`
	PointFaceValue           decimal.Decimal `json:"pointFaceValue"`
	PlatformChargePercentage decimal.Decimal `json:"platformChargePercentage"`
}

// DefaultPointsConfig builds the platform-wide fallback configuration.
// It returns a fresh value each call so no caller can mutate shared state.
func DefaultPointsConfig() TenantPointsConfig {
	dec := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	maxAmount := func(s string) *decimal.Decimal {
		d := decimal.RequireFromString(s)
		return &d
	}
	minSpend150 := decimal.NewFromInt(150)
	return TenantPointsConfig{
		BasePointsPerPound: decimal.NewFromInt(10),
		Tiers: []PointsTier{
			{
				MinAmount:      decimal.Zero,
				MaxAmount:      maxAmount("30"),
				PointsPerPound: decimal.NewFromInt(10),
				Description:    "Standard rate",
			},
			{
				MinAmount:      dec("30.01"),
				MaxAmount:      maxAmount("75"),
				PointsPerPound: decimal.NewFromInt(12),
				Description:    "Mid-tier rate",
			},
			{
				MinAmount:      dec("75.01"),
				PointsPerPound: decimal.NewFromInt(15),
				Description:    "Premium rate",
			},
		},
		BonusRules: []BonusRule{
			{
				Type:        BonusDayOfWeek,
				Multiplier:  decimal.NewFromInt(2),
				Conditions:  BonusRuleConditions{DaysOfWeek: []int{2}},
				Description: "Double points on Tuesdays",
			},
			{
				Type:        BonusMinimumSpend,
				Multiplier:  dec("1.5"),
				Conditions:  BonusRuleConditions{MinimumSpend: &minSpend150},
				Description: "1.5x points on spend over £150",
			},
			{
				Type:        BonusBankHoliday,
				Multiplier:  decimal.NewFromInt(2),
				Description: "Double points on bank holidays",
			},
		},
		RoundingRule:             RoundPenny,
		MinimumSpend:             decimal.Zero,
		RoundPointsUp:            true,
		PointFaceValue:           dec("0.01"),
		PlatformChargePercentage: dec("2.5"),
	}
}

// StoredPointsConfig is the wire shape of a tenant's persisted config
// overrides. Every field is optional; absent fields inherit from the
// default during the merge.
type StoredPointsConfig struct {
	BasePointsPerPound       *decimal.Decimal `json:"basePointsPerPound,omitempty"`
	Tiers                    []PointsTier     `json:"tiers,omitempty"`
	BonusRules               []BonusRule      `json:"bonusRules,omitempty"`
	RoundingRule             *RoundingRule    `json:"roundingRule,omitempty"`
	MinimumSpend             *decimal.Decimal `json:"minimumSpend,omitempty"`
	RoundPointsUp            *bool            `json:"roundPointsUp,omitempty"`
	PointFaceValue           *decimal.Decimal `json:"pointFaceValue,omitempty"`
	PlatformChargePercentage *decimal.Decimal `json:"platformChargePercentage,omitempty"`
}

// MergePointsConfig lays a tenant's stored overrides over base, field by
// field. Absent override fields keep the base value, so a partially
// specified config is always usable.
func MergePointsConfig(base TenantPointsConfig, stored StoredPointsConfig) TenantPointsConfig {
	merged := base
	if stored.BasePointsPerPound != nil {
		merged.BasePointsPerPound = *stored.BasePointsPerPound
	}
	if len(stored.Tiers) > 0 {
		merged.Tiers = stored.Tiers
	}
	if len(stored.BonusRules) > 0 {
		merged.BonusRules = stored.BonusRules
	}
	if stored.RoundingRule != nil {
		merged.RoundingRule = *stored.RoundingRule
	}
	if stored.MinimumSpend != nil {
		merged.MinimumSpend = *stored.MinimumSpend
	}
	if stored.RoundPointsUp != nil {
		merged.RoundPointsUp = *stored.RoundPointsUp
	}
	if stored.PointFaceValue != nil {
		merged.PointFaceValue = *stored.PointFaceValue
	}
	if stored.PlatformChargePercentage != nil {
		merged.PlatformChargePercentage = *stored.PlatformChargePercentage
	}
	return merged
}
