package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestDefaultPointsConfig(t *testing.T) {
	cfg := DefaultPointsConfig()

	require.Len(t, cfg.Tiers, 3)
	require.True(t, cfg.Tiers[0].MinAmount.Equal(decimal.Zero))
	require.True(t, cfg.Tiers[0].PointsPerPound.Equal(decimal.NewFromInt(10)))
	require.True(t, cfg.Tiers[1].MinAmount.Equal(decimal.RequireFromString("30.01")))
	require.True(t, cfg.Tiers[1].PointsPerPound.Equal(decimal.NewFromInt(12)))
	require.True(t, cfg.Tiers[2].MinAmount.Equal(decimal.RequireFromString("75.01")))
	require.True(t, cfg.Tiers[2].PointsPerPound.Equal(decimal.NewFromInt(15)))

	require.Len(t, cfg.BonusRules, 3)
	require.Equal(t, BonusDayOfWeek, cfg.BonusRules[0].Type)
	require.Equal(t, []int{2}, cfg.BonusRules[0].Conditions.DaysOfWeek)
	require.Equal(t, BonusMinimumSpend, cfg.BonusRules[1].Type)
	require.Equal(t, BonusBankHoliday, cfg.BonusRules[2].Type)

	require.Equal(t, RoundPenny, cfg.RoundingRule)
	require.True(t, cfg.RoundPointsUp)
	require.True(t, cfg.PointFaceValue.Equal(decimal.RequireFromString("0.01")))
}

func TestDefaultPointsConfigReturnsFreshValue(t *testing.T) {
	first := DefaultPointsConfig()
	first.Tiers[0].PointsPerPound = decimal.NewFromInt(99)

	second := DefaultPointsConfig()
	require.True(t, second.Tiers[0].PointsPerPound.Equal(decimal.NewFromInt(10)),
		"mutating one resolved config must not leak into the next")
}

func TestMergePointsConfigPartialOverride(t *testing.T) {
	raw := `{"minimumSpend": 5, "roundingRule": "POUND", "roundPointsUp": false}`
	var stored StoredPointsConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))

	merged := MergePointsConfig(DefaultPointsConfig(), stored)

	require.True(t, merged.MinimumSpend.Equal(decimal.NewFromInt(5)))
	require.Equal(t, RoundPound, merged.RoundingRule)
	require.False(t, merged.RoundPointsUp)

	// Unspecified fields inherit from the default.
	require.Len(t, merged.Tiers, 3)
	require.Len(t, merged.BonusRules, 3)
	require.True(t, merged.PointFaceValue.Equal(decimal.RequireFromString("0.01")))
}

func TestMergePointsConfigFullOverride(t *testing.T) {
	raw := `{
		"tiers": [{"minAmount": 0, "pointsPerPound": 5, "description": "flat"}],
		"bonusRules": [],
		"pointFaceValue": 0.02,
		"platformChargePercentage": 5
	}`
	var stored StoredPointsConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))

	merged := MergePointsConfig(DefaultPointsConfig(), stored)
	require.Len(t, merged.Tiers, 1)
	require.True(t, merged.Tiers[0].PointsPerPound.Equal(decimal.NewFromInt(5)))
	require.True(t, merged.PointFaceValue.Equal(decimal.RequireFromString("0.02")))
	// An empty bonusRules array is treated as absent, not as "no rules".
	require.Len(t, merged.BonusRules, 3)
}

func TestStoredConfigDateRangeParsing(t *testing.T) {
	raw := `{
		"bonusRules": [{
			"type": "DATE_RANGE",
			"multiplier": 2,
			"conditions": {"startDate": "2026-06-01", "endDate": "2026-06-30T00:00:00Z"},
			"description": "june promo"
		}]
	}`
	var stored StoredPointsConfig
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))

	rule := stored.BonusRules[0]
	require.Equal(t, BonusDateRange, rule.Type)
	require.Equal(t, "2026-06-01", rule.Conditions.StartDate.Format("2006-01-02"))
	require.Equal(t, "2026-06-30", rule.Conditions.EndDate.Format("2006-01-02"))
}

func TestConfigMarshalsNumbersNotStrings(t *testing.T) {
	data, err := json.Marshal(DefaultPointsConfig())
	require.NoError(t, err)

	body := string(data)
	require.Contains(t, body, `"pointFaceValue":0.01`)
	require.Contains(t, body, `"platformChargePercentage":2.5`)
	require.False(t, strings.Contains(body, `"0.01"`), "amounts must serialize as plain JSON numbers")
}

func TestMalformedStoredConfigRejected(t *testing.T) {
	var stored StoredPointsConfig
	err := json.Unmarshal([]byte(`{"minimumSpend": "not a number at all"}`), &stored)
	require.Error(t, err)
}
