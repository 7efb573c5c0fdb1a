package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/projectkingz/LocalPerks-WEB-sub000/models"
)

func isoDate(value string) *models.ISODate {
	d := &models.ISODate{}
	if err := d.UnmarshalJSON([]byte(`"` + value + `"`)); err != nil {
		panic(err)
	}
	return d
}

func TestEvaluateBonusFollowsConfiguredOrder(t *testing.T) {
	minSpend := decimal.NewFromInt(50)
	rules := []models.BonusRule{
		{
			Type:        models.BonusMinimumSpend,
			Multiplier:  decimal.RequireFromString("1.5"),
			Conditions:  models.BonusRuleConditions{MinimumSpend: &minSpend},
			Description: "spend bonus",
		},
		{
			Type:        models.BonusDayOfWeek,
			Multiplier:  decimal.NewFromInt(2),
			Conditions:  models.BonusRuleConditions{DaysOfWeek: []int{2}},
			Description: "tuesday bonus",
		},
	}

	result := EvaluateBonus(decimal.NewFromInt(60), tuesday, rules, NewEnglandWalesCalendar())
	if !result.Multiplier.Equal(decimal.NewFromInt(3)) {
		t.Errorf("multiplier = %s, want 3", result.Multiplier)
	}
	if len(result.AppliedRules) != 2 || result.AppliedRules[0] != "spend bonus" || result.AppliedRules[1] != "tuesday bonus" {
		t.Errorf("applied rules = %v, want configured order", result.AppliedRules)
	}
}

func TestBankHolidayEvaluatedFirst(t *testing.T) {
	rules := []models.BonusRule{
		{
			Type:        models.BonusDayOfWeek,
			Multiplier:  decimal.NewFromInt(3),
			Conditions:  models.BonusRuleConditions{DaysOfWeek: []int{4}}, // Thursday
			Description: "thursday bonus",
		},
		{
			Type:        models.BonusBankHoliday,
			Multiplier:  decimal.NewFromInt(2),
			Description: "holiday bonus",
		},
	}

	// 2026-01-01 is both a Thursday and New Year's Day.
	result := EvaluateBonus(decimal.NewFromInt(10), date("2026-01-01"), rules, NewEnglandWalesCalendar())
	if !result.Multiplier.Equal(decimal.NewFromInt(6)) {
		t.Errorf("multiplier = %s, want 6", result.Multiplier)
	}
	if len(result.AppliedRules) != 2 || result.AppliedRules[0] != "holiday bonus" || result.AppliedRules[1] != "thursday bonus" {
		t.Errorf("applied rules = %v, want holiday first", result.AppliedRules)
	}
}

func TestDateRangeBoundsInclusive(t *testing.T) {
	rules := []models.BonusRule{
		{
			Type:       models.BonusDateRange,
			Multiplier: decimal.NewFromInt(2),
			Conditions: models.BonusRuleConditions{
				StartDate: isoDate("2026-06-01"),
				EndDate:   isoDate("2026-06-30"),
			},
			Description: "june promo",
		},
	}
	calendar := NewEnglandWalesCalendar()

	cases := []struct {
		day  string
		want bool
	}{
		{"2026-05-31", false},
		{"2026-06-01", true},
		{"2026-06-30", true},
		{"2026-07-01", false},
	}
	for _, tc := range cases {
		result := EvaluateBonus(decimal.NewFromInt(10), date(tc.day), rules, calendar)
		applied := len(result.AppliedRules) == 1
		if applied != tc.want {
			t.Errorf("date %s: applied = %v, want %v", tc.day, applied, tc.want)
		}
	}
}

func TestNoRulesMeansUnitMultiplier(t *testing.T) {
	result := EvaluateBonus(decimal.NewFromInt(500), tuesday, nil, NewEnglandWalesCalendar())
	if !result.Multiplier.Equal(decimal.NewFromInt(1)) {
		t.Errorf("multiplier = %s, want 1", result.Multiplier)
	}
	if len(result.AppliedRules) != 0 {
		t.Errorf("applied rules = %v, want none", result.AppliedRules)
	}
}

func TestHolidayRuleIgnoredOffHoliday(t *testing.T) {
	rules := []models.BonusRule{
		{Type: models.BonusBankHoliday, Multiplier: decimal.NewFromInt(2), Description: "holiday bonus"},
	}
	result := EvaluateBonus(decimal.NewFromInt(10), wednesday, rules, NewEnglandWalesCalendar())
	if !result.Multiplier.Equal(decimal.NewFromInt(1)) || len(result.AppliedRules) != 0 {
		t.Errorf("off-holiday result = %+v", result)
	}
}
