package services

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/projectkingz/LocalPerks-WEB-sub000/models"
)

// BonusResult is the outcome of evaluating a rule set against one
// transaction. AppliedRules lists the descriptions of every rule that
// fired, in evaluation order; dashboards show it verbatim, so the order is
// part of the contract.
type BonusResult struct {
	Multiplier   decimal.Decimal `json:"multiplier"`
	AppliedRules []string        `json:"appliedRules"`
}

// EvaluateBonus computes the composite bonus multiplier for an amount on a
// given date. The bank holiday rule is checked first against the calendar;
// the remaining rules run in their configured order. Matching rules stack
// multiplicatively with no mutual exclusion, so a Tuesday bank holiday
// over the spend threshold compounds all three.
func EvaluateBonus(amount decimal.Decimal, date time.Time, rules []models.BonusRule, calendar HolidayCalendar) BonusResult {
	result := BonusResult{Multiplier: decimal.NewFromInt(1)}

	if calendar != nil && calendar.IsHoliday(date) {
		for _, rule := range rules {
			if rule.Type == models.BonusBankHoliday {
				result.Multiplier = result.Multiplier.Mul(rule.Multiplier)
				result.AppliedRules = append(result.AppliedRules, rule.Description)
				break
			}
		}
	}

	for _, rule := range rules {
		if rule.Type == models.BonusBankHoliday {
			continue // already handled above
		}
		if ruleApplies(rule, amount, date) {
			result.Multiplier = result.Multiplier.Mul(rule.Multiplier)
			result.AppliedRules = append(result.AppliedRules, rule.Description)
		}
	}

	return result
}

func ruleApplies(rule models.BonusRule, amount decimal.Decimal, date time.Time) bool {
	switch rule.Type {
	case models.BonusDayOfWeek:
		weekday := int(date.Weekday())
		for _, day := range rule.Conditions.DaysOfWeek {
			if day == weekday {
				return true
			}
		}
		return false
	case models.BonusDateRange:
		if rule.Conditions.StartDate == nil || rule.Conditions.EndDate == nil {
			return false
		}
		day := date.UTC().Truncate(24 * time.Hour)
		start := rule.Conditions.StartDate.Time.Truncate(24 * time.Hour)
		end := rule.Conditions.EndDate.Time.Truncate(24 * time.Hour)
		return !day.Before(start) && !day.After(end)
	case models.BonusMinimumSpend:
		if rule.Conditions.MinimumSpend == nil {
			return false
		}
		return amount.GreaterThanOrEqual(*rule.Conditions.MinimumSpend)
	default:
		return false
	}
}
