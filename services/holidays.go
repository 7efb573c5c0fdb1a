package services

import "time"

// HolidayCalendar reports whether a date is a bank holiday. The bonus
// evaluator takes this as an injected dependency so refreshing the yearly
// tables is a data change, not a code change in the engine.
type HolidayCalendar interface {
	IsHoliday(date time.Time) bool
}

// EnglandWalesCalendar is a HolidayCalendar backed by the published
// England & Wales bank holiday tables. Dates outside the loaded years are
// reported as non-holidays.
type EnglandWalesCalendar struct {
	dates map[string]struct{}
}

// englandWalesHolidays must be extended each year when the government
// publishes the next table.
// TODO: load the 2027 table once published on gov.uk.
var englandWalesHolidays = []string{
	// 2024
	"2024-01-01", // New Year's Day
	"2024-03-29", // Good Friday
	"2024-04-01", // Easter Monday
	"2024-05-06", // Early May bank holiday
	"2024-05-27", // Spring bank holiday
	"2024-08-26", // Summer bank holiday
	"2024-12-25", // Christmas Day
	"2024-12-26", // Boxing Day
	// 2025
	"2025-01-01",
	"2025-04-18",
	"2025-04-21",
	"2025-05-05",
	"2025-05-26",
	"2025-08-25",
	"2025-12-25",
	"2025-12-26",
	// 2026
	"2026-01-01",
	"2026-04-03",
	"2026-04-06",
	"2026-05-04",
	"2026-05-25",
	"2026-08-31",
	"2026-12-25",
	"2026-12-28", // Boxing Day (substitute day)
}

func NewEnglandWalesCalendar() *EnglandWalesCalendar {
	dates := make(map[string]struct{}, len(englandWalesHolidays))
	for _, d := range englandWalesHolidays {
		dates[d] = struct{}{}
	}
	return &EnglandWalesCalendar{dates: dates}
}

func (c *EnglandWalesCalendar) IsHoliday(date time.Time) bool {
	_, ok := c.dates[date.UTC().Format("2006-01-02")]
	return ok
}
