package services

import (
	"testing"
	"time"
)

func TestEnglandWalesCalendar(t *testing.T) {
	calendar := NewEnglandWalesCalendar()

	holidays := []string{"2025-12-25", "2026-01-01", "2026-04-03", "2026-12-28"}
	for _, day := range holidays {
		if !calendar.IsHoliday(date(day)) {
			t.Errorf("%s should be a bank holiday", day)
		}
	}

	ordinary := []string{"2026-06-03", "2026-12-26", "2025-07-14"}
	for _, day := range ordinary {
		if calendar.IsHoliday(date(day)) {
			t.Errorf("%s should not be a bank holiday", day)
		}
	}

	// Years outside the loaded tables degrade to "not a holiday".
	if calendar.IsHoliday(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Error("unloaded year must report non-holiday")
	}
}
