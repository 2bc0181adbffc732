package slotservice

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// normalizeSlot переводит поля date/startTime/endTime, пришедшие как timestamp с часовым поясом
// (например "2026-01-14T17:00:00.000Z"), в календарный день и время на стене в поясе loc.
// Поля, уже записанные как YYYY-MM-DD / HH:MM, не меняются.
// При ошибке разбора возвращается исходный слот и false.
func normalizeSlot(s Slot, loc *time.Location) (Slot, bool) {
	if !isTimestamp(s.Date) && !isTimestamp(s.StartTime) && !isTimestamp(s.EndTime) {
		return s, true
	}

	out := s
	var err error

	if out.Date, err = normalizeField(s.Date, domain.DateFormat, loc); err != nil {
		return s, false
	}
	if out.StartTime, err = normalizeField(s.StartTime, domain.TimeFormat, loc); err != nil {
		return s, false
	}
	if out.EndTime, err = normalizeField(s.EndTime, domain.TimeFormat, loc); err != nil {
		return s, false
	}

	return out, true
}

func normalizeField(value, layout string, loc *time.Location) (string, error) {
	if !isTimestamp(value) {
		return value, nil
	}
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", value, err)
	}
	return t.In(loc).Format(layout), nil
}

func isTimestamp(value string) bool {
	return strings.Contains(value, "T")
}
