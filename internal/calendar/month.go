package calendar

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// StartOfMonth truncates t to midnight of the first day of its month, keeping t's location.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// MonthRange returns the first and last calendar day of month as YYYY-MM-DD.
func MonthRange(month time.Time) (start, end string) {
	first := StartOfMonth(month)
	last := first.AddDate(0, 1, -1)
	return first.Format(domain.DateFormat), last.Format(domain.DateFormat)
}

// ParseMonth parses a YYYY-MM value in loc.
func ParseMonth(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.MonthFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: month %q must be YYYY-MM", domain.ErrValidationFailed, value)
	}
	return t, nil
}

// ParseDay parses a YYYY-MM-DD value in loc.
func ParseDay(value string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(domain.DateFormat, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q must be YYYY-MM-DD", domain.ErrValidationFailed, value)
	}
	return t, nil
}
