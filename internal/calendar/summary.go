package calendar

import (
	"sort"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// DaySummary aggregates the slots of one day for the month grid.
type DaySummary struct {
	Date      string
	Slots     int
	FreeSeats int
}

// HasAvailability reports whether at least one seat is free that day.
func (d DaySummary) HasAvailability() bool {
	return d.FreeSeats > 0
}

// Summarize groups slots at location by day, ordered by date.
func Summarize(all []domain.Slot, location string) []DaySummary {
	location = domain.ResolveLocation(location)

	byDay := make(map[string]*DaySummary)
	for _, s := range all {
		if s.LocationOrDefault() != location {
			continue
		}
		day, ok := byDay[s.Date]
		if !ok {
			day = &DaySummary{Date: s.Date}
			byDay[s.Date] = day
		}
		day.Slots++
		day.FreeSeats += domain.SeatsLeft(s)
	}

	out := make([]DaySummary, 0, len(byDay))
	for _, d := range byDay {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Date < out[j].Date
	})

	return out
}
