package calendar

import (
	"sort"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// VisibleSlots returns the slots of one day at one location, ordered by start time.
// An empty location selects DefaultLocation; slots without a location belong to DefaultLocation.
// Slots with equal start times keep their input order.
func VisibleSlots(all []domain.Slot, date, location string) []domain.Slot {
	location = domain.ResolveLocation(location)

	out := make([]domain.Slot, 0)
	for _, s := range all {
		if s.Date != date || s.LocationOrDefault() != location {
			continue
		}
		out = append(out, s.Clone())
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime < out[j].StartTime
	})

	return out
}
