package memory

import (
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/pkg/ptr"
)

// DefaultFixtures returns the slots the fallback store starts with.
func DefaultFixtures() []domain.Slot {
	return []domain.Slot{
		{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:00", MaxQuota: 10, BookedCount: ptr.Ptr(5)},
		{Date: "2026-01-15", StartTime: "13:00", EndTime: "14:00", MaxQuota: 5, BookedCount: ptr.Ptr(5)},
		{Date: "2026-01-16", StartTime: "09:00", EndTime: "10:00", MaxQuota: 3, BookedCount: ptr.Ptr(0)},
	}
}
