package domain

import "fmt"

// Slot is one bookable time window at one location on one calendar day.
//
// BookedCount and Location are optional on the wire. Their defaults (0 and DefaultLocation)
// are resolved only through Booked and LocationOrDefault.
type Slot struct {
	Date        string // YYYY-MM-DD
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	MaxQuota    int
	BookedCount *int
	Location    string
}

// SlotIdentity is the composite key of a slot. Two slots are the same entity iff all four fields match.
type SlotIdentity struct {
	Date      string
	StartTime string
	EndTime   string
	Location  string
}

func (id SlotIdentity) String() string {
	return fmt.Sprintf("%s %s-%s @%s", id.Date, id.StartTime, id.EndTime, id.Location)
}

// Booked returns the booked count, 0 when absent.
func (s *Slot) Booked() int {
	if s.BookedCount == nil {
		return 0
	}
	return *s.BookedCount
}

// LocationOrDefault returns the slot location, DefaultLocation when absent.
func (s *Slot) LocationOrDefault() string {
	return ResolveLocation(s.Location)
}

// TimeRange returns the combined "HH:MM-HH:MM" label.
func (s *Slot) TimeRange() string {
	return TimeRangeLabel(s.StartTime, s.EndTime)
}

// Identity returns the composite identity of the slot.
func (s *Slot) Identity() SlotIdentity {
	return IdentityOf(*s)
}

// Clone returns a copy that shares no memory with s.
func (s Slot) Clone() Slot {
	if s.BookedCount != nil {
		booked := *s.BookedCount
		s.BookedCount = &booked
	}
	return s
}

// IdentityOf derives the composite identity of a slot, resolving the default location.
func IdentityOf(s Slot) SlotIdentity {
	return SlotIdentity{
		Date:      s.Date,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Location:  s.LocationOrDefault(),
	}
}

// Availability returns MaxQuota minus the booked count.
// The value is not clamped: corrupt upstream data can make it negative, and a negative
// availability still rejects every booking.
func Availability(s Slot) int {
	return s.MaxQuota - s.Booked()
}

// SeatsLeft is the display value of Availability, clamped at 0.
func SeatsLeft(s Slot) int {
	if a := Availability(s); a > 0 {
		return a
	}
	return 0
}

// IsFull reports whether the slot admits no more bookings.
func IsFull(s Slot) bool {
	return Availability(s) <= 0
}

// FindByIdentity returns the index of the single slot matching id.
// It returns ErrSlotNotFound when nothing matches and ErrDuplicateSlot when more than one slot
// carries the same identity.
func FindByIdentity(slots []Slot, id SlotIdentity) (int, error) {
	found := -1
	for i := range slots {
		if IdentityOf(slots[i]) != id {
			continue
		}
		if found >= 0 {
			return -1, fmt.Errorf("%w: %s", ErrDuplicateSlot, id)
		}
		found = i
	}
	if found < 0 {
		return -1, fmt.Errorf("%w: %s", ErrSlotNotFound, id)
	}
	return found, nil
}

// DuplicateIdentities returns every identity shared by more than one slot, in first-seen order.
func DuplicateIdentities(slots []Slot) []SlotIdentity {
	seen := make(map[SlotIdentity]int, len(slots))
	var dups []SlotIdentity
	for _, s := range slots {
		id := IdentityOf(s)
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}
