package domain

import "time"

// Booking is one reservation against exactly one Slot.
//
// TimeSlot duplicates StartTime/EndTime as "HH:MM-HH:MM" and User duplicates Name:
// downstream consumers read either form, so both are always populated identically.
type Booking struct {
	ID        string
	Date      string
	TimeSlot  string
	StartTime string
	EndTime   string
	User      string
	Name      string
	Email     string
	Phone     string
	Location  string
	Notes     string
	Timestamp string // RFC 3339, UTC
}

// BookingRequest is the payload submitted to a slot store.
type BookingRequest struct {
	Date      string
	TimeSlot  string
	StartTime string
	EndTime   string
	User      string
	Name      string
	Email     string
	Phone     string
	Location  string
	Notes     string
}

// Identity returns the identity of the slot the request targets.
func (r *BookingRequest) Identity() SlotIdentity {
	return SlotIdentity{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Location:  ResolveLocation(r.Location),
	}
}

// NewBooking builds a committed booking from a request.
func NewBooking(id string, req BookingRequest, createdAt time.Time) *Booking {
	return &Booking{
		ID:        id,
		Date:      req.Date,
		TimeSlot:  req.TimeSlot,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		User:      req.User,
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Location:  req.Location,
		Notes:     req.Notes,
		Timestamp: FormatTimestamp(createdAt),
	}
}

// TimeRangeLabel joins start and end into the "HH:MM-HH:MM" label.
func TimeRangeLabel(start, end string) string {
	return start + "-" + end
}

// FormatTimestamp renders t as an ISO-8601 UTC instant with millisecond precision.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
}
