package handlers

import "github.com/m04kA/SMC-SlotCalendar/internal/domain"

// Slot представление слота в API
type Slot struct {
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MaxQuota    int    `json:"maxQuota"`
	BookedCount int    `json:"bookedCount"`
	Location    string `json:"location"`
	Available   int    `json:"available"`
	Full        bool   `json:"full"`
}

// FromDomainSlot переводит слот в представление API, подставляя значения по умолчанию
func FromDomainSlot(s domain.Slot) Slot {
	return Slot{
		Date:        s.Date,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		MaxQuota:    s.MaxQuota,
		BookedCount: s.Booked(),
		Location:    s.LocationOrDefault(),
		Available:   domain.SeatsLeft(s),
		Full:        domain.IsFull(s),
	}
}

// FromDomainSlots переводит список слотов; результат не nil
func FromDomainSlots(slots []domain.Slot) []Slot {
	out := make([]Slot, 0, len(slots))
	for _, s := range slots {
		out = append(out, FromDomainSlot(s))
	}
	return out
}

// SlotPayload слот во входящем запросе.
// Принимает слот в том виде, в каком его отдает API: available и full вычисляются заново и игнорируются.
type SlotPayload struct {
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime   string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime     string `json:"endTime" validate:"required,datetime=15:04"`
	MaxQuota    int    `json:"maxQuota" validate:"min=0"`
	BookedCount *int   `json:"bookedCount,omitempty" validate:"omitempty,min=0"`
	Location    string `json:"location,omitempty"`
	Available   *int   `json:"available,omitempty"`
	Full        *bool  `json:"full,omitempty"`
}

// ToDomain переводит слот запроса в модель domain
func (p SlotPayload) ToDomain() domain.Slot {
	return domain.Slot{
		Date:        p.Date,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
		MaxQuota:    p.MaxQuota,
		BookedCount: p.BookedCount,
		Location:    p.Location,
	}
}

// Booking представление бронирования в API
type Booking struct {
	ID        string `json:"id"`
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	User      string `json:"user"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location"`
	Notes     string `json:"notes,omitempty"`
	Timestamp string `json:"timestamp"`
}

// FromDomainBooking переводит бронирование в представление API
func FromDomainBooking(b *domain.Booking) Booking {
	return Booking{
		ID:        b.ID,
		Date:      b.Date,
		TimeSlot:  b.TimeSlot,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		User:      b.User,
		Name:      b.Name,
		Email:     b.Email,
		Phone:     b.Phone,
		Location:  b.Location,
		Notes:     b.Notes,
		Timestamp: b.Timestamp,
	}
}
