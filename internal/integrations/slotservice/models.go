package slotservice

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// Действия удаленного сервиса
const (
	actionGetSlots      = "getSlots"
	actionCreateBooking = "createBooking"
	actionSaveSlot      = "saveSlot"
	actionDeleteSlot    = "deleteSlot"
)

// envelope общий формат ответа удаленного сервиса
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// actionRequest тело POST запроса
type actionRequest struct {
	Action  string      `json:"action"`
	Payload interface{} `json:"payload"`
}

// Slot модель слота удаленного сервиса
type Slot struct {
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	MaxQuota    int    `json:"maxQuota"`
	BookedCount *int   `json:"bookedCount,omitempty"`
	Location    string `json:"location,omitempty"`
}

// BookingPayload модель запроса createBooking
type BookingPayload struct {
	Date      string `json:"date"`
	TimeSlot  string `json:"timeSlot"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	User      string `json:"user"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Location  string `json:"location,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Booking модель бронирования в ответе createBooking
type Booking struct {
	ID        flexString `json:"id"`
	Date      string     `json:"date"`
	TimeSlot  string     `json:"timeSlot"`
	StartTime string     `json:"startTime"`
	EndTime   string     `json:"endTime"`
	User      string     `json:"user"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Location  string     `json:"location"`
	Notes     string     `json:"notes"`
	Timestamp string     `json:"timestamp"`
}

// flexString принимает как строку, так и число (номер строки таблицы)
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = flexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = flexString(n.String())
	return nil
}

func fromDomainSlot(s domain.Slot) Slot {
	return Slot{
		Date:        s.Date,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		MaxQuota:    s.MaxQuota,
		BookedCount: s.BookedCount,
		Location:    s.Location,
	}
}

func (s Slot) toDomain() domain.Slot {
	return domain.Slot{
		Date:        s.Date,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
		MaxQuota:    s.MaxQuota,
		BookedCount: s.BookedCount,
		Location:    s.Location,
	}
}

func fromDomainBookingRequest(r domain.BookingRequest) BookingPayload {
	return BookingPayload{
		Date:      r.Date,
		TimeSlot:  r.TimeSlot,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		User:      r.User,
		Name:      r.Name,
		Email:     r.Email,
		Phone:     r.Phone,
		Location:  r.Location,
		Notes:     r.Notes,
	}
}

func (b Booking) toDomain() *domain.Booking {
	return &domain.Booking{
		ID:        string(b.ID),
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
