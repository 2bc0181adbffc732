package create_booking

import (
	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-SlotCalendar/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model.
// Имя и email проверяет use case: переполненный слот отклоняется раньше, чем пустые поля.
type CreateBookingRequest struct {
	Slot  handlers.SlotPayload `json:"slot"`
	Name  string               `json:"name"`
	Email string               `json:"email"`
	Phone string               `json:"phone,omitempty"`
	Notes string               `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	Booking          handlers.Booking      `json:"booking"`
	NotificationSent bool                  `json:"notificationSent"`
	Warning          string                `json:"warning,omitempty"`
	Calendar         handlers.CalendarView `json:"calendar"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() *createBooking.Request {
	return &createBooking.Request{
		Slot:  r.Slot.ToDomain(),
		Name:  r.Name,
		Email: r.Email,
		Phone: r.Phone,
		Notes: r.Notes,
	}
}
