package get_slots

import "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"

// Query параметры запроса
type Query struct {
	StartDate string `validate:"required,datetime=2006-01-02"`
	EndDate   string `validate:"required,datetime=2006-01-02"`
}

// SlotsResponse HTTP response model
type SlotsResponse struct {
	Slots      []handlers.Slot `json:"slots"`
	FetchError string          `json:"fetchError,omitempty"`
}
