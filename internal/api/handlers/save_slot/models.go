package save_slot

import "github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"

// SaveSlotResponse HTTP response model
type SaveSlotResponse struct {
	Slot     handlers.Slot         `json:"slot"`
	Calendar handlers.CalendarView `json:"calendar"`
}
