package delete_slot

import (
	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// DeleteSlotRequest удаляемый слот; используется только составная идентичность,
// остальные поля слота из ответа API допускаются и игнорируются
type DeleteSlotRequest struct {
	handlers.SlotPayload
}

// DeleteSlotResponse HTTP response model
type DeleteSlotResponse struct {
	Calendar handlers.CalendarView `json:"calendar"`
}

func (r *DeleteSlotRequest) ToDomain() domain.Slot {
	return domain.Slot{
		Date:      r.Date,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
		Location:  r.Location,
	}
}
