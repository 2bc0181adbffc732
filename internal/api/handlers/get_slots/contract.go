package get_slots

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

type SlotService interface {
	List(ctx context.Context, startDate, endDate string) ([]domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
