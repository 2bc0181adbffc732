package delete_slot

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

type SlotService interface {
	Delete(ctx context.Context, slot domain.Slot) error
	List(ctx context.Context, startDate, endDate string) ([]domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
