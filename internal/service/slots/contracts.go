package slots

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// SlotStore интерфейс хранилища слотов (удаленный сервис, память или PostgreSQL)
type SlotStore interface {
	FetchSlots(ctx context.Context, startDate, endDate string) ([]domain.Slot, error)
	UpsertSlot(ctx context.Context, slot domain.Slot) error
	DeleteSlot(ctx context.Context, slot domain.Slot) error
}

// Metrics интерфейс счетчиков сервиса
type Metrics interface {
	ObserveFetchFailure(code string)
	ObserveDuplicates(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
