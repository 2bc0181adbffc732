package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// SlotStore интерфейс хранилища, фиксирующего бронирование
type SlotStore interface {
	SubmitBooking(ctx context.Context, req domain.BookingRequest) (*domain.Booking, error)
}

// Notifier интерфейс отправки подтверждения бронирования
type Notifier interface {
	IsAuthorized(ctx context.Context) bool
	Notify(ctx context.Context, booking *domain.Booking) bool
}

// Metrics интерфейс счетчиков бронирований
type Metrics interface {
	ObserveBooking(result string)
	ObserveNotification(sent bool)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
