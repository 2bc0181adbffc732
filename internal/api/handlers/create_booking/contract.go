package create_booking

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	createBooking "github.com/m04kA/SMC-SlotCalendar/internal/usecase/create_booking"
)

type CreateBookingUseCase interface {
	Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error)
}

// SlotService источник слотов для повторной загрузки календаря после бронирования
type SlotService interface {
	List(ctx context.Context, startDate, endDate string) ([]domain.Slot, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
