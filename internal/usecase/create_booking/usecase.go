package create_booking

import (
	"context"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// UseCase use case для создания бронирования
type UseCase struct {
	store        SlotStore
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	store SlotStore,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		store:        store,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Последовательность строго линейная: проверка -> фиксация в хранилище -> уведомление.
// Ошибка уведомления не отменяет сохраненное бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: slot=%s, booked=%d/%d",
		req.Slot.Identity(), req.Slot.Booked(), req.Slot.MaxQuota)

	// 1. Проверка допустимости по снимку слота (без обращения к хранилищу)
	if err := checkAdmission(req); err != nil {
		uc.logger.Warn("CreateBooking: rejected before submit: %v", err)
		uc.metrics.ObserveBooking(domain.CodeOf(err))
		return nil, err
	}

	// 2. Фиксация в хранилище
	payload := buildPayload(req)
	booking, err := uc.store.SubmitBooking(ctx, payload)
	if err != nil {
		code := domain.CodeOf(err)
		if code == domain.CodeInternal || code == domain.CodeNetworkFailure {
			uc.logger.Error("CreateBooking: submit failed for slot=%s: %v", payload.Identity(), err)
		} else {
			uc.logger.Warn("CreateBooking: store rejected slot=%s: %v", payload.Identity(), err)
		}
		uc.metrics.ObserveBooking(code)
		return nil, err
	}

	booking = completeBooking(booking, payload, func() string {
		return domain.FormatTimestamp(uc.timeProvider.Now())
	})
	uc.metrics.ObserveBooking(resultAccepted)
	uc.logger.Info("CreateBooking: booking id=%s committed for slot=%s", booking.ID, payload.Identity())

	resp := &Response{Booking: booking}

	// 3. Уведомление (только если администратор авторизовал отправку)
	if uc.notifier == nil || !uc.notifier.IsAuthorized(ctx) {
		uc.logger.Info("CreateBooking: notifications not authorized, skipping e-mail for booking id=%s", booking.ID)
		return resp, nil
	}

	resp.NotificationSent = uc.notifier.Notify(ctx, booking)
	uc.metrics.ObserveNotification(resp.NotificationSent)
	if !resp.NotificationSent {
		uc.logger.Warn("CreateBooking: confirmation e-mail failed for booking id=%s", booking.ID)
		resp.Warning = warningNotificationFailed
	}

	return resp, nil
}
