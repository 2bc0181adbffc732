package create_booking

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/calendar"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
)

type Handler struct {
	useCase CreateBookingUseCase
	slots   SlotService
	loc     *time.Location
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, slots SlotService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		slots:   slots,
		loc:     loc,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := handlers.Validate(&req.Slot); err != nil {
		h.logger.Warn("POST /bookings - Invalid slot: %v", err)
		handlers.RespondValidation(w, err)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest())
	if err != nil {
		code := domain.CodeOf(err)
		if code == domain.CodeInternal {
			h.logger.Error("POST /bookings - Failed to create booking: slot=%s, error=%v", domain.IdentityOf(req.Slot.ToDomain()), err)
		} else {
			h.logger.Warn("POST /bookings - Booking refused: slot=%s, code=%s", domain.IdentityOf(req.Slot.ToDomain()), code)
		}
		handlers.RespondDomainError(w, err)
		return
	}

	// После фиксации календарь загружается заново; кэш не правится на месте
	day, err := calendar.ParseDay(result.Booking.Date, h.loc)
	if err != nil {
		day, _ = calendar.ParseDay(req.Slot.Date, h.loc)
	}
	view := calendar.NewView(h.slots, day)
	view.SetLocation(result.Booking.Location)
	if err := view.Reconcile(r.Context()); err != nil {
		h.logger.Warn("POST /bookings - Calendar refetch failed after booking_id=%s: %v", result.Booking.ID, err)
	}

	response := BookingResponse{
		Booking:          handlers.FromDomainBooking(result.Booking),
		NotificationSent: result.NotificationSent,
		Warning:          result.Warning,
		Calendar:         handlers.FromView(view),
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%s, slot=%s, notification_sent=%t",
		result.Booking.ID, domain.IdentityOf(req.Slot.ToDomain()), result.NotificationSent)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
