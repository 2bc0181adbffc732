package save_slot

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/calendar"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/slots"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidSlot        = "слот не прошел проверку"
)

type Handler struct {
	service SlotService
	loc     *time.Location
	logger  Logger
}

func NewHandler(service SlotService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		logger:  logger,
	}
}

// Handle PUT /api/v1/admin/slots
// Создает слот или меняет вместимость существующего с той же составной идентичностью.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req handlers.SlotPayload
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot := req.ToDomain()
	if err := h.service.Save(r.Context(), slot); err != nil {
		var verrs slots.ValidationErrors
		if errors.As(err, &verrs) {
			h.logger.Warn("PUT /admin/slots - Validation failed: %v", err)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, handlers.ErrorResponse{
				Error:  msgInvalidSlot,
				Code:   domain.CodeValidationFailed,
				Fields: verrs,
			})
			return
		}

		h.logger.Error("PUT /admin/slots - Failed to save slot %s: %v", slot.Identity(), err)
		handlers.RespondDomainError(w, err)
		return
	}

	day, _ := calendar.ParseDay(slot.Date, h.loc)
	view := calendar.NewView(h.service, day)
	view.SetLocation(slot.Location)
	if err := view.Reconcile(r.Context()); err != nil {
		h.logger.Warn("PUT /admin/slots - Calendar refetch failed after %s: %v", slot.Identity(), err)
	}

	h.logger.Info("PUT /admin/slots - Slot saved: %s, maxQuota=%d", slot.Identity(), slot.MaxQuota)
	handlers.RespondJSON(w, http.StatusOK, SaveSlotResponse{
		Slot:     handlers.FromDomainSlot(slot),
		Calendar: handlers.FromView(view),
	})
}
