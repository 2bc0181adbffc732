package delete_slot

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
	msgInvalidIdentity    = "некорректная идентичность слота"
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

// Handle DELETE /api/v1/admin/slots
// Удаление отсутствующего слота завершается успешно.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req DeleteSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("DELETE /admin/slots - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	slot := req.ToDomain()
	if err := h.service.Delete(r.Context(), slot); err != nil {
		var verrs slots.ValidationErrors
		if errors.As(err, &verrs) {
			h.logger.Warn("DELETE /admin/slots - Validation failed: %v", err)
			handlers.RespondJSON(w, http.StatusUnprocessableEntity, handlers.ErrorResponse{
				Error:  msgInvalidIdentity,
				Code:   domain.CodeValidationFailed,
				Fields: verrs,
			})
			return
		}

		h.logger.Error("DELETE /admin/slots - Failed to delete slot %s: %v", slot.Identity(), err)
		handlers.RespondDomainError(w, err)
		return
	}

	day, _ := calendar.ParseDay(slot.Date, h.loc)
	view := calendar.NewView(h.service, day)
	view.SetLocation(slot.Location)
	if err := view.Reconcile(r.Context()); err != nil {
		h.logger.Warn("DELETE /admin/slots - Calendar refetch failed after %s: %v", slot.Identity(), err)
	}

	h.logger.Info("DELETE /admin/slots - Slot deleted: %s", slot.Identity())
	handlers.RespondJSON(w, http.StatusOK, DeleteSlotResponse{Calendar: handlers.FromView(view)})
}
