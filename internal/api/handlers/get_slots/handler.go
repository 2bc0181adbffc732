package get_slots

import (
	"net/http"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

const (
	msgInvalidRange = "startDate и endDate обязательны в формате YYYY-MM-DD"
	msgRangeOrder   = "startDate не может быть позже endDate"
)

type Handler struct {
	service SlotService
	logger  Logger
}

func NewHandler(service SlotService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/slots?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD
// Ошибка хранилища не приводит к ошибке ответа: возвращается пустой список и код в fetchError.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := Query{
		StartDate: r.URL.Query().Get("startDate"),
		EndDate:   r.URL.Query().Get("endDate"),
	}
	if err := handlers.Validate(&q); err != nil {
		h.logger.Warn("GET /slots - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRange)
		return
	}
	// строки YYYY-MM-DD сравниваются лексикографически
	if q.StartDate > q.EndDate {
		h.logger.Warn("GET /slots - Inverted range: %s..%s", q.StartDate, q.EndDate)
		handlers.RespondBadRequest(w, msgRangeOrder)
		return
	}

	slots, err := h.service.List(r.Context(), q.StartDate, q.EndDate)

	resp := SlotsResponse{Slots: handlers.FromDomainSlots(slots)}
	if err != nil {
		resp.FetchError = domain.CodeOf(err)
		h.logger.Warn("GET /slots - Degraded to empty list: %s..%s, code=%s", q.StartDate, q.EndDate, resp.FetchError)
	} else {
		h.logger.Info("GET /slots - Slots retrieved: %s..%s, count=%d", q.StartDate, q.EndDate, len(slots))
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
