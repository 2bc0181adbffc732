package get_calendar

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/calendar"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

const (
	msgInvalidMonth    = "некорректный месяц, ожидается YYYY-MM"
	msgInvalidDate     = "некорректная дата, ожидается YYYY-MM-DD"
	msgUnknownLocation = "неизвестная локация"
)

type Handler struct {
	service SlotService
	loc     *time.Location
	now     func() time.Time
	logger  Logger
}

func NewHandler(service SlotService, loc *time.Location, logger Logger) *Handler {
	return &Handler{
		service: service,
		loc:     loc,
		now:     time.Now,
		logger:  logger,
	}
}

// Handle GET /api/v1/calendar?month=YYYY-MM&date=YYYY-MM-DD&location=Bangkok
//
// Без параметров показывается текущий месяц с выбранным сегодняшним днем.
// Если задан только month, выбирается первый день месяца; если только date, показывается ее месяц.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	location := query.Get("location")
	if location != "" && !domain.IsKnownLocation(location) {
		h.logger.Warn("GET /calendar - Unknown location: %q", location)
		handlers.RespondBadRequest(w, msgUnknownLocation)
		return
	}

	month, day, ok := h.resolve(w, query.Get("month"), query.Get("date"))
	if !ok {
		return
	}

	view := calendar.NewView(h.service, h.now().In(h.loc))
	view.SetLocation(location)
	view.SelectDay(day.Format(domain.DateFormat))
	if err := view.ShowMonth(r.Context(), month); err != nil {
		h.logger.Warn("GET /calendar - Slots unavailable for %s: %v", month.Format(domain.MonthFormat), err)
	}

	resp := handlers.FromView(view)
	h.logger.Info("GET /calendar - month=%s, date=%s, location=%s, visible=%d",
		resp.Month, resp.Date, resp.Location, len(resp.Slots))
	handlers.RespondJSON(w, http.StatusOK, resp)
}

func (h *Handler) resolve(w http.ResponseWriter, monthParam, dateParam string) (time.Time, time.Time, bool) {
	var month, day time.Time

	if dateParam != "" {
		d, err := calendar.ParseDay(dateParam, h.loc)
		if err != nil {
			h.logger.Warn("GET /calendar - %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return month, day, false
		}
		day = d
	}

	if monthParam != "" {
		m, err := calendar.ParseMonth(monthParam, h.loc)
		if err != nil {
			h.logger.Warn("GET /calendar - %v", err)
			handlers.RespondBadRequest(w, msgInvalidMonth)
			return month, day, false
		}
		month = m
	}

	switch {
	case month.IsZero() && day.IsZero():
		day = h.now().In(h.loc)
		month = day
	case month.IsZero():
		month = day
	case day.IsZero():
		day = month
	}

	return month, day, true
}
