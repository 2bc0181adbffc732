package handlers

import (
	"github.com/m04kA/SMC-SlotCalendar/internal/calendar"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// Day сводка одного дня сетки месяца
type Day struct {
	Date         string `json:"date"`
	Slots        int    `json:"slots"`
	FreeSeats    int    `json:"freeSeats"`
	Availability bool   `json:"availability"`
}

// CalendarView состояние экрана календаря
type CalendarView struct {
	Month      string   `json:"month"`
	Date       string   `json:"date"`
	Location   string   `json:"location"`
	Locations  []string `json:"locations"`
	Days       []Day    `json:"days"`
	Slots      []Slot   `json:"slots"`
	FetchError string   `json:"fetchError,omitempty"`
}

// FromView переводит состояние calendar.View в представление API
func FromView(v *calendar.View) CalendarView {
	summary := v.MonthSummary()
	days := make([]Day, 0, len(summary))
	for _, d := range summary {
		days = append(days, Day{
			Date:         d.Date,
			Slots:        d.Slots,
			FreeSeats:    d.FreeSeats,
			Availability: d.HasAvailability(),
		})
	}

	out := CalendarView{
		Month:     v.Month().Format(domain.MonthFormat),
		Date:      v.SelectedDay(),
		Location:  v.Location(),
		Locations: domain.Locations,
		Days:      days,
		Slots:     FromDomainSlots(v.VisibleSlots()),
	}
	if err := v.LastError(); err != nil {
		out.FetchError = domain.CodeOf(err)
	}
	return out
}
