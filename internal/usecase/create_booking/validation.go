package create_booking

import (
	"fmt"
	"net/mail"
	"strings"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// checkAdmission решает, допустимо ли бронирование, до любого обращения к хранилищу.
// Заполненность проверяется первой: полный слот отклоняется независимо от имени и email.
func checkAdmission(req *Request) error {
	if domain.IsFull(req.Slot) {
		return fmt.Errorf("%w: %s (maxQuota=%d, booked=%d)",
			domain.ErrSlotFull, req.Slot.Identity(), req.Slot.MaxQuota, req.Slot.Booked())
	}

	if strings.TrimSpace(req.Name) == "" {
		return ErrNameRequired
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		return ErrEmailRequired
	}

	// значения попадают в заголовки письма
	if hasLineBreak(req.Name) || hasLineBreak(req.Email) || hasLineBreak(req.Phone) {
		return ErrLineBreak
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrEmailInvalid
	}

	return nil
}

func hasLineBreak(value string) bool {
	return strings.ContainsAny(value, "\r\n")
}

// buildPayload собирает запрос к хранилищу: метка времени "HH:MM-HH:MM" и отдельные
// start/end заполняются всегда, user дублирует name.
func buildPayload(req *Request) domain.BookingRequest {
	name := strings.TrimSpace(req.Name)

	return domain.BookingRequest{
		Date:      req.Slot.Date,
		TimeSlot:  req.Slot.TimeRange(),
		StartTime: req.Slot.StartTime,
		EndTime:   req.Slot.EndTime,
		User:      name,
		Name:      name,
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		Location:  req.Slot.LocationOrDefault(),
		Notes:     strings.TrimSpace(req.Notes),
	}
}

// completeBooking дополняет ответ хранилища полями запроса.
// Удаленный сервис может вернуть запись без части полей.
func completeBooking(booking *domain.Booking, payload domain.BookingRequest, now func() string) *domain.Booking {
	if booking == nil {
		booking = &domain.Booking{}
	}

	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}

	fill(&booking.Date, payload.Date)
	fill(&booking.TimeSlot, payload.TimeSlot)
	fill(&booking.StartTime, payload.StartTime)
	fill(&booking.EndTime, payload.EndTime)
	fill(&booking.User, payload.User)
	fill(&booking.Name, payload.Name)
	fill(&booking.Email, payload.Email)
	fill(&booking.Phone, payload.Phone)
	fill(&booking.Location, payload.Location)
	fill(&booking.Notes, payload.Notes)
	if booking.Timestamp == "" {
		booking.Timestamp = now()
	}

	return booking
}
