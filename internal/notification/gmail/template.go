package gmail

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

//go:embed templates/booking_confirmation.html
var confirmationHTML string

var confirmationTemplate = template.Must(template.New("booking_confirmation").Parse(confirmationHTML))

var thaiMonths = [...]string{
	"มกราคม", "กุมภาพันธ์", "มีนาคม", "เมษายน", "พฤษภาคม", "มิถุนายน",
	"กรกฎาคม", "สิงหาคม", "กันยายน", "ตุลาคม", "พฤศจิกายน", "ธันวาคม",
}

// buddhistEraOffset разница между буддийским и григорианским летоисчислением
const buddhistEraOffset = 543

type confirmationData struct {
	Name         string
	Email        string
	Phone        string
	Date         string
	Time         string
	Location     string
	Notes        string
	ContactEmail string
}

// renderConfirmation рендерит HTML тело письма
func renderConfirmation(b *domain.Booking, contactEmail string) (string, error) {
	data := confirmationData{
		Name:         b.Name,
		Email:        b.Email,
		Phone:        b.Phone,
		Date:         thaiLongDate(b.Date),
		Time:         fmt.Sprintf("%s - %s", b.StartTime, b.EndTime),
		Location:     b.Location,
		Notes:        b.Notes,
		ContactEmail: contactEmail,
	}

	var buf bytes.Buffer
	if err := confirmationTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render confirmation: %w", err)
	}
	return buf.String(), nil
}

// confirmationSubject тема письма: "ยืนยันการจอง - d/m/yyyy HH:MM" (год буддийской эры)
func confirmationSubject(b *domain.Booking) string {
	return fmt.Sprintf("ยืนยันการจอง - %s %s", thaiShortDate(b.Date), b.StartTime)
}

// thaiLongDate форматирует YYYY-MM-DD как "15 มกราคม 2569"; нераспознанная дата возвращается как есть
func thaiLongDate(date string) string {
	t, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d %s %d", t.Day(), thaiMonths[t.Month()-1], t.Year()+buddhistEraOffset)
}

// thaiShortDate форматирует YYYY-MM-DD как "15/1/2569"
func thaiShortDate(date string) string {
	t, err := time.Parse(domain.DateFormat, date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%d/%d/%d", t.Day(), int(t.Month()), t.Year()+buddhistEraOffset)
}
