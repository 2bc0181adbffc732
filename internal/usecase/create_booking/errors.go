package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

var (
	// ErrNameRequired возвращается, когда имя пустое или состоит из пробелов
	ErrNameRequired = fmt.Errorf("%w: name is required", domain.ErrValidationFailed)

	// ErrEmailRequired возвращается, когда email пустой или состоит из пробелов
	ErrEmailRequired = fmt.Errorf("%w: email is required", domain.ErrValidationFailed)

	// ErrEmailInvalid возвращается, когда email не является одиночным адресом RFC 5322
	ErrEmailInvalid = fmt.Errorf("%w: email is not a valid address", domain.ErrValidationFailed)

	// ErrLineBreak возвращается, когда имя, email или телефон содержат перевод строки
	ErrLineBreak = fmt.Errorf("%w: line breaks are not allowed in name, email or phone", domain.ErrValidationFailed)
)

// Результаты бронирования для метрик (помимо кодов ошибок domain)
const (
	resultAccepted = "accepted"
)

// warningNotificationFailed текст предупреждения, когда бронирование сохранено, а письмо не отправлено
const warningNotificationFailed = "booking saved, but the confirmation e-mail could not be sent"
