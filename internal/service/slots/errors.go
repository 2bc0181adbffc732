package slots

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// FieldError описывает одно нарушенное правило валидации
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors набор ошибок валидации слота, совместим с domain.ErrValidationFailed через errors.Is
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	messages := make([]string, 0, len(v))
	for _, e := range v {
		messages = append(messages, e.Error())
	}
	return fmt.Sprintf("%s: %s", domain.ErrValidationFailed, strings.Join(messages, "; "))
}

func (v ValidationErrors) Unwrap() error {
	return domain.ErrValidationFailed
}
