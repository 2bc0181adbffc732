package slots

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// slotInput слот в форме, пригодной для проверки тегами
type slotInput struct {
	Date      string `validate:"required,datetime=2006-01-02"`
	StartTime string `validate:"required,datetime=15:04"`
	EndTime   string `validate:"required,datetime=15:04"`
	MaxQuota  int    `validate:"min=1"`
	Location  string `validate:"omitempty,known_location"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	// Регистрация на свежем экземпляре не может завершиться ошибкой для непустого тега
	_ = v.RegisterValidation("known_location", func(fl validator.FieldLevel) bool {
		return domain.IsKnownLocation(fl.Field().String())
	})
	return v
}

// validateSlot проверяет слот перед сохранением
func (s *Service) validateSlot(slot domain.Slot) error {
	in := slotInput{
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		MaxQuota:  slot.MaxQuota,
		Location:  slot.Location,
	}

	// Порядок startTime < endTime не проверяется: слот сохраняется как есть
	if err := s.validate.Struct(in); err != nil {
		return translate(err)
	}

	return nil
}

// validateIdentity проверяет только поля составного ключа (для удаления)
func (s *Service) validateIdentity(slot domain.Slot) error {
	if err := s.validate.StructPartial(slotInput{
		Date:      slot.Date,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Location:  slot.Location,
	}, "Date", "StartTime", "EndTime", "Location"); err != nil {
		return translate(err)
	}
	return nil
}

func translate(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrValidationFailed, err)
	}

	out := make(ValidationErrors, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: jsonName(fe.Field()), Message: message(fe)})
	}
	return out
}

func jsonName(field string) string {
	switch field {
	case "Date":
		return "date"
	case "StartTime":
		return "startTime"
	case "EndTime":
		return "endTime"
	case "MaxQuota":
		return "maxQuota"
	case "Location":
		return "location"
	default:
		return field
	}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "datetime":
		return fmt.Sprintf("must match layout %s", fe.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "known_location":
		return fmt.Sprintf("unknown location %q", fe.Value())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
