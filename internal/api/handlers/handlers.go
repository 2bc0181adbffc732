package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

const maxBodyBytes = 1 << 20

const msgInternalError = "internal server error"

// ErrorResponse тело ответа с ошибкой
type ErrorResponse struct {
	Error  string      `json:"error"`
	Code   string      `json:"code,omitempty"`
	Fields interface{} `json:"fields,omitempty"`
}

var validate = validator.New()

// DecodeJSON декодирует тело запроса в dst; неизвестные поля отклоняются
func DecodeJSON(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// Validate проверяет теги validate у DTO
func Validate(dst interface{}) error {
	return validate.Struct(dst)
}

// RespondJSON пишет data как JSON с указанным статусом
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// RespondError пишет ошибку с кодом, выведенным из статуса
func RespondError(w http.ResponseWriter, status int, msg string) {
	RespondJSON(w, status, ErrorResponse{Error: msg, Code: codeForStatus(status)})
}

// RespondCode пишет ошибку с явным кодом
func RespondCode(w http.ResponseWriter, status int, code, msg string) {
	RespondJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

func RespondBadRequest(w http.ResponseWriter, msg string) {
	RespondCode(w, http.StatusBadRequest, domain.CodeValidationFailed, msg)
}

// RespondValidation пишет 400 с перечнем нарушенных правил DTO
func RespondValidation(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		RespondBadRequest(w, err.Error())
		return
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = fmt.Sprintf("failed on %s", fe.Tag())
	}
	RespondJSON(w, http.StatusBadRequest, ErrorResponse{
		Error:  "request validation failed",
		Code:   domain.CodeValidationFailed,
		Fields: fields,
	})
}

func RespondUnauthorized(w http.ResponseWriter, msg string) {
	RespondError(w, http.StatusUnauthorized, msg)
}

func RespondNotFound(w http.ResponseWriter, msg string) {
	RespondCode(w, http.StatusNotFound, domain.CodeSlotNotFound, msg)
}

func RespondInternalError(w http.ResponseWriter) {
	RespondCode(w, http.StatusInternalServerError, domain.CodeInternal, msgInternalError)
}

// RespondDomainError пишет ошибку domain с HTTP статусом по ее коду.
// Текст отказа удаленного хранилища передается без изменений.
func RespondDomainError(w http.ResponseWriter, err error) {
	code := domain.CodeOf(err)
	status := StatusForCode(code)

	if status == http.StatusInternalServerError {
		RespondInternalError(w)
		return
	}

	msg := err.Error()
	var rejected *domain.RejectedError
	if errors.As(err, &rejected) {
		msg = rejected.Error()
	}

	RespondCode(w, status, code, msg)
}

// StatusForCode сопоставляет код ошибки domain и HTTP статус
func StatusForCode(code string) int {
	switch code {
	case domain.CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case domain.CodeSlotFull, domain.CodeRejected, domain.CodeDuplicateSlot:
		return http.StatusConflict
	case domain.CodeSlotNotFound:
		return http.StatusNotFound
	case domain.CodeNetworkFailure:
		return http.StatusBadGateway
	case domain.CodeAuthRequired, domain.CodeAuthExpired:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.CodeValidationFailed
	case http.StatusUnauthorized:
		return domain.CodeAuthRequired
	case http.StatusBadGateway:
		return domain.CodeNetworkFailure
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return domain.CodeInternal
	}
}
