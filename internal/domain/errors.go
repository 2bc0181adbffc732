package domain

import "errors"

// Error codes exposed to clients.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeSlotFull         = "SLOT_FULL"
	CodeSlotNotFound     = "SLOT_NOT_FOUND"
	CodeDuplicateSlot    = "DUPLICATE_SLOT"
	CodeNetworkFailure   = "NETWORK_FAILURE"
	CodeRejected         = "REJECTED"
	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeAuthExpired      = "AUTH_EXPIRED"
	CodeInternal         = "INTERNAL_ERROR"
)

var (
	// ErrValidationFailed возвращается, когда обязательное поле бронирования пустое
	ErrValidationFailed = errors.New("validation failed")

	// ErrSlotFull возвращается, когда в слоте не осталось мест
	ErrSlotFull = errors.New("slot is full")

	// ErrSlotNotFound возвращается, когда слот с указанной составной идентичностью отсутствует
	ErrSlotNotFound = errors.New("slot not found")

	// ErrDuplicateSlot возвращается, когда несколько слотов имеют одинаковую идентичность
	ErrDuplicateSlot = errors.New("duplicate slot identity")

	// ErrNetworkFailure возвращается при ошибках транспорта, не-2xx или не-JSON ответах
	ErrNetworkFailure = errors.New("network failure")

	// ErrRejected возвращается, когда удаленный сервис отклонил операцию (success=false)
	ErrRejected = errors.New("rejected by remote service")

	// ErrAuthRequired возвращается, когда отправка уведомления невозможна без токена
	ErrAuthRequired = errors.New("authorization required")

	// ErrAuthExpired возвращается, когда токен отклонен и обновить его не удалось
	ErrAuthExpired = errors.New("authorization expired")
)

var codes = []struct {
	err  error
	code string
}{
	{ErrValidationFailed, CodeValidationFailed},
	{ErrSlotFull, CodeSlotFull},
	{ErrSlotNotFound, CodeSlotNotFound},
	{ErrDuplicateSlot, CodeDuplicateSlot},
	{ErrNetworkFailure, CodeNetworkFailure},
	{ErrRejected, CodeRejected},
	{ErrAuthRequired, CodeAuthRequired},
	{ErrAuthExpired, CodeAuthExpired},
}

// CodeOf maps err to its client-facing code. Unknown errors map to CodeInternal, nil to "".
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	for _, c := range codes {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return CodeInternal
}

// RejectedError carries the message of a remote store that refused an operation.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return ErrRejected.Error()
	}
	return e.Message
}

func (e *RejectedError) Unwrap() error {
	return ErrRejected
}
