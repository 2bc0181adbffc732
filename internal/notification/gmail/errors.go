package gmail

import "errors"

var (
	// ErrTokenStore возвращается при ошибке хранилища токенов
	ErrTokenStore = errors.New("gmail: token store error")

	// ErrExchange возвращается, когда код авторизации не удалось обменять на токены
	ErrExchange = errors.New("gmail: authorization code exchange failed")

	// ErrSendFailed возвращается, когда Gmail API отклонил письмо
	ErrSendFailed = errors.New("gmail: send failed")

	// ErrInvalidRecipient возвращается, когда адрес получателя не разбирается как одиночный адрес
	ErrInvalidRecipient = errors.New("gmail: invalid recipient address")
)

var errNoRefreshToken = errors.New("no refresh token stored")
