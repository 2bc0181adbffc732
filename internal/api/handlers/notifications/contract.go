package notifications

import "context"

// Authorizer управление OAuth авторизацией отправки писем
type Authorizer interface {
	IsAuthorized(ctx context.Context) bool
	BeginAuthorization(state string) string
	CompleteAuthorization(ctx context.Context, code string) error
	Revoke(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
