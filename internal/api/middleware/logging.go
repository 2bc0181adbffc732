package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

// RequestIDKey ключ идентификатора запроса в контексте
const RequestIDKey contextKey = "request_id"

// RequestIDHeader заголовок с идентификатором запроса
const RequestIDHeader = "X-Request-ID"

// RequestID возвращает идентификатор запроса из контекста
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}

// RequestLogging логирует начало и завершение каждого запроса.
// Идентификатор берется из X-Request-ID или генерируется и возвращается клиенту.
func RequestLogging(log Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, requestID)
			r = r.WithContext(context.WithValue(r.Context(), RequestIDKey, requestID))

			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)

			log.Info("%s %s -> %d (%dms) request_id=%s remote=%s",
				r.Method, r.URL.Path, rec.status, time.Since(start).Milliseconds(), requestID, r.RemoteAddr)
		})
	}
}
