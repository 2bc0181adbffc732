package admin_login

import (
	"net/http"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/api/middleware"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgWrongPasscode      = "неверный код доступа"
)

type Handler struct {
	passcode string
	logger   Logger
}

func NewHandler(passcode string, logger Logger) *Handler {
	return &Handler{
		passcode: passcode,
		logger:   logger,
	}
}

// Handle POST /api/v1/admin/login
// Проверяет код доступа; тот же код клиент передает в X-Admin-Passcode в административных запросах.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if err := handlers.Validate(&req); err != nil {
		handlers.RespondValidation(w, err)
		return
	}

	if !middleware.CheckPasscode(req.Passcode, h.passcode) {
		h.logger.Warn("POST /admin/login - Wrong passcode from %s", r.RemoteAddr)
		handlers.RespondUnauthorized(w, msgWrongPasscode)
		return
	}

	h.logger.Info("POST /admin/login - Admin authenticated from %s", r.RemoteAddr)
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{Authenticated: true})
}
