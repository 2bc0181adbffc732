package notifications

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

const stateTTL = 10 * time.Minute

const (
	msgDisabled      = "отправка писем не настроена"
	msgInvalidState  = "некорректный или просроченный state"
	msgMissingCode   = "отсутствует код авторизации"
	msgAccessDenied  = "доступ к Gmail не предоставлен"
	msgExchangeError = "не удалось завершить авторизацию Gmail"
)

type Handler struct {
	authorizer Authorizer
	states     *stateStore
	logger     Logger
}

// NewHandler создает обработчик. authorizer == nil означает, что отправка писем не настроена.
func NewHandler(authorizer Authorizer, logger Logger) *Handler {
	return &Handler{
		authorizer: authorizer,
		states:     newStateStore(stateTTL),
		logger:     logger,
	}
}

// HandleStatus GET /api/v1/admin/notifications
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	resp := StatusResponse{Enabled: h.authorizer != nil}
	if resp.Enabled {
		resp.Authorized = h.authorizer.IsAuthorized(r.Context())
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}

// HandleAuthorize POST /api/v1/admin/notifications/authorize
func (h *Handler) HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	if h.authorizer == nil {
		h.logger.Warn("POST /admin/notifications/authorize - Gmail is not configured")
		handlers.RespondError(w, http.StatusServiceUnavailable, msgDisabled)
		return
	}

	authURL := h.authorizer.BeginAuthorization(h.states.issue())

	h.logger.Info("POST /admin/notifications/authorize - Consent URL issued")
	handlers.RespondJSON(w, http.StatusOK, AuthorizeResponse{AuthURL: authURL})
}

// HandleRevoke DELETE /api/v1/admin/notifications
func (h *Handler) HandleRevoke(w http.ResponseWriter, r *http.Request) {
	if h.authorizer == nil {
		handlers.RespondError(w, http.StatusServiceUnavailable, msgDisabled)
		return
	}

	if err := h.authorizer.Revoke(r.Context()); err != nil {
		h.logger.Error("DELETE /admin/notifications - Failed to revoke tokens: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /admin/notifications - Gmail authorization revoked")
	w.WriteHeader(http.StatusNoContent)
}

// HandleCallback GET /oauth2/callback?code=&state=
func (h *Handler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	if h.authorizer == nil {
		handlers.RespondError(w, http.StatusServiceUnavailable, msgDisabled)
		return
	}

	query := r.URL.Query()

	if oauthErr := query.Get("error"); oauthErr != "" {
		h.logger.Warn("GET /oauth2/callback - Consent refused: %s", oauthErr)
		handlers.RespondCode(w, http.StatusUnauthorized, domain.CodeAuthRequired, msgAccessDenied)
		return
	}

	if !h.states.consume(query.Get("state")) {
		h.logger.Warn("GET /oauth2/callback - Invalid state from %s", r.RemoteAddr)
		handlers.RespondBadRequest(w, msgInvalidState)
		return
	}

	code := query.Get("code")
	if code == "" {
		handlers.RespondBadRequest(w, msgMissingCode)
		return
	}

	if err := h.authorizer.CompleteAuthorization(r.Context(), code); err != nil {
		h.logger.Error("GET /oauth2/callback - Exchange failed: %v", err)
		handlers.RespondError(w, http.StatusBadGateway, msgExchangeError)
		return
	}

	h.logger.Info("GET /oauth2/callback - Gmail authorized")
	handlers.RespondJSON(w, http.StatusOK, StatusResponse{Enabled: true, Authorized: true})
}
