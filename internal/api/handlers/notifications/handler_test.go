package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

type fakeAuthorizer struct {
	authorized  bool
	lastState   string
	exchangeErr error
	codes       []string
	revoked     bool
}

func (f *fakeAuthorizer) IsAuthorized(context.Context) bool { return f.authorized }

func (f *fakeAuthorizer) BeginAuthorization(state string) string {
	f.lastState = state
	return "https://accounts.example.com/auth?state=" + url.QueryEscape(state)
}

func (f *fakeAuthorizer) CompleteAuthorization(_ context.Context, code string) error {
	f.codes = append(f.codes, code)
	if f.exchangeErr != nil {
		return f.exchangeErr
	}
	f.authorized = true
	return nil
}

func (f *fakeAuthorizer) Revoke(context.Context) error {
	f.revoked = true
	f.authorized = false
	return nil
}

func serve(fn http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	fn(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestAuthorizationFlow(t *testing.T) {
	auth := &fakeAuthorizer{}
	h := NewHandler(auth, logger.NewNop())

	rec := serve(h.HandleStatus, http.MethodGet, "/api/v1/admin/notifications")
	assert.JSONEq(t, `{"enabled":true,"authorized":false}`, rec.Body.String())

	rec = serve(h.HandleAuthorize, http.MethodPost, "/api/v1/admin/notifications/authorize")
	require.Equal(t, http.StatusOK, rec.Code)
	var authResp AuthorizeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &authResp))
	assert.Contains(t, authResp.AuthURL, url.QueryEscape(auth.lastState))

	callback := "/oauth2/callback?code=abc&state=" + url.QueryEscape(auth.lastState)
	rec = serve(h.HandleCallback, http.MethodGet, callback)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"abc"}, auth.codes)

	// state одноразовый
	rec = serve(h.HandleCallback, http.MethodGet, callback)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, auth.codes, 1)

	rec = serve(h.HandleStatus, http.MethodGet, "/api/v1/admin/notifications")
	assert.JSONEq(t, `{"enabled":true,"authorized":true}`, rec.Body.String())

	rec = serve(h.HandleRevoke, http.MethodDelete, "/api/v1/admin/notifications")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, auth.revoked)
}

func TestHandleCallback_Failures(t *testing.T) {
	auth := &fakeAuthorizer{exchangeErr: errors.New("invalid_grant")}
	h := NewHandler(auth, logger.NewNop())

	assert.Equal(t, http.StatusBadRequest,
		serve(h.HandleCallback, http.MethodGet, "/oauth2/callback?code=abc&state=forged").Code)

	assert.Equal(t, http.StatusUnauthorized,
		serve(h.HandleCallback, http.MethodGet, "/oauth2/callback?error=access_denied").Code)

	state := h.states.issue()
	assert.Equal(t, http.StatusBadGateway,
		serve(h.HandleCallback, http.MethodGet, "/oauth2/callback?code=abc&state="+state).Code)
	assert.False(t, auth.authorized)
}

func TestStateStore_Expires(t *testing.T) {
	s := newStateStore(time.Minute)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	state := s.issue()
	now = now.Add(2 * time.Minute)

	assert.False(t, s.consume(state))
}

func TestDisabled(t *testing.T) {
	h := NewHandler(nil, logger.NewNop())

	rec := serve(h.HandleStatus, http.MethodGet, "/api/v1/admin/notifications")
	assert.JSONEq(t, `{"enabled":false,"authorized":false}`, rec.Body.String())

	assert.Equal(t, http.StatusServiceUnavailable,
		serve(h.HandleAuthorize, http.MethodPost, "/api/v1/admin/notifications/authorize").Code)
}
