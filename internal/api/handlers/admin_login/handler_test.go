package admin_login

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

func TestHandle(t *testing.T) {
	h := NewHandler("911", logger.NewNop())

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "correct passcode", body: `{"passcode":"911"}`, want: http.StatusOK},
		{name: "wrong passcode", body: `{"passcode":"119"}`, want: http.StatusUnauthorized},
		{name: "missing passcode", body: `{}`, want: http.StatusBadRequest},
		{name: "malformed", body: `passcode=911`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
