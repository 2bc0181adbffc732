package get_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

type failingService struct{}

func (failingService) List(context.Context, string, string) ([]domain.Slot, error) {
	return []domain.Slot{}, domain.ErrNetworkFailure
}

type storeService struct{ store *memory.Store }

func (s storeService) List(ctx context.Context, start, end string) ([]domain.Slot, error) {
	return s.store.FetchSlots(ctx, start, end)
}

func get(h *Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle(t *testing.T) {
	h := NewHandler(storeService{store: memory.NewStore(memory.DefaultFixtures())}, logger.NewNop())

	rec := get(h, "/api/v1/slots?startDate=2026-01-16&endDate=2026-01-16")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SlotsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Slots, 1)
	assert.Equal(t, "09:00", resp.Slots[0].StartTime)
	assert.Equal(t, 3, resp.Slots[0].Available)
	assert.Equal(t, domain.LocationBangkok, resp.Slots[0].Location)
	assert.Empty(t, resp.FetchError)
}

func TestHandle_FetchFailure(t *testing.T) {
	h := NewHandler(failingService{}, logger.NewNop())

	rec := get(h, "/api/v1/slots?startDate=2026-01-01&endDate=2026-01-31")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"slots":[],"fetchError":"NETWORK_FAILURE"}`, rec.Body.String())
}

func TestHandle_InvalidRange(t *testing.T) {
	h := NewHandler(failingService{}, logger.NewNop())

	for _, target := range []string{
		"/api/v1/slots",
		"/api/v1/slots?startDate=2026-01-01",
		"/api/v1/slots?startDate=01.01.2026&endDate=2026-01-31",
		"/api/v1/slots?startDate=2026-02-01&endDate=2026-01-31",
	} {
		assert.Equal(t, http.StatusBadRequest, get(h, target).Code, target)
	}
}
