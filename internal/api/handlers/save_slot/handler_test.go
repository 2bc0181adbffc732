package save_slot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/api/handlers"
	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SlotCalendar/internal/service/slots"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
	"github.com/m04kA/SMC-SlotCalendar/pkg/metrics"
)

var ict = time.FixedZone("ICT", 7*60*60)

func newTestHandler() (*Handler, *memory.Store) {
	store := memory.NewStore(memory.DefaultFixtures())
	var m *metrics.Metrics
	return NewHandler(slots.NewService(store, m, logger.NewNop()), ict, logger.NewNop()), store
}

func put(h *Handler, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPut, "/api/v1/admin/slots", strings.NewReader(body)))
	return rec
}

func TestHandle_UpdatesExistingQuota(t *testing.T) {
	h, store := newTestHandler()

	rec := put(h, `{"date":"2026-01-15","startTime":"13:00","endTime":"14:00","maxQuota":8}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SaveSlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 3, store.Len())
	require.Len(t, resp.Calendar.Slots, 2)
	updated := resp.Calendar.Slots[1]
	assert.Equal(t, "13:00", updated.StartTime)
	assert.Equal(t, 8, updated.MaxQuota)
	assert.Equal(t, 5, updated.BookedCount, "booked count survives a quota change")
	assert.Equal(t, 3, updated.Available)
}

func TestHandle_InsertsNewSlot(t *testing.T) {
	h, store := newTestHandler()

	rec := put(h, `{"date":"2026-01-20","startTime":"15:00","endTime":"16:00","maxQuota":4,"location":"Rayong"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SaveSlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, 4, store.Len())
	assert.Equal(t, "2026-01-20", resp.Calendar.Date)
	assert.Equal(t, domain.LocationRayong, resp.Calendar.Location)
	require.Len(t, resp.Calendar.Slots, 1)
	assert.Equal(t, 0, resp.Calendar.Slots[0].BookedCount)
}

func TestHandle_Invalid(t *testing.T) {
	h, store := newTestHandler()

	rec := put(h, `{"date":"2026-01-20","startTime":"16:00","endTime":"15:00","maxQuota":0,"location":"Phuket"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, domain.CodeValidationFailed, body.Code)
	assert.NotEmpty(t, body.Fields)
	assert.Equal(t, 3, store.Len())

	assert.Equal(t, http.StatusBadRequest, put(h, `{"date":`).Code)
}

func TestHandle_AcceptsSlotAsServed(t *testing.T) {
	h, store := newTestHandler()

	served := handlers.FromDomainSlot(memory.DefaultFixtures()[1])
	served.MaxQuota = 6
	body, err := json.Marshal(served)
	require.NoError(t, err)

	rec := put(h, string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp SaveSlotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, 6, resp.Slot.MaxQuota)
	assert.Equal(t, 1, resp.Calendar.Slots[1].Available)
}
