package slotservice

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
	"github.com/m04kA/SMC-SlotCalendar/pkg/logger"
)

var ict = time.FixedZone("ICT", 7*60*60)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second, ict, logger.NewNop())
}

func TestFetchSlots_Success(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "getSlots", r.URL.Query().Get("action"))
		assert.Equal(t, "2026-01-01", r.URL.Query().Get("startDate"))
		assert.Equal(t, "2026-01-31", r.URL.Query().Get("endDate"))

		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"date":"2026-01-15","startTime":"10:00","endTime":"11:00","maxQuota":10,"bookedCount":5},
			{"date":"2026-01-14T17:00:00.000Z","startTime":"2026-01-15T06:00:00.000Z","endTime":"2026-01-15T07:00:00.000Z","maxQuota":5,"location":"Rayong"}
		]}`)
	})

	slots, err := client.FetchSlots(context.Background(), "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, slots, 2)

	assert.Equal(t, "2026-01-15", slots[0].Date)
	assert.Equal(t, 5, slots[0].Booked())
	assert.Equal(t, domain.LocationBangkok, slots[0].LocationOrDefault())

	assert.Equal(t, "2026-01-15", slots[1].Date)
	assert.Equal(t, "13:00", slots[1].StartTime)
	assert.Equal(t, "14:00", slots[1].EndTime)
	assert.Nil(t, slots[1].BookedCount)
	assert.Equal(t, domain.LocationRayong, slots[1].Location)
}

func TestFetchSlots_UnparsableTimestampPassedThrough(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"date":"2026-01-15T??","startTime":"10:00","endTime":"11:00","maxQuota":3}
		]}`)
	})

	slots, err := client.FetchSlots(context.Background(), "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, slots, 1)
	assert.Equal(t, "2026-01-15T??", slots[0].Date)
	assert.Equal(t, "10:00", slots[0].StartTime)
}

func TestFetchSlots_MalformedRowSkipped(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"success":true,"data":[
			{"date":"2026-01-15","startTime":"10:00","endTime":"11:00","maxQuota":10},
			{"date":"2026-01-15","startTime":"12:00","endTime":"13:00","maxQuota":"ten"},
			"not a slot",
			{"date":"2026-01-16","startTime":"09:00","endTime":"10:00","maxQuota":2,"bookedCount":2}
		]}`)
	})

	slots, err := client.FetchSlots(context.Background(), "2026-01-01", "2026-01-31")
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "10:00", slots[0].StartTime)
	assert.Equal(t, "2026-01-16", slots[1].Date)
	assert.True(t, domain.IsFull(slots[1]))
}

func TestFetchSlots_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "non-2xx status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: domain.ErrNetworkFailure,
		},
		{
			name: "non-JSON body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, "<html>Sign in</html>")
			},
			wantErr: domain.ErrNetworkFailure,
		},
		{
			name: "data is not an array",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"success":true,"data":{"date":"2026-01-15"}}`)
			},
			wantErr: domain.ErrNetworkFailure,
		},
		{
			name: "remote refusal",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = io.WriteString(w, `{"success":false,"error":"Sheet not found"}`)
			},
			wantErr: domain.ErrRejected,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			slots, err := client.FetchSlots(context.Background(), "2026-01-01", "2026-01-31")
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			assert.NotNil(t, slots)
			assert.Empty(t, slots)
		})
	}
}

func TestFetchSlots_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := NewClient(srv.URL, time.Second, ict, logger.NewNop())
	slots, err := client.FetchSlots(context.Background(), "2026-01-01", "2026-01-31")

	assert.ErrorIs(t, err, domain.ErrNetworkFailure)
	assert.Equal(t, domain.CodeNetworkFailure, domain.CodeOf(err))
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestSubmitBooking(t *testing.T) {
	req := domain.BookingRequest{
		Date:      "2026-01-15",
		TimeSlot:  "10:00-11:00",
		StartTime: "10:00",
		EndTime:   "11:00",
		User:      "Somchai",
		Name:      "Somchai",
		Email:     "somchai@example.com",
		Location:  domain.LocationBangkok,
	}

	t.Run("posts action envelope as plain text", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "text/plain;charset=utf-8", r.Header.Get("Content-Type"))

			var body struct {
				Action  string          `json:"action"`
				Payload json.RawMessage `json:"payload"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "createBooking", body.Action)

			var payload BookingPayload
			require.NoError(t, json.Unmarshal(body.Payload, &payload))
			assert.Equal(t, "10:00-11:00", payload.TimeSlot)
			assert.Equal(t, "Somchai", payload.User)
			assert.Empty(t, payload.Phone)

			_, _ = io.WriteString(w, `{"success":true,"data":{"id":42,"name":"Somchai","timestamp":"2026-01-10T03:00:00.000Z"}}`)
		})

		booking, err := client.SubmitBooking(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "42", booking.ID)
		assert.Equal(t, "Somchai", booking.Name)
		assert.Equal(t, "2026-01-10T03:00:00.000Z", booking.Timestamp)
	})

	t.Run("remote verdict is returned verbatim", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":false,"error":"Slot is fully booked"}`)
		})

		booking, err := client.SubmitBooking(context.Background(), req)
		require.Error(t, err)
		assert.Nil(t, booking)
		assert.ErrorIs(t, err, domain.ErrRejected)
		assert.Equal(t, "Slot is fully booked", err.Error())
	})

	t.Run("missing data yields empty record", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":true}`)
		})

		booking, err := client.SubmitBooking(context.Background(), req)
		require.NoError(t, err)
		require.NotNil(t, booking)
		assert.Empty(t, booking.ID)
	})
}

func TestUpsertAndDeleteSlot(t *testing.T) {
	var actions []string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Action  string `json:"action"`
			Payload Slot   `json:"payload"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		actions = append(actions, body.Action)
		assert.Equal(t, "2026-01-16", body.Payload.Date)
		assert.Equal(t, 3, body.Payload.MaxQuota)
		_, _ = io.WriteString(w, `{"success":true}`)
	})

	slot := domain.Slot{Date: "2026-01-16", StartTime: "09:00", EndTime: "10:00", MaxQuota: 3, Location: domain.LocationRayong}

	require.NoError(t, client.UpsertSlot(context.Background(), slot))
	require.NoError(t, client.DeleteSlot(context.Background(), slot))
	assert.Equal(t, []string{"saveSlot", "deleteSlot"}, actions)
}

func TestNormalizeSlot(t *testing.T) {
	tests := []struct {
		name   string
		in     Slot
		want   Slot
		wantOK bool
	}{
		{
			name:   "plain fields untouched",
			in:     Slot{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:00"},
			want:   Slot{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:00"},
			wantOK: true,
		},
		{
			name:   "midnight local day from UTC instant",
			in:     Slot{Date: "2026-01-14T17:00:00.000Z", StartTime: "09:00", EndTime: "10:00"},
			want:   Slot{Date: "2026-01-15", StartTime: "09:00", EndTime: "10:00"},
			wantOK: true,
		},
		{
			name:   "time cells serialized against epoch day",
			in:     Slot{Date: "2026-01-15", StartTime: "1899-12-30T03:00:00.000Z", EndTime: "1899-12-30T04:30:00.000Z"},
			want:   Slot{Date: "2026-01-15", StartTime: "10:00", EndTime: "11:30"},
			wantOK: true,
		},
		{
			name:   "broken timestamp passes through",
			in:     Slot{Date: "2026-01-14T17:00:00.000Z", StartTime: "Tomorrow", EndTime: "11:00"},
			want:   Slot{Date: "2026-01-14T17:00:00.000Z", StartTime: "Tomorrow", EndTime: "11:00"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := normalizeSlot(tt.in, ict)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlexString(t *testing.T) {
	var b Booking
	require.NoError(t, json.Unmarshal([]byte(`{"id":"bk-7"}`), &b))
	assert.Equal(t, flexString("bk-7"), b.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":17}`), &b))
	assert.Equal(t, flexString("17"), b.ID)

	require.NoError(t, json.Unmarshal([]byte(`{"id":null}`), &b))
	assert.Equal(t, flexString(""), b.ID)
}
