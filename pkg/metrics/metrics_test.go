package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	m := New("slot-calendar", prometheus.NewRegistry())

	m.ObserveBooking("OK")
	m.ObserveBooking("OK")
	m.ObserveBooking("SLOT_FULL")
	m.ObserveNotification(true)
	m.ObserveNotification(false)
	m.ObserveFetchFailure("NETWORK_FAILURE")
	m.ObserveDuplicates(2)
	m.ObserveDuplicates(0)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("OK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingsTotal.WithLabelValues("SLOT_FULL")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("sent")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsTotal.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SlotFetchFailures.WithLabelValues("NETWORK_FAILURE")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.DuplicateSlots))
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveBooking("OK")
		m.ObserveNotification(true)
		m.ObserveFetchFailure("NETWORK_FAILURE")
		m.ObserveDuplicates(1)
	})
}
