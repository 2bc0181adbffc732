package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BookingsTotal      *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
	SlotFetchFailures  *prometheus.CounterVec
	DuplicateSlots     prometheus.Counter

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
}

// New creates the collectors and registers them in reg.
// Pass prometheus.DefaultRegisterer in production and prometheus.NewRegistry() in tests.
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		BookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_total",
			Help:        "Booking attempts by outcome code",
			ConstLabels: constLabels,
		}, []string{"result"}),

		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_notifications_total",
			Help:        "Booking confirmation e-mails by outcome",
			ConstLabels: constLabels,
		}, []string{"result"}),

		SlotFetchFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_fetch_failures_total",
			Help:        "Failed slot fetches by error code",
			ConstLabels: constLabels,
		}, []string{"code"}),

		DuplicateSlots: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slot_duplicate_identities_total",
			Help:        "Slots sharing a composite identity seen in fetched data",
			ConstLabels: constLabels,
		}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),

		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the database pool",
			ConstLabels: constLabels,
		}),

		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingsTotal,
		m.NotificationsTotal,
		m.SlotFetchFailures,
		m.DuplicateSlots,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
	)

	return m
}

// ObserveBooking counts a booking attempt. Safe on a nil receiver.
func (m *Metrics) ObserveBooking(result string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(result).Inc()
}

// ObserveNotification counts a confirmation e-mail outcome. Safe on a nil receiver.
func (m *Metrics) ObserveNotification(sent bool) {
	if m == nil {
		return
	}
	result := "sent"
	if !sent {
		result = "failed"
	}
	m.NotificationsTotal.WithLabelValues(result).Inc()
}

// ObserveFetchFailure counts a failed slot fetch. Safe on a nil receiver.
func (m *Metrics) ObserveFetchFailure(code string) {
	if m == nil {
		return
	}
	m.SlotFetchFailures.WithLabelValues(code).Inc()
}

// ObserveDuplicates counts slots with a clashing identity. Safe on a nil receiver.
func (m *Metrics) ObserveDuplicates(n int) {
	if m == nil || n == 0 {
		return
	}
	m.DuplicateSlots.Add(float64(n))
}
