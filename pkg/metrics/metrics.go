package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	// method, path, status_code
	HTTPRequestsTotal *prometheus.CounterVec

	// method, path
	HTTPRequestDuration *prometheus.HistogramVec

	// outcome: committed, empty, limit, booked, bad_data
	BookingOutcomes *prometheus.CounterVec

	// job: clear_reservations, schedule_shows
	MaintenanceRows *prometheus.CounterVec

	// topic, status: success, failed
	EventsPublished *prometheus.CounterVec
}

// New registers the collectors with the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		BookingOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "booking_outcomes_total",
				Help: "Seat submissions by outcome",
			},
			[]string{"outcome"},
		),
		MaintenanceRows: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "maintenance_rows_total",
				Help: "Rows touched by maintenance jobs",
			},
			[]string{"job"},
		),
		EventsPublished: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "events_published_total",
				Help: "Domain events handed to the broker",
			},
			[]string{"topic", "status"},
		),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.BookingOutcomes,
		m.MaintenanceRows,
		m.EventsPublished,
	)

	return m
}

// The helpers below accept a nil receiver so callers can run without
// metrics.

func (m *Metrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.BookingOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveMaintenance(job string, rows int64) {
	if m == nil || rows <= 0 {
		return
	}
	m.MaintenanceRows.WithLabelValues(job).Add(float64(rows))
}

func (m *Metrics) ObservePublish(topic string, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failed"
	}
	m.EventsPublished.WithLabelValues(topic, status).Inc()
}
