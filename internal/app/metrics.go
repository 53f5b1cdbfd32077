package app

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/klabast/wb-services/kleiderspende/internal/donation"
)

// Metrics tracks registrations and rejected submissions
type Metrics struct {
	registry        *prometheus.Registry
	Registrations   *prometheus.CounterVec
	RejectedSubmits prometheus.Counter
	FieldErrors     *prometheus.CounterVec
}

// NewMetrics registers all metrics on a private registry so several servers
// can coexist in one process
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kleiderspende_registrations_total",
			Help: "Total number of accepted donation registrations",
		}, []string{"mode"}),
		RejectedSubmits: factory.NewCounter(prometheus.CounterOpts{
			Name: "kleiderspende_rejected_submissions_total",
			Help: "Total number of submissions rejected by validation",
		}),
		FieldErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "kleiderspende_field_errors_total",
			Help: "Validation errors by form field",
		}, []string{"field"}),
	}
}

// IncrementRegistrations records an accepted registration
func (m *Metrics) IncrementRegistrations(mode donation.DeliveryMode) {
	m.Registrations.WithLabelValues(string(mode)).Inc()
}

// ObserveRejected records a rejected submission and its failing fields
func (m *Metrics) ObserveRejected(errs donation.FieldErrors) {
	m.RejectedSubmits.Inc()
	for field := range errs {
		m.FieldErrors.WithLabelValues(string(field)).Inc()
	}
}

// Handler exposes the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
