package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is what the usecase and HTTP layers report to.
type Recorder interface {
	ReservationCreated(resourceType string)
	ReservationCancelled(resourceType string)
	ReservationConflict(resourceType string)
	InvariantViolation(invariant string)
	ReconcileRun(result string)
	ObserveRequest(method, route string, status int, seconds float64)
}

type Metrics struct {
	registry *prometheus.Registry

	reservationsCreated   *prometheus.CounterVec
	reservationsCancelled *prometheus.CounterVec
	reservationConflicts  *prometheus.CounterVec
	invariantViolations   *prometheus.CounterVec
	reconcileRuns         *prometheus.CounterVec
	requestDuration       *prometheus.HistogramVec
}

func New(namespace string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		reservationsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_created_total",
			Help:      "Reservations committed, by resource type.",
		}, []string{"resource_type"}),
		reservationsCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservations_cancelled_total",
			Help:      "Reservations moved to cancelled, by resource type.",
		}, []string{"resource_type"}),
		reservationConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_conflicts_total",
			Help:      "Reservation attempts rejected because the slot was occupied.",
		}, []string{"resource_type"}),
		invariantViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invariant_violations_total",
			Help:      "Bookkeeping drift detected between slots, reservations and availability counts.",
		}, []string{"invariant"}),
		reconcileRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reconcile_runs_total",
			Help:      "Availability reconciliation passes, by outcome.",
		}, []string{"result"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.reservationsCreated,
		m.reservationsCancelled,
		m.reservationConflicts,
		m.invariantViolations,
		m.reconcileRuns,
		m.requestDuration,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) ReservationCreated(resourceType string) {
	m.reservationsCreated.WithLabelValues(resourceType).Inc()
}

func (m *Metrics) ReservationCancelled(resourceType string) {
	m.reservationsCancelled.WithLabelValues(resourceType).Inc()
}

func (m *Metrics) ReservationConflict(resourceType string) {
	m.reservationConflicts.WithLabelValues(resourceType).Inc()
}

func (m *Metrics) InvariantViolation(invariant string) {
	m.invariantViolations.WithLabelValues(invariant).Inc()
}

func (m *Metrics) ReconcileRun(result string) {
	m.reconcileRuns.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveRequest(method, route string, status int, seconds float64) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(seconds)
}

// Nop discards everything.
type Nop struct{}

func (Nop) ReservationCreated(string)                   {}
func (Nop) ReservationCancelled(string)                 {}
func (Nop) ReservationConflict(string)                  {}
func (Nop) InvariantViolation(string)                   {}
func (Nop) ReconcileRun(string)                         {}
func (Nop) ObserveRequest(string, string, int, float64) {}
