// Package metrics exposes prometheus instrumentation for the simulated operations.
package metrics

import (
	"strconv"
	"time"

	"github.com/guudz-audit-ledger/internal/platform/simulation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the registry, scoring and cross-chain simulators.
type Metrics struct {
	// Simulated operation latency by operation
	OperationLatency *prometheus.HistogramVec

	// Simulated operation outcomes by operation and outcome
	OperationOutcome *prometheus.CounterVec

	// Ledger transactions by status
	LedgerTransactions *prometheus.GaugeVec

	// Finished uploads by terminal status
	UploadsFinished *prometheus.CounterVec

	// HTTP requests by route and status code
	HTTPRequests *prometheus.HistogramVec
}

// New registers all metrics on reg. Pass prometheus.DefaultRegisterer in processes
// and a fresh prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		OperationLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "guudz_simulated_operation_duration_seconds",
			Help:    "Duration of simulated provider operations including artificial latency",
			Buckets: []float64{0.01, 0.1, 0.5, 0.8, 1, 1.5, 2, 2.5, 3, 5},
		}, []string{"operation"}),

		OperationOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "guudz_simulated_operation_outcomes_total",
			Help: "Total simulated operations by outcome",
		}, []string{"operation", "outcome"}), // outcome: success, fault, error, cancelled

		LedgerTransactions: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "guudz_ledger_transactions",
			Help: "Cross-chain transactions held by the ledger by status",
		}, []string{"status"}),

		UploadsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "guudz_uploads_finished_total",
			Help: "Simulated document uploads that reached a terminal status",
		}, []string{"status"}),

		HTTPRequests: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "guudz_http_request_duration_seconds",
			Help:    "Duration of HTTP requests served by the registry API",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveOperation records one simulated operation.
func (m *Metrics) ObserveOperation(op simulation.Operation, outcome string, elapsed time.Duration) {
	if m != nil {
		m.OperationLatency.WithLabelValues(string(op)).Observe(elapsed.Seconds())
		m.OperationOutcome.WithLabelValues(string(op), outcome).Inc()
	}
}

// SetLedgerCounts replaces the per-status ledger gauges.
func (m *Metrics) SetLedgerCounts(counts map[string]int) {
	if m != nil {
		m.LedgerTransactions.Reset()
		for status, n := range counts {
			m.LedgerTransactions.WithLabelValues(status).Set(float64(n))
		}
	}
}

// IncrementUploadFinished records an upload reaching status.
func (m *Metrics) IncrementUploadFinished(status string) {
	if m != nil {
		m.UploadsFinished.WithLabelValues(status).Inc()
	}
}

// ObserveHTTPRequest records one served request. route is the matched pattern, not the raw path.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m != nil {
		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
	}
}
