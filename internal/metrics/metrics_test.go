package metrics

import (
	"testing"
	"time"

	"github.com/guudz-audit-ledger/internal/platform/simulation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOperation(simulation.OpTransferAsset, simulation.OutcomeSuccess, 3*time.Second)
	m.ObserveOperation(simulation.OpTransferAsset, simulation.OutcomeSuccess, time.Second)
	m.ObserveOperation(simulation.OpTransferAsset, simulation.OutcomeFault, time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.OperationOutcome.WithLabelValues("transfer_asset", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OperationOutcome.WithLabelValues("transfer_asset", "fault")))

	m.SetLedgerCounts(map[string]int{"pending": 3, "completed": 7})
	assert.Equal(t, 3.0, testutil.ToFloat64(m.LedgerTransactions.WithLabelValues("pending")))
	m.SetLedgerCounts(map[string]int{"completed": 10})
	assert.Equal(t, 1, testutil.CollectAndCount(m.LedgerTransactions))

	m.IncrementUploadFinished("error")
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UploadsFinished.WithLabelValues("error")))

	m.ObserveHTTPRequest("GET", "/api/v1/networks", 200, 10*time.Millisecond)
	assert.Equal(t, 1, testutil.CollectAndCount(m.HTTPRequests))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveOperation(simulation.OpVerifyDocument, simulation.OutcomeSuccess, time.Second)
		m.SetLedgerCounts(map[string]int{"pending": 1})
		m.IncrementUploadFinished("completed")
		m.ObserveHTTPRequest("GET", "/health", 200, time.Millisecond)
	})
}

func TestNew_SeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
