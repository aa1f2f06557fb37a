package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.OrderIngested("http")
	m.OrderIngested("http")
	m.OrderIngested("kafka")
	m.ExportFinished(ResultOK, "csv", 5, 1, 20*time.Millisecond)
	m.ExportFinished(ResultInvalid, "", 0, 0, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.ordersIngested.WithLabelValues("http")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersIngested.WithLabelValues("kafka")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues(ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.exports.WithLabelValues(ResultInvalid)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.exportedRows))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.missingOrders))
	assert.Equal(t, 1, testutil.CollectAndCount(m.exportDuration))
}
