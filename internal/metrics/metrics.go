package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "b2_orders"

// Результаты выгрузки для лейбла result.
const (
	ResultOK            = "ok"
	ResultInvalid       = "invalid"
	ResultStoreError    = "store_error"
	ResultEncodingError = "encoding_error"
)

type Metrics struct {
	ordersIngested *prometheus.CounterVec
	exports        *prometheus.CounterVec
	exportedRows   prometheus.Counter
	missingOrders  prometheus.Counter
	exportDuration *prometheus.HistogramVec
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ordersIngested: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "orders_ingested_total",
			Help:      "Orders accepted into the store, by source.",
		}, []string{"source"}),
		exports: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Export requests, by result.",
		}, []string{"result"}),
		exportedRows: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exported_rows_total",
			Help:      "Data rows written to carrier export files.",
		}),
		missingOrders: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_missing_orders_total",
			Help:      "Selected order ids that were not found in the store.",
		}),
		exportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "export_duration_seconds",
			Help:      "Time to fetch orders and build the export file.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}, []string{"format"}),
	}
}

func (m *Metrics) OrderIngested(source string) {
	m.ordersIngested.WithLabelValues(source).Inc()
}

func (m *Metrics) ExportFinished(result, format string, rows, missing int, took time.Duration) {
	m.exports.WithLabelValues(result).Inc()
	if result != ResultOK {
		return
	}
	m.exportedRows.Add(float64(rows))
	m.missingOrders.Add(float64(missing))
	m.exportDuration.WithLabelValues(format).Observe(took.Seconds())
}
