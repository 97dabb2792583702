package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the dashboard.
type Metrics struct {
	RowsLoaded     prometheus.Gauge
	NullDates      prometheus.Gauge
	DatasetReady   prometheus.Gauge
	Recomputes     prometheus.Counter
	RecomputeError prometheus.Counter

	// Recompute cost.
	RecomputeDuration prometheus.Histogram
	FilteredRows      prometheus.Histogram

	// Memoization and rendering.
	Cache        *prometheus.CounterVec // labels: result={hit,miss}
	ChartRenders *prometheus.CounterVec // labels: chart, outcome={success,error,empty}
}

// NewMetrics creates and registers all dashboard metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsLoaded,
		m.NullDates,
		m.DatasetReady,
		m.Recomputes,
		m.RecomputeError,
		m.RecomputeDuration,
		m.FilteredRows,
		m.Cache,
		m.ChartRenders,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "unemployment_dashboard",
			Name:      "rows_loaded",
			Help:      "Rows held in the in-memory table.",
		}),
		NullDates: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "unemployment_dashboard",
			Name:      "null_dates",
			Help:      "Rows whose Date could not be parsed.",
		}),
		DatasetReady: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "unemployment_dashboard",
			Name:      "dataset_ready",
			Help:      "1 once the dataset is loaded, 0 otherwise.",
		}),
		Recomputes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "unemployment_dashboard",
			Name:      "recomputes_total",
			Help:      "Total dashboard recomputes requested.",
		}),
		RecomputeError: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "unemployment_dashboard",
			Name:      "recompute_errors_total",
			Help:      "Recomputes rejected or failed.",
		}),
		RecomputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "unemployment_dashboard",
			Name:      "recompute_duration_seconds",
			Help:      "Duration of a full filter and chart recompute.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		FilteredRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "unemployment_dashboard",
			Name:      "filtered_rows",
			Help:      "Rows surviving the region and state filter per recompute.",
			Buckets:   []float64{0, 10, 50, 100, 250, 500, 1000, 5000},
		}),
		Cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unemployment_dashboard",
			Name:      "cache_total",
			Help:      "Recompute cache lookups by result.",
		}, []string{"result"}),
		ChartRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "unemployment_dashboard",
			Name:      "chart_renders_total",
			Help:      "Chart image renders by chart and outcome.",
		}, []string{"chart", "outcome"}),
	}
}
