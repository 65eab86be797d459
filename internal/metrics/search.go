package metrics

import "github.com/prometheus/client_golang/prometheus"

// Engine evaluation Prometheus metrics.
var (
	// SearchEvaluationsTotal counts evaluations by path (filter|extreme) and
	// outcome (match|empty). Empty results are answers, not errors.
	SearchEvaluationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "search_evaluations_total",
			Help:      "Total criteria evaluations against the catalog",
		},
		[]string{"path", "outcome"},
	)

	SearchResultSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "prodsearch",
			Name:      "search_result_size",
			Help:      "Number of products returned per evaluation",
			Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
	)

	CatalogProducts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "prodsearch",
			Name:      "catalog_products",
			Help:      "Number of products in the loaded catalog",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchEvaluationsTotal)
	prometheus.MustRegister(SearchResultSize)
	prometheus.MustRegister(CatalogProducts)
	searchMetricsRegistered = true
}
