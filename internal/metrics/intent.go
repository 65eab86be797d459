package metrics

import "github.com/prometheus/client_golang/prometheus"

// Intent extraction Prometheus metrics.
var (
	IntentRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "intent_requests_total",
			Help:      "Total number of intent extraction requests",
		},
		[]string{"provider", "model", "status"},
	)

	IntentRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prodsearch",
			Name:      "intent_request_duration_seconds",
			Help:      "Intent extraction request duration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"provider", "model"},
	)

	IntentTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "intent_tokens_total",
			Help:      "Total intent extraction tokens consumed",
		},
		[]string{"provider", "model", "type"},
	)

	IntentErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "intent_errors_total",
			Help:      "Total intent extraction errors",
		},
		[]string{"provider", "model", "error_type"},
	)

	// IntentUnmatchedTotal counts responses without a tool call (unfiltered catalog).
	IntentUnmatchedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "intent_unmatched_total",
			Help:      "Intent responses that produced no structured criteria",
		},
		[]string{"provider", "model"},
	)

	IntentBudgetTokensRemaining = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "prodsearch",
			Name:      "intent_budget_tokens_remaining",
			Help:      "Remaining intent token budget",
		},
		[]string{"provider", "period"},
	)

	CriteriaCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prodsearch",
			Name:      "criteria_cache_total",
			Help:      "Criteria cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)
)

var intentMetricsRegistered bool

// RegisterIntentMetrics registers Prometheus intent metrics. Must be called once from main.
func RegisterIntentMetrics() {
	if intentMetricsRegistered {
		return
	}
	prometheus.MustRegister(IntentRequestsTotal)
	prometheus.MustRegister(IntentRequestDuration)
	prometheus.MustRegister(IntentTokensTotal)
	prometheus.MustRegister(IntentErrorsTotal)
	prometheus.MustRegister(IntentUnmatchedTotal)
	prometheus.MustRegister(IntentBudgetTokensRemaining)
	prometheus.MustRegister(CriteriaCacheTotal)
	intentMetricsRegistered = true
}
