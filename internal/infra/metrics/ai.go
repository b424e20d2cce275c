package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(aiCallsTotal, aiCallLatencyMs) }

var aiCallsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ai_calls_total",
		Help: "AI capability calls by operation and serving mode.",
	},
	[]string{"op", "mode"}, // op: summarize|sentiment|categorize; mode: live|fallback
)

var aiCallLatencyMs = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "ai_call_latency_ms",
		Help:    "AI call latency distribution in milliseconds.",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000, 10000},
	},
	[]string{"op", "mode"},
)

func ObserveAICall(op, mode string, latencyMs float64) {
	aiCallsTotal.WithLabelValues(norm(op), norm(mode)).Inc()
	aiCallLatencyMs.WithLabelValues(norm(op), norm(mode)).Observe(latencyMs)
}
