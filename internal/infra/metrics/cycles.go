package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(cyclesTotal, cycleDurationSeconds, taskRetriesTotal, tasksReclaimedTotal) }

var cyclesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orchestrator_cycles_total",
		Help: "Completed orchestration cycles by overall outcome.",
	},
	[]string{"outcome"}, // success | partial | failure
)

var cycleDurationSeconds = prometheus.NewHistogram(
	prometheus.HistogramOpts{
		Name:    "orchestrator_cycle_duration_seconds",
		Help:    "Wall time of one full News->Review->Content cycle.",
		Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	},
)

var taskRetriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orchestrator_task_retries_total",
		Help: "In-cycle task retries by agent.",
	},
	[]string{"agent"},
)

func IncCycle(outcome string) {
	cyclesTotal.WithLabelValues(norm(outcome)).Inc()
}

func ObserveCycleDuration(seconds float64) {
	cycleDurationSeconds.Observe(seconds)
}

var tasksReclaimedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "orchestrator_tasks_reclaimed_total",
		Help: "Tasks returned to pending after being orphaned in running.",
	},
)

func IncTaskRetry(agent string) {
	taskRetriesTotal.WithLabelValues(norm(agent)).Inc()
}

func IncTasksReclaimed(n int) {
	tasksReclaimedTotal.Add(float64(n))
}
