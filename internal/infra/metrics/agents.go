package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(agentRunsTotal, articlesIngestedTotal) }

var agentRunsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "agent_runs_total",
		Help: "Agent invocations by agent name and outcome.",
	},
	[]string{"agent", "outcome"},
)

var articlesIngestedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "articles_ingested_total",
		Help: "Articles written by the news agent.",
	},
)

func IncAgentRun(agent, outcome string) {
	agentRunsTotal.WithLabelValues(norm(agent), norm(outcome)).Inc()
}

func IncArticleIngested() {
	articlesIngestedTotal.Inc()
}
