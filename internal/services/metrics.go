package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the Arthur assistant
type Metrics struct {
	// Chat requests processed (terminal outcome: "ok", "model_error", "loop_exceeded")
	ChatRequests *prometheus.CounterVec

	// Model rounds needed per chat request
	ChatRounds prometheus.Histogram

	// Tool executions by tool name and outcome ("ok" or the error kind)
	ToolExecutions *prometheus.CounterVec

	// Accumulated token usage by direction ("input", "output")
	TokensUsed *prometheus.CounterVec
}

// InitMetrics registers the Arthur metrics with the default registry.
// Call once at startup.
func InitMetrics() *Metrics {
	return &Metrics{
		ChatRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "roundtable_arthur_chat_requests_total",
			Help: "Total number of Arthur chat requests by terminal outcome",
		}, []string{"outcome"}),

		ChatRounds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "roundtable_arthur_chat_rounds",
			Help:    "Model round-trips needed per Arthur chat request",
			Buckets: []float64{1, 2, 3, 4, 5, 6, 8, 10},
		}),

		ToolExecutions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "roundtable_arthur_tool_executions_total",
			Help: "Total number of tool executions by tool and outcome",
		}, []string{"tool", "outcome"}),

		TokensUsed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "roundtable_arthur_tokens_total",
			Help: "Total model tokens consumed by direction",
		}, []string{"direction"}),
	}
}
