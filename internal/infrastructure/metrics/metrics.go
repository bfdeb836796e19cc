package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/janhq/jan-assistant/internal/domain/llm"
)

// Assistant metrics, registered with the default registry.
var (
	// Turn counters
	TurnsTotal *prometheus.CounterVec

	// Model call counters and latency
	ModelCallsTotal   *prometheus.CounterVec
	ModelCallDuration *prometheus.HistogramVec
	ModelTokensTotal  *prometheus.CounterVec

	// Tool call counters and latency
	ToolCallsTotal *prometheus.CounterVec
	ToolDuration   *prometheus.HistogramVec

	// External provider requests (search engines, email, calendar)
	ProviderRequestsTotal   *prometheus.CounterVec
	ExternalProviderLatency *prometheus.HistogramVec
)

func init() {
	TurnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "assistant",
			Name:      "turns_total",
			Help:      "Total user turns processed",
		},
		[]string{"status"},
	)

	ModelCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "assistant",
			Name:      "model_calls_total",
			Help:      "Total model API calls",
		},
		[]string{"status"},
	)

	ModelCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "assistant",
			Name:      "model_call_duration_seconds",
			Help:      "Model API call duration in seconds",
			Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"status"},
	)

	ModelTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "assistant",
			Name:      "model_tokens_total",
			Help:      "Tokens reported by the model API",
		},
		[]string{"direction"},
	)

	ToolCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "assistant",
			Name:      "tool_calls_total",
			Help:      "Total tool invocations",
		},
		[]string{"tool_name", "status"},
	)

	ToolDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "assistant",
			Name:      "tool_duration_seconds",
			Help:      "Tool execution duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"tool_name"},
	)

	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "jan",
			Subsystem: "assistant",
			Name:      "provider_requests_total",
			Help:      "Requests sent to external providers",
		},
		[]string{"operation", "provider", "status"},
	)

	ExternalProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "jan",
			Subsystem: "assistant",
			Name:      "external_provider_latency_seconds",
			Help:      "External provider response time in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"provider"},
	)

	prometheus.MustRegister(TurnsTotal)
	prometheus.MustRegister(ModelCallsTotal)
	prometheus.MustRegister(ModelCallDuration)
	prometheus.MustRegister(ModelTokensTotal)
	prometheus.MustRegister(ToolCallsTotal)
	prometheus.MustRegister(ToolDuration)
	prometheus.MustRegister(ProviderRequestsTotal)
	prometheus.MustRegister(ExternalProviderLatency)
}

// RecordToolCall records a tool invocation
func RecordToolCall(toolName, status string, durationSec float64) {
	if status == "" {
		status = "unknown"
	}
	ToolCallsTotal.WithLabelValues(toolName, status).Inc()
	ToolDuration.WithLabelValues(toolName).Observe(durationSec)
}

// RecordModelCall records one model API call and its token usage
func RecordModelCall(status string, durationSec float64, usage llm.Usage) {
	ModelCallsTotal.WithLabelValues(status).Inc()
	ModelCallDuration.WithLabelValues(status).Observe(durationSec)
	if usage.InputTokens > 0 {
		ModelTokensTotal.WithLabelValues("input").Add(float64(usage.InputTokens))
	}
	if usage.OutputTokens > 0 {
		ModelTokensTotal.WithLabelValues("output").Add(float64(usage.OutputTokens))
	}
}

// RecordTurn records a completed user turn
func RecordTurn(status string) {
	TurnsTotal.WithLabelValues(status).Inc()
}

// RecordProviderRequest records a request to an external provider
func RecordProviderRequest(operation, provider, status string) {
	ProviderRequestsTotal.WithLabelValues(operation, provider, status).Inc()
}

// RecordExternalProviderLatency records external provider response time
func RecordExternalProviderLatency(provider string, durationSec float64) {
	ExternalProviderLatency.WithLabelValues(provider).Observe(durationSec)
}

// Observer forwards registry and dialogue notifications to the collectors.
type Observer struct{}

// ToolCallFinished implements tool.Observer.
func (Observer) ToolCallFinished(name, status string, elapsed time.Duration) {
	RecordToolCall(name, status, elapsed.Seconds())
}

// ModelCallFinished implements dialogue.Observer.
func (Observer) ModelCallFinished(status string, elapsed time.Duration, usage llm.Usage) {
	RecordModelCall(status, elapsed.Seconds(), usage)
}

// TurnFinished implements dialogue.Observer.
func (Observer) TurnFinished(status string, _ int) {
	RecordTurn(status)
}
