// Package metrics records Prometheus metrics for tool calls and model
// requests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "insight"

// Recorder holds the insight metrics. Each Recorder registers its
// collectors on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
	llmRequests  *prometheus.CounterVec
	llmDuration  *prometheus.HistogramVec
	llmTokens    *prometheus.CounterVec
}

// NewRecorder creates a recorder on a fresh registry that also carries the
// Go runtime and process collectors.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		toolCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tool_calls_total",
				Help:      "Total number of MCP tool calls by tool, phase and status",
			},
			[]string{"tool", "phase", "status"},
		),
		toolDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "tool_call_duration_seconds",
				Help:      "Duration of MCP tool calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"tool"},
		),
		llmRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_requests_total",
				Help:      "Total number of LLM requests by model, status and error type",
			},
			[]string{"model", "status", "error_type"},
		),
		llmDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "llm_request_duration_seconds",
				Help:      "Duration of LLM requests in seconds",
				Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
			},
			[]string{"model"},
		),
		llmTokens: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "llm_tokens_total",
				Help:      "Estimated number of tokens sent to and received from the LLM",
			},
			[]string{"model", "type"},
		),
	}
}

// Handler serves the recorder's registry in the Prometheus exposition
// format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveToolCall records one tool call.
func (r *Recorder) ObserveToolCall(tool, phase, status string, elapsed time.Duration) {
	r.toolCalls.WithLabelValues(tool, phase, status).Inc()
	r.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// ObserveRequest records one model request. Token counts are only recorded
// for successful requests.
func (r *Recorder) ObserveRequest(model string, promptTokens, completionTokens int, errorType string, elapsed time.Duration) {
	status := statusSuccess
	if errorType != "" {
		status = statusError
	}
	r.llmRequests.WithLabelValues(model, status, errorType).Inc()
	r.llmDuration.WithLabelValues(model).Observe(elapsed.Seconds())

	if errorType == "" {
		r.llmTokens.WithLabelValues(model, "prompt").Add(float64(promptTokens))
		r.llmTokens.WithLabelValues(model, "completion").Add(float64(completionTokens))
	}
}
