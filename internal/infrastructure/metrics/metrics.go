// Package metrics exposes Prometheus counters for commands and directory
// calls.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"esbBot/internal/domain"
)

type Metrics struct {
	// Labels: platform, command, outcome
	CommandCounter *prometheus.CounterVec

	// Labels: status (2xx|3xx|4xx|5xx|error)
	DirectoryRequestCounter *prometheus.CounterVec

	// Buckets: 0.05s, 0.1s, 0.25s, 0.5s, 1s, 2.5s, 5s, 10s, 30s
	DirectoryRequestDuration prometheus.Histogram
}

// NewMetrics registers every collector on reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CommandCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esbbot_commands_total",
				Help: "Chat commands routed, by platform, command and outcome",
			},
			[]string{"platform", "command", "outcome"},
		),
		DirectoryRequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "esbbot_directory_requests_total",
				Help: "TIAMP directory requests by status class",
			},
			[]string{"status"},
		),
		DirectoryRequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "esbbot_directory_request_duration_seconds",
				Help:    "Duration of TIAMP directory requests in seconds",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
	}
}

// CommandHandled counts a routed command. Unknown command names are folded
// into one label value so chat users cannot grow the series set.
func (m *Metrics) CommandHandled(platform domain.Platform, command, outcome string, known bool) {
	if !known {
		command = "unknown"
	}
	m.CommandCounter.WithLabelValues(string(platform), command, outcome).Inc()
}

// InstrumentFetcher wraps next so each call is counted and timed.
func (m *Metrics) InstrumentFetcher(next domain.DirectoryFetcher) domain.DirectoryFetcher {
	return &instrumentedFetcher{next: next, metrics: m}
}

type instrumentedFetcher struct {
	next    domain.DirectoryFetcher
	metrics *Metrics
}

func (f *instrumentedFetcher) Get(ctx context.Context, url string, proxies domain.Proxies) (*domain.DirectoryResponse, error) {
	start := time.Now()
	resp, err := f.next.Get(ctx, url, proxies)
	f.metrics.DirectoryRequestDuration.Observe(time.Since(start).Seconds())

	status := "error"
	if err == nil && resp != nil {
		status = statusClass(resp.StatusCode)
	}
	f.metrics.DirectoryRequestCounter.WithLabelValues(status).Inc()

	return resp, err
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "other"
	}
	return strconv.Itoa(code/100) + "xx"
}
