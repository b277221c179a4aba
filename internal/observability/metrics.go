package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cmdspec",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"service", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cmdspec",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path", "status"},
	)
	toolBuilds = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cmdspec",
			Subsystem: "tool",
			Name:      "builds_total",
			Help:      "Command constructions per tool.",
		},
		[]string{"service", "tool"},
	)
	toolRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cmdspec",
			Subsystem: "tool",
			Name:      "runs_total",
			Help:      "Command executions per tool and exit code.",
		},
		[]string{"service", "tool", "exit"},
	)
	toolRunDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cmdspec",
			Subsystem: "tool",
			Name:      "run_duration_seconds",
			Help:      "Command execution duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "tool"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, toolBuilds, toolRuns, toolRunDuration)
	})
}

func RecordHTTPRequest(service, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(service, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(service, method, path, statusLabel).Observe(duration.Seconds())
}

func RecordToolBuild(service, tool string) {
	RegisterMetrics()
	toolBuilds.WithLabelValues(service, tool).Inc()
}

func RecordToolRun(service, tool string, exitCode int32, duration time.Duration) {
	RegisterMetrics()
	toolRuns.WithLabelValues(service, tool, strconv.FormatInt(int64(exitCode), 10)).Inc()
	toolRunDuration.WithLabelValues(service, tool).Observe(duration.Seconds())
}
