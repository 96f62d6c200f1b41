package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	wireFrames = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "amqframe",
			Subsystem: "wire",
			Name:      "frames_total",
			Help:      "Total decoded frames.",
		},
		[]string{"node", "frame"},
	)
	wireBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "amqframe",
			Subsystem: "wire",
			Name:      "bytes_total",
			Help:      "Wire bytes consumed by decoded frames.",
		},
		[]string{"node"},
	)
	wireDecodeErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "amqframe",
			Subsystem: "wire",
			Name:      "decode_errors_total",
			Help:      "Fatal decode errors that terminated a connection.",
		},
		[]string{"node"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "amqframe",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total admin HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "amqframe",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Admin HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(wireFrames, wireBytes, wireDecodeErrors, httpRequests, httpDuration)
	})
}

func RecordFrame(node, kind string, wire int) {
	RegisterMetrics()
	wireFrames.WithLabelValues(node, kind).Inc()
	wireBytes.WithLabelValues(node).Add(float64(wire))
}

func RecordDecodeError(node string) {
	RegisterMetrics()
	wireDecodeErrors.WithLabelValues(node).Inc()
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}
