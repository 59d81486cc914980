// Package instrumented wraps a core.Backend and records Prometheus metrics
// for every operation.
//
// Usage:
//
//	m := instrumented.NewMetrics(prometheus.DefaultRegisterer)
//	backend := instrumented.New(inner, m, "fileadmin")
//
// One Metrics value is shared by every wrapped backend; the storage label
// tells them apart.
package instrumented

import (
	"errors"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jmgilman/go/fsdriver/fs/core"
)

// Metrics holds the collectors shared by instrumented backends.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	bytes      *prometheus.CounterVec
}

// NewMetrics registers the backend collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		operations: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fsdriver_backend_operations_total",
				Help: "Total number of backend operations by storage, operation and status",
			},
			[]string{"storage", "operation", "status"},
		),
		duration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "fsdriver_backend_operation_duration_seconds",
				Help: "Duration of backend operations in seconds",
				Buckets: []float64{
					0.001, // 1ms
					0.01,  // 10ms
					0.1,   // 100ms
					1,     // 1s
					10,    // 10s
				},
			},
			[]string{"storage", "operation"},
		),
		bytes: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "fsdriver_backend_bytes_total",
				Help: "Total bytes read from or written to backends",
			},
			[]string{"storage", "direction"},
		),
	}
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// DefaultMetrics returns collectors registered once on
// prometheus.DefaultRegisterer.
func DefaultMetrics() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = NewMetrics(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// status classifies an operation result. Missing entries are an expected
// outcome of existence probes and are not counted as errors.
func status(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, core.ErrNotExist):
		return "not_found"
	case errors.Is(err, core.ErrUnsupported):
		return "unsupported"
	default:
		return "error"
	}
}

func (m *Metrics) observe(storage, op string, start time.Time, err error) {
	m.operations.WithLabelValues(storage, op, status(err)).Inc()
	m.duration.WithLabelValues(storage, op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) addBytes(storage, direction string, n int) {
	m.bytes.WithLabelValues(storage, direction).Add(float64(n))
}
