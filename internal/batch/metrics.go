package batch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts rendered frames. A nil *Metrics records nothing.
type Metrics struct {
	frames *prometheus.CounterVec
	render prometheus.Histogram
}

// NewMetrics creates the batch metrics and registers them with reg when it
// is non-nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		frames: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sector",
			Subsystem: "batch",
			Name:      "frames_total",
			Help:      "Frames processed, by result.",
		}, []string{"result"}),
		render: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sector",
			Subsystem: "batch",
			Name:      "frame_seconds",
			Help:      "Time to render, encode and write one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 14),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.frames, m.render)
	}
	return m
}

func (m *Metrics) observe(r Result, elapsed time.Duration) {
	if m == nil {
		return
	}
	result := "ok"
	if !r.Success {
		result = "error"
	}
	m.frames.WithLabelValues(result).Inc()
	m.render.Observe(elapsed.Seconds())
}
