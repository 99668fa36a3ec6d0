// Package metrics exposes classifier verdicts as Prometheus counters, so the
// effect of a configuration on telemetry volume can be watched.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/supergoodsystems/supergood-sanitizer/pkg/classifier"
)

// Recorder counts verdicts. A nil *Recorder is valid and records nothing.
type Recorder struct {
	Verdicts *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewRecorder creates the collectors and registers them with reg.
// A nil reg returns a nil Recorder.
func NewRecorder(reg prometheus.Registerer) (*Recorder, error) {
	if reg == nil {
		return nil, nil
	}

	verdicts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sanitizer_verdicts_total",
			Help: "Captured network calls by verdict and the rule that decided it",
		},
		[]string{"verdict", "rule"},
	)

	duration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sanitizer_request_duration_seconds",
			Help:    "Measured duration of captured network calls",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		},
		[]string{"verdict"},
	)

	for _, c := range []prometheus.Collector{verdicts, duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return &Recorder{Verdicts: verdicts, Duration: duration}, nil
}

// Observe records one verdict along with the measured duration in seconds.
func (r *Recorder) Observe(v classifier.Verdict, seconds float64) {
	if r == nil {
		return
	}
	label := verdictLabel(v)
	r.Verdicts.WithLabelValues(label, v.Rule().String()).Inc()
	if seconds > 0 {
		r.Duration.WithLabelValues(label).Observe(seconds)
	}
}

func verdictLabel(v classifier.Verdict) string {
	if v.Kept() {
		return "keep"
	}
	return "drop"
}
