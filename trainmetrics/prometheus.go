package trainmetrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type prometheusRecorder struct {
	passOverallCost prometheus.Gauge
	passImprovement prometheus.Histogram
	passesTotal     prometheus.Counter
	convergedPasses prometheus.Gauge
}

// NewPrometheus returns a Recorder that registers its metrics against reg,
// so a caller such as cmd/morfessor owns its own registry (and can expose
// it at /metrics itself) instead of leaking into the global default
// registry.
func NewPrometheus(reg *prometheus.Registry) Recorder {
	factory := promauto.With(reg)

	return &prometheusRecorder{
		passOverallCost: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "morfessor",
			Subsystem: "train",
			Name:      "overall_cost",
			Help:      "Overall two-part MDL cost after the most recent optimization pass.",
		}),
		passImprovement: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "morfessor",
			Subsystem: "train",
			Name:      "pass_improvement_bits",
			Help:      "Reduction in overall cost achieved by a single optimization pass.",
			Buckets:   []float64{0.01, 0.1, 1, 10, 100, 1000, 10000},
		}),
		passesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "morfessor",
			Subsystem: "train",
			Name:      "passes_total",
			Help:      "Total number of shuffle-resplit passes run.",
		}),
		convergedPasses: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "morfessor",
			Subsystem: "train",
			Name:      "converged_pass_count",
			Help:      "Number of passes the most recent training run took to converge.",
		}),
	}
}

func (r *prometheusRecorder) PassCompleted(_ int, overallCost, improvement float64) {
	r.passOverallCost.Set(overallCost)
	if improvement > 0 {
		r.passImprovement.Observe(improvement)
	}
	r.passesTotal.Inc()
}

func (r *prometheusRecorder) Converged(passCount int, finalCost float64) {
	r.convergedPasses.Set(float64(passCount))
	r.passOverallCost.Set(finalCost)
}
