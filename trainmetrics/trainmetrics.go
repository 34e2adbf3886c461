// Package trainmetrics instruments the optimizer's pass loop for
// operators running training as a long-lived service, without forcing a
// library caller to link Prometheus.
package trainmetrics

// Recorder observes the progress of an optimization run. Callers that do
// not want metrics use Noop; optimize.New substitutes it for a nil
// Recorder.
type Recorder interface {
	// PassCompleted records one full shuffle-resplit pass: its 1-based
	// index, the resulting overall cost, and the improvement over the
	// cost before the pass (for the first pass, the cost before any
	// resplitting).
	PassCompleted(passIndex int, overallCost, improvement float64)
	// Converged records that the optimizer stopped, either because the
	// improvement did not exceed the convergence threshold or because
	// MaxPasses was reached, after the given number of passes.
	Converged(passCount int, finalCost float64)
}

type noop struct{}

func (noop) PassCompleted(int, float64, float64) {}
func (noop) Converged(int, float64)              {}

// Noop returns a Recorder whose methods do nothing, for callers that do
// not want training metrics.
func Noop() Recorder { return noop{} }
