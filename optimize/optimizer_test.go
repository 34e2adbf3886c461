package optimize

import (
	"testing"

	"github.com/r0ller/morfessor/cost"
	"github.com/r0ller/morfessor/tree"
)

func TestOptimizerConvergesOnEmptyTree(t *testing.T) {
	t.Parallel()

	tr := tree.New(cost.Baseline, cost.DefaultParams())
	seed := uint64(42)
	opt := New(Config{ConvergenceThreshold: 0.01, Seed: &seed})

	passes, err := opt.Run(tr)
	if err != nil {
		t.Fatal(err)
	}
	if passes == 0 {
		t.Error("expected at least one pass even over an empty tree")
	}
}

func TestOptimizerIsDeterministicWithSameSeed(t *testing.T) {
	t.Parallel()

	// A slice, not a map, so both runs insert the words in the same order
	// and the seed is the only thing that could make them differ.
	words := []struct {
		word string
		freq int64
	}{
		{"reopening", 3}, {"retry", 5}, {"trying", 7}, {"opening", 2}, {"unopened", 4},
	}

	run := func(seed uint64) float64 {
		tr := tree.New(cost.BaselineFreqLength, cost.DefaultParams())
		for _, w := range words {
			tr.Initialize(w.word, w.freq)
		}
		opt := New(Config{ConvergenceThreshold: 1e-3, Seed: &seed, MaxPasses: 20})
		if _, err := opt.Run(tr); err != nil {
			t.Fatal(err)
		}
		return tr.Model().OverallCost()
	}

	first := run(7)
	second := run(7)
	if first != second {
		t.Errorf("same-seed runs diverged: %v vs %v", first, second)
	}
}

func TestOptimizerReducesOrHoldsOverallCost(t *testing.T) {
	t.Parallel()

	tr := tree.New(cost.BaselineFreqLength, cost.DefaultParams())
	words := map[string]int64{
		"walking": 4, "walked": 3, "walker": 2, "talking": 5, "talked": 6,
	}
	for w, f := range words {
		tr.Initialize(w, f)
	}
	// Run refreshes letter probabilities before its first pass; do the same
	// here so the baseline includes the morph-string cost Run will report.
	tr.Model().RefreshLetterProbabilities(tr.Leaves())
	before := tr.Model().OverallCost()

	seed := uint64(1)
	opt := New(Config{ConvergenceThreshold: 1e-3, Seed: &seed, MaxPasses: 10})
	if _, err := opt.Run(tr); err != nil {
		t.Fatal(err)
	}

	after := tr.Model().OverallCost()
	if after > before+1e-6 {
		t.Errorf("optimizer increased overall cost: %v -> %v", before, after)
	}
	if err := tr.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants after Run: %v", err)
	}
}
