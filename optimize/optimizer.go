package optimize

import (
	"math/rand/v2"

	"github.com/r0ller/morfessor/trainmetrics"
	"github.com/r0ller/morfessor/tree"
)

// Config controls the shuffle-resplit-converge pass loop.
type Config struct {
	// ConvergenceThreshold stops the loop once a pass improves the
	// overall cost by less than this many bits.
	ConvergenceThreshold float64
	// Seed makes the per-pass shuffle order reproducible. A nil Seed
	// draws entropy from the runtime, matching the reference
	// implementation's std::random_device-seeded std::mt19937.
	Seed *uint64
	// MaxPasses bounds the loop as a last resort against a threshold
	// that is never reached; 0 means unbounded.
	MaxPasses int
	// Metrics receives progress reports; a nil Metrics is replaced with
	// trainmetrics.Noop().
	Metrics trainmetrics.Recorder
}

// Optimizer runs Config's pass loop over a tree.Tree.
type Optimizer struct {
	cfg Config
	rng *rand.Rand
}

// New creates an Optimizer from cfg, replacing a nil Metrics with
// trainmetrics.Noop(). ConvergenceThreshold is used as given.
func New(cfg Config) *Optimizer {
	if cfg.Metrics == nil {
		cfg.Metrics = trainmetrics.Noop()
	}
	var rng *rand.Rand
	if cfg.Seed != nil {
		rng = rand.New(rand.NewPCG(*cfg.Seed, *cfg.Seed))
	} else {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Optimizer{cfg: cfg, rng: rng}
}

// Run snapshots the tree's current leaf keys once, then repeatedly
// reshuffles that same snapshot and resplits each key, stopping once a
// full pass improves the overall cost by less than ConvergenceThreshold
// (or MaxPasses is reached, if set). It returns the number of passes run.
//
// The key snapshot is taken once, before any splitting, and reused across
// every pass — mirroring the reference implementation's Optimize, which
// collects its key list once and reshuffles it in place. Resplit collapses
// an already-split key back to a leaf before searching, so a word chosen
// in an earlier pass is still reconsidered against the tree's latest
// global cost on every later pass instead of freezing after its first
// split.
//
// This is the Go shape of the reference implementation's Optimize:
// iterate, recompute a scalar (overall cost), stop when the delta drops
// below a threshold — the same convergence pattern the teacher's
// keywords/textrank.go uses for PageRank.
func (o *Optimizer) Run(t *tree.Tree) (int, error) {
	keys := leafKeys(t)

	t.Model().RefreshLetterProbabilities(t.Leaves())
	oldCost := t.Model().OverallCost()
	newCost := oldCost
	passes := 0

	for {
		shuffled := shuffleKeys(keys, o.rng)

		oldCost = newCost
		for _, key := range shuffled {
			if !t.Contains(key) {
				// A prior Resplit in this same pass may have folded key
				// into a shared child or removed it entirely.
				continue
			}
			if err := Resplit(t, key); err != nil {
				return passes, err
			}
		}

		t.Model().RefreshLetterProbabilities(t.Leaves())
		newCost = t.Model().OverallCost()
		passes++

		improvement := oldCost - newCost
		o.cfg.Metrics.PassCompleted(passes, newCost, improvement)

		if improvement <= o.cfg.ConvergenceThreshold {
			break
		}
		if o.cfg.MaxPasses > 0 && passes >= o.cfg.MaxPasses {
			break
		}
	}

	o.cfg.Metrics.Converged(passes, newCost)
	return passes, nil
}

// leafKeys snapshots the tree's leaf keys once, before any splitting, for
// Run to reuse and reshuffle across every pass.
func leafKeys(t *tree.Tree) []string {
	leaves := t.Leaves()
	keys := make([]string, len(leaves))
	for i, lf := range leaves {
		keys[i] = lf.Morph
	}
	return keys
}
