// Package optimize implements the greedy search that turns an
// unsegmented lexicon into a locally MDL-optimal segmentation: Resplit
// re-evaluates a single morph's best split point, and Optimizer drives
// repeated shuffled passes of Resplit over the whole lexicon until the
// overall cost stops improving.
package optimize

import (
	"math/rand/v2"

	"github.com/r0ller/morfessor/tree"
)

// Resplit re-evaluates morph's best split point from scratch: it removes
// morph from t as a leaf, tries every interior split index, and keeps
// whichever split (if any) strictly lowers the tree's overall cost,
// recursing into the winning children so the search is applied
// transitively. If no split improves on leaving morph unsplit, morph is
// restored as a leaf unchanged.
//
// This mirrors the reference implementation's ResplitNode: recalculating
// the split on every visit — rather than caching a previous verdict —
// lets the quality of an old split benefit from splits chosen elsewhere
// in the lexicon since the last time this morph was visited.
func Resplit(t *tree.Tree, morph string) error {
	if morph == "" {
		return nil
	}

	existing, ok := t.Get(morph)
	if !ok {
		return nil
	}

	if existing.HasChildren() {
		// morph was split on an earlier pass; collapse it back to a leaf
		// so its old split is reconsidered against the tree's current
		// global cost rather than frozen forever after its first visit.
		if err := t.Unsplit(morph); err != nil {
			return err
		}
		existing, ok = t.Get(morph)
		if !ok {
			return nil
		}
	}

	freq := existing.Count
	bestCost := t.Model().OverallCost()
	bestIndex := 0

	if err := t.AdjustCount(morph, -freq); err != nil {
		return err
	}

	for index := 1; index < len(morph); index++ {
		left, right := morph[:index], morph[index:]
		if err := t.AdjustCount(left, freq); err != nil {
			return err
		}
		if err := t.AdjustCount(right, freq); err != nil {
			return err
		}

		if newCost := t.Model().OverallCost(); newCost < bestCost {
			bestCost = newCost
			bestIndex = index
		}

		if err := t.AdjustCount(left, -freq); err != nil {
			return err
		}
		if err := t.AdjustCount(right, -freq); err != nil {
			return err
		}
	}

	if err := t.AdjustCount(morph, freq); err != nil {
		return err
	}
	if bestIndex == 0 {
		return nil
	}

	if err := t.Split(morph, bestIndex); err != nil {
		return err
	}
	left, right := morph[:bestIndex], morph[bestIndex:]
	if err := Resplit(t, left); err != nil {
		return err
	}
	return Resplit(t, right)
}

// shuffleKeys returns a fresh, randomly ordered copy of keys using rng.
func shuffleKeys(keys []string, rng *rand.Rand) []string {
	shuffled := make([]string, len(keys))
	copy(shuffled, keys)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}
