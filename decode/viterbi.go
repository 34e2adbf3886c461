// Package decode implements Viterbi segmentation of words against a
// trained morph lexicon: given a word the optimizer never saw, find the
// split into known (or single-byte fallback) morphs with the lowest
// total cost under the lexicon's token-count distribution.
package decode

import "math"

// Lexicon is the read-only view of a trained segmentation tree that
// decoding needs. *tree.Tree satisfies it; it is expressed as an
// interface here so package decode does not need to import package tree
// just to read two things out of it.
type Lexicon interface {
	// LeafCount returns the current count of morph if it is a leaf, and
	// 0 (with ok false) otherwise — an internal node's own count is not a
	// valid token frequency for decoding purposes.
	LeafCount(morph string) (count int64, ok bool)
	// TotalMorphTokens is M, the sum of counts over all leaves.
	TotalMorphTokens() uint64
}

// Segment splits word into its lowest-cost sequence of known morphs
// using the natural-log Viterbi recurrence of the reference
// implementation's SegmentTestCorpus. Unlike the MDL cost model (which
// works in bits, base 2), decoding works in natural-log nats, matching
// the reference implementation exactly; the two are not meant to be
// compared directly.
//
// A byte that never appears as a single-character leaf in lex is still
// accepted as a length-1 morph, at a deliberately bad cost (see the
// bad/huge sentinels below) rather than making the word unsegmentable.
func Segment(lex Lexicon, word string) []string {
	n := len(word)
	if n == 0 {
		return nil
	}

	logTokenCount := math.Log(float64(lex.TotalMorphTokens()))
	// bad is the cost assigned to an unknown single-byte fallback morph;
	// huge is large enough that the recurrence never prefers stringing
	// together more than word-length-many such fallbacks over any
	// combination that uses at least one known morph.
	bad := float64(n+1) * logTokenCount
	huge := float64(n+1) * bad

	delta := make([]float64, n+1)
	psi := make([]int, n+1)

	for end := 1; end <= n; end++ {
		bestDelta := huge
		bestLength := 0

		for length := 1; length <= end; length++ {
			morph := word[end-length : end]

			var morphCost float64
			if count, ok := lex.LeafCount(morph); ok && count > 0 {
				morphCost = logTokenCount - math.Log(float64(count))
			} else if length == 1 {
				morphCost = bad
			} else {
				continue
			}

			candidate := delta[end-length] + morphCost
			if candidate < bestDelta {
				bestDelta = candidate
				bestLength = length
			}
		}

		delta[end] = bestDelta
		psi[end] = bestLength
	}

	var morphs []string
	for end := n; end > 0 && psi[end] != 0; end -= psi[end] {
		morphs = append(morphs, word[end-psi[end]:end])
	}
	reverse(morphs)
	return morphs
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}
