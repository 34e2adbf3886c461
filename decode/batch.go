package decode

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Result pairs a decoded word with its segmentation, preserving the
// input order of SegmentAll regardless of which goroutine finished it.
type Result struct {
	Word   string
	Morphs []string
}

// SegmentAll decodes every word in words concurrently against the same
// immutable lexicon snapshot, bounded by concurrency goroutines (a
// concurrency <= 0 lets errgroup run every word in its own goroutine).
// Each call to Segment only reads lex, never mutates it, so fan-out here
// requires no locking on the caller's side — it is the concurrency
// model spec'd for decoding over a frozen, trained lexicon.
func SegmentAll(ctx context.Context, lex Lexicon, words []string, concurrency int) ([]Result, error) {
	results := make([]Result, len(words))

	g, gCtx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}

	for i, word := range words {
		i, word := i, word
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = Result{Word: word, Morphs: Segment(lex, word)}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
