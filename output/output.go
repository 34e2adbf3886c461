// Package output writes a trained segmentation lexicon in the plain and
// DOT formats of the reference implementation's print and print_dot.
package output

import (
	"fmt"
	"io"

	"github.com/r0ller/morfessor/tree"
)

// WritePlain writes "Overall cost: %.5f" followed by one "<count> <morph>"
// line per current leaf, sorted by morph string (the order of
// tree.Tree.Leaves).
func WritePlain(w io.Writer, t *tree.Tree) error {
	if _, err := fmt.Fprintf(w, "Overall cost: %.5f\n", t.Model().OverallCost()); err != nil {
		return err
	}
	for _, lf := range t.Leaves() {
		if _, err := fmt.Fprintf(w, "%d %s\n", lf.Count, lf.Morph); err != nil {
			return err
		}
	}
	return nil
}

// WriteSegmentations writes one whitespace-joined segmentation per line, in
// input order. Callers join a word's morphs (e.g. with strings.Join) before
// passing them in; this function only owns the one-segmentation-per-line
// framing.
func WriteSegmentations(w io.Writer, segs []string) error {
	for _, seg := range segs {
		if _, err := fmt.Fprintln(w, seg); err != nil {
			return err
		}
	}
	return nil
}

// WriteDOT writes t as a Graphviz digraph: one record node per lexicon
// entry (leaf and internal) labelled with its morph string and count, and
// one edge per parent-child link.
func WriteDOT(w io.Writer, t *tree.Tree) error {
	if _, err := fmt.Fprintln(w, "digraph segmentation_tree {"); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, `node [shape=record, fontname="Arial"]`); err != nil {
		return err
	}

	for _, n := range t.All() {
		if _, err := fmt.Fprintf(w, "%q [label=%q]\n", n.Morph, fmt.Sprintf("%s| %d", n.Morph, n.Count)); err != nil {
			return err
		}
		if n.Left != "" {
			if _, err := fmt.Fprintf(w, "%q -> %q\n", n.Morph, n.Left); err != nil {
				return err
			}
		}
		if n.Right != "" {
			if _, err := fmt.Fprintf(w, "%q -> %q\n", n.Morph, n.Right); err != nil {
				return err
			}
		}
	}

	_, err := fmt.Fprintln(w, "}")
	return err
}

