// Package tree implements the segmentation lexicon: a table of morphs
// keyed by their string, mutated only through count-adjustment and split
// operations that keep an attached cost.Model in lockstep.
//
// Unlike the pointer-and-shared_ptr graph of the reference implementation,
// nodes here are held in a flat map[string]*Node keyed by morph string, and
// children are referenced by key rather than by pointer. Two internal
// nodes that happen to share a child string share the same map entry
// automatically; there is no separate reference count to keep in sync
// with the map, and no rehashing hazard from holding a pointer across a
// mutation, since a Go map never exposes pointers into its buckets.
//
// A Tree keeps the following invariants:
//
//	I1: for every internal node, both children's counts are >= the
//	    parent's count (a child may be shared by more than one parent).
//	I2: no leaf node has a count of zero; count-zero leaves are erased.
//	I3: the attached cost.Model's aggregate counts equal the sum of leaf
//	    counts (total tokens) and the number of leaves (unique types).
//	I4: the cost.Model's incrementally maintained scalars equal what a
//	    from-scratch recomputation over the current leaves would produce,
//	    for at least the scalars that do not depend on the once-per-pass
//	    letter probability cache (see cost.Model.RefreshLetterProbabilities).
//	I5: a node has both children or neither; a length-1 morph is always a
//	    leaf, since there is no interior split index for a single byte.
//
// A Tree is not safe for concurrent mutation; callers coordinate outside
// (see package optimize).
package tree

import (
	"sort"

	"github.com/r0ller/morfessor/cost"
)

// Node is one entry in the segmentation lexicon. Left and Right are empty
// strings for a leaf.
type Node struct {
	Morph string
	Count int64
	Left  string
	Right string
}

// HasChildren reports whether the node has been split.
func (n Node) HasChildren() bool { return n.Left != "" }

// Tree is a segmentation lexicon paired with the cost.Model it feeds.
type Tree struct {
	nodes map[string]*Node
	model *cost.Model
}

// New creates an empty segmentation tree backed by a fresh cost model of
// the given mode and tunables.
func New(mode cost.Mode, params cost.Params) *Tree {
	return &Tree{
		nodes: make(map[string]*Node),
		model: cost.New(mode, params),
	}
}

// Model returns the cost model the tree keeps in sync with every
// mutation.
func (t *Tree) Model() *cost.Model { return t.model }

// Contains reports whether morph currently has an entry in the lexicon
// (leaf or internal).
func (t *Tree) Contains(morph string) bool {
	_, ok := t.nodes[morph]
	return ok
}

// Get returns the current node for morph, if any.
func (t *Tree) Get(morph string) (Node, bool) {
	n, ok := t.nodes[morph]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Count returns the current count for morph, or 0 if it has no entry.
func (t *Tree) Count(morph string) int64 {
	n, ok := t.nodes[morph]
	if !ok {
		return 0
	}
	return n.Count
}

// LeafCount returns morph's count if it is currently a leaf, satisfying
// decode.Lexicon. An internal node's own count is not a valid token
// frequency for decoding, so it reports ok == false.
func (t *Tree) LeafCount(morph string) (int64, bool) {
	n, ok := t.nodes[morph]
	if !ok || n.HasChildren() {
		return 0, false
	}
	return n.Count, true
}

// TotalMorphTokens satisfies decode.Lexicon by delegating to the
// attached cost model.
func (t *Tree) TotalMorphTokens() uint64 {
	return t.model.TotalMorphTokens()
}

// Leaves returns a snapshot of every current leaf, sorted by morph string,
// for use with cost.Model.RefreshLetterProbabilities and with iteration in
// package output.
func (t *Tree) Leaves() []cost.LeafView {
	out := make([]cost.LeafView, 0, len(t.nodes))
	for morph, n := range t.nodes {
		if !n.HasChildren() {
			out = append(out, cost.LeafView{Morph: morph, Count: n.Count})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Morph < out[j].Morph })
	return out
}

// Size returns the number of entries (leaves and internal nodes) in the
// lexicon.
func (t *Tree) Size() int { return len(t.nodes) }

// All returns a snapshot of every current entry, leaf and internal, for
// full-lexicon iteration (e.g. DOT graph export in package output).
func (t *Tree) All() []Node {
	out := make([]Node, 0, len(t.nodes))
	for _, n := range t.nodes {
		out = append(out, *n)
	}
	return out
}

// Initialize adds freq occurrences of word as a fresh top-level leaf. It
// is the entry point corpus loading uses to seed the tree before any
// splitting has happened; word must be non-empty.
func (t *Tree) Initialize(word string, freq int64) error {
	if word == "" {
		return &InvariantViolationError{Morph: word, Cause: "cannot initialize the empty string as a morph"}
	}
	if freq <= 0 {
		return &InvariantViolationError{Morph: word, Cause: "initialization frequency must be positive"}
	}
	return t.AdjustCount(word, freq)
}

// AdjustCount applies delta to morph's count, creating the entry if it did
// not exist and erasing it if the resulting count is zero. If morph is
// internal, the same delta is propagated to both children before either
// leaf-only cost-model side effect is considered, mirroring the
// reference implementation's AdjustMorphCount: a node's own count is
// updated unconditionally, and only leaves feed the cost model.
func (t *Tree) AdjustCount(morph string, delta int64) error {
	if morph == "" {
		return &InvariantViolationError{Morph: morph, Cause: "cannot adjust the empty string"}
	}

	n, existed := t.nodes[morph]
	if !existed {
		n = &Node{Morph: morph}
	}

	oldCount := n.Count
	newCount := oldCount + delta
	if newCount < 0 {
		return &InvariantViolationError{
			Morph: morph,
			Cause: "adjustment would drive count negative",
		}
	}

	left, right := n.Left, n.Right
	if (left == "") != (right == "") {
		return &InvariantViolationError{Morph: morph, Cause: "node has exactly one child"}
	}

	if newCount == 0 {
		delete(t.nodes, morph)
	} else {
		n.Count = newCount
		t.nodes[morph] = n
	}

	if left != "" {
		if err := t.AdjustCount(left, delta); err != nil {
			return err
		}
		if err := t.AdjustCount(right, delta); err != nil {
			return err
		}
		return nil
	}

	t.model.AdjustTokenCount(delta)
	t.model.AdjustCorpusCost(uint64(oldCount), uint64(newCount))
	t.model.AdjustFrequencyCost(uint64(oldCount), uint64(newCount))

	switch {
	case oldCount == 0 && newCount > 0:
		t.model.AdjustUniqueCount(1)
		t.model.AdjustLengthCost(len(morph), true)
		t.model.AdjustStringCost(morph, true)
	case newCount == 0 && oldCount > 0:
		t.model.AdjustUniqueCount(-1)
		t.model.AdjustLengthCost(len(morph), false)
		t.model.AdjustStringCost(morph, false)
	}
	return nil
}

// Remove erases morph and, if it is internal, cascades the removal into
// both children.
func (t *Tree) Remove(morph string) error {
	n, ok := t.nodes[morph]
	if !ok {
		return &UnknownMorphError{Morph: morph}
	}
	return t.AdjustCount(morph, -n.Count)
}

// Split turns the leaf morph into an internal node with two children,
// morph[:index] and morph[index:], each inheriting morph's count. It
// follows the reference implementation's split recipe: the leaf is first
// fully removed from the model (via AdjustCount(morph, -count), which
// erases it), the internal node is written back directly so its count
// change never touches the model, and the two children are then added as
// leaves (or merged into existing leaves) via AdjustCount(+count).
//
// Split refuses to split a morph that does not exist, has already been
// split, or is a single byte (index must fall strictly inside morph, so a
// length-1 morph has no valid index — this is I5's leaf-forcing rule for
// single-byte morphs, enforced structurally rather than by a special
// case).
func (t *Tree) Split(morph string, index int) error {
	n, ok := t.nodes[morph]
	if !ok {
		return &InvalidSplitError{Morph: morph, Index: index, Cause: "morph does not exist"}
	}
	if n.HasChildren() {
		return &InvalidSplitError{Morph: morph, Index: index, Cause: "morph is already split"}
	}
	if index <= 0 || index >= len(morph) {
		return &InvalidSplitError{Morph: morph, Index: index, Cause: "index does not fall strictly inside the morph"}
	}

	freq := n.Count
	if err := t.AdjustCount(morph, -freq); err != nil {
		return err
	}

	left := morph[:index]
	right := morph[index:]
	t.nodes[morph] = &Node{Morph: morph, Count: freq, Left: left, Right: right}

	if err := t.AdjustCount(left, freq); err != nil {
		return err
	}
	if err := t.AdjustCount(right, freq); err != nil {
		return err
	}
	return nil
}

// Unsplit collapses morph's two children back into a single leaf carrying
// the same count, the exact inverse of Split. Each child is removed via
// AdjustCount(child, -count) (cascading through further splits if a child
// is itself internal), then the leaf is restored via AdjustCount(morph,
// +count) so leaf-birth cost-model bookkeeping runs unconditionally. This
// is what lets package optimize collapse an already-split morph back to a
// leaf and reconsider it against the tree's current global cost, mirroring
// the reference implementation's unconditional remove-then-resplit.
func (t *Tree) Unsplit(morph string) error {
	n, ok := t.nodes[morph]
	if !ok {
		return &UnknownMorphError{Morph: morph}
	}
	if !n.HasChildren() {
		return &InvalidSplitError{Morph: morph, Cause: "morph is not split"}
	}

	freq := n.Count
	left, right := n.Left, n.Right
	delete(t.nodes, morph)

	if err := t.AdjustCount(left, -freq); err != nil {
		return err
	}
	if err := t.AdjustCount(right, -freq); err != nil {
		return err
	}

	return t.AdjustCount(morph, freq)
}

// Restore rebuilds a Tree from a flat node snapshot (as produced by All)
// without replaying every historical Split and AdjustCount call: the
// lexicon's shape is installed directly, and the cost model's aggregates
// are seeded once from the resulting leaf set, the same way
// RefreshLetterProbabilities is seeded at an optimization pass boundary.
// This is what package store uses to reload a previously trained model.
func Restore(mode cost.Mode, params cost.Params, nodes []Node) *Tree {
	t := New(mode, params)
	for i := range nodes {
		n := nodes[i]
		t.nodes[n.Morph] = &n
	}

	leaves := t.Leaves()
	for _, lf := range leaves {
		t.model.AdjustTokenCount(lf.Count)
		t.model.AdjustUniqueCount(1)
		t.model.AdjustCorpusCost(0, uint64(lf.Count))
		t.model.AdjustFrequencyCost(0, uint64(lf.Count))
		t.model.AdjustLengthCost(len(lf.Morph), true)
	}
	// RefreshLetterProbabilities also recomputes the string cost from the
	// leaf set, so no per-leaf AdjustStringCost is needed here.
	t.model.RefreshLetterProbabilities(leaves)

	return t
}

// CheckInvariants verifies I1, I2, I3, and I5 against the current
// lexicon. It does not recompute I4 (the cost model's incremental
// scalars against a from-scratch pass) since that would require
// duplicating cost.Model's formulas here; cost/model_test.go's
// hand-computed and incremental-vs-rebuild cases cover I4 instead. It
// is intended for tests and diagnostics, not the hot mutation path.
func (t *Tree) CheckInvariants() error {
	var totalTokens, uniqueTypes int64

	for morph, n := range t.nodes {
		if (n.Left == "") != (n.Right == "") {
			return &InvariantViolationError{Morph: morph, Cause: "node has exactly one child"}
		}
		if n.HasChildren() {
			left, leftOK := t.nodes[n.Left]
			right, rightOK := t.nodes[n.Right]
			if !leftOK || !rightOK {
				return &InvariantViolationError{Morph: morph, Cause: "child is missing from the table"}
			}
			if left.Count < n.Count || right.Count < n.Count {
				return &InvariantViolationError{Morph: morph, Cause: "child count is less than parent count"}
			}
			if len(morph) == 1 {
				return &InvariantViolationError{Morph: morph, Cause: "single-byte morph must be a leaf"}
			}
			continue
		}
		if n.Count == 0 {
			return &InvariantViolationError{Morph: morph, Cause: "zero-count leaf was not erased"}
		}
		totalTokens += n.Count
		uniqueTypes++
	}

	if uint64(totalTokens) != t.model.TotalMorphTokens() {
		return &InvariantViolationError{Cause: "model total token count diverges from the sum of leaf counts"}
	}
	if uint64(uniqueTypes) != t.model.UniqueMorphTypes() {
		return &InvariantViolationError{Cause: "model unique type count diverges from the number of leaves"}
	}

	return nil
}
