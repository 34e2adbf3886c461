package optimize

import (
	"testing"

	"github.com/r0ller/morfessor/cost"
	"github.com/r0ller/morfessor/tree"
)

func TestResplitNoopOnEmptyMorph(t *testing.T) {
	t.Parallel()

	tr := tree.New(cost.Baseline, cost.DefaultParams())
	if err := Resplit(tr, ""); err != nil {
		t.Fatalf("Resplit(\"\") = %v, want nil", err)
	}
}

func TestResplitLeavesTreeInvariant(t *testing.T) {
	t.Parallel()

	tr := tree.New(cost.BaselineFreqLength, cost.DefaultParams())
	words := map[string]int64{
		"reopening": 1,
		"retry":     2,
		"trying":    4,
		"opening":   3,
	}
	for w, f := range words {
		if err := tr.Initialize(w, f); err != nil {
			t.Fatal(err)
		}
	}

	for w := range words {
		if err := Resplit(tr, w); err != nil {
			t.Fatalf("Resplit(%q): %v", w, err)
		}
	}

	if err := tr.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants after Resplit: %v", err)
	}
}

func TestResplitNeverIncreasesOverallCost(t *testing.T) {
	t.Parallel()

	tr := tree.New(cost.BaselineFreqLength, cost.DefaultParams())
	for _, w := range []string{"walking", "walked", "walker", "talking", "talked"} {
		if err := tr.Initialize(w, 3); err != nil {
			t.Fatal(err)
		}
	}

	before := tr.Model().OverallCost()
	for _, w := range []string{"walking", "walked", "walker", "talking", "talked"} {
		if tr.Contains(w) {
			if err := Resplit(tr, w); err != nil {
				t.Fatal(err)
			}
		}
	}
	after := tr.Model().OverallCost()

	if after > before+1e-6 {
		t.Errorf("overall cost increased from %v to %v after Resplit", before, after)
	}
}
