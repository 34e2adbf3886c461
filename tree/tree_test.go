package tree

import (
	"testing"

	"github.com/r0ller/morfessor/cost"
)

func newTestTree() *Tree {
	return New(cost.Baseline, cost.DefaultParams())
}

func TestInitializeAndContains(t *testing.T) {
	t.Parallel()

	tr := newTestTree()
	if tr.Contains("reopen") {
		t.Fatal("empty tree reports containing \"reopen\"")
	}
	if err := tr.Initialize("reopen", 5); err != nil {
		t.Fatal(err)
	}
	if !tr.Contains("reopen") {
		t.Error("tree does not contain \"reopen\" after Initialize")
	}

	tr2 := newTestTree()
	tr2.Initialize("reopen", 5)
	tr2.Initialize("reorder", 6)
	if !tr2.Contains("reopen") || !tr2.Contains("reorder") {
		t.Error("tree missing one of two initialized words")
	}
	if tr2.Contains("redo") {
		t.Error("tree reports containing a word it never saw")
	}
}

func TestSplitOneNode(t *testing.T) {
	t.Parallel()

	tr := newTestTree()
	tr.Initialize("reopen", 1)
	if err := tr.Split("reopen", 2); err != nil {
		t.Fatal(err)
	}

	for _, morph := range []string{"re", "open", "reopen"} {
		if !tr.Contains(morph) {
			t.Errorf("missing morph %q after split", morph)
		}
	}
	if got := tr.Count("re"); got != 1 {
		t.Errorf("Count(re) = %d, want 1", got)
	}
	if got := tr.Count("open"); got != 1 {
		t.Errorf("Count(open) = %d, want 1", got)
	}
	if got := tr.Count("reopen"); got != 1 {
		t.Errorf("Count(reopen) = %d, want 1", got)
	}
}

func TestSplitCountPreservedWithNoSharedElements(t *testing.T) {
	t.Parallel()

	tr := newTestTree()
	tr.Initialize("reopen", 7)
	tr.Initialize("counter", 10)

	if err := tr.Split("reopen", 2); err != nil {
		t.Fatal(err)
	}
	if err := tr.Split("counter", 5); err != nil {
		t.Fatal(err)
	}

	want := map[string]int64{
		"re": 7, "reopen": 7, "open": 7,
		"counter": 10, "count": 10, "er": 10,
	}
	for morph, count := range want {
		if got := tr.Count(morph); got != count {
			t.Errorf("Count(%q) = %d, want %d", morph, got, count)
		}
	}
}

func TestSplitCountCombinedWithSharedElements(t *testing.T) {
	t.Parallel()

	tr := newTestTree()
	tr.Initialize("reopen", 7)
	tr.Initialize("retry", 10)

	if err := tr.Split("reopen", 2); err != nil {
		t.Fatal(err)
	}
	if err := tr.Split("retry", 2); err != nil {
		t.Fatal(err)
	}

	want := map[string]int64{
		"reopen": 7, "open": 7,
		"retry": 10, "try": 10,
		"re": 17,
	}
	for morph, count := range want {
		if got := tr.Count(morph); got != count {
			t.Errorf("Count(%q) = %d, want %d", morph, got, count)
		}
	}
}

// TestSplitCountCombinedWithDeepSharedElements reproduces the reference
// implementation's deep-sharing regression exactly: reopening/retry/trying
// split down to a shared "re" and "try", with the resulting leaf counts
// verified against the reference's expected values.
func TestSplitCountCombinedWithDeepSharedElements(t *testing.T) {
	t.Parallel()

	tr := newTestTree()
	tr.Initialize("reopening", 1)
	tr.Initialize("retry", 2)
	tr.Initialize("trying", 4)

	steps := []struct {
		morph string
		index int
	}{
		{"reopening", 2},
		{"opening", 4},
		{"retry", 2},
		{"trying", 3},
	}
	for _, s := range steps {
		if err := tr.Split(s.morph, s.index); err != nil {
			t.Fatalf("Split(%q, %d): %v", s.morph, s.index, err)
		}
	}

	want := map[string]int64{
		"re": 3, "ing": 5, "open": 1, "try": 6,
	}
	for morph, count := range want {
		if got := tr.Count(morph); got != count {
			t.Errorf("Count(%q) = %d, want %d", morph, got, count)
		}
	}

	if err := tr.CheckInvariants(); err != nil {
		t.Errorf("CheckInvariants: %v", err)
	}
}

func TestRemoveCountDecreasedSimpleCase(t *testing.T) {
	t.Parallel()

	tr := newTestTree()
	tr.Initialize("reopen", 1)
	tr.Initialize("retry", 2)
	tr.Split("reopen", 2)
	tr.Split("retry", 2)

	if got := tr.Count("re"); got != 3 {
		t.Fatalf("Count(re) before remove = %d, want 3", got)
	}

	if err := tr.Remove("reopen"); err != nil {
		t.Fatal(err)
	}

	if tr.Contains("reopen") {
		t.Error("tree still contains \"reopen\" after Remove")
	}
	if got := tr.Count("re"); got != 2 {
		t.Errorf("Count(re) after remove = %d, want 2", got)
	}
}

func TestRemoveEmptyDescendantsRemoved(t *testing.T) {
	t.Parallel()

	tr := newTestTree()
	tr.Initialize("reopening", 1)
	tr.Initialize("retry", 2)
	tr.Initialize("trying", 4)
	tr.Split("reopening", 2)
	tr.Split("opening", 4)
	tr.Split("retry", 2)
	tr.Split("trying", 3)

	if err := tr.Remove("trying"); err != nil {
		t.Fatal(err)
	}
	if err := tr.Remove("retry"); err != nil {
		t.Fatal(err)
	}

	if tr.Contains("try") {
		t.Error("\"try\" should have been erased once its last referrer was removed")
	}
}

func TestAdjustCountRejectsNegative(t *testing.T) {
	t.Parallel()

	tr := newTestTree()
	tr.Initialize("reopen", 1)
	if err := tr.AdjustCount("reopen", -5); err == nil {
		t.Fatal("expected an error adjusting a count below zero, got nil")
	}
}

func TestSplitRejectsAlreadySplitAndMissing(t *testing.T) {
	t.Parallel()

	tr := newTestTree()
	tr.Initialize("reopen", 1)
	if err := tr.Split("reopen", 2); err != nil {
		t.Fatal(err)
	}
	if err := tr.Split("reopen", 3); err == nil {
		t.Error("expected an error re-splitting an already-split morph")
	}
	if err := tr.Split("nonexistent", 1); err == nil {
		t.Error("expected an error splitting a morph that does not exist")
	}
}

func TestSplitRejectsSingleByteMorph(t *testing.T) {
	t.Parallel()

	tr := newTestTree()
	tr.Initialize("a", 1)
	if err := tr.Split("a", 1); err == nil {
		t.Error("expected an error splitting a single-byte morph")
	}
}
