package cost

import (
	"math"
	"testing"
)

const threshold = 1e-4

func near(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > threshold {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

// buildLeaves feeds a fixed leaf multiset into a fresh model through the
// same Adjust* sequence a tree.Tree would issue on leaf birth, then
// refreshes letter probabilities the way an optimization pass boundary
// would.
func buildLeaves(mode Mode, leaves []LeafView) *Model {
	m := New(mode, DefaultParams())
	for _, lf := range leaves {
		m.AdjustTokenCount(lf.Count)
		m.AdjustUniqueCount(1)
		m.AdjustCorpusCost(0, uint64(lf.Count))
		m.AdjustFrequencyCost(0, uint64(lf.Count))
		m.AdjustLengthCost(len(lf.Morph), true)
		m.AdjustStringCost(lf.Morph, true)
	}
	m.RefreshLetterProbabilities(leaves)
	return m
}

func TestModeStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{Baseline, BaselineFreq, BaselineLength, BaselineFreqLength} {
		got, ok := ParseMode(mode.String())
		if !ok || got != mode {
			t.Errorf("ParseMode(%q) = %v, %v; want %v, true", mode.String(), got, ok, mode)
		}
	}

	if _, ok := ParseMode("nonsense"); ok {
		t.Error("ParseMode(\"nonsense\") reported ok, want false")
	}
}

func TestModeFormulaSelection(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode             Mode
		explicitFreq     bool
		explicitLen      bool
		includesSentinel bool
	}{
		{Baseline, false, false, true},
		{BaselineFreq, true, false, true},
		{BaselineLength, false, true, false},
		{BaselineFreqLength, true, true, false},
	}
	for _, tt := range tests {
		if got := tt.mode.explicitFrequency(); got != tt.explicitFreq {
			t.Errorf("%s.explicitFrequency() = %v, want %v", tt.mode, got, tt.explicitFreq)
		}
		if got := tt.mode.explicitLength(); got != tt.explicitLen {
			t.Errorf("%s.explicitLength() = %v, want %v", tt.mode, got, tt.explicitLen)
		}
		if got := tt.mode.includesSentinel(); got != tt.includesSentinel {
			t.Errorf("%s.includesSentinel() = %v, want %v", tt.mode, got, tt.includesSentinel)
		}
	}
}

// TestBaselineCostsHandComputed checks every cost term of a two-leaf
// baseline model against values worked out by hand from the same closed
// forms as morph_node.cc's Probability* methods, exercising both the
// letter-probability cache and the incremental Adjust* bookkeeping in one
// pass.
func TestBaselineCostsHandComputed(t *testing.T) {
	t.Parallel()

	leaves := []LeafView{
		{Morph: "a", Count: 3},
		{Morph: "b", Count: 1},
	}
	m := buildLeaves(Baseline, leaves)

	near(t, "CorpusCost", m.CorpusCost(), 3.245112)
	near(t, "FrequencyCost", m.FrequencyCost(), 1.584963)
	near(t, "LengthCost", m.LengthCost(), 2.0)
	near(t, "StringCost", m.StringCost(), 6.415037)
	near(t, "OrderCost", m.OrderCost(), 0.885390)
	near(t, "LexiconCost", m.LexiconCost(), 10.885390)
	near(t, "OverallCost", m.OverallCost(), 14.130502)
}

// TestCorpusCostIncrementalMatchesRebuild verifies AdjustCorpusCost's O(1)
// running update agrees with recomputing Σc·log2(c) from scratch after an
// arbitrary sequence of leaf births, deaths, and count changes — the
// property the incremental adjustment contract exists to guarantee.
func TestCorpusCostIncrementalMatchesRebuild(t *testing.T) {
	t.Parallel()

	m := New(Baseline, DefaultParams())
	counts := map[string]uint64{}

	apply := func(morph string, newCount uint64) {
		old := counts[morph]
		delta := int64(newCount) - int64(old)
		m.AdjustTokenCount(delta)
		if old == 0 && newCount > 0 {
			m.AdjustUniqueCount(1)
		} else if old > 0 && newCount == 0 {
			m.AdjustUniqueCount(-1)
		}
		m.AdjustCorpusCost(old, newCount)
		if newCount == 0 {
			delete(counts, morph)
		} else {
			counts[morph] = newCount
		}
	}

	apply("re", 3)
	apply("open", 4)
	apply("try", 6)
	apply("re", 5) // count change on an existing leaf
	apply("open", 0) // leaf death

	var rebuilt float64
	var total uint64
	for _, c := range counts {
		rebuilt += cLogC(c)
		total += c
	}
	want := float64(total)*math.Log2(float64(total)) - rebuilt

	near(t, "CorpusCost", m.CorpusCost(), want)
}

func TestOverallCostZeroLeaves(t *testing.T) {
	t.Parallel()

	for _, mode := range []Mode{Baseline, BaselineFreq, BaselineLength, BaselineFreqLength} {
		m := New(mode, DefaultParams())
		if got := m.OverallCost(); got != 0 {
			t.Errorf("%s: OverallCost() on empty model = %v, want 0", mode, got)
		}
	}
}

func TestLexiconOrderCostMatchesClosedForm(t *testing.T) {
	t.Parallel()

	m := New(Baseline, DefaultParams())
	for i := 0; i < 5; i++ {
		m.AdjustUniqueCount(1)
	}
	u := 5.0
	want := u * (1 - math.Log(u)) / ln2
	near(t, "OrderCost", m.OrderCost(), want)
}
