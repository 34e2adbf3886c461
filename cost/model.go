package cost

import "math"

// Sentinel is the reserved end-of-morph byte used by the implicit-length
// letter distribution and the sentinel-inclusive morph-string cost. It is
// never a legal byte within an input word (see corpus.Load).
const Sentinel byte = '#'

// LeafView is the read-only projection of a segmentation-tree leaf that
// the cost model needs to (re)compute letter probabilities and to verify
// its incrementally maintained scalars from scratch. It carries no
// tree-package types so the two packages do not import each other.
type LeafView struct {
	Morph string
	Count int64
}

// Params are the model's algorithm-mode-independent tunables, all from the
// Config surface in package morfessorcfg (§6). Defaults match the spec:
// hapax prior 0.5, length prior 5.0, length beta 1.0.
type Params struct {
	HapaxLegomenaPrior float64
	LengthPrior        float64
	LengthBeta         float64
}

// DefaultParams returns the documented default tunables.
func DefaultParams() Params {
	return Params{
		HapaxLegomenaPrior: 0.5,
		LengthPrior:        5.0,
		LengthBeta:         1.0,
	}
}

// Model holds the five MDL cost scalars of §3 and the aggregate statistics
// (total morph tokens, unique morph types) they are derived from. All
// mutation happens through the Adjust* methods, which implement the
// incremental adjustment contract of §4.2.2: every leaf birth, death, or
// count change calls exactly the subset of these methods the transition
// requires; internal (non-leaf) nodes never touch the model at all.
type Model struct {
	mode   Mode
	params Params

	totalTokens uint64 // M
	uniqueTypes uint64 // U

	sumCLogC    float64 // Σ c_i·log2(c_i) over leaves, backs CorpusCost
	freqCostSum float64 // explicit-frequency-mode running sum
	lengthCost  float64 // explicit-length-mode running sum

	stringCost float64 // Σ over leaves of Σ P(c), refreshed once per pass

	letterProbs      map[byte]float64
	sentinelIncluded bool
}

// New creates an empty cost model (zero leaves, zero cost) for the given
// mode and tunables.
func New(mode Mode, params Params) *Model {
	return &Model{
		mode:        mode,
		params:      params,
		letterProbs: make(map[byte]float64),
	}
}

// Mode reports the model's algorithm mode.
func (m *Model) Mode() Mode { return m.mode }

// TotalMorphTokens is M, the sum of counts over current leaves.
func (m *Model) TotalMorphTokens() uint64 { return m.totalTokens }

// UniqueMorphTypes is U, the number of current leaves.
func (m *Model) UniqueMorphTypes() uint64 { return m.uniqueTypes }

// AdjustTokenCount applies delta to the total-morph-tokens aggregate. Called
// on every leaf birth, death, or count change, with delta equal to the
// count delta applied at that leaf.
func (m *Model) AdjustTokenCount(delta int64) {
	m.totalTokens = addClampedUint64(m.totalTokens, delta)
}

// AdjustUniqueCount applies delta (+1 on leaf birth, -1 on leaf death) to
// the unique-morph-types aggregate.
func (m *Model) AdjustUniqueCount(delta int64) {
	m.uniqueTypes = addClampedUint64(m.uniqueTypes, delta)
}

// AdjustCorpusCost updates the corpus-cost aggregate for a leaf whose count
// changed from oldCount to newCount (oldCount == 0 on birth, newCount == 0
// on death). Maintained via the Σc_i·log2(c_i) decomposition described on
// CorpusCost so the update is exact and O(1) regardless of corpus size.
func (m *Model) AdjustCorpusCost(oldCount, newCount uint64) {
	if oldCount > 0 {
		m.sumCLogC -= cLogC(oldCount)
	}
	if newCount > 0 {
		m.sumCLogC += cLogC(newCount)
	}
}

// AdjustFrequencyCost updates the frequency-cost aggregate for a leaf whose
// count changed from oldCount to newCount. In implicit-frequency modes this
// is a no-op: FrequencyCost derives the implicit term from M and U directly
// at read time, since that formula is not a per-leaf sum.
func (m *Model) AdjustFrequencyCost(oldCount, newCount uint64) {
	if !m.mode.explicitFrequency() {
		return
	}
	e := math.Log2(1 - m.params.HapaxLegomenaPrior)
	if oldCount > 0 {
		m.freqCostSum -= explicitFrequencyTerm(oldCount, e)
	}
	if newCount > 0 {
		m.freqCostSum += explicitFrequencyTerm(newCount, e)
	}
}

// AdjustLengthCost updates the length-cost aggregate for a leaf of the
// given byte length being added or removed. In implicit-length modes this
// is a no-op: LengthCost derives U·P(#) from the cached letter probability
// table at read time.
func (m *Model) AdjustLengthCost(length int, adding bool) {
	if !m.mode.explicitLength() {
		return
	}
	term := m.gammaLengthTerm(length)
	if adding {
		m.lengthCost += term
	} else {
		m.lengthCost -= term
	}
}

// AdjustStringCost updates the morph-string-cost aggregate for morph being
// added as a leaf (adding == true) or removed (adding == false), using the
// letter probability table as of the last RefreshLetterProbabilities call.
func (m *Model) AdjustStringCost(morph string, adding bool) {
	contribution := m.morphStringContribution(morph)
	if adding {
		m.stringCost += contribution
	} else {
		m.stringCost -= contribution
	}
}

func (m *Model) morphStringContribution(morph string) float64 {
	var sum float64
	for i := 0; i < len(morph); i++ {
		sum += m.letterProbs[morph[i]]
	}
	if m.sentinelIncluded {
		sum += m.letterProbs[Sentinel]
	}
	return sum
}

// RefreshLetterProbabilities recomputes the maximum-likelihood letter
// distribution (§4.2.1) from the current leaf multiset and, since every
// leaf's morph-string (and, in implicit-length modes, length) contribution
// depends on that distribution, recomputes the corresponding cost
// aggregates from scratch to match. Callers invoke this once per
// optimization pass, not per mutation (§9); between refreshes the
// Adjust*Cost methods keep the aggregates consistent with the
// last-refreshed table.
func (m *Model) RefreshLetterProbabilities(leaves []LeafView) {
	includeSentinel := m.mode.includesSentinel()

	freq := make(map[byte]float64)
	var totalLetters float64
	for _, lf := range leaves {
		c := float64(lf.Count)
		for i := 0; i < len(lf.Morph); i++ {
			freq[lf.Morph[i]] += c
			totalLetters += c
		}
	}
	if includeSentinel {
		totalLetters += float64(m.totalTokens)
	}

	probs := make(map[byte]float64, len(freq)+1)
	if totalLetters > 0 {
		logTotal := math.Log2(totalLetters)
		for b, f := range freq {
			if f > 0 {
				probs[b] = logTotal - math.Log2(f)
			}
		}
		if includeSentinel && m.totalTokens > 0 {
			probs[Sentinel] = logTotal - math.Log2(float64(m.totalTokens))
		}
	}
	m.letterProbs = probs
	m.sentinelIncluded = includeSentinel

	var sc float64
	for _, lf := range leaves {
		for i := 0; i < len(lf.Morph); i++ {
			sc += probs[lf.Morph[i]]
		}
		if includeSentinel {
			sc += probs[Sentinel]
		}
	}
	m.stringCost = sc
}

// LetterProbability returns the cached P(c) for byte c, or 0 if c has not
// been observed since the last refresh. Exposed for tests that check P4/P6
// style regression scenarios against the reference formulas.
func (m *Model) LetterProbability(c byte) float64 {
	return m.letterProbs[c]
}

func addClampedUint64(base uint64, delta int64) uint64 {
	if delta >= 0 {
		return base + uint64(delta)
	}
	dec := uint64(-delta)
	if dec > base {
		// A caller asking to push an aggregate below zero is an
		// InvariantViolation at the tree layer; the model just floors at
		// zero defensively rather than wrapping around.
		return 0
	}
	return base - dec
}

func cLogC(c uint64) float64 {
	cf := float64(c)
	return cf * math.Log2(cf)
}
