package cost

import "math"

const ln2 = math.Ln2

// CorpusCost is P(corpus|model) in bits, computed from the M and U
// aggregates via the closed-form decomposition
//
//	corpus_cost = M·log2(M) - Σ c_i·log2(c_i)
//
// which is algebraically equivalent to -Σ c_i·log2(c_i/M) but lets
// AdjustCorpusCost maintain it in O(1) per leaf mutation instead of
// re-summing over every leaf.
func (m *Model) CorpusCost() float64 {
	if m.totalTokens == 0 {
		return 0
	}
	return float64(m.totalTokens)*math.Log2(float64(m.totalTokens)) - m.sumCLogC
}

// FrequencyCost is the cost of encoding the leaf frequency distribution.
// In explicit-frequency modes it is the incrementally maintained
// hapax-legomena-prior sum; in implicit modes it is derived in O(1) from
// M and U, since the implicit formula is a property of the aggregate
// counts, not a per-leaf sum.
func (m *Model) FrequencyCost() float64 {
	if m.mode.explicitFrequency() {
		return m.freqCostSum
	}
	return implicitFrequencyCost(m.totalTokens, m.uniqueTypes)
}

// LengthCost is the cost of encoding the leaf length distribution. In
// explicit-length modes it is the incrementally maintained Gamma-pdf sum;
// in implicit modes it is U times the cached end-of-morph sentinel cost.
func (m *Model) LengthCost() float64 {
	if m.mode.explicitLength() {
		return m.lengthCost
	}
	return float64(m.uniqueTypes) * m.letterProbs[Sentinel]
}

// StringCost is the cost of spelling out every leaf morph under the
// cached letter distribution, as of the last RefreshLetterProbabilities
// call.
func (m *Model) StringCost() float64 {
	return m.stringCost
}

// OrderCost is the lexicon-ordering adjustment, a closed-form function of
// U alone (§4.2, "lexicon-ordering adjustment").
func (m *Model) OrderCost() float64 {
	u := float64(m.uniqueTypes)
	if u == 0 {
		return 0
	}
	return u * (1 - math.Log(u)) / ln2
}

// LexiconCost is the total cost of encoding the morph lexicon: frequency
// cost, length cost, morph-string cost, and the lexicon-ordering
// adjustment.
func (m *Model) LexiconCost() float64 {
	return m.FrequencyCost() + m.LengthCost() + m.StringCost() + m.OrderCost()
}

// OverallCost is the two-part MDL total: corpus cost plus lexicon cost.
func (m *Model) OverallCost() float64 {
	return m.CorpusCost() + m.LexiconCost()
}

// gammaLengthTerm is -log2 of the Gamma(alpha, beta) pdf evaluated at a
// leaf of the given byte length, with beta as the scale parameter and
// alpha = LengthPrior/LengthBeta + 1 so the distribution's mode sits at
// LengthPrior.
func (m *Model) gammaLengthTerm(length int) float64 {
	x := float64(length)
	if x <= 0 {
		return 0
	}
	beta := m.params.LengthBeta
	alpha := m.params.LengthPrior/beta + 1
	logPdf := -alpha*math.Log(beta) - lgamma(alpha) + (alpha-1)*math.Log(x) - x/beta
	return -logPdf / ln2
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

// explicitFrequencyTerm is the per-leaf hapax-legomena-prior contribution
// to FrequencyCost, where exponent = log2(1 - HapaxLegomenaPrior) is
// precomputed once by the caller since it does not depend on count.
func explicitFrequencyTerm(count uint64, exponent float64) float64 {
	c := float64(count)
	diff := math.Pow(c, exponent) - math.Pow(c+1, exponent)
	if diff <= 0 {
		return 0
	}
	return -math.Log2(diff)
}

// implicitFrequencyCost is log2(C(M-1, U-1)), the number of bits needed to
// encode one way of splitting M tokens among U distinct types with no
// further frequency information. Uses the exact log-gamma form for
// moderate M and the reference-implementation's closed-form approximation
// above it, matching the established behavior of the original
// implementation rather than a more theoretically exact large-M estimate.
func implicitFrequencyCost(totalTokens, uniqueTypes uint64) float64 {
	m, u := float64(totalTokens), float64(uniqueTypes)
	if m < 2 || u < 1 || u > m {
		return 0
	}
	if totalTokens < 100 {
		return (lgamma(m) - lgamma(u) - lgamma(m-u+1)) / ln2
	}
	if m-2 <= 0 || u-2 <= 0 || m-u-1 <= 0 {
		return 0
	}
	return (m-1)*math.Log2(m-2) - (u-1)*math.Log2(u-2) - (m-u)*math.Log2(m-u-1)
}
