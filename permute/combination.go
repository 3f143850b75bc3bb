package permute

import (
	"fmt"
	"time"

	"github.com/katalvlaran/spatialperm/internal/parallel"
	"github.com/katalvlaran/spatialperm/metrics"
	"github.com/katalvlaran/spatialperm/neighbors"
	"github.com/katalvlaran/spatialperm/stats"
)

// CombinationTest holds the label set and the label pairs to evaluate.
// It is immutable after construction and may be reused across bootstraps.
type CombinationTest[L comparable] struct {
	ordered bool
	unique  []L
	codes   map[L]int
	pairs   []Pair[L]
}

// NewCombinationTest enumerates the distinct labels of types (first
// occurrence order) and the pairs to test: all ordered pairs when ordered is
// set, otherwise the unordered pairs including self pairs.
func NewCombinationTest[L comparable](types []L, ordered bool) *CombinationTest[L] {
	unique := Unique(types)
	codes := make(map[L]int, len(unique))
	for i, l := range unique {
		codes[l] = i
	}
	return &CombinationTest[L]{
		ordered: ordered,
		unique:  unique,
		codes:   codes,
		pairs:   Combinations(unique, ordered),
	}
}

// Unique returns a copy of the distinct labels in first-occurrence order.
func (ct *CombinationTest[L]) Unique() []L {
	return append([]L(nil), ct.unique...)
}

// Combinations returns a copy of the pairs under test.
func (ct *CombinationTest[L]) Combinations() []Pair[L] {
	return append([]Pair[L](nil), ct.pairs...)
}

// Ordered reports whether (A,B) and (B,A) are tested separately.
func (ct *CombinationTest[L]) Ordered() bool { return ct.ordered }

// Samples is the raw outcome of a permutation run: per pair, the observed
// neighbor count and the Times permuted counts, indexed by trial.
type Samples[L comparable] struct {
	Pairs    []Pair[L]
	Observed []float64
	Null     [][]float64
}

// ZScores summarizes every pair as (observed - mean) / std, 0 when std == 0.
func (s *Samples[L]) ZScores() []Result[L] {
	out := make([]Result[L], len(s.Pairs))
	for p, pair := range s.Pairs {
		out[p] = Result[L]{Pair: pair, Value: stats.ZScore(s.Observed[p], s.Null[p])}
	}
	return out
}

// Signed summarizes every pair as +1 (significant association), -1
// (significant avoidance) or 0, at threshold pval.
func (s *Samples[L]) Signed(pval float64) []Result[L] {
	out := make([]Result[L], len(s.Pairs))
	for p, pair := range s.Pairs {
		out[p] = Result[L]{Pair: pair, Value: signedSignificance(s.Observed[p], s.Null[p], pval)}
	}
	return out
}

// signedSignificance computes the empirical two-sided test:
//
//	gt = #(null >= observed) / (n+1)
//	lt = #(null <= observed) / (n+1)
//
// p is gt when gt < lt (excess direction), otherwise lt (ties go to lt).
// The result is ±1 when p < pval and 0 otherwise.
func signedSignificance(observed float64, null []float64, pval float64) float64 {
	var ge, le int
	for _, v := range null {
		if v >= observed {
			ge++
		}
		if v <= observed {
			le++
		}
	}
	denom := float64(len(null) + 1)
	gt, lt := float64(ge)/denom, float64(le)/denom

	p, direction := lt, -1.0
	if gt < lt {
		p, direction = gt, 1.0
	}
	if p < pval {
		return direction
	}
	return 0
}

// Bootstrap runs the permutation test for every pair and summarizes it
// with the configured Method.
//
// types must have one label per object in nb, drawn from the labels the test
// was constructed with (ErrUnknownLabel otherwise).
func (ct *CombinationTest[L]) Bootstrap(types []L, nb neighbors.Mapping, opts ...Option) ([]Result[L], error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	s, err := ct.samples(types, nb, o)
	if err != nil {
		return nil, err
	}
	if o.Method == MethodZScore {
		return s.ZScores(), nil
	}
	return s.Signed(o.PValue), nil
}

// Samples runs the permutation trials and returns the raw counts, so that
// several summaries can be taken from the same null distribution.
func (ct *CombinationTest[L]) Samples(types []L, nb neighbors.Mapping, opts ...Option) (*Samples[L], error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	return ct.samples(types, nb, o)
}

// samples computes observed and permuted pair counts.
//
// Every trial shuffles the full label vector once and fills a U×U count
// matrix, which serves all pairs of that trial. Trial t writes only slot t.
func (ct *CombinationTest[L]) samples(types []L, nb neighbors.Mapping, o Options) (*Samples[L], error) {
	if len(types) != len(nb) {
		return nil, fmt.Errorf("%w: len(types)=%d neighbors=%d", ErrLengthMismatch, len(types), len(nb))
	}
	if err := nb.Validate(); err != nil {
		return nil, err
	}
	codes := make([]int, len(types))
	for i, l := range types {
		c, ok := ct.codes[l]
		if !ok {
			return nil, fmt.Errorf("%w: %v (object %d)", ErrUnknownLabel, l, i)
		}
		codes[i] = c
	}
	start := time.Now()
	nb = neighbors.Normalize(nb, o.IgnoreSelf)
	u := len(ct.unique)

	observed := pairCounts(codes, nb, u)
	master := masterSeed(o.Seed)
	trials := parallel.Map(o.Times, o.Workers, func(t int) []int {
		return pairCounts(shuffled(codes, trialRNG(master, t)), nb, u)
	})

	s := &Samples[L]{
		Pairs:    ct.Combinations(),
		Observed: make([]float64, len(ct.pairs)),
		Null:     make([][]float64, len(ct.pairs)),
	}
	for p, pair := range ct.pairs {
		cell := ct.codes[pair.A]*u + ct.codes[pair.B]
		s.Observed[p] = float64(observed[cell])
		null := make([]float64, o.Times)
		for t, counts := range trials {
			null[t] = float64(counts[cell])
		}
		s.Null[p] = null
	}

	elapsed := time.Since(start)
	o.Metrics.ObserveBootstrap(metrics.ProcedureCombination, o.Times, elapsed)
	o.Logger.Debug("combination bootstrap finished",
		"objects", len(types), "labels", u, "pairs", len(ct.pairs), "trials", o.Times, "elapsed", elapsed)
	return s, nil
}

// pairCounts returns the row-major U×U matrix of (label(i), label(j))
// incidences over all i and j ∈ nb[i].
func pairCounts(codes []int, nb neighbors.Mapping, u int) []int {
	counts := make([]int, u*u)
	for i, nbrs := range nb {
		row := codes[i] * u
		for _, j := range nbrs {
			counts[row+codes[j]]++
		}
	}
	return counts
}
