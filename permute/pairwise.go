package permute

import (
	"fmt"
	"time"

	"github.com/katalvlaran/spatialperm/internal/parallel"
	"github.com/katalvlaran/spatialperm/metrics"
	"github.com/katalvlaran/spatialperm/neighbors"
	"github.com/katalvlaran/spatialperm/stats"
)

// PairwiseStatus tests whether objects with status x have neighbors with
// status y more often than chance, and returns the z-score.
//
// Algorithm:
//  1. Normalize nb (dedupe, drop self references if IgnoreSelf).
//  2. observed = Σ_i Σ_{j ∈ nb[i]} [x[i] ∧ y[j]]. Mutual neighbors are counted
//     from both sides.
//  3. For trial t = 0..Times-1: shuffle a private copy of y with the trial's
//     own generator and recount, holding x and nb fixed.
//  4. z = (observed - mean(null)) / std(null), population std; 0 if std == 0.
//
// Errors: ErrLengthMismatch, neighbors.ErrNeighborIndex, option errors.
// Complexity: O(Times · E) for E neighbor entries.
func PairwiseStatus(x, y []bool, nb neighbors.Mapping, opts ...Option) (float64, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return 0, err
	}
	if len(x) != len(y) || len(x) != len(nb) {
		return 0, fmt.Errorf("%w: len(x)=%d len(y)=%d neighbors=%d", ErrLengthMismatch, len(x), len(y), len(nb))
	}
	if err := nb.Validate(); err != nil {
		return 0, err
	}
	start := time.Now()
	nb = neighbors.Normalize(nb, o.IgnoreSelf)

	observed := statusCount(x, y, nb)
	master := masterSeed(o.Seed)
	counts := parallel.Map(o.Times, o.Workers, func(t int) int {
		return statusCount(x, shuffled(y, trialRNG(master, t)), nb)
	})
	z := stats.ZScore(float64(observed), stats.Floats(counts))

	elapsed := time.Since(start)
	o.Metrics.ObserveBootstrap(metrics.ProcedurePairwise, o.Times, elapsed)
	o.Logger.Debug("pairwise bootstrap finished",
		"objects", len(x), "trials", o.Times, "observed", observed, "zscore", z, "elapsed", elapsed)
	return z, nil
}

// statusCount counts (i, j ∈ nb[i]) incidences with x[i] and y[j] both set.
func statusCount(x, y []bool, nb neighbors.Mapping) int {
	count := 0
	for i, nbrs := range nb {
		if !x[i] {
			continue
		}
		for _, j := range nbrs {
			if y[j] {
				count++
			}
		}
	}
	return count
}
