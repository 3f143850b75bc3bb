// Package stats provides the summary statistics used by the permutation
// engine: mean, population standard deviation and the z-score of an observed
// value against a null sample.
//
// Degenerate nulls are handled in-band: a null sample with zero spread yields
// a z-score of 0 instead of ±Inf or NaN.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Number is any numeric type a sample of counts may be stored as.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Floats converts a sample to float64.
func Floats[T Number](xs []T) []float64 {
	out := make([]float64, len(xs))
	for i, v := range xs {
		out[i] = float64(v)
	}
	return out
}

// Mean returns the arithmetic mean of xs, or NaN for an empty sample.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// Std returns the population standard deviation of xs (divisor n),
// or NaN for an empty sample.
func Std(xs []float64) float64 {
	if len(xs) == 0 {
		return math.NaN()
	}
	return math.Sqrt(stat.PopVariance(xs, nil))
}

// ZScore returns (observed - Mean(null)) / Std(null).
// A null sample with zero standard deviation yields 0.
func ZScore(observed float64, null []float64) float64 {
	sd := Std(null)
	if sd == 0 {
		return 0
	}
	return (observed - Mean(null)) / sd
}
