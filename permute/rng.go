package permute

import "math/rand/v2"

// masterSeed returns the seed every trial stream derives from.
// seed == 0 means "not fixed": draw a fresh one from the runtime source.
func masterSeed(seed int64) uint64 {
	if seed != 0 {
		return uint64(seed)
	}
	return rand.Uint64()
}

// deriveSeed mixes a parent seed and a stream identifier with a
// SplitMix64 finalizer so that neighboring trial ids give unrelated seeds.
func deriveSeed(parent, stream uint64) uint64 {
	x := parent ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// trialRNG returns the private generator of one trial. Generators are never
// shared between goroutines; the stream depends only on (master, trial).
func trialRNG(master uint64, trial int) *rand.Rand {
	t := uint64(trial)
	return rand.New(rand.NewPCG(deriveSeed(master, t), t))
}

// shuffled returns a uniformly permuted copy of src.
func shuffled[T any](src []T, r *rand.Rand) []T {
	out := make([]T, len(src))
	copy(out, src)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
