// Package permute answers "do objects of label A sit next to objects of label
// B more (or less) often than chance?" by shuffling labels over a fixed
// neighbor mapping and comparing the observed neighbor count with the
// permuted ones.
//
// 🚀 Two procedures:
//
//	PairwiseStatus      - two boolean status vectors x, y. Counts incidences
//	                      x[i] ∧ y[j] for j ∈ nb[i]; shuffles y. Returns a z-score.
//	CombinationTest     - categorical labels. Counts (label(i), label(j))
//	                      incidences for every label pair at once; shuffles
//	                      the whole label vector. Returns a z-score or a
//	                      signed significance in {-1, 0, +1} per pair.
//
// ✨ Determinism:
//
//	Every trial t owns a PCG generator seeded from (master seed, t) via a
//	SplitMix64 mixer. Trials write only their own slot of the null sample,
//	so a fixed WithSeed gives bitwise-identical results for any WithWorkers.
//	Seed 0 draws a fresh master seed per call.
//
// ⚙️ Usage:
//
//	ct := permute.NewCombinationTest(labels, false)
//	rs, err := ct.Bootstrap(labels, nb,
//	  permute.WithTimes(1000),
//	  permute.WithMethod(permute.MethodZScore),
//	  permute.WithSeed(42),
//	)
//	for _, r := range rs {
//	  fmt.Println(r.Pair, r.Value)
//	}
//
// Mutual neighbors are counted from both sides: an undirected A–B contact
// contributes once to (A,B) and once to (B,A). Unordered tests report the
// (A,B) cell only, for the first-occurrence order of A and B.
//
// Complexity: O(Times · (n + E)) time for n objects and E neighbor entries,
// plus O(Times · U²) memory for U distinct labels in CombinationTest.
package permute
