// Package spatialperm finds the neighbors of labeled objects in the plane and
// asks whether labels meet in those neighborhoods more or less often than
// random relabeling would predict.
//
// 🚀 What is spatialperm?
//
//	A concurrent toolkit for spatial co-occurrence analysis:
//		• Neighbor search over points: kd-tree radius queries
//		• Neighbor search over boxes: R-tree envelope intersection, with expand or scale
//		• Neighbor post-processing: dedupe, drop self, relabel
//		• Permutation tests: pairwise status z-scores, per-label-pair z-scores or
//		  signed significance, reproducible under a fixed seed
//
// ✨ Why choose spatialperm?
//
//   - Parallel by default – query sweeps and permutation trials fan out over all CPUs
//   - Deterministic – a seed fixes every trial's random stream, whatever the worker count
//   - Generic labels – strings, bools, ints or any comparable type
//   - Observable – slog records and Prometheus collectors, both optional
//
// Under the hood, everything is organized under these subpackages:
//
//	geom/       - Point and BBox primitives, parallel polygon bounding boxes
//	neighbors/  - PointIndex (kd-tree), RegionIndex (R-tree), Mapping helpers
//	permute/    - label combinations, PairwiseStatus, CombinationTest
//	stats/      - mean, population standard deviation, z-score
//	metrics/    - Prometheus collectors shared by the indexes and the tests
//	cmd/spatialperm - command line front end (CSV / GeoJSON input)
//
// Quick ASCII example:
//
//	    A A │ B B
//	    A A │ B B
//
//	two segregated populations: A|A and B|B associate (+1), A|B avoids (-1).
//
//	go install github.com/katalvlaran/spatialperm/cmd/spatialperm@latest
package spatialperm
