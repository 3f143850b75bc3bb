// Package neighbors computes, for every object in a 2D collection, the set of
// other objects within a geometric neighborhood.
//
// 🚀 Two index shapes:
//
//	PointIndex  - balanced kd-tree over points; radius search (inclusive,
//	              Euclidean). Backed by gonum.org/v1/gonum/spatial/kdtree.
//	RegionIndex - bulk-loaded R-tree over axis-aligned boxes; envelope
//	              intersection (touching counts), with optional expand or
//	              scale of every query box. Backed by github.com/dhconnelly/rtreego.
//
// Both indexes are built once and are read-only afterwards, so the per-object
// query sweep (Within / Intersecting) runs in parallel without locking. Each
// worker writes only its own output slot; results come back in input order.
//
// ✨ Post-processing:
//
//   - Normalize - deduplicate neighbor lists and optionally drop self references.
//   - Relabel   - map neighbor indices to labels, preserving order.
//   - FromMap   - build a dense Mapping from a sparse index → neighbors map.
//
// ⚙️ Usage:
//
//	m, err := neighbors.PointNeighbors(cells, 15.0, neighbors.WithWorkers(8))
//	if err != nil {
//	  // ErrBadRadius, ErrNonFinite ...
//	}
//	m = neighbors.Normalize(m, true)
//
// Complexity:
//
//   - Build: O(n log n) for both indexes.
//   - Sweep: O(n · (log n + k)) for k neighbors per object on average.
package neighbors
