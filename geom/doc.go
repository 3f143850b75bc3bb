// Package geom defines the planar primitives shared by the neighbor indexes:
// points, axis-aligned bounding boxes, and the polygon → bounding-box reduction.
//
// 🚀 What is in here?
//
//	Point - an immutable (x, y) pair of float64 coordinates.
//	BBox  - (minx, miny, maxx, maxy) with minx ≤ maxx and miny ≤ maxy.
//	ComputeBoundingBoxes - one BBox per polygon, in input order,
//	    computed in parallel across polygons.
//
// ✨ Interop:
//
//	Point.Orb / BBox.Orb / FromOrb convert to and from github.com/paulmach/orb,
//	whose Bound type provides padding and inclusive intersection tests.
//
// Errors:
//   - ErrEmptyPolygon - a polygon has no vertices.
//   - ErrInvertedBox  - minx > maxx or miny > maxy.
//   - ErrNonFinite    - NaN or ±Inf coordinate.
//
// Complexity:
//
//	ComputeBoundingBoxes: O(total vertices) work, O(#polygons) memory.
package geom
