package geom

import (
	"fmt"

	"github.com/katalvlaran/spatialperm/internal/parallel"
	"github.com/paulmach/orb"
)

// ComputeBoundingBoxes reduces every polygon to its minimum axis-aligned
// bounding box. Output position i belongs to polygons[i] regardless of the
// order in which the parallel workers finish.
//
// workers <= 0 uses GOMAXPROCS.
//
// Errors:
//   - ErrEmptyPolygon (wrapped with the polygon index) for a polygon with no points.
//   - ErrNonFinite (wrapped with the polygon index) for a NaN/Inf vertex.
//
// Complexity: O(V) for V total vertices.
func ComputeBoundingBoxes(polygons [][]Point, workers int) ([]BBox, error) {
	for i, poly := range polygons {
		if len(poly) == 0 {
			return nil, fmt.Errorf("%w: polygon %d", ErrEmptyPolygon, i)
		}
		for _, p := range poly {
			if !p.Finite() {
				return nil, fmt.Errorf("%w: polygon %d", ErrNonFinite, i)
			}
		}
	}

	boxes := parallel.Map(len(polygons), workers, func(i int) BBox {
		return polygonBound(polygons[i])
	})
	return boxes, nil
}

// polygonBound computes the component-wise min/max of a non-empty vertex set.
func polygonBound(poly []Point) BBox {
	mp := make(orb.MultiPoint, len(poly))
	for i, p := range poly {
		mp[i] = p.Orb()
	}
	return FromOrb(mp.Bound())
}
