package neighbors

import (
	"fmt"
	"math"
	"time"

	"github.com/katalvlaran/spatialperm/geom"
	"github.com/katalvlaran/spatialperm/internal/parallel"
	"github.com/katalvlaran/spatialperm/metrics"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// PointIndex answers radius queries over a fixed point set.
// It is immutable once built and safe for concurrent queries.
type PointIndex struct {
	points []geom.Point
	tree   *kdtree.Tree
	opts   Options
}

// NewPointIndex builds a balanced kd-tree (median pivots) over points.
// The input slice is copied; later mutation by the caller has no effect.
//
// Errors: ErrNonFinite, ErrOptionViolation.
// Complexity: O(n log n) time, O(n) memory.
func NewPointIndex(points []geom.Point, opts ...Option) (*PointIndex, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	own := make([]geom.Point, len(points))
	items := make(kdPoints, len(points))
	for i, p := range points {
		if !p.Finite() {
			return nil, fmt.Errorf("%w: point %d", ErrNonFinite, i)
		}
		own[i] = p
		items[i] = kdPoint{idx: i, x: p.X, y: p.Y}
	}

	// kdtree.New reorders items while partitioning; items is ours.
	tree := kdtree.New(items, false)

	elapsed := time.Since(start)
	o.Metrics.ObserveBuild(metrics.KindPoint, elapsed)
	o.Logger.Debug("point index built", "points", len(own), "elapsed", elapsed)

	return &PointIndex{points: own, tree: tree, opts: o}, nil
}

// Len returns the number of indexed points.
func (ix *PointIndex) Len() int { return len(ix.points) }

// Query returns the indices of all indexed points within Euclidean distance
// radius of p (inclusive), in tree visitation order.
func (ix *PointIndex) Query(p geom.Point, radius float64) ([]int, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	if !p.Finite() {
		return nil, ErrNonFinite
	}
	return ix.within(p, radius), nil
}

// Within runs a radius query for every indexed point in parallel.
// Position i of the result holds the neighbors of point i, which always
// include i itself.
func (ix *PointIndex) Within(radius float64) (Mapping, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	start := time.Now()
	m := Mapping(parallel.Map(len(ix.points), ix.opts.Workers, func(i int) []int {
		return ix.within(ix.points[i], radius)
	}))
	ix.opts.Metrics.AddQueries(metrics.KindPoint, len(ix.points))
	ix.opts.Logger.Debug("point neighbors computed",
		"points", len(ix.points), "radius", radius, "pairs", m.Edges(), "elapsed", time.Since(start))
	return m, nil
}

func (ix *PointIndex) within(p geom.Point, radius float64) []int {
	out := []int{}
	if ix.tree.Root == nil {
		return out
	}
	// kdPoint.Distance is squared Euclidean.
	keep := kdtree.NewDistKeeper(radius * radius)
	ix.tree.NearestSet(keep, kdPoint{idx: -1, x: p.X, y: p.Y})
	for _, c := range keep.Heap {
		if c.Comparable == nil {
			continue // sentinel
		}
		out = append(out, c.Comparable.(kdPoint).idx)
	}
	return out
}

// PointNeighbors builds a PointIndex over points and returns Within(radius).
func PointNeighbors(points []geom.Point, radius float64, opts ...Option) (Mapping, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	ix, err := NewPointIndex(points, opts...)
	if err != nil {
		return nil, err
	}
	return ix.Within(radius)
}

func checkRadius(r float64) error {
	if math.IsNaN(r) || math.IsInf(r, 0) || r < 0 {
		return fmt.Errorf("%w: %g", ErrBadRadius, r)
	}
	return nil
}

// kdPoint is a point carrying its original input index.
type kdPoint struct {
	idx  int
	x, y float64
}

func (p kdPoint) coord(d kdtree.Dim) float64 {
	if d == 0 {
		return p.x
	}
	return p.y
}

// Compare returns the signed distance of p from the plane through c
// perpendicular to dimension d.
func (p kdPoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return p.coord(d) - c.(kdPoint).coord(d)
}

// Dims is always 2.
func (p kdPoint) Dims() int { return 2 }

// Distance returns the squared Euclidean distance between p and c.
func (p kdPoint) Distance(c kdtree.Comparable) float64 {
	q := c.(kdPoint)
	dx, dy := p.x-q.x, p.y-q.y
	return dx*dx + dy*dy
}

// kdPoints implements kdtree.Interface.
type kdPoints []kdPoint

func (p kdPoints) Index(i int) kdtree.Comparable { return p[i] }
func (p kdPoints) Len() int                      { return len(p) }
func (p kdPoints) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

// Pivot partitions p around the median along d and returns the pivot index.
func (p kdPoints) Pivot(d kdtree.Dim) int {
	return kdPlane{dim: d, pts: p}.Pivot()
}

// kdPlane sorts kdPoints along one dimension.
type kdPlane struct {
	dim kdtree.Dim
	pts kdPoints
}

func (p kdPlane) Len() int           { return len(p.pts) }
func (p kdPlane) Less(i, j int) bool { return p.pts[i].coord(p.dim) < p.pts[j].coord(p.dim) }
func (p kdPlane) Swap(i, j int)      { p.pts[i], p.pts[j] = p.pts[j], p.pts[i] }
func (p kdPlane) Pivot() int         { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }
func (p kdPlane) Slice(start, end int) kdtree.SortSlicer {
	return kdPlane{dim: p.dim, pts: p.pts[start:end]}
}
