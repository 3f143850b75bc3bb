package neighbors

import (
	"fmt"
	"math"
	"time"

	"github.com/dhconnelly/rtreego"
	"github.com/katalvlaran/spatialperm/geom"
	"github.com/katalvlaran/spatialperm/internal/parallel"
	"github.com/katalvlaran/spatialperm/metrics"
)

// R-tree node fan-out bounds.
const (
	rtreeMinChildren = 25
	rtreeMaxChildren = 50
)

// RegionQuery derives the query envelope of every box.
//
// Precedence:
//  1. Expand != nil: pad the box by *Expand on all four sides.
//  2. otherwise Scale: pad by Width*(Scale-1) horizontally and
//     Height*(Scale-1) vertically on each side, about the box centre.
//     The zero value means 1.0 (plain envelope).
//
// A shrinking scale that would invert an axis collapses that axis onto the
// box centre line, so every box still reaches itself.
type RegionQuery struct {
	Expand *float64
	Scale  float64
}

// DefaultRegionQuery returns the plain-envelope query (scale 1, no expand).
func DefaultRegionQuery() RegionQuery {
	return RegionQuery{Scale: 1}
}

// ExpandBy returns a query that pads every box by e on all sides.
func ExpandBy(e float64) RegionQuery {
	return RegionQuery{Expand: &e}
}

// ScaleBy returns a query that scales every box about its centre.
func ScaleBy(s float64) RegionQuery {
	return RegionQuery{Scale: s}
}

// Validate checks the expand distance or the scale factor, whichever applies.
func (q RegionQuery) Validate() error {
	if q.Expand != nil {
		e := *q.Expand
		if math.IsNaN(e) || math.IsInf(e, 0) || e < 0 {
			return fmt.Errorf("%w: %g", ErrBadExpand, e)
		}
		return nil
	}
	s := q.scale()
	if math.IsNaN(s) || math.IsInf(s, 0) || s <= 0 {
		return fmt.Errorf("%w: %g", ErrBadScale, s)
	}
	return nil
}

func (q RegionQuery) scale() float64 {
	if q.Scale == 0 {
		return 1
	}
	return q.Scale
}

// Envelope returns the query envelope derived from b.
func (q RegionQuery) Envelope(b geom.BBox) geom.BBox {
	if q.Expand != nil {
		return geom.FromOrb(b.Orb().Pad(*q.Expand))
	}
	s := q.scale()
	if s == 1 {
		return b
	}
	px, py := b.Width()*(s-1), b.Height()*(s-1)
	env := geom.BBox{MinX: b.MinX - px, MinY: b.MinY - py, MaxX: b.MaxX + px, MaxY: b.MaxY + py}
	if env.MinX > env.MaxX {
		c := (b.MinX + b.MaxX) / 2
		env.MinX, env.MaxX = c, c
	}
	if env.MinY > env.MaxY {
		c := (b.MinY + b.MaxY) / 2
		env.MinY, env.MaxY = c, c
	}
	return env
}

// RegionIndex answers envelope-intersection queries over a fixed box set.
// It is immutable once built and safe for concurrent queries.
type RegionIndex struct {
	boxes []geom.BBox
	tree  *rtreego.Rtree
	opts  Options
}

// rtItem is a box stored in the R-tree together with its input index.
type rtItem struct {
	idx  int
	rect rtreego.Rect
}

func (it *rtItem) Bounds() rtreego.Rect { return it.rect }

// NewRegionIndex bulk-loads an R-tree over boxes. The input is copied.
//
// Errors: geom validation errors (wrapped with the box index), ErrOptionViolation.
// Complexity: O(n log n) build.
func NewRegionIndex(boxes []geom.BBox, opts ...Option) (*RegionIndex, error) {
	o, err := gatherOptions(opts)
	if err != nil {
		return nil, err
	}
	start := time.Now()

	own := make([]geom.BBox, len(boxes))
	items := make([]rtreego.Spatial, len(boxes))
	for i, b := range boxes {
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		own[i] = b
		r, err := searchRect(b)
		if err != nil {
			return nil, fmt.Errorf("box %d: %w", i, err)
		}
		items[i] = &rtItem{idx: i, rect: r}
	}
	tree := rtreego.NewTree(2, rtreeMinChildren, rtreeMaxChildren, items...)

	elapsed := time.Since(start)
	o.Metrics.ObserveBuild(metrics.KindRegion, elapsed)
	o.Logger.Debug("region index built", "boxes", len(own), "elapsed", elapsed)

	return &RegionIndex{boxes: own, tree: tree, opts: o}, nil
}

// Len returns the number of indexed boxes.
func (ix *RegionIndex) Len() int { return len(ix.boxes) }

// Query returns the indices of all indexed boxes whose envelope intersects
// env, touching included, in tree visitation order.
func (ix *RegionIndex) Query(env geom.BBox) ([]int, error) {
	if err := env.Validate(); err != nil {
		return nil, err
	}
	return ix.intersecting(env), nil
}

// Intersecting derives the query envelope of every indexed box from q and
// collects the intersecting boxes, in parallel. Position i of the result
// holds the neighbors of box i, which always include i itself.
func (ix *RegionIndex) Intersecting(q RegionQuery) (Mapping, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	start := time.Now()
	m := Mapping(parallel.Map(len(ix.boxes), ix.opts.Workers, func(i int) []int {
		return ix.intersecting(q.Envelope(ix.boxes[i]))
	}))
	ix.opts.Metrics.AddQueries(metrics.KindRegion, len(ix.boxes))
	ix.opts.Logger.Debug("region neighbors computed",
		"boxes", len(ix.boxes), "pairs", m.Edges(), "elapsed", time.Since(start))
	return m, nil
}

// intersecting searches the tree with a slightly widened rectangle and then
// applies the exact inclusive test, so boxes that only touch env are kept.
func (ix *RegionIndex) intersecting(env geom.BBox) []int {
	out := []int{}
	if len(ix.boxes) == 0 {
		return out
	}
	r, err := searchRect(env)
	if err != nil {
		return out
	}
	for _, s := range ix.tree.SearchIntersect(r) {
		idx := s.(*rtItem).idx
		if ix.boxes[idx].Intersects(env) {
			out = append(out, idx)
		}
	}
	return out
}

// RegionNeighbors builds a RegionIndex over boxes and returns Intersecting(q).
func RegionNeighbors(boxes []geom.BBox, q RegionQuery, opts ...Option) (Mapping, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	ix, err := NewRegionIndex(boxes, opts...)
	if err != nil {
		return nil, err
	}
	return ix.Intersecting(q)
}

// searchMargin is the relative widening applied to tree search rectangles.
const searchMargin = 1e-9

// searchRect widens b slightly on every side. The tree only yields
// candidates; exactness comes from geom.BBox.Intersects. Widening keeps
// degenerate (zero-width) boxes representable and touching boxes visible.
func searchRect(b geom.BBox) (rtreego.Rect, error) {
	minX, minY := widen(b.MinX, -1), widen(b.MinY, -1)
	maxX, maxY := widen(b.MaxX, 1), widen(b.MaxY, 1)
	return rtreego.NewRect(rtreego.Point{minX, minY}, []float64{maxX - minX, maxY - minY})
}

func widen(v, dir float64) float64 {
	return v + dir*(math.Abs(v)+1)*searchMargin
}
