package geom

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// Sentinel errors for geometry validation.
var (
	// ErrEmptyPolygon indicates a polygon without any vertex.
	ErrEmptyPolygon = errors.New("geom: polygon must have at least one point")

	// ErrInvertedBox indicates a bounding box with min > max on some axis.
	ErrInvertedBox = errors.New("geom: bounding box min exceeds max")

	// ErrNonFinite indicates a NaN or infinite coordinate.
	ErrNonFinite = errors.New("geom: coordinate is NaN or Inf")
)

// Point is a 2D coordinate pair.
type Point struct {
	X, Y float64
}

// Orb returns p as an orb.Point.
func (p Point) Orb() orb.Point {
	return orb.Point{p.X, p.Y}
}

// Finite reports whether both coordinates are finite.
func (p Point) Finite() bool {
	return finite(p.X) && finite(p.Y)
}

// BBox is an axis-aligned bounding box. Its identity is its position in the
// slice it came from; nothing in this module reorders boxes.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// FromOrb converts an orb.Bound into a BBox.
func FromOrb(b orb.Bound) BBox {
	return BBox{MinX: b.Min[0], MinY: b.Min[1], MaxX: b.Max[0], MaxY: b.Max[1]}
}

// Orb returns b as an orb.Bound.
func (b BBox) Orb() orb.Bound {
	return orb.Bound{Min: orb.Point{b.MinX, b.MinY}, Max: orb.Point{b.MaxX, b.MaxY}}
}

// Width is MaxX - MinX.
func (b BBox) Width() float64 { return b.MaxX - b.MinX }

// Height is MaxY - MinY.
func (b BBox) Height() float64 { return b.MaxY - b.MinY }

// Center returns the midpoint of the box.
func (b BBox) Center() Point {
	return Point{X: (b.MinX + b.MaxX) / 2, Y: (b.MinY + b.MaxY) / 2}
}

// Intersects reports whether b and o share at least one point.
// Touching edges and corners count as intersecting.
func (b BBox) Intersects(o BBox) bool {
	return b.Orb().Intersects(o.Orb())
}

// Validate checks finiteness and the min ≤ max invariant.
func (b BBox) Validate() error {
	if !finite(b.MinX) || !finite(b.MinY) || !finite(b.MaxX) || !finite(b.MaxY) {
		return ErrNonFinite
	}
	if b.MinX > b.MaxX || b.MinY > b.MaxY {
		return fmt.Errorf("%w: (%g, %g, %g, %g)", ErrInvertedBox, b.MinX, b.MinY, b.MaxX, b.MaxY)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
