package geom_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/spatialperm/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestComputeBoundingBoxes_Order verifies per-polygon min/max and input order.
func TestComputeBoundingBoxes_Order(t *testing.T) {
	polys := [][]geom.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 2}, {X: -1, Y: 1}},
		{{X: 5, Y: 5}},
		{{X: 3, Y: -2}, {X: 4, Y: -1}},
	}
	boxes, err := geom.ComputeBoundingBoxes(polys, 2)
	require.NoError(t, err)
	require.Len(t, boxes, 3)
	assert.Equal(t, geom.BBox{MinX: -1, MinY: 0, MaxX: 1, MaxY: 2}, boxes[0])
	assert.Equal(t, geom.BBox{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5}, boxes[1])
	assert.Equal(t, geom.BBox{MinX: 3, MinY: -2, MaxX: 4, MaxY: -1}, boxes[2])
}

// TestComputeBoundingBoxes_ManyParallel cross-checks parallel output against a serial scan.
func TestComputeBoundingBoxes_ManyParallel(t *testing.T) {
	const n = 500
	polys := make([][]geom.Point, n)
	for i := range polys {
		f := float64(i)
		polys[i] = []geom.Point{{X: f, Y: -f}, {X: f + 2, Y: -f + 3}, {X: f + 1, Y: -f - 1}}
	}
	boxes, err := geom.ComputeBoundingBoxes(polys, 0)
	require.NoError(t, err)
	for i, b := range boxes {
		f := float64(i)
		assert.Equal(t, geom.BBox{MinX: f, MinY: -f - 1, MaxX: f + 2, MaxY: -f + 3}, b, "polygon %d", i)
	}
}

func TestComputeBoundingBoxes_Errors(t *testing.T) {
	_, err := geom.ComputeBoundingBoxes([][]geom.Point{{{X: 1, Y: 1}}, {}}, 1)
	assert.ErrorIs(t, err, geom.ErrEmptyPolygon)

	_, err = geom.ComputeBoundingBoxes([][]geom.Point{{{X: math.NaN(), Y: 1}}}, 1)
	assert.ErrorIs(t, err, geom.ErrNonFinite)

	boxes, err := geom.ComputeBoundingBoxes(nil, 1)
	assert.NoError(t, err)
	assert.Empty(t, boxes)
}

func TestBBox_ValidateAndIntersects(t *testing.T) {
	a := geom.BBox{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	touching := geom.BBox{MinX: 1, MinY: 1, MaxX: 2, MaxY: 2}
	apart := geom.BBox{MinX: 1.5, MinY: 0, MaxX: 2, MaxY: 1}

	assert.NoError(t, a.Validate())
	assert.True(t, a.Intersects(touching), "corner contact counts")
	assert.False(t, a.Intersects(apart))

	assert.ErrorIs(t, geom.BBox{MinX: 2, MaxX: 1}.Validate(), geom.ErrInvertedBox)
	assert.ErrorIs(t, geom.BBox{MaxX: math.Inf(1)}.Validate(), geom.ErrNonFinite)

	assert.Equal(t, geom.Point{X: 0.5, Y: 0.5}, a.Center())
	assert.Equal(t, a, geom.FromOrb(a.Orb()))
}
