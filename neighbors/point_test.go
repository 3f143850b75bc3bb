package neighbors_test

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	"github.com/katalvlaran/spatialperm/geom"
	"github.com/katalvlaran/spatialperm/neighbors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// randomPoints returns n deterministic pseudo-random points in [0,size)².
func randomPoints(n int, size float64, seed int64) []geom.Point {
	r := rand.New(rand.NewSource(seed))
	pts := make([]geom.Point, n)
	for i := range pts {
		pts[i] = geom.Point{X: r.Float64() * size, Y: r.Float64() * size}
	}
	return pts
}

// bruteWithin is the O(n²) reference for radius search.
func bruteWithin(pts []geom.Point, radius float64) [][]int {
	out := make([][]int, len(pts))
	for i, p := range pts {
		out[i] = []int{}
		for j, q := range pts {
			if math.Hypot(p.X-q.X, p.Y-q.Y) <= radius {
				out[i] = append(out[i], j)
			}
		}
	}
	return out
}

// TestPointNeighbors_Example covers the documented three-point case.
func TestPointNeighbors_Example(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 5, Y: 5}}
	m, err := neighbors.PointNeighbors(pts, 1.5)
	require.NoError(t, err)
	require.Len(t, m, 3)
	assert.ElementsMatch(t, []int{0, 1}, m[0])
	assert.ElementsMatch(t, []int{0, 1}, m[1])
	assert.ElementsMatch(t, []int{2}, m[2])
}

// TestPointNeighbors_MatchesBruteForce cross-checks the kd-tree against a full scan.
func TestPointNeighbors_MatchesBruteForce(t *testing.T) {
	pts := randomPoints(400, 100, 7)
	for _, radius := range []float64{0, 2.5, 10, 250} {
		got, err := neighbors.PointNeighbors(pts, radius, neighbors.WithWorkers(4))
		require.NoError(t, err)
		want := bruteWithin(pts, radius)
		for i := range pts {
			assert.ElementsMatchf(t, want[i], got[i], "radius=%g point=%d", radius, i)
		}
	}
}

// TestPointNeighbors_ReflexiveAndSymmetric checks the two structural guarantees.
func TestPointNeighbors_ReflexiveAndSymmetric(t *testing.T) {
	pts := randomPoints(300, 50, 11)
	m, err := neighbors.PointNeighbors(pts, 4)
	require.NoError(t, err)
	for i, nbrs := range m {
		assert.Containsf(t, nbrs, i, "point %d must list itself", i)
	}
	assert.True(t, m.Symmetric())
}

// TestPointNeighbors_InclusiveBoundary verifies distance == radius is a match.
func TestPointNeighbors_InclusiveBoundary(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 3, Y: 4}}
	m, err := neighbors.PointNeighbors(pts, 5)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1}, m[0])
}

// TestPointNeighbors_Duplicates keeps coincident points distinct by index.
func TestPointNeighbors_Duplicates(t *testing.T) {
	pts := []geom.Point{{X: 1, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 1}}
	m, err := neighbors.PointNeighbors(pts, 0)
	require.NoError(t, err)
	for i := range pts {
		assert.ElementsMatch(t, []int{0, 1, 2}, m[i])
	}
}

func TestPointNeighbors_Errors(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}}

	_, err := neighbors.PointNeighbors(pts, -1)
	assert.ErrorIs(t, err, neighbors.ErrBadRadius)

	_, err = neighbors.PointNeighbors(pts, math.NaN())
	assert.ErrorIs(t, err, neighbors.ErrBadRadius)

	_, err = neighbors.PointNeighbors([]geom.Point{{X: math.Inf(1)}}, 1)
	assert.ErrorIs(t, err, neighbors.ErrNonFinite)

	_, err = neighbors.PointNeighbors(pts, 1, neighbors.WithWorkers(-2))
	assert.ErrorIs(t, err, neighbors.ErrOptionViolation)
}

func TestPointNeighbors_Empty(t *testing.T) {
	m, err := neighbors.PointNeighbors(nil, 1)
	require.NoError(t, err)
	assert.Empty(t, m)
}

// TestPointIndex_InputCopied ensures the index is a frozen snapshot.
func TestPointIndex_InputCopied(t *testing.T) {
	pts := []geom.Point{{X: 0, Y: 0}, {X: 1, Y: 0}}
	ix, err := neighbors.NewPointIndex(pts)
	require.NoError(t, err)
	pts[1] = geom.Point{X: 100, Y: 100}

	m, err := ix.Within(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{0, 1}, m[0])
	assert.Equal(t, 2, ix.Len())
}

func TestPointIndex_Query(t *testing.T) {
	ix, err := neighbors.NewPointIndex([]geom.Point{{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 9, Y: 9}})
	require.NoError(t, err)

	got, err := ix.Query(geom.Point{X: 1, Y: 0}, 1)
	require.NoError(t, err)
	slices.Sort(got)
	assert.Equal(t, []int{0, 1}, got)

	_, err = ix.Query(geom.Point{X: math.NaN()}, 1)
	assert.ErrorIs(t, err, neighbors.ErrNonFinite)
}

// TestPointNeighbors_Deterministic checks that worker count does not change output order.
func TestPointNeighbors_Deterministic(t *testing.T) {
	pts := randomPoints(200, 30, 3)
	a, err := neighbors.PointNeighbors(pts, 3, neighbors.WithWorkers(1))
	require.NoError(t, err)
	b, err := neighbors.PointNeighbors(pts, 3, neighbors.WithWorkers(8))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
