package permute

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedSignificance(t *testing.T) {
	null := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19}

	// above every null value: gt = 0
	assert.Equal(t, 1.0, signedSignificance(100, null, 0.05))
	// below every null value: lt = 0
	assert.Equal(t, -1.0, signedSignificance(-1, null, 0.05))
	// in the middle
	assert.Equal(t, 0.0, signedSignificance(10, null, 0.05))
	// the smallest reachable p is 1/(n+1) = 0.05, not strictly below
	assert.Equal(t, 0.0, signedSignificance(19, null, 0.05))
	assert.Equal(t, 1.0, signedSignificance(19, null, 0.06))
}

// TestSignedSignificance_TiesGoToLower: gt == lt picks lt and the -1 direction.
func TestSignedSignificance_TiesGoToLower(t *testing.T) {
	assert.Equal(t, -1.0, signedSignificance(5, []float64{5}, 1))
	assert.Equal(t, 0.0, signedSignificance(5, []float64{5, 5, 5}, 0.5))
}

func TestTrialRNG_Streams(t *testing.T) {
	a, b := trialRNG(7, 3), trialRNG(7, 3)
	for i := 0; i < 16; i++ {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
	c, d := trialRNG(7, 3), trialRNG(7, 4)
	assert.NotEqual(t, c.Uint64(), d.Uint64())

	assert.NotEqual(t, deriveSeed(1, 0), deriveSeed(1, 1))
	assert.NotEqual(t, deriveSeed(1, 0), deriveSeed(2, 0))
	assert.Equal(t, uint64(42), masterSeed(42))
}

func TestShuffled_CopyAndPermutation(t *testing.T) {
	src := []int{0, 1, 2, 3, 4, 5, 6, 7}
	out := shuffled(src, trialRNG(1, 0))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, src, "source untouched")
	assert.ElementsMatch(t, src, out)
}

func TestPairCounts(t *testing.T) {
	// labels: 0 1 0 ; edges 0→1, 1→0, 1→2, 2→2
	nb := [][]int{{1}, {0, 2}, {2}}
	got := pairCounts([]int{0, 1, 0}, nb, 2)
	// cells: 00 01 10 11
	assert.Equal(t, []int{1, 1, 2, 0}, got)
}
