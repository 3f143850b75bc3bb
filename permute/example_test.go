package permute_test

import (
	"fmt"

	"github.com/katalvlaran/spatialperm/geom"
	"github.com/katalvlaran/spatialperm/neighbors"
	"github.com/katalvlaran/spatialperm/permute"
)

// ExampleCombinationTest_Bootstrap lays out two segregated populations on a
// grid: each label associates with itself and avoids the other.
func ExampleCombinationTest_Bootstrap() {
	var pts []geom.Point
	var labels []string
	for y := 0; y < 8; y++ {
		for x := 0; x < 16; x++ {
			pts = append(pts, geom.Point{X: float64(x), Y: float64(y)})
			if x < 8 {
				labels = append(labels, "tumor")
			} else {
				labels = append(labels, "stroma")
			}
		}
	}
	nb, err := neighbors.PointNeighbors(pts, 1)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	ct := permute.NewCombinationTest(labels, false)
	rs, err := ct.Bootstrap(labels, nb,
		permute.WithTimes(199),
		permute.WithIgnoreSelf(true),
		permute.WithSeed(42),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, r := range rs {
		fmt.Printf("%s %+.0f\n", r.Pair, r.Value)
	}
	// Output:
	// tumor|tumor +1
	// tumor|stroma -1
	// stroma|stroma +1
}

// ExamplePairwiseStatus shows that a constant status carries no signal.
func ExamplePairwiseStatus() {
	nb := neighbors.Mapping{{1}, {0, 2}, {1}}
	z, err := permute.PairwiseStatus(
		[]bool{true, false, true},
		[]bool{true, true, true},
		nb,
		permute.WithTimes(10),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(z)
	// Output: 0
}
