// Command spatialperm computes spatial neighbor sets and label-permutation
// co-occurrence tests from CSV or GeoJSON input.
package main

import "github.com/katalvlaran/spatialperm/internal/cli"

func main() {
	cli.Execute()
}
