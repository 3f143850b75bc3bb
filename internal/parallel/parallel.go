// Package parallel runs data-parallel fan-out over dense index ranges.
//
// Every task owns the output slot of its index, so callers write results
// directly into pre-sized slices and need no merge step or locking.
package parallel

import (
	"runtime"

	"golang.org/x/sync/errgroup"
)

// chunksPerWorker controls how finely a range is split. A few chunks per
// worker smooths out uneven per-item cost (dense vs sparse regions).
const chunksPerWorker = 4

// Workers resolves a requested worker count: n<=0 means GOMAXPROCS.
func Workers(n int) int {
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

// For calls fn(i) exactly once for every i in [0,n), using at most
// Workers(workers) goroutines. It returns after all calls have finished.
//
// fn must only write state owned by index i.
func For(n, workers int, fn func(i int)) {
	if n <= 0 {
		return
	}
	w := Workers(workers)
	if w > n {
		w = n
	}
	if w == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	chunk := n / (w * chunksPerWorker)
	if chunk < 1 {
		chunk = 1
	}

	var g errgroup.Group
	g.SetLimit(w)
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				fn(i)
			}
			return nil
		})
	}
	_ = g.Wait() // tasks never fail
}

// Map evaluates fn for every index in [0,n) in parallel and returns the
// results in index order.
func Map[T any](n, workers int, fn func(i int) T) []T {
	out := make([]T, n)
	For(n, workers, func(i int) {
		out[i] = fn(i)
	})
	return out
}
