package neighbors

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/katalvlaran/spatialperm/metrics"
)

// Sentinel errors for index construction and queries.
var (
	// ErrNonFinite is returned when a point or box has a NaN/Inf coordinate.
	ErrNonFinite = errors.New("neighbors: coordinate is NaN or Inf")

	// ErrBadRadius is returned for a negative or NaN search radius.
	ErrBadRadius = errors.New("neighbors: radius must be a finite value >= 0")

	// ErrBadExpand is returned for a negative or non-finite expand distance.
	ErrBadExpand = errors.New("neighbors: expand must be a finite value >= 0")

	// ErrBadScale is returned for a non-positive or non-finite scale factor.
	ErrBadScale = errors.New("neighbors: scale must be a finite value > 0")

	// ErrLabelLength is returned when a label vector does not match the object count.
	ErrLabelLength = errors.New("neighbors: label vector length does not match object count")

	// ErrNeighborIndex is returned when a mapping references an index outside [0, N).
	ErrNeighborIndex = errors.New("neighbors: neighbor index out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("neighbors: invalid option supplied")
)

// Mapping associates every object index 0..N-1 with the indices of its
// neighbors, in discovery order. Every index has an entry, possibly empty.
type Mapping [][]int

// Option configures index construction and queries.
type Option func(*Options)

// Options holds the execution settings of an index.
type Options struct {
	// Workers bounds query parallelism; 0 means GOMAXPROCS.
	Workers int

	// Logger receives Debug records for builds and query sweeps.
	Logger *slog.Logger

	// Metrics, if non-nil, records builds and query counts.
	Metrics *metrics.Metrics

	err error
}

// DefaultOptions returns Options with GOMAXPROCS workers, a discarding
// logger and no metrics.
func DefaultOptions() Options {
	return Options{
		Workers: 0,
		Logger:  slog.New(slog.DiscardHandler),
	}
}

// WithWorkers bounds the number of goroutines used by query sweeps.
//
//	n > 0: at most n workers
//	n == 0: GOMAXPROCS
//	n < 0: invalid option → ErrOptionViolation
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: workers cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.Workers = n
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(o *Options) {
		o.Metrics = m
	}
}

func gatherOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}
