package permute

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/katalvlaran/spatialperm/metrics"
)

// Sentinel errors for permutation tests.
var (
	// ErrTimes is returned when the number of trials is below 1.
	// An empty null sample has no standard deviation.
	ErrTimes = errors.New("permute: times must be >= 1")

	// ErrPValue is returned when the significance threshold is outside (0, 1].
	ErrPValue = errors.New("permute: pval must lie in (0, 1]")

	// ErrMethod is returned for an unknown summary method.
	ErrMethod = errors.New("permute: method must be \"pval\" or \"zscore\"")

	// ErrLengthMismatch is returned when label/status vectors and the
	// neighbor mapping disagree on the number of objects.
	ErrLengthMismatch = errors.New("permute: input lengths do not match")

	// ErrUnknownLabel is returned when bootstrap types contain a label the
	// combination test was not built with.
	ErrUnknownLabel = errors.New("permute: label not present at construction")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("permute: invalid option supplied")
)

// Method selects how a permutation null is summarized.
type Method int

const (
	// MethodPValue reports signed significance in {-1, 0, +1}.
	MethodPValue Method = iota

	// MethodZScore reports (observed - mean(null)) / std(null).
	MethodZScore
)

// String returns "pval" or "zscore".
func (m Method) String() string {
	switch m {
	case MethodPValue:
		return "pval"
	case MethodZScore:
		return "zscore"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "pval" / "zscore" (case-insensitive) to a Method.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pval", "p", "pvalue":
		return MethodPValue, nil
	case "zscore", "z":
		return MethodZScore, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrMethod, s)
	}
}

// Defaults.
const (
	DefaultTimes  = 500
	DefaultPValue = 0.05
)

// Options configures a bootstrap call.
type Options struct {
	// Times is the number of permutation trials (>= 1).
	Times int

	// PValue is the significance threshold used by MethodPValue.
	PValue float64

	// Method selects the summary statistic of CombinationTest.Bootstrap.
	Method Method

	// IgnoreSelf drops each object's own index from its neighbor list.
	IgnoreSelf bool

	// Seed fixes the master seed. 0 draws a fresh master seed per call.
	Seed int64

	// Workers bounds trial parallelism; 0 means GOMAXPROCS.
	Workers int

	// Logger receives Debug records for finished bootstraps.
	Logger *slog.Logger

	// Metrics, if non-nil, records trial counts and durations.
	Metrics *metrics.Metrics

	err error
}

// Option configures a bootstrap call.
type Option func(*Options)

// DefaultOptions returns Times=500, PValue=0.05, Method=MethodPValue,
// IgnoreSelf=false, a random master seed, GOMAXPROCS workers and a
// discarding logger.
func DefaultOptions() Options {
	return Options{
		Times:  DefaultTimes,
		PValue: DefaultPValue,
		Method: MethodPValue,
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithTimes sets the number of permutation trials.
func WithTimes(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: %d", ErrTimes, n)
			return
		}
		o.Times = n
	}
}

// WithPValue sets the significance threshold.
func WithPValue(p float64) Option {
	return func(o *Options) {
		if math.IsNaN(p) || p <= 0 || p > 1 {
			o.err = fmt.Errorf("%w: %g", ErrPValue, p)
			return
		}
		o.PValue = p
	}
}

// WithMethod selects the summary statistic.
func WithMethod(m Method) Option {
	return func(o *Options) {
		if m != MethodPValue && m != MethodZScore {
			o.err = fmt.Errorf("%w: %v", ErrMethod, m)
			return
		}
		o.Method = m
	}
}

// WithIgnoreSelf drops self references from the neighbor mapping.
func WithIgnoreSelf(ignore bool) Option {
	return func(o *Options) {
		o.IgnoreSelf = ignore
	}
}

// WithSeed fixes the master seed; every trial derives its own stream from it.
func WithSeed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// WithWorkers bounds trial parallelism.
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

// Pair is an ordered or unordered combination of two labels.
type Pair[L comparable] struct {
	A, B L
}

// String formats the pair as "A|B".
func (p Pair[L]) String() string {
	return fmt.Sprintf("%v|%v", p.A, p.B)
}

// Result is the summary value of one label pair: a z-score, or a signed
// significance in {-1, 0, +1} (+1 association, -1 avoidance, 0 none).
type Result[L comparable] struct {
	Pair  Pair[L]
	Value float64
}
