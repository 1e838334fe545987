// Package reach provides tunable options and error definitions
// for graph reachability over a sparse.Matrix.
package reach

import (
	"context"
	"errors"
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Sentinel errors for reachability queries.
var (
	// ErrNilMatrix is returned if a nil matrix pointer is passed.
	ErrNilMatrix = errors.New("reach: matrix is nil")

	// ErrNotSquare is returned when the group count differs from the column
	// count, so columns cannot be read as states.
	ErrNotSquare = errors.New("reach: row group count must equal column count")

	// ErrStateOutOfRange is returned when a seed set names a missing state.
	ErrStateOutOfRange = errors.New("reach: state out of range")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("reach: invalid option supplied")
)

// Option configures a search via functional arguments.
// An invalid Option is recorded and surfaced as ErrOptionViolation.
type Option func(*Options)

// Options holds parameters and callbacks of a search.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called for every reached state in visit order. A returned
	// error aborts the search.
	OnVisit func(state, depth int) error

	// MaxSteps, if > 0, stops expanding states at this depth.
	// Zero means unbounded.
	MaxSteps int

	err error
}

// DefaultOptions returns Options with a background context, no step bound
// and a no-op visit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:     context.Background(),
		OnVisit: func(int, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a visit callback.
func WithOnVisit(fn func(state, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxSteps bounds the search depth.
//
//	n > 0: states farther than n transitions are not reached
//	n == 0: unbounded
//	n < 0: invalid option → ErrOptionViolation
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxSteps cannot be negative (%d)", ErrOptionViolation, n)

			return
		}
		o.MaxSteps = n
	}
}

// Result holds the outcome of a search:
//   - Reached: states found, seeds included.
//   - Order: states in visit sequence.
//   - Depth: transitions from the nearest seed, -1 when unreached.
type Result struct {
	Reached *bitset.BitSet
	Order   []int
	Depth   []int
}

// Count returns the number of reached states.
func (r *Result) Count() int { return int(r.Reached.Count()) }
