// Package reach computes qualitative reachability over the transition
// structure of a sparse.Matrix, where row group g is state g and a column is
// a successor state.
//
// Forward explores successors of a seed set. Backward computes the states
// that can reach a target set while staying inside a constraint set, which
// is the graph pre-analysis that precedes numeric solving (states with
// probability greater than zero).
//
// Explicit zero entries are not transitions.
package reach

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"

	"github.com/katalvlaran/sparsemc/sparse"
)

type queueItem struct {
	state int
	depth int
}

// walker encapsulates mutable search state.
type walker[V any] struct {
	m     *sparse.Matrix[V]
	opts  Options
	allow func(state int) bool
	queue []queueItem
	res   *Result
}

// Forward returns the states reachable from initial.
func Forward[V any](m *sparse.Matrix[V], initial *bitset.BitSet, opts ...Option) (*Result, error) {
	o, err := prepare(m, opts)
	if err != nil {
		return nil, err
	}
	w := newWalker(m, o, nil)
	if err := w.seed(initial); err != nil {
		return nil, err
	}

	return w.res, w.loop(func(state int) []sparse.Entry[V] { return m.RowGroup(state).Entries() })
}

// Backward returns the states that can reach targets through states in
// constraint. Targets are always included; a nil constraint allows every
// state. Predecessors come from the group-joined transpose of m.
func Backward[V any](m *sparse.Matrix[V], constraint, targets *bitset.BitSet, opts ...Option) (*Result, error) {
	o, err := prepare(m, opts)
	if err != nil {
		return nil, err
	}
	allow := func(int) bool { return true }
	if constraint != nil {
		allow = func(s int) bool { return constraint.Test(uint(s)) }
	}

	backward := m.Transpose(true, false)
	w := newWalker(m, o, allow)
	if err := w.seed(targets); err != nil {
		return nil, err
	}

	return w.res, w.loop(func(state int) []sparse.Entry[V] { return backward.Row(state).Entries() })
}

func prepare[V any](m *sparse.Matrix[V], opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return o, o.err
	}
	if m == nil {
		return o, ErrNilMatrix
	}
	if m.RowGroupCount() != m.ColumnCount() {
		return o, fmt.Errorf("%w: %d groups, %d columns", ErrNotSquare, m.RowGroupCount(), m.ColumnCount())
	}

	return o, nil
}

func newWalker[V any](m *sparse.Matrix[V], o Options, allow func(int) bool) *walker[V] {
	n := m.ColumnCount()
	depth := make([]int, n)
	for i := range depth {
		depth[i] = -1
	}
	if allow == nil {
		allow = func(int) bool { return true }
	}

	return &walker[V]{
		m:     m,
		opts:  o,
		allow: allow,
		queue: make([]queueItem, 0, n),
		res: &Result{
			Reached: bitset.New(uint(n)),
			Order:   make([]int, 0, n),
			Depth:   depth,
		},
	}
}

// seed enqueues every state of s at depth zero.
func (w *walker[V]) seed(s *bitset.BitSet) error {
	if s == nil {
		return nil
	}
	n := uint(w.m.ColumnCount())
	if i, ok := s.NextSet(n); ok {
		return fmt.Errorf("%w: seed %d of %d states", ErrStateOutOfRange, i, n)
	}
	for i, ok := s.NextSet(0); ok; i, ok = s.NextSet(i + 1) {
		w.enqueue(int(i), 0)
	}

	return nil
}

func (w *walker[V]) enqueue(state, depth int) {
	w.res.Reached.Set(uint(state))
	w.res.Depth[state] = depth
	w.queue = append(w.queue, queueItem{state: state, depth: depth})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker[V]) loop(edges func(state int) []sparse.Entry[V]) error {
	ops := w.m.Ops()
	for len(w.queue) > 0 {
		select {
		case <-w.opts.Ctx.Done():
			return w.opts.Ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.state)
		if err := w.opts.OnVisit(item.state, item.depth); err != nil {
			return fmt.Errorf("reach: OnVisit error at state %d: %w", item.state, err)
		}
		if w.opts.MaxSteps > 0 && item.depth >= w.opts.MaxSteps {
			continue
		}

		for _, e := range edges(item.state) {
			if ops.IsZero(e.Value) || w.res.Reached.Test(uint(e.Column)) || !w.allow(e.Column) {
				continue
			}
			w.enqueue(e.Column, item.depth+1)
		}
	}

	return nil
}
