// SPDX-License-Identifier: MIT

package sparse

import (
	"fmt"
	"iter"

	"github.com/katalvlaran/sparsemc/value"
)

// Entry is one stored cell: a column index and its value.
type Entry[V any] struct {
	Column int
	Value  V
}

// Scale returns the entry with its value multiplied by factor.
func (e Entry[V]) Scale(ops value.Arithmetic[V], factor V) Entry[V] {
	return Entry[V]{Column: e.Column, Value: ops.Mul(e.Value, factor)}
}

// Equal compares both fields.
func (e Entry[V]) Equal(ops value.Arithmetic[V], other Entry[V]) bool {
	return e.Column == other.Column && ops.Equal(e.Value, other.Value)
}

func (e Entry[V]) String() string {
	return fmt.Sprintf("(%d, %v)", e.Column, e.Value)
}

// Rows is a non-owning view over a contiguous range of entries.
// Writes through Entries are visible in the matrix. A view is invalidated by
// any in-place structural change of its matrix (SwapRows).
type Rows[V any] struct {
	entries []Entry[V]
}

// Len returns the number of entries in the view.
func (r Rows[V]) Len() int { return len(r.entries) }

// At returns the i-th entry of the view.
func (r Rows[V]) At(i int) Entry[V] { return r.entries[i] }

// Entries exposes the underlying storage.
func (r Rows[V]) Entries() []Entry[V] { return r.entries }

// All iterates the view in column order.
func (r Rows[V]) All() iter.Seq2[int, Entry[V]] {
	return func(yield func(int, Entry[V]) bool) {
		for i, e := range r.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// Columns iterates the column indices of the view.
func (r Rows[V]) Columns() iter.Seq[int] {
	return func(yield func(int) bool) {
		for _, e := range r.entries {
			if !yield(e.Column) {
				return
			}
		}
	}
}
