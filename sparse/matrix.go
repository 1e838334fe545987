// SPDX-License-Identifier: MIT

package sparse

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/go-logr/logr"

	"github.com/katalvlaran/sparsemc/value"
)

// Matrix is a compressed-sparse-row matrix with optional row grouping.
//
// Storage:
//   - columnsAndValues holds all entries, row after row, columns strictly
//     increasing inside each row.
//   - rowIndications has RowCount()+1 offsets; row r spans
//     [rowIndications[r], rowIndications[r+1]).
//   - grouping partitions the rows into contiguous groups; the trivial
//     grouping puts every row in its own group.
//
// A Matrix is safe for concurrent readers. Methods documented as "in place"
// need exclusive access.
type Matrix[V any] struct {
	ops value.Arithmetic[V]
	cfg config

	rowCount          int
	columnCount       int
	nonzeroEntryCount int

	columnsAndValues []Entry[V]
	rowIndications   []int
	grouping         rowGrouping
}

func newMatrix[V any](
	ops value.Arithmetic[V],
	rowCount, columnCount int,
	columnsAndValues []Entry[V],
	rowIndications []int,
	grouping rowGrouping,
	cfg config,
) *Matrix[V] {
	m := &Matrix[V]{
		ops:              ops,
		cfg:              cfg,
		rowCount:         rowCount,
		columnCount:      columnCount,
		columnsAndValues: columnsAndValues,
		rowIndications:   rowIndications,
		grouping:         grouping,
	}
	m.UpdateNonzeroEntryCount()

	return m
}

// release hands m's buffers over to a builder and leaves m empty.
func (m *Matrix[V]) release() {
	m.rowCount, m.columnCount, m.nonzeroEntryCount = 0, 0, 0
	m.columnsAndValues = nil
	m.rowIndications = []int{0}
	m.grouping = trivialGrouping()
}

// Ops returns the value descriptor of m.
func (m *Matrix[V]) Ops() value.Arithmetic[V] { return m.ops }

// Logger returns the logger m reports through.
func (m *Matrix[V]) Logger() logr.Logger { return m.cfg.log }

// WithLogger returns a shallow copy of m that logs to l. Buffers are shared,
// so the copy is meant for read-only use alongside m.
func (m *Matrix[V]) WithLogger(l logr.Logger) *Matrix[V] {
	c := *m
	c.cfg.log = l.WithName("sparse")

	return &c
}

// WithParallelism returns a shallow copy of m with a different parallel
// multiplication policy. Non-positive values keep the current setting.
func (m *Matrix[V]) WithParallelism(threshold, chunk int) *Matrix[V] {
	c := *m
	if threshold > 0 {
		c.cfg.parallelThreshold = threshold
	}
	if chunk > 0 {
		c.cfg.parallelChunk = chunk
	}

	return &c
}

// RowCount returns the number of rows.
func (m *Matrix[V]) RowCount() int { return m.rowCount }

// ColumnCount returns the number of columns.
func (m *Matrix[V]) ColumnCount() int { return m.columnCount }

// EntryCount returns the number of stored entries, explicit zeros included.
func (m *Matrix[V]) EntryCount() int { return len(m.columnsAndValues) }

// NonzeroEntryCount returns the cached number of non-zero entries.
func (m *Matrix[V]) NonzeroEntryCount() int { return m.nonzeroEntryCount }

// UpdateNonzeroEntryCount recounts non-zero entries after external writes
// through row views.
func (m *Matrix[V]) UpdateNonzeroEntryCount() {
	n := 0
	for _, e := range m.columnsAndValues {
		if !m.ops.IsZero(e.Value) {
			n++
		}
	}
	m.nonzeroEntryCount = n
}

// RowGroupCount returns the number of row groups.
func (m *Matrix[V]) RowGroupCount() int { return m.grouping.count(m.rowCount) }

// RowGroupSize returns the number of rows in group.
func (m *Matrix[V]) RowGroupSize(group int) int {
	start, end := m.grouping.bounds(group)

	return end - start
}

// RowGroupEntryCount returns the number of entries stored in group.
func (m *Matrix[V]) RowGroupEntryCount(group int) int {
	start, end := m.grouping.bounds(group)

	return m.rowIndications[end] - m.rowIndications[start]
}

// RowGroupIndices returns the group start vector (length groups+1). For the
// trivial grouping it is materialised once. The slice must not be modified.
func (m *Matrix[V]) RowGroupIndices() []int { return m.grouping.indices(m.rowCount) }

// HasTrivialRowGrouping reports whether every row forms its own group.
func (m *Matrix[V]) HasTrivialRowGrouping() bool { return m.grouping.kind == groupingTrivial }

// RowGroupBounds returns the row range [start, end) of group.
func (m *Matrix[V]) RowGroupBounds(group int) (int, int) { return m.grouping.bounds(group) }

// Row returns a view of row r. Panics when r is out of range.
func (m *Matrix[V]) Row(r int) Rows[V] {
	return Rows[V]{entries: m.columnsAndValues[m.rowIndications[r]:m.rowIndications[r+1]]}
}

// Rows returns a view spanning rows [start, end).
func (m *Matrix[V]) Rows(start, end int) Rows[V] {
	return Rows[V]{entries: m.columnsAndValues[m.rowIndications[start]:m.rowIndications[end]]}
}

// RowGroup returns a view of all rows of group.
func (m *Matrix[V]) RowGroup(group int) Rows[V] {
	start, end := m.grouping.bounds(group)

	return m.Rows(start, end)
}

// RowInGroup returns a view of the offset-th row of group.
func (m *Matrix[V]) RowInGroup(group, offset int) Rows[V] {
	start, _ := m.grouping.bounds(group)

	return m.Row(start + offset)
}

// RowChecked is Row with bounds checking.
func (m *Matrix[V]) RowChecked(r int) (Rows[V], error) {
	if r < 0 || r >= m.rowCount {
		return Rows[V]{}, detailf(opAccess, ErrOutOfRange, "row %d of %d", r, m.rowCount)
	}

	return m.Row(r), nil
}

// RowGroupChecked is RowGroup with bounds checking.
func (m *Matrix[V]) RowGroupChecked(group int) (Rows[V], error) {
	if group < 0 || group >= m.RowGroupCount() {
		return Rows[V]{}, detailf(opAccess, ErrOutOfRange, "group %d of %d", group, m.RowGroupCount())
	}

	return m.RowGroup(group), nil
}

// Entries returns a view of the whole entry buffer.
func (m *Matrix[V]) Entries() Rows[V] { return Rows[V]{entries: m.columnsAndValues} }

// RowIndications returns the row offset vector. The slice must not be modified.
func (m *Matrix[V]) RowIndications() []int { return m.rowIndications }

// RowSum returns the sum of row r.
func (m *Matrix[V]) RowSum(r int) V {
	sum := m.ops.Zero()
	for _, e := range m.Row(r).entries {
		sum = m.ops.Add(sum, e.Value)
	}

	return sum
}

// ConstrainedRowSum sums the entries of row r whose column is in columns.
func (m *Matrix[V]) ConstrainedRowSum(r int, columns *bitset.BitSet) V {
	sum := m.ops.Zero()
	for _, e := range m.Row(r).entries {
		if columns.Test(uint(e.Column)) {
			sum = m.ops.Add(sum, e.Value)
		}
	}

	return sum
}

// ConstrainedRowSumVector returns ConstrainedRowSum for every row in rows,
// in increasing row order.
func (m *Matrix[V]) ConstrainedRowSumVector(rows, columns *bitset.BitSet) []V {
	out := make([]V, 0, rows.Count())
	for r, ok := rows.NextSet(0); ok && int(r) < m.rowCount; r, ok = rows.NextSet(r + 1) {
		out = append(out, m.ConstrainedRowSum(int(r), columns))
	}

	return out
}

// ConstrainedRowGroupSumVector returns ConstrainedRowSum for every row of
// every group in groups.
func (m *Matrix[V]) ConstrainedRowGroupSumVector(groups, columns *bitset.BitSet) []V {
	var out []V
	for g, ok := groups.NextSet(0); ok && int(g) < m.RowGroupCount(); g, ok = groups.NextSet(g + 1) {
		start, end := m.grouping.bounds(int(g))
		for r := start; r < end; r++ {
			out = append(out, m.ConstrainedRowSum(r, columns))
		}
	}

	return out
}

// RowFilter marks every row that belongs to a group in groups.
func (m *Matrix[V]) RowFilter(groups *bitset.BitSet) *bitset.BitSet {
	out := bitset.New(uint(m.rowCount))
	for g, ok := groups.NextSet(0); ok && int(g) < m.RowGroupCount(); g, ok = groups.NextSet(g + 1) {
		start, end := m.grouping.bounds(int(g))
		for r := start; r < end; r++ {
			out.Set(uint(r))
		}
	}

	return out
}

// RowFilterWithColumns marks the rows of the selected groups whose
// successors all lie in columns.
func (m *Matrix[V]) RowFilterWithColumns(groups, columns *bitset.BitSet) *bitset.BitSet {
	out := bitset.New(uint(m.rowCount))
	for g, ok := groups.NextSet(0); ok && int(g) < m.RowGroupCount(); g, ok = groups.NextSet(g + 1) {
		start, end := m.grouping.bounds(int(g))
	rows:
		for r := start; r < end; r++ {
			for _, e := range m.Row(r).entries {
				if !columns.Test(uint(e.Column)) {
					continue rows
				}
			}
			out.Set(uint(r))
		}
	}

	return out
}

// NonconstantEntryCount counts entries whose value is symbolic.
func (m *Matrix[V]) NonconstantEntryCount() int {
	n := 0
	for _, e := range m.columnsAndValues {
		if !value.IsConstant(m.ops, e.Value) {
			n++
		}
	}

	return n
}

// NonconstantRowGroupCount counts groups holding at least one symbolic entry.
func (m *Matrix[V]) NonconstantRowGroupCount() int {
	n := 0
	for g := range m.RowGroupCount() {
		for _, e := range m.RowGroup(g).entries {
			if !value.IsConstant(m.ops, e.Value) {
				n++
				break
			}
		}
	}

	return n
}
