// SPDX-License-Identifier: MIT

package sparse

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// forEachGroupEntry visits every entry with the index of its group.
func (m *Matrix[V]) forEachGroupEntry(visit func(group int, e *Entry[V])) {
	for g := range m.RowGroupCount() {
		row := m.RowGroup(g).entries
		for i := range row {
			visit(g, &row[i])
		}
	}
}

// ConvertToEquationSystem turns A into I - A in place: diagonal entries d
// become 1-d and all other entries are negated. Every row group must already
// store its diagonal entry.
func (m *Matrix[V]) ConvertToEquationSystem() error {
	if err := m.InvertDiagonal(); err != nil {
		return err
	}
	m.NegateAllNonDiagonalEntries()

	return nil
}

// InvertDiagonal replaces every diagonal value d by 1-d. Fails with
// ErrMissingDiagonal, before modifying anything, when a group has no entry
// in its diagonal column.
func (m *Matrix[V]) InvertDiagonal() error {
	for g := range m.RowGroupCount() {
		start, end := m.grouping.bounds(g)
		found := false
		for r := start; r < end && !found; r++ {
			found = m.rowHasColumn(r, g)
		}
		if !found {
			return detailf(opInvertDiagonal, ErrMissingDiagonal, "row group %d", g)
		}
	}

	one := m.ops.One()
	m.forEachGroupEntry(func(g int, e *Entry[V]) {
		if e.Column == g {
			e.Value = m.ops.Sub(one, e.Value)
		}
	})
	m.UpdateNonzeroEntryCount()

	return nil
}

// NegateAllNonDiagonalEntries negates every entry outside the diagonal.
func (m *Matrix[V]) NegateAllNonDiagonalEntries() {
	m.forEachGroupEntry(func(g int, e *Entry[V]) {
		if e.Column != g {
			e.Value = m.ops.Neg(e.Value)
		}
	})
}

// DeleteDiagonalEntries sets every diagonal value to zero. The entries stay
// stored as explicit zeros.
func (m *Matrix[V]) DeleteDiagonalEntries() {
	zero := m.ops.Zero()
	m.forEachGroupEntry(func(g int, e *Entry[V]) {
		if e.Column == g {
			e.Value = zero
		}
	})
	m.UpdateNonzeroEntryCount()
}

// MakeRowDirac turns row into a unit vector at column without changing its
// number of slots. The slot that takes column is the existing entry for it,
// or the entry at which column would be inserted; the remaining slots keep
// their columns and hold zero, so the row stays sorted.
func (m *Matrix[V]) MakeRowDirac(row, column int) error {
	if row < 0 || row >= m.rowCount {
		return detailf(opDirac, ErrOutOfRange, "row %d of %d", row, m.rowCount)
	}
	if column < 0 || column >= m.columnCount {
		return detailf(opDirac, ErrOutOfRange, "column %d of %d", column, m.columnCount)
	}
	entries := m.Row(row).entries
	if len(entries) == 0 {
		return detailf(opDirac, ErrInvalidState, "row %d has no entries", row)
	}

	pos, found := slices.BinarySearchFunc(entries, column, func(e Entry[V], c int) int { return e.Column - c })
	if !found && pos == len(entries) {
		pos--
	}
	zero := m.ops.Zero()
	for i := range entries {
		entries[i].Value = zero
	}
	entries[pos] = Entry[V]{Column: column, Value: m.ops.One()}
	m.UpdateNonzeroEntryCount()

	return nil
}

// MakeRowsAbsorbing makes every row r in rows a self-loop (Dirac at column r).
func (m *Matrix[V]) MakeRowsAbsorbing(rows *bitset.BitSet) error {
	for r, ok := rows.NextSet(0); ok; r, ok = rows.NextSet(r + 1) {
		if err := m.MakeRowDirac(int(r), int(r)); err != nil {
			return err
		}
	}

	return nil
}

// MakeRowGroupsAbsorbing makes every row of each group g in groups a Dirac
// at column g.
func (m *Matrix[V]) MakeRowGroupsAbsorbing(groups *bitset.BitSet) error {
	for g, ok := groups.NextSet(0); ok; g, ok = groups.NextSet(g + 1) {
		if int(g) >= m.RowGroupCount() {
			return detailf(opDirac, ErrOutOfRange, "group %d of %d", g, m.RowGroupCount())
		}
		start, end := m.grouping.bounds(int(g))
		for r := start; r < end; r++ {
			if err := m.MakeRowDirac(r, int(g)); err != nil {
				return err
			}
		}
	}

	return nil
}
