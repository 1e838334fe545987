// SPDX-License-Identifier: MIT
// Row/column restriction and row selection.
// Every transform here returns a fresh matrix that inherits m's logger and
// parallel policy. Column constraints renumber surviving columns densely in
// increasing order; a diagonal entry is identified by its group index.

package sparse

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// checkConstraint rejects a nil set or a set with bits at or beyond n.
func checkConstraint(tag, what string, b *bitset.BitSet, n int) error {
	if b == nil {
		return detailf(tag, ErrInvalidArgument, "nil %s constraint", what)
	}
	if i, ok := b.NextSet(uint(n)); ok {
		return detailf(tag, ErrInvalidArgument, "%s constraint has bit %d, size is %d", what, i, n)
	}

	return nil
}

// setBitsBefore returns, for each i < n, the number of set bits below i.
func setBitsBefore(b *bitset.BitSet, n int) []int {
	before := make([]int, n)
	count := 0
	for i := range n {
		before[i] = count
		if b.Test(uint(i)) {
			count++
		}
	}

	return before
}

func checkGroupIndices(tag string, groupIndices []int, rowCount int) error {
	if len(groupIndices) == 0 || groupIndices[0] != 0 || groupIndices[len(groupIndices)-1] != rowCount {
		return detailf(tag, ErrInvalidArgument, "group indices must start at 0 and end at %d", rowCount)
	}
	if !slices.IsSorted(groupIndices) {
		return detailf(tag, ErrInvalidArgument, "group indices must be non-decreasing")
	}

	return nil
}

// Submatrix keeps the rows (or, with useGroups, the row groups) selected by
// rowConstraint and the columns selected by columnConstraint. With
// insertDiagonal a zero is stored at the diagonal position of every kept row
// that lacks one.
//
// Without useGroups on a grouped matrix, the result keeps the original groups
// shrunk to their surviving rows; groups left empty are dropped.
func (m *Matrix[V]) Submatrix(useGroups bool, rowConstraint, columnConstraint *bitset.BitSet, insertDiagonal bool) (*Matrix[V], error) {
	if useGroups {
		return m.SubmatrixWithGroups(rowConstraint, columnConstraint, m.RowGroupIndices(), insertDiagonal)
	}
	if err := checkConstraint(opSubmatrix, "row", rowConstraint, m.rowCount); err != nil {
		return nil, err
	}

	sub, err := m.submatrix(rowConstraint, columnConstraint, identityIndices(m.rowCount), insertDiagonal, false)
	if err != nil {
		return nil, err
	}
	if m.HasTrivialRowGrouping() {
		return sub, nil
	}

	groups := []int{0}
	kept := 0
	for g := range m.RowGroupCount() {
		start, end := m.grouping.bounds(g)
		for r := start; r < end; r++ {
			if rowConstraint.Test(uint(r)) {
				kept++
			}
		}
		if kept > groups[len(groups)-1] {
			groups = append(groups, kept)
		}
	}
	sub.grouping = explicitGrouping(groups)

	return sub, nil
}

// SubmatrixWithGroups is Submatrix over an explicit group vector: every
// selected group of groupIndices keeps all its rows, and its diagonal column
// is its rank among the selected groups.
func (m *Matrix[V]) SubmatrixWithGroups(groupConstraint, columnConstraint *bitset.BitSet, groupIndices []int, insertDiagonal bool) (*Matrix[V], error) {
	if err := checkGroupIndices(opSubmatrix, groupIndices, m.rowCount); err != nil {
		return nil, err
	}
	if err := checkConstraint(opSubmatrix, "group", groupConstraint, len(groupIndices)-1); err != nil {
		return nil, err
	}

	keepGroups := !m.HasTrivialRowGrouping() || !isIdentity(groupIndices)

	return m.submatrix(groupConstraint, columnConstraint, groupIndices, insertDiagonal, keepGroups)
}

func isIdentity(indices []int) bool {
	for i, v := range indices {
		if v != i {
			return false
		}
	}

	return true
}

func (m *Matrix[V]) submatrix(groupConstraint, columnConstraint *bitset.BitSet, groupIndices []int, insertDiagonal, keepGroups bool) (*Matrix[V], error) {
	if err := checkConstraint(opSubmatrix, "column", columnConstraint, m.columnCount); err != nil {
		return nil, err
	}
	groupCount := len(groupIndices) - 1
	colBefore := setBitsBefore(columnConstraint, m.columnCount)
	groupBefore := setBitsBefore(groupConstraint, groupCount)
	subColumns := int(columnConstraint.Count())

	// Stage 1: size the result exactly.
	subRows, subEntries := 0, 0
	for g, ok := groupConstraint.NextSet(0); ok; g, ok = groupConstraint.NextSet(g + 1) {
		diag := groupBefore[g]
		for r := groupIndices[g]; r < groupIndices[g+1]; r++ {
			subRows++
			found := false
			for _, e := range m.Row(r).entries {
				if columnConstraint.Test(uint(e.Column)) {
					subEntries++
					found = found || colBefore[e.Column] == diag
				}
			}
			if insertDiagonal && !found && diag < subColumns {
				subEntries++
			}
		}
	}

	// Stage 2: copy.
	b := NewBuilder(m.ops, withConfig(m.cfg), WithInitialDimensions(subRows, subColumns, subEntries), WithForceDimensions())
	groups := make([]int, 0, groupConstraint.Count()+1)
	zero := m.ops.Zero()
	row := 0
	for g, ok := groupConstraint.NextSet(0); ok; g, ok = groupConstraint.NextSet(g + 1) {
		diag := groupBefore[g]
		groups = append(groups, row)
		for r := groupIndices[g]; r < groupIndices[g+1]; r++ {
			inserted := false
			for _, e := range m.Row(r).entries {
				if !columnConstraint.Test(uint(e.Column)) {
					continue
				}
				c := colBefore[e.Column]
				if insertDiagonal && !inserted {
					if c == diag {
						inserted = true
					} else if c > diag {
						if err := b.AddNextValue(row, diag, zero); err != nil {
							return nil, sparseErrorf(opSubmatrix, err)
						}
						inserted = true
					}
				}
				if err := b.AddNextValue(row, c, e.Value); err != nil {
					return nil, sparseErrorf(opSubmatrix, err)
				}
			}
			if insertDiagonal && !inserted && diag < subColumns {
				if err := b.AddNextValue(row, diag, zero); err != nil {
					return nil, sparseErrorf(opSubmatrix, err)
				}
			}
			row++
		}
	}

	sub, err := b.Build(subRows, subColumns, 0)
	if err != nil {
		return nil, sparseErrorf(opSubmatrix, err)
	}
	if keepGroups {
		sub.grouping = explicitGrouping(append(groups, subRows))
	}

	return sub, nil
}

// RestrictRows keeps the rows in rowsToKeep and preserves the group
// structure, so the result has as many groups as m. A group that loses all
// its rows is an error unless allowEmptyRowGroups is set; groups after the
// last kept row may always become empty.
func (m *Matrix[V]) RestrictRows(rowsToKeep *bitset.BitSet, allowEmptyRowGroups bool) (*Matrix[V], error) {
	if err := checkConstraint(opRestrictRows, "row", rowsToKeep, m.rowCount); err != nil {
		return nil, err
	}
	groupCount := m.RowGroupCount()

	firstTrailingEmpty := groupCount
	for g := groupCount - 1; g >= 0; g-- {
		start, _ := m.grouping.bounds(g)
		if _, ok := rowsToKeep.NextSet(uint(start)); ok {
			break
		}
		firstTrailingEmpty = g
	}

	keptRows, keptEntries := 0, 0
	for r, ok := rowsToKeep.NextSet(0); ok; r, ok = rowsToKeep.NextSet(r + 1) {
		keptRows++
		keptEntries += m.Row(int(r)).Len()
	}

	b := NewBuilder(m.ops, withConfig(m.cfg), WithInitialDimensions(keptRows, m.columnCount, keptEntries), WithForceDimensions())
	groups := make([]int, 0, groupCount+1)
	row := 0
	for g := range firstTrailingEmpty {
		groups = append(groups, row)
		start, end := m.grouping.bounds(g)
		for r := start; r < end; r++ {
			if !rowsToKeep.Test(uint(r)) {
				continue
			}
			for _, e := range m.Row(r).entries {
				if err := b.AddNextValue(row, e.Column, e.Value); err != nil {
					return nil, sparseErrorf(opRestrictRows, err)
				}
			}
			row++
		}
		if !allowEmptyRowGroups && groups[len(groups)-1] == row {
			return nil, detailf(opRestrictRows, ErrInvalidArgument, "row group %d would become empty", g)
		}
	}
	for range groupCount - firstTrailingEmpty + 1 {
		groups = append(groups, row)
	}

	out, err := b.Build(keptRows, m.columnCount, 0)
	if err != nil {
		return nil, sparseErrorf(opRestrictRows, err)
	}
	out.grouping = explicitGrouping(groups)

	return out, nil
}

// SelectRowsFromRowGroups picks row mapping[g] (an offset inside group g)
// from every group. Row g of the result is the picked row of group g; with
// insertDiagonal it gets a zero at column g when missing.
func (m *Matrix[V]) SelectRowsFromRowGroups(mapping []int, insertDiagonal bool) (*Matrix[V], error) {
	groupCount := m.RowGroupCount()
	if len(mapping) != groupCount {
		return nil, detailf(opSelectRows, ErrDimensionMismatch, "mapping has %d entries for %d groups", len(mapping), groupCount)
	}
	rows := make([]int, groupCount)
	for g, off := range mapping {
		start, end := m.grouping.bounds(g)
		if off < 0 || start+off >= end {
			return nil, detailf(opSelectRows, ErrOutOfRange, "offset %d in group %d of size %d", off, g, end-start)
		}
		rows[g] = start + off
	}

	return m.selectRows(rows, insertDiagonal)
}

// SelectRowsFromRowIndexSequence builds a matrix whose row i is row seq[i]
// of m. Rows may repeat.
func (m *Matrix[V]) SelectRowsFromRowIndexSequence(seq []int, insertDiagonal bool) (*Matrix[V], error) {
	for i, r := range seq {
		if r < 0 || r >= m.rowCount {
			return nil, detailf(opSelectRows, ErrOutOfRange, "sequence position %d names row %d of %d", i, r, m.rowCount)
		}
	}

	return m.selectRows(seq, insertDiagonal)
}

// Permute reorders the rows: row i of the result is row rowOrder[i] of m.
// The result has the trivial grouping.
func (m *Matrix[V]) Permute(rowOrder []int) (*Matrix[V], error) {
	if len(rowOrder) != m.rowCount {
		return nil, detailf(opPermute, ErrDimensionMismatch, "permutation of length %d for %d rows", len(rowOrder), m.rowCount)
	}
	seen := bitset.New(uint(m.rowCount))
	for _, r := range rowOrder {
		if r < 0 || r >= m.rowCount || seen.Test(uint(r)) {
			return nil, detailf(opPermute, ErrInvalidArgument, "not a permutation")
		}
		seen.Set(uint(r))
	}

	return m.selectRows(rowOrder, false)
}

func (m *Matrix[V]) selectRows(rows []int, insertDiagonal bool) (*Matrix[V], error) {
	entries := 0
	for i, r := range rows {
		entries += m.Row(r).Len()
		if insertDiagonal && i < m.columnCount && !m.rowHasColumn(r, i) {
			entries++
		}
	}

	b := NewBuilder(m.ops, withConfig(m.cfg), WithInitialDimensions(len(rows), m.columnCount, entries), WithForceDimensions())
	zero := m.ops.Zero()
	for i, r := range rows {
		inserted := !insertDiagonal || i >= m.columnCount
		for _, e := range m.Row(r).entries {
			if !inserted && e.Column >= i {
				if e.Column > i {
					if err := b.AddNextValue(i, i, zero); err != nil {
						return nil, sparseErrorf(opSelectRows, err)
					}
				}
				inserted = true
			}
			if err := b.AddNextValue(i, e.Column, e.Value); err != nil {
				return nil, sparseErrorf(opSelectRows, err)
			}
		}
		if !inserted {
			if err := b.AddNextValue(i, i, zero); err != nil {
				return nil, sparseErrorf(opSelectRows, err)
			}
		}
	}

	out, err := b.Build(len(rows), m.columnCount, 0)
	if err != nil {
		return nil, sparseErrorf(opSelectRows, err)
	}

	return out, nil
}

func (m *Matrix[V]) rowHasColumn(r, column int) bool {
	_, found := slices.BinarySearchFunc(m.Row(r).entries, column, func(e Entry[V], c int) int { return e.Column - c })

	return found
}

// CloneWithDiagonal returns a deep copy of m. With insertDiagonal every row
// of group g lacking column g (g < ColumnCount) gains an explicit zero there.
func (m *Matrix[V]) CloneWithDiagonal(insertDiagonal bool) *Matrix[V] {
	capacity := len(m.columnsAndValues)
	if insertDiagonal {
		capacity += m.rowCount
	}
	entries := make([]Entry[V], 0, capacity)
	rowIndications := make([]int, 0, m.rowCount+1)
	zero := m.ops.Zero()
	for g := range m.RowGroupCount() {
		start, end := m.grouping.bounds(g)
		for r := start; r < end; r++ {
			rowIndications = append(rowIndications, len(entries))
			inserted := !insertDiagonal || g >= m.columnCount
			for _, e := range m.Row(r).entries {
				if !inserted && e.Column >= g {
					if e.Column > g {
						entries = append(entries, Entry[V]{Column: g, Value: zero})
					}
					inserted = true
				}
				entries = append(entries, e)
			}
			if !inserted {
				entries = append(entries, Entry[V]{Column: g, Value: zero})
			}
		}
	}
	rowIndications = append(rowIndications, len(entries))

	grouping := trivialGrouping()
	if !m.HasTrivialRowGrouping() {
		grouping = explicitGrouping(slices.Clone(m.grouping.explicit))
	}

	return newMatrix(m.ops, m.rowCount, m.columnCount, entries, rowIndications, grouping, m.cfg)
}

// MakeRowGroupingTrivial drops an explicit grouping whose groups all hold
// exactly one row. Any other explicit grouping is rejected.
func (m *Matrix[V]) MakeRowGroupingTrivial() error {
	if m.HasTrivialRowGrouping() {
		return nil
	}
	for g := range m.RowGroupCount() {
		if m.RowGroupSize(g) != 1 {
			return detailf(opGrouping, ErrInvalidState, "group %d has %d rows", g, m.RowGroupSize(g))
		}
	}
	m.grouping = trivialGrouping()

	return nil
}
