// SPDX-License-Identifier: MIT

package sparse

// Transpose returns mᵀ with the trivial grouping.
//
// With joinGroups the rows of each group act as one source row: the result
// has RowGroupCount() columns, and entries of one group that meet in the same
// column are summed into a single entry. Without keepZeros explicit zeros are
// dropped.
func (m *Matrix[V]) Transpose(joinGroups, keepZeros bool) *Matrix[V] {
	rows := m.columnCount
	columns := m.rowCount
	if joinGroups {
		columns = m.RowGroupCount()
	}
	source := func(unit int) (int, int) { return unit, unit + 1 }
	if joinGroups {
		source = m.grouping.bounds
	}

	// Stage 1: count entries per transposed row.
	rowIndications := make([]int, rows+1)
	lastUnit := make([]int, rows)
	for i := range lastUnit {
		lastUnit[i] = -1
	}
	for unit := range columns {
		start, end := source(unit)
		for _, e := range m.Rows(start, end).entries {
			if !keepZeros && m.ops.IsZero(e.Value) {
				continue
			}
			if lastUnit[e.Column] == unit {
				continue
			}
			lastUnit[e.Column] = unit
			rowIndications[e.Column+1]++
		}
	}
	for i := 1; i <= rows; i++ {
		rowIndications[i] += rowIndications[i-1]
	}

	// Stage 2: scatter.
	entries := make([]Entry[V], rowIndications[rows])
	next := make([]int, rows)
	copy(next, rowIndications[:rows])
	for i := range lastUnit {
		lastUnit[i] = -1
	}
	for unit := range columns {
		start, end := source(unit)
		for _, e := range m.Rows(start, end).entries {
			if !keepZeros && m.ops.IsZero(e.Value) {
				continue
			}
			if lastUnit[e.Column] == unit {
				prev := &entries[next[e.Column]-1]
				prev.Value = m.ops.Add(prev.Value, e.Value)

				continue
			}
			lastUnit[e.Column] = unit
			entries[next[e.Column]] = Entry[V]{Column: unit, Value: e.Value}
			next[e.Column]++
		}
	}

	return newMatrix(m.ops, rows, columns, entries, rowIndications, trivialGrouping(), m.cfg)
}

// TransposeSelectedRowsFromRowGroups transposes the matrix formed by picking
// row choices[g] (an offset) from every group g. The result has ColumnCount()
// rows and RowGroupCount() columns.
func (m *Matrix[V]) TransposeSelectedRowsFromRowGroups(choices []int, keepZeros bool) (*Matrix[V], error) {
	groupCount := m.RowGroupCount()
	if len(choices) != groupCount {
		return nil, detailf(opTranspose, ErrDimensionMismatch, "%d choices for %d groups", len(choices), groupCount)
	}
	picked := make([]int, groupCount)
	for g, off := range choices {
		start, end := m.grouping.bounds(g)
		if off < 0 || start+off >= end {
			return nil, detailf(opTranspose, ErrOutOfRange, "offset %d in group %d of size %d", off, g, end-start)
		}
		picked[g] = start + off
	}

	rows := m.columnCount
	rowIndications := make([]int, rows+1)
	for _, r := range picked {
		for _, e := range m.Row(r).entries {
			if keepZeros || !m.ops.IsZero(e.Value) {
				rowIndications[e.Column+1]++
			}
		}
	}
	for i := 1; i <= rows; i++ {
		rowIndications[i] += rowIndications[i-1]
	}

	entries := make([]Entry[V], rowIndications[rows])
	next := make([]int, rows)
	copy(next, rowIndications[:rows])
	for g, r := range picked {
		for _, e := range m.Row(r).entries {
			if keepZeros || !m.ops.IsZero(e.Value) {
				entries[next[e.Column]] = Entry[V]{Column: g, Value: e.Value}
				next[e.Column]++
			}
		}
	}

	return newMatrix(m.ops, rows, groupCount, entries, rowIndications, trivialGrouping(), m.cfg), nil
}

// SwapRows exchanges rows r1 and r2 in place. Only the rows between them
// move; the larger of the two rows is staged in a temporary buffer.
// Row views taken before the call are invalid afterwards.
func (m *Matrix[V]) SwapRows(r1, r2 int) error {
	if r1 < 0 || r1 >= m.rowCount || r2 < 0 || r2 >= m.rowCount {
		return detailf(opSwapRows, ErrOutOfRange, "rows %d and %d of %d", r1, r2, m.rowCount)
	}
	if r1 == r2 {
		return nil
	}
	a, b := min(r1, r2), max(r1, r2)
	buf := m.columnsAndValues
	startA, endA := m.rowIndications[a], m.rowIndications[a+1]
	startB, endB := m.rowIndications[b], m.rowIndications[b+1]
	lenA, lenB := endA-startA, endB-startB

	switch {
	case lenA == lenB:
		for i := range lenA {
			buf[startA+i], buf[startB+i] = buf[startB+i], buf[startA+i]
		}

		return nil

	case lenA > lenB:
		tmp := append([]Entry[V](nil), buf[startA:endA]...)
		copy(buf[startA:], buf[startB:endB])
		copy(buf[startA+lenB:], buf[endA:startB]) // rows strictly between a and b
		copy(buf[endB-lenA:], tmp)

	default:
		tmp := append([]Entry[V](nil), buf[startB:endB]...)
		copy(buf[endB-lenA:], buf[startA:endA])
		copy(buf[endA+lenB-lenA:], buf[endA:startB])
		copy(buf[startA:], tmp)
	}

	shift := lenB - lenA
	for r := a + 1; r <= b; r++ {
		m.rowIndications[r] += shift
	}

	return nil
}
