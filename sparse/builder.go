// SPDX-License-Identifier: MIT

package sparse

import (
	"cmp"
	"slices"

	"github.com/go-logr/logr"

	"github.com/katalvlaran/sparsemc/value"
)

// Builder assembles a Matrix from entries appended in row order.
//
// Rows must be non-decreasing across calls. Within a row, columns are expected
// in increasing order; a smaller column triggers an in-place repair of the open
// row (stable sort by column, then duplicate columns collapse to the earliest
// inserted one). Adding the same (row, column) twice in a row sums the values.
//
// A Builder is single-writer and is consumed by Build.
type Builder[V any] struct {
	ops  value.Arithmetic[V]
	opts builderOptions
	log  logr.Logger

	columnsAndValues []Entry[V]
	rowIndications   []int // start offset of every row up to the open one
	rowGroupIndices  []int // group starts, terminator appended by Build

	lastRow         int
	lastColumn      int
	highestColumn   int
	currentRowGroup int

	rowsMaterialized bool // rows exist even without entries (skipped groups, reopen)
	minRowCount      int
	minColumnCount   int
	reopenedGroups   int
	consumed         bool
}

// NewBuilder returns an empty builder for value type V.
//
// Options:
//   - WithInitialDimensions / WithForceDimensions: reservation or hard bounds.
//   - WithCustomRowGrouping / WithInitialRowGroupCount: enable NewRowGroup.
//   - WithLogger, WithParallelThreshold, WithParallelChunk: inherited by the matrix.
func NewBuilder[V any](ops value.Arithmetic[V], opts ...BuilderOption) *Builder[V] {
	o := gatherOptions(opts)
	b := &Builder[V]{
		ops:              ops,
		opts:             o,
		log:              o.cfg.log.WithName("builder"),
		columnsAndValues: make([]Entry[V], 0, o.initialEntries),
		rowIndications:   make([]int, 1, o.initialRows+1),
	}
	if o.customRowGrouping {
		b.rowGroupIndices = make([]int, 0, o.initialRowGroups+1)
	}

	return b
}

// NewBuilderFromMatrix reopens m for further appends. The builder takes over
// m's buffers; m is left as an empty 0x0 matrix. The last row and the last
// row group stay open. Grouping is custom iff m's grouping is non-trivial.
func NewBuilderFromMatrix[V any](m *Matrix[V], opts ...BuilderOption) (*Builder[V], error) {
	if m == nil {
		return nil, detailf(opReopen, ErrInvalidArgument, "nil matrix")
	}
	all := append([]BuilderOption{withConfig(m.cfg)}, opts...)
	if !m.HasTrivialRowGrouping() {
		all = append(all, WithCustomRowGrouping())
	}
	b := NewBuilder(m.ops, all...)

	if m.rowCount > 0 {
		b.lastRow = m.rowCount - 1
		b.rowsMaterialized = true
		if last := m.Row(b.lastRow); last.Len() > 0 {
			b.lastColumn = last.At(last.Len() - 1).Column
		}
	}
	for _, e := range m.columnsAndValues {
		b.highestColumn = max(b.highestColumn, e.Column)
	}
	b.minRowCount = m.rowCount
	b.minColumnCount = m.columnCount
	if b.opts.customRowGrouping {
		groups := m.RowGroupIndices()
		k := len(groups) - 1
		b.rowGroupIndices = groups[:k:k]
		b.currentRowGroup = k
		b.reopenedGroups = b.currentRowGroup
	}

	// capped so appends never write into storage still seen by copies of m
	n, rows := len(m.columnsAndValues), max(m.rowCount, 1)
	b.columnsAndValues = m.columnsAndValues[:n:n]
	b.rowIndications = m.rowIndications[:rows:rows]
	m.release()

	return b, nil
}

// AddNextValue appends value at (row, column).
//
// Errors:
//   - ErrInvalidArgument for negative indices.
//   - ErrOutOfOrderRow when row is smaller than the last row.
//   - ErrOutOfRange when forced dimensions are exceeded.
//   - ErrBuilderConsumed after Build.
func (b *Builder[V]) AddNextValue(row, column int, v V) error {
	if b.consumed {
		return sparseErrorf(opAddNextValue, ErrBuilderConsumed)
	}
	if row < 0 || column < 0 {
		return detailf(opAddNextValue, ErrInvalidArgument, "negative index (%d, %d)", row, column)
	}
	if row < b.lastRow {
		return detailf(opAddNextValue, ErrOutOfOrderRow, "row %d after row %d", row, b.lastRow)
	}
	if b.opts.forceDimensions {
		if b.opts.initialRows > 0 && row >= b.opts.initialRows {
			return detailf(opAddNextValue, ErrOutOfRange, "row %d exceeds forced row count %d", row, b.opts.initialRows)
		}
		if b.opts.initialColumns > 0 && column >= b.opts.initialColumns {
			return detailf(opAddNextValue, ErrOutOfRange, "column %d exceeds forced column count %d", column, b.opts.initialColumns)
		}
	}

	openStart := b.rowIndications[len(b.rowIndications)-1]
	if row == b.lastRow && column == b.lastColumn && len(b.columnsAndValues) > openStart {
		last := &b.columnsAndValues[len(b.columnsAndValues)-1]
		last.Value = b.ops.Add(last.Value, v)

		return nil
	}

	if b.opts.forceDimensions && b.opts.initialEntries > 0 && len(b.columnsAndValues) >= b.opts.initialEntries {
		return detailf(opAddNextValue, ErrOutOfRange, "entry count exceeds forced count %d", b.opts.initialEntries)
	}

	repair := row == b.lastRow && column < b.lastColumn
	if row != b.lastRow {
		for i := b.lastRow + 1; i <= row; i++ {
			b.rowIndications = append(b.rowIndications, len(b.columnsAndValues))
		}
		b.lastRow = row
	}
	b.lastColumn = column
	b.columnsAndValues = append(b.columnsAndValues, Entry[V]{Column: column, Value: v})
	b.highestColumn = max(b.highestColumn, column)

	if repair {
		b.repairOpenRow(row, column)
	}

	return nil
}

// repairOpenRow restores column order in the open row. Duplicate columns keep
// the earliest inserted value; later ones are dropped with a warning.
func (b *Builder[V]) repairOpenRow(row, column int) {
	start := b.rowIndications[len(b.rowIndications)-1]
	open := b.columnsAndValues[start:]
	slices.SortStableFunc(open, func(a, c Entry[V]) int { return cmp.Compare(a.Column, c.Column) })
	kept := slices.CompactFunc(open, func(a, c Entry[V]) bool { return a.Column == c.Column })
	dropped := len(open) - len(kept)
	b.columnsAndValues = b.columnsAndValues[:start+len(kept)]
	// the open row may still receive larger columns
	b.lastColumn = kept[len(kept)-1].Column

	b.log.V(1).Info("unordered insertion repaired", "row", row, "column", column)
	if dropped > 0 {
		b.log.Info("unordered insertion caused duplicate entries", "row", row, "dropped", dropped)
	}
}

// NewRowGroup starts a row group at startingRow. Rows between the last row
// and startingRow are closed as empty rows. The first group must start at
// row 0, so every row belongs to a group.
func (b *Builder[V]) NewRowGroup(startingRow int) error {
	if b.consumed {
		return sparseErrorf(opNewRowGroup, ErrBuilderConsumed)
	}
	if !b.opts.customRowGrouping {
		return detailf(opNewRowGroup, ErrInvalidState, "builder was created without custom row grouping")
	}
	if startingRow < b.lastRow {
		return detailf(opNewRowGroup, ErrInvalidState, "group start %d before last row %d", startingRow, b.lastRow)
	}
	if len(b.rowGroupIndices) == 0 && startingRow != 0 {
		return detailf(opNewRowGroup, ErrInvalidState, "first group starts at row %d, want 0", startingRow)
	}

	b.rowGroupIndices = append(b.rowGroupIndices, startingRow)
	b.currentRowGroup++

	for i := b.lastRow + 1; i < startingRow; i++ {
		b.rowIndications = append(b.rowIndications, len(b.columnsAndValues))
	}
	if b.lastRow+1 < startingRow {
		b.lastRow = startingRow - 1
		b.lastColumn = 0
		b.rowsMaterialized = true
	}

	return nil
}

// BuildDefault is Build(0, 0, 0).
func (b *Builder[V]) BuildDefault() (*Matrix[V], error) {
	return b.Build(0, 0, 0)
}

// Build finalises the matrix and consumes the builder. Overrides may only
// extend the observed dimensions; smaller values are ignored.
//
// Errors:
//   - ErrInvalidState when forced dimensions are violated, or custom grouping
//     was requested but rows exist outside any group.
//   - ErrInvalidArgument for negative overrides.
func (b *Builder[V]) Build(overriddenRowCount, overriddenColumnCount, overriddenRowGroupCount int) (*Matrix[V], error) {
	if b.consumed {
		return nil, sparseErrorf(opBuild, ErrBuilderConsumed)
	}
	if overriddenRowCount < 0 || overriddenColumnCount < 0 || overriddenRowGroupCount < 0 {
		return nil, detailf(opBuild, ErrInvalidArgument, "negative override")
	}
	o := b.opts

	// Stage 1: row count.
	rowCount := b.minRowCount
	if len(b.columnsAndValues) > 0 || b.rowsMaterialized {
		rowCount = max(rowCount, b.lastRow+1)
	}
	if o.customRowGrouping && len(b.rowGroupIndices) > b.reopenedGroups {
		// a group opened at a row without entries still owns that row
		rowCount = max(rowCount, b.rowGroupIndices[len(b.rowGroupIndices)-1]+1)
	}
	if o.forceDimensions && o.initialRows > 0 {
		if rowCount > o.initialRows {
			return nil, detailf(opBuild, ErrInvalidState, "row count %d exceeds forced %d", rowCount, o.initialRows)
		}
		rowCount = o.initialRows
	}
	rowCount = max(rowCount, overriddenRowCount)
	if o.customRowGrouping && b.currentRowGroup == 0 && rowCount > 0 {
		return nil, detailf(opBuild, ErrInvalidState, "%d rows but no row group was started", rowCount)
	}

	// Stage 2: column count.
	columnCount := b.minColumnCount
	if len(b.columnsAndValues) > 0 {
		columnCount = max(columnCount, b.highestColumn+1)
	}
	if o.forceDimensions && o.initialColumns > 0 {
		if columnCount > o.initialColumns {
			return nil, detailf(opBuild, ErrInvalidState, "column count %d exceeds forced %d", columnCount, o.initialColumns)
		}
		columnCount = o.initialColumns
	}
	columnCount = max(columnCount, overriddenColumnCount)

	// Stage 3: entries.
	if o.forceDimensions && o.initialEntries > 0 && len(b.columnsAndValues) != o.initialEntries {
		return nil, detailf(opBuild, ErrInvalidState, "entry count %d differs from forced %d", len(b.columnsAndValues), o.initialEntries)
	}

	// Stage 4: close rows and append the sentinel.
	rowIndications := b.rowIndications
	if rowCount == 0 {
		rowIndications = rowIndications[:0]
	}
	for i := len(rowIndications); i < rowCount; i++ {
		rowIndications = append(rowIndications, len(b.columnsAndValues))
	}
	rowIndications = append(rowIndications, len(b.columnsAndValues))

	// Stage 5: grouping.
	grouping := trivialGrouping()
	if o.customRowGrouping {
		groupCount := b.currentRowGroup
		if o.forceDimensions && o.initialRowGroups > 0 {
			if groupCount > o.initialRowGroups {
				return nil, detailf(opBuild, ErrInvalidState, "group count %d exceeds forced %d", groupCount, o.initialRowGroups)
			}
			groupCount = o.initialRowGroups
		}
		groupCount = max(groupCount, overriddenRowGroupCount)
		groups := b.rowGroupIndices
		for i := b.currentRowGroup; i <= groupCount; i++ {
			groups = append(groups, rowCount)
		}
		grouping = explicitGrouping(groups)
	}

	m := newMatrix(b.ops, rowCount, columnCount, b.columnsAndValues, rowIndications, grouping, o.cfg)
	b.consumed = true
	b.columnsAndValues, b.rowIndications, b.rowGroupIndices = nil, nil, nil

	return m, nil
}

// LastRow returns the index of the open row.
func (b *Builder[V]) LastRow() int { return b.lastRow }

// LastColumn returns the column of the last accepted entry in the open row.
func (b *Builder[V]) LastColumn() int { return b.lastColumn }

// ReplaceColumns rewrites every column c >= offset to replacements[c-offset].
// Rows whose columns changed are re-sorted. A replacement that makes two
// entries of one row share a column fails with ErrInvalidArgument and leaves
// the builder unchanged.
func (b *Builder[V]) ReplaceColumns(replacements []int, offset int) error {
	if b.consumed {
		return sparseErrorf(opReplaceColumns, ErrBuilderConsumed)
	}
	if offset < 0 {
		return detailf(opReplaceColumns, ErrInvalidArgument, "negative offset %d", offset)
	}

	next := slices.Clone(b.columnsAndValues)
	highest := 0
	for row := range b.rowIndications {
		start := b.rowIndications[row]
		end := len(next)
		if row+1 < len(b.rowIndications) {
			end = b.rowIndications[row+1]
		}
		changed := false
		for i := start; i < end; i++ {
			c := next[i].Column
			if c < offset {
				continue
			}
			if c-offset >= len(replacements) {
				return detailf(opReplaceColumns, ErrOutOfRange, "no replacement for column %d", c)
			}
			if replacements[c-offset] < 0 {
				return detailf(opReplaceColumns, ErrInvalidArgument, "negative replacement for column %d", c)
			}
			next[i].Column = replacements[c-offset]
			changed = true
		}
		if changed {
			seg := next[start:end]
			slices.SortStableFunc(seg, func(a, c Entry[V]) int { return cmp.Compare(a.Column, c.Column) })
			for i := 1; i < len(seg); i++ {
				if seg[i].Column == seg[i-1].Column {
					return detailf(opReplaceColumns, ErrInvalidArgument, "row %d maps two entries to column %d", row, seg[i].Column)
				}
			}
		}
		for i := start; i < end; i++ {
			highest = max(highest, next[i].Column)
		}
	}

	b.columnsAndValues = next
	b.highestColumn = highest
	b.lastColumn = 0
	if open := b.rowIndications[len(b.rowIndications)-1]; open < len(next) {
		b.lastColumn = next[len(next)-1].Column
	}

	return nil
}
