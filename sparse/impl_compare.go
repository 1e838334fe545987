// SPDX-License-Identifier: MIT

package sparse

import (
	"encoding/binary"
	"slices"

	"github.com/bits-and-blooms/bitset"
	"github.com/cespare/xxhash/v2"

	"github.com/katalvlaran/sparsemc/value"
)

// Equal reports whether m and other describe the same matrix. Explicit zeros
// are ignored. Groupings must agree: both trivial, or equal index vectors.
func (m *Matrix[V]) Equal(other *Matrix[V]) bool {
	if m == other {
		return true
	}
	if other == nil || m.rowCount != other.rowCount || m.columnCount != other.columnCount {
		return false
	}
	if m.grouping.kind != other.grouping.kind {
		return false
	}
	if m.grouping.kind == groupingExplicit && !slices.Equal(m.grouping.explicit, other.grouping.explicit) {
		return false
	}

	for r := range m.rowCount {
		a, b := m.Row(r).entries, other.Row(r).entries
		i, j := 0, 0
		for {
			for i < len(a) && m.ops.IsZero(a[i].Value) {
				i++
			}
			for j < len(b) && m.ops.IsZero(b[j].Value) {
				j++
			}
			if i == len(a) || j == len(b) {
				if i != len(a) || j != len(b) {
					return false
				}

				break
			}
			if !a[i].Equal(m.ops, b[j]) {
				return false
			}
			i++
			j++
		}
	}

	return true
}

// Hash returns an xxhash digest of the dimensions, an explicit grouping, and
// every non-zero (row, column, value) triple. Equal matrices hash equally.
func (m *Matrix[V]) Hash() uint64 {
	d := xxhash.New()
	buf := make([]byte, 0, 64)

	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.rowCount))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(m.columnCount))
	buf = append(buf, byte(m.grouping.kind))
	_, _ = d.Write(buf)
	if m.grouping.kind == groupingExplicit {
		for _, s := range m.grouping.explicit {
			buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(s))
			_, _ = d.Write(buf)
		}
	}

	for r := range m.rowCount {
		for _, e := range m.Row(r).entries {
			if m.ops.IsZero(e.Value) {
				continue
			}
			buf = binary.LittleEndian.AppendUint64(buf[:0], uint64(r))
			buf = binary.LittleEndian.AppendUint64(buf, uint64(e.Column))
			buf = m.ops.AppendBinary(buf, e.Value)
			_, _ = d.Write(buf)
		}
	}

	return d.Sum64()
}

// IsProbabilistic reports whether every row sums to one (under the value
// type's comparator) and, for ordered types, no constant entry is negative.
// Empty rows sum to zero and therefore fail.
func (m *Matrix[V]) IsProbabilistic() bool {
	orderer, ordered := m.ops.(value.Orderer[V])
	zero := m.ops.Zero()
	for r := range m.rowCount {
		entries := m.Row(r).entries
		if sum := m.RowSum(r); !m.ops.IsOne(sum) {
			m.cfg.log.V(1).Info("row does not sum to one", "row", r, "sum", m.ops.Format(sum))

			return false
		}
		if !ordered {
			continue
		}
		for _, e := range entries {
			if value.IsConstant(m.ops, e.Value) && orderer.Less(e.Value, zero) {
				m.cfg.log.V(1).Info("negative entry", "row", r, "column", e.Column)

				return false
			}
		}
	}

	return true
}

// IsSubmatrixOf reports whether every stored position of m is also stored in
// other, with equal dimensions and grouping.
func (m *Matrix[V]) IsSubmatrixOf(other *Matrix[V]) bool {
	if other == nil || m.rowCount != other.rowCount || m.columnCount != other.columnCount {
		return false
	}
	if !slices.Equal(m.RowGroupIndices(), other.RowGroupIndices()) {
		return false
	}
	for r := range m.rowCount {
		a, b := m.Row(r).entries, other.Row(r).entries
		j := 0
		for _, e := range a {
			for j < len(b) && b[j].Column < e.Column {
				j++
			}
			if j == len(b) || b[j].Column != e.Column {
				return false
			}
		}
	}

	return true
}

// CompareRows reports whether rows r1 and r2 store identical entries.
func (m *Matrix[V]) CompareRows(r1, r2 int) bool {
	return slices.EqualFunc(m.Row(r1).entries, m.Row(r2).entries, func(a, b Entry[V]) bool {
		return a.Equal(m.ops, b)
	})
}

// DuplicateRowsInRowGroups marks every row that repeats an earlier row of its
// own group.
func (m *Matrix[V]) DuplicateRowsInRowGroups() *bitset.BitSet {
	out := bitset.New(uint(m.rowCount))
	for g := range m.RowGroupCount() {
		start, end := m.grouping.bounds(g)
		for r1 := start; r1 < end; r1++ {
			if out.Test(uint(r1)) {
				continue
			}
			for r2 := r1 + 1; r2 < end; r2++ {
				if m.CompareRows(r1, r2) {
					out.Set(uint(r2))
				}
			}
		}
	}

	return out
}
