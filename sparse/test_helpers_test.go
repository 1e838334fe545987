// SPDX-License-Identifier: MIT
// Package sparse_test contains test helpers.
//
// Purpose:
//   - Provide small deterministic fixtures shared by the builder, transform
//     and kernel tests.

package sparse_test

import (
	"testing"

	"github.com/bits-and-blooms/bitset"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/sparsemc/sparse"
	"github.com/katalvlaran/sparsemc/value"
)

var flt = value.NewFloat64()

// cell is one (row, column, value) triple fed to a builder.
type cell struct {
	r, c int
	v    float64
}

// mustBuild feeds cells in order and fails the test on any error.
func mustBuild(t testing.TB, cells []cell, opts ...sparse.BuilderOption) *sparse.Matrix[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](flt, opts...)
	for _, x := range cells {
		require.NoError(t, b.AddNextValue(x.r, x.c, x.v))
	}
	m, err := b.BuildDefault()
	require.NoError(t, err)

	return m
}

// mustBuildGrouped builds a matrix whose groups start at the given rows.
func mustBuildGrouped(t testing.TB, groupStarts []int, cells []cell) *sparse.Matrix[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](flt, sparse.WithCustomRowGrouping())
	next := 0
	for _, x := range cells {
		for next < len(groupStarts) && groupStarts[next] <= x.r {
			require.NoError(t, b.NewRowGroup(groupStarts[next]))
			next++
		}
		require.NoError(t, b.AddNextValue(x.r, x.c, x.v))
	}
	for ; next < len(groupStarts); next++ {
		require.NoError(t, b.NewRowGroup(groupStarts[next]))
	}
	m, err := b.BuildDefault()
	require.NoError(t, err)

	return m
}

// chain3 is the 3-state DTMC
//
//	0: 0.5→0, 0.5→1
//	1: 1.0→2
//	2: 1.0→2
func chain3(t testing.TB) *sparse.Matrix[float64] {
	t.Helper()

	return mustBuild(t, []cell{{0, 0, 0.5}, {0, 1, 0.5}, {1, 2, 1}, {2, 2, 1}})
}

// rowCells flattens row r into (column, value) pairs.
func rowCells(m *sparse.Matrix[float64], r int) []sparse.Entry[float64] {
	return append([]sparse.Entry[float64](nil), m.Row(r).Entries()...)
}

func bits(n uint, set ...uint) *bitset.BitSet {
	b := bitset.New(n)
	for _, i := range set {
		b.Set(i)
	}

	return b
}

func ent(c int, v float64) sparse.Entry[float64] { return sparse.Entry[float64]{Column: c, Value: v} }

// requireCSR checks the structural invariants of m.
func requireCSR[V any](t testing.TB, m *sparse.Matrix[V]) {
	t.Helper()
	ind := m.RowIndications()
	require.Len(t, ind, m.RowCount()+1)
	require.Equal(t, 0, ind[0])
	require.Equal(t, m.EntryCount(), ind[len(ind)-1])
	for r := range m.RowCount() {
		require.LessOrEqual(t, ind[r], ind[r+1])
		row := m.Row(r).Entries()
		for i := range row {
			require.Less(t, row[i].Column, m.ColumnCount())
			if i > 0 {
				require.Less(t, row[i-1].Column, row[i].Column, "row %d not strictly increasing", r)
			}
		}
	}
	groups := m.RowGroupIndices()
	require.Len(t, groups, m.RowGroupCount()+1)
	require.Equal(t, 0, groups[0])
	require.Equal(t, m.RowCount(), groups[len(groups)-1])
}
