// SPDX-License-Identifier: MIT
// Package sparse_test contains tests for numeric kernels and in-place updates.
package sparse_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/go-logr/logr/funcr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sparsemc/sparse"
	"github.com/katalvlaran/sparsemc/value"
)

// banded returns an n×n matrix with three diagonals and row-dependent values.
func banded(t testing.TB, n int, opts ...sparse.BuilderOption) *sparse.Matrix[float64] {
	t.Helper()
	b := sparse.NewBuilder[float64](flt, opts...)
	for r := range n {
		for _, c := range []int{r - 1, r, r + 1} {
			if c >= 0 && c < n {
				require.NoError(t, b.AddNextValue(r, c, float64(r%7+1)/float64(c%5+2)))
			}
		}
	}
	m, err := b.BuildDefault()
	require.NoError(t, err)

	return m
}

// TestMultiplyMatchesGonum cross-checks sequential and parallel paths against gonum.
func TestMultiplyMatchesGonum(t *testing.T) {
	const n = 300
	m := banded(t, n, sparse.WithParallelThreshold(1), sparse.WithParallelChunk(7))
	x := make([]float64, n)
	for i := range x {
		x[i] = float64(i%11) - 5
	}

	dense, err := sparse.ToGonumDense(m)
	require.NoError(t, err)
	var want mat.VecDense
	want.MulVec(dense, mat.NewVecDense(n, x))

	parallel := make([]float64, n)
	require.NoError(t, m.MultiplyWithVector(x, parallel))
	sequential := make([]float64, n)
	require.NoError(t, m.WithParallelism(1<<30, 0).MultiplyWithVector(x, sequential))

	assert.True(t, floats.EqualApprox(want.RawVector().Data, parallel, 1e-12))
	assert.Equal(t, sequential, parallel, "both paths compute rows identically")
	assert.InDelta(t, parallel[17], m.MultiplyRowWithVector(17, x), 0)
}

// TestMultiplyAliasing computes into a scratch vector when output is input.
func TestMultiplyAliasing(t *testing.T) {
	var lines []string
	log := funcr.New(func(_, args string) { lines = append(lines, args) }, funcr.Options{})
	swap := mustBuild(t, []cell{{0, 1, 1}, {1, 0, 1}}, sparse.WithLogger(log))

	x := []float64{1, 2}
	require.NoError(t, swap.MultiplyWithVector(x, x))
	assert.Equal(t, []float64{2, 1}, x)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "aliases")
}

// TestMultiplyDimensionErrors covers vector length validation.
func TestMultiplyDimensionErrors(t *testing.T) {
	m := chain3(t)
	require.ErrorIs(t, m.MultiplyWithVector(make([]float64, 2), make([]float64, 3)), sparse.ErrDimensionMismatch)
	require.ErrorIs(t, m.MultiplyWithVector(make([]float64, 3), make([]float64, 4)), sparse.ErrDimensionMismatch)
	require.ErrorIs(t, m.MultiplyVectorWithMatrix(make([]float64, 1), make([]float64, 3)), sparse.ErrInvalidArgument)
}

// TestMultiplyVectorWithMatrix propagates a distribution one step.
func TestMultiplyVectorWithMatrix(t *testing.T) {
	m := chain3(t)
	dist := []float64{1, 0, 0}
	next := []float64{9, 9, 9} // overwritten

	require.NoError(t, m.MultiplyVectorWithMatrix(dist, next))
	assert.Equal(t, []float64{0.5, 0.5, 0}, next)
	require.NoError(t, m.MultiplyVectorWithMatrix(next, dist))
	assert.Equal(t, []float64{0.25, 0.25, 0.5}, dist)
}

// TestSuccessiveOverRelaxation converges on a diagonally dominant system.
func TestSuccessiveOverRelaxation(t *testing.T) {
	a := mustBuild(t, []cell{{0, 0, 4}, {0, 1, 1}, {1, 0, 2}, {1, 1, 3}})
	x := []float64{0, 0}
	b := []float64{1, 2}

	for range 60 {
		require.NoError(t, a.PerformSuccessiveOverRelaxationStep(1.1, x, b))
	}
	assert.InDelta(t, 0.1, x[0], 1e-9)
	assert.InDelta(t, 0.6, x[1], 1e-9)
}

// TestSuccessiveOverRelaxationErrors covers capability and shape checks.
func TestSuccessiveOverRelaxationErrors(t *testing.T) {
	noDiag := mustBuild(t, []cell{{0, 1, 1}, {1, 0, 1}})
	require.ErrorIs(t, noDiag.PerformSuccessiveOverRelaxationStep(1, []float64{0, 0}, []float64{1, 1}), sparse.ErrDivisionByZero)

	rect := mustBuild(t, []cell{{0, 2, 1}})
	require.ErrorIs(t, rect.PerformSuccessiveOverRelaxationStep(1, []float64{0}, []float64{0}), sparse.ErrInvalidArgument)

	ib := sparse.NewBuilder[value.Interval](value.Intervals{})
	require.NoError(t, ib.AddNextValue(0, 0, value.Point(1)))
	im, err := ib.BuildDefault()
	require.NoError(t, err)
	err = im.PerformSuccessiveOverRelaxationStep(value.Point(1), []value.Interval{{}}, []value.Interval{{}})
	require.ErrorIs(t, err, sparse.ErrNotSupported)
	assert.True(t, errors.Is(err, value.ErrNotSupported))
}

// TestSuccessiveOverRelaxationRational runs one exact Gauss-Seidel sweep.
func TestSuccessiveOverRelaxationRational(t *testing.T) {
	ops := value.Rational{}
	b := sparse.NewBuilder[*big.Rat](ops)
	require.NoError(t, b.AddNextValue(0, 0, value.NewRat(2, 1)))
	require.NoError(t, b.AddNextValue(1, 0, value.NewRat(1, 1)))
	require.NoError(t, b.AddNextValue(1, 1, value.NewRat(4, 1)))
	a, err := b.BuildDefault()
	require.NoError(t, err)

	x := []*big.Rat{ops.Zero(), ops.Zero()}
	rhs := []*big.Rat{value.NewRat(1, 1), value.NewRat(1, 1)}
	require.NoError(t, a.PerformSuccessiveOverRelaxationStep(ops.One(), x, rhs))
	assert.Equal(t, "1/2", x[0].RatString())
	assert.Equal(t, "1/8", x[1].RatString()) // (1 - 1/2) / 4
}

// TestJacobiDecomposition splits off the diagonal.
func TestJacobiDecomposition(t *testing.T) {
	sq := mustBuild(t, []cell{{0, 0, 4}, {0, 1, 1}, {1, 0, 2}, {1, 1, 2}, {2, 0, 1}, {2, 2, 0.5}})
	lu, inv, err := sq.JacobiDecomposition()
	require.NoError(t, err)
	assert.Equal(t, []float64{0.25, 0.5, 2}, inv)
	assert.Equal(t, 3, lu.EntryCount())
	assert.Equal(t, []sparse.Entry[float64]{ent(1, 1)}, rowCells(lu, 0))
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 1)}, rowCells(lu, 2))
	assert.Equal(t, 3, lu.RowCount())

	missing := mustBuild(t, []cell{{0, 0, 1}, {1, 0, 1}}, sparse.WithInitialDimensions(2, 2, 2), sparse.WithForceDimensions())
	_, inv, err = missing.JacobiDecomposition()
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0}, inv, "missing diagonal reads as zero")

	zero := mustBuild(t, []cell{{0, 0, 0}})
	_, _, err = zero.JacobiDecomposition()
	require.ErrorIs(t, err, sparse.ErrDivisionByZero)

	_, _, err = mustBuild(t, []cell{{0, 1, 1}}).JacobiDecomposition()
	require.ErrorIs(t, err, sparse.ErrInvalidArgument)
}

// TestConvertToEquationSystem forms I - A.
func TestConvertToEquationSystem(t *testing.T) {
	m := chain3(t)
	require.ErrorIs(t, m.ConvertToEquationSystem(), sparse.ErrMissingDiagonal)
	assert.Equal(t, []sparse.Entry[float64]{ent(2, 1)}, rowCells(m, 1), "unchanged on failure")

	full := m.CloneWithDiagonal(true)
	require.NoError(t, full.ConvertToEquationSystem())
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 0.5), ent(1, -0.5)}, rowCells(full, 0))
	assert.Equal(t, []sparse.Entry[float64]{ent(1, 1), ent(2, -1)}, rowCells(full, 1))
	assert.Equal(t, []sparse.Entry[float64]{ent(2, 0)}, rowCells(full, 2))
	assert.Equal(t, 4, full.NonzeroEntryCount())
}

// TestInvertAndNegateSeparately applies the two halves of the conversion on a
// grouped matrix, where the diagonal column is the group index.
func TestInvertAndNegateSeparately(t *testing.T) {
	m := mustBuildGrouped(t, []int{0, 2}, []cell{{0, 0, 0.25}, {0, 1, 0.75}, {1, 1, 1}, {2, 0, 0.5}, {2, 1, 0.5}})

	require.NoError(t, m.InvertDiagonal())
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 0.75), ent(1, 0.75)}, rowCells(m, 0))
	assert.Equal(t, []sparse.Entry[float64]{ent(1, 1)}, rowCells(m, 1), "column 1 is not the diagonal of group 0")
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 0.5), ent(1, 0.5)}, rowCells(m, 2))

	m.NegateAllNonDiagonalEntries()
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 0.75), ent(1, -0.75)}, rowCells(m, 0))
	assert.Equal(t, []sparse.Entry[float64]{ent(1, -1)}, rowCells(m, 1))
	assert.Equal(t, []sparse.Entry[float64]{ent(0, -0.5), ent(1, 0.5)}, rowCells(m, 2))

	noDiag := mustBuild(t, []cell{{0, 1, 1}, {1, 1, 1}})
	require.ErrorIs(t, noDiag.InvertDiagonal(), sparse.ErrMissingDiagonal)
	assert.Equal(t, []sparse.Entry[float64]{ent(1, 1)}, rowCells(noDiag, 0))
}

// TestDeleteDiagonalEntries keeps explicit zeros on the diagonal.
func TestDeleteDiagonalEntries(t *testing.T) {
	m := chain3(t)
	m.DeleteDiagonalEntries()

	assert.Equal(t, 4, m.EntryCount())
	assert.Equal(t, 2, m.NonzeroEntryCount())
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 0), ent(1, 0.5)}, rowCells(m, 0))
}

// TestMakeRowDirac keeps rows sorted while collapsing them.
func TestMakeRowDirac(t *testing.T) {
	build := func() *sparse.Matrix[float64] {
		return mustBuild(t, []cell{{0, 0, 0.2}, {0, 2, 0.3}, {0, 4, 0.5}}, sparse.WithInitialDimensions(2, 6, 3), sparse.WithForceDimensions())
	}
	cases := []struct {
		name   string
		column int
		want   []sparse.Entry[float64]
	}{
		{"existing column", 2, []sparse.Entry[float64]{ent(0, 0), ent(2, 1), ent(4, 0)}},
		{"between columns", 3, []sparse.Entry[float64]{ent(0, 0), ent(2, 0), ent(3, 1)}},
		{"before all", 0, []sparse.Entry[float64]{ent(0, 1), ent(2, 0), ent(4, 0)}},
		{"after all", 5, []sparse.Entry[float64]{ent(0, 0), ent(2, 0), ent(5, 1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := build()
			require.NoError(t, m.MakeRowDirac(0, tc.column))
			assert.Equal(t, tc.want, rowCells(m, 0))
			assert.Equal(t, 1, m.NonzeroEntryCount())
			requireCSR(t, m)
		})
	}

	m := build()
	require.ErrorIs(t, m.MakeRowDirac(1, 0), sparse.ErrInvalidState) // empty row
	require.ErrorIs(t, m.MakeRowDirac(0, 6), sparse.ErrOutOfRange)
	require.ErrorIs(t, m.MakeRowDirac(2, 0), sparse.ErrOutOfRange)
}

// TestMakeAbsorbing turns states into self-loops.
func TestMakeAbsorbing(t *testing.T) {
	m := chain3(t)
	require.NoError(t, m.MakeRowsAbsorbing(bits(3, 0)))
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 1), ent(1, 0)}, rowCells(m, 0))
	assert.True(t, m.IsProbabilistic())

	g := twoGroups(t)
	require.NoError(t, g.MakeRowGroupsAbsorbing(bits(2, 0)))
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 1)}, rowCells(g, 0))
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 1)}, rowCells(g, 1))
	require.ErrorIs(t, g.MakeRowGroupsAbsorbing(bits(4, 3)), sparse.ErrOutOfRange)
}

// TestScaleAndDivideRows covers the row-wise in-place updates.
func TestScaleAndDivideRows(t *testing.T) {
	m := chain3(t)
	require.NoError(t, m.ScaleRowsInPlace([]float64{2, 0, 1}))
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 1), ent(1, 1)}, rowCells(m, 0))
	assert.Equal(t, 3, m.NonzeroEntryCount())
	require.ErrorIs(t, m.ScaleRowsInPlace([]float64{1}), sparse.ErrDimensionMismatch)

	require.NoError(t, m.DivideRowsInPlace([]float64{2, 1, 0.5}))
	assert.Equal(t, []sparse.Entry[float64]{ent(0, 0.5), ent(1, 0.5)}, rowCells(m, 0))
	assert.Equal(t, []sparse.Entry[float64]{ent(2, 2)}, rowCells(m, 2))

	err := m.DivideRowsInPlace([]float64{4, 0, 1})
	require.ErrorIs(t, err, sparse.ErrDivisionByZero)
	require.ErrorIs(t, err, sparse.ErrInvalidArgument)
	assert.Equal(t, 0.5, m.Row(0).At(0).Value, "no row touched")

	ib := sparse.NewBuilder[value.Interval](value.Intervals{})
	require.NoError(t, ib.AddNextValue(0, 0, value.Point(1)))
	im, err := ib.BuildDefault()
	require.NoError(t, err)
	require.ErrorIs(t, im.DivideRowsInPlace([]value.Interval{value.Point(2)}), sparse.ErrNotSupported)
}

// TestPointwiseProductRowSumVector joins rows on shared columns.
func TestPointwiseProductRowSumVector(t *testing.T) {
	m := chain3(t)
	mask := mustBuild(t, []cell{{0, 1, 2}, {1, 0, 5}, {2, 2, 3}})

	got, err := m.PointwiseProductRowSumVector(mask)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 3}, got)

	_, err = m.PointwiseProductRowSumVector(mustBuild(t, []cell{{0, 0, 1}}))
	require.ErrorIs(t, err, sparse.ErrDimensionMismatch)
}
