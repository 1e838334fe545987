// SPDX-License-Identifier: MIT
// Numeric kernels used by iterative solvers.
// Vectors are plain slices indexed by row (results) or column (operands).
// Operations requiring division check the descriptor once and return
// ErrNotSupported for value types without value.Divider.

package sparse

import (
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/sparsemc/value"
)

// MultiplyRowWithVector returns Σ_c A[row][c]·x[c].
func (m *Matrix[V]) MultiplyRowWithVector(row int, x []V) V {
	sum := m.ops.Zero()
	for _, e := range m.Row(row).entries {
		sum = m.ops.Add(sum, m.ops.Mul(e.Value, x[e.Column]))
	}

	return sum
}

// MultiplyWithVector computes result = A·x.
//
// When result shares its backing array with x the product is computed into a
// scratch buffer first. Above the parallel threshold (nonzero entries) rows
// are split into contiguous chunks, each written by exactly one goroutine.
//
// Errors: ErrDimensionMismatch when len(x) != ColumnCount() or
// len(result) != RowCount().
func (m *Matrix[V]) MultiplyWithVector(x, result []V) error {
	if len(x) != m.columnCount || len(result) != m.rowCount {
		return detailf(opMultiply, ErrDimensionMismatch, "x has %d (want %d), result has %d (want %d)",
			len(x), m.columnCount, len(result), m.rowCount)
	}
	target := result
	staged := aliased(x, result)
	if staged {
		m.cfg.log.Info("multiplication output aliases its input, using a temporary vector")
		target = make([]V, len(result))
	}

	if m.nonzeroEntryCount > m.cfg.parallelThreshold {
		m.multiplyParallel(x, target)
	} else {
		m.multiplyRange(0, m.rowCount, x, target)
	}

	if staged {
		copy(result, target)
	}

	return nil
}

func (m *Matrix[V]) multiplyRange(start, end int, x, result []V) {
	for r := start; r < end; r++ {
		result[r] = m.MultiplyRowWithVector(r, x)
	}
}

func (m *Matrix[V]) multiplyParallel(x, result []V) {
	workers := runtime.GOMAXPROCS(0)
	chunk := max(m.cfg.parallelChunk, (m.rowCount+workers-1)/workers)
	m.cfg.log.V(1).Info("parallel multiplication", "rows", m.rowCount, "chunk", chunk, "workers", workers)

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < m.rowCount; start += chunk {
		end := min(start+chunk, m.rowCount)
		g.Go(func() error {
			m.multiplyRange(start, end, x, result)

			return nil
		})
	}
	_ = g.Wait() // workers never fail
}

// aliased reports whether a and b start at the same element.
func aliased[V any](a, b []V) bool {
	return len(a) > 0 && len(b) > 0 && &a[0] == &b[0]
}

// MultiplyVectorWithMatrix computes result = xᵀ·A. result is overwritten.
func (m *Matrix[V]) MultiplyVectorWithMatrix(x, result []V) error {
	if len(x) != m.rowCount || len(result) != m.columnCount {
		return detailf(opMultiply, ErrDimensionMismatch, "x has %d (want %d), result has %d (want %d)",
			len(x), m.rowCount, len(result), m.columnCount)
	}
	if aliased(x, result) {
		return detailf(opMultiply, ErrInvalidArgument, "result aliases x")
	}
	for c := range result {
		result[c] = m.ops.Zero()
	}
	for r := range m.rowCount {
		for _, e := range m.Row(r).entries {
			result[e.Column] = m.ops.Add(result[e.Column], m.ops.Mul(x[r], e.Value))
		}
	}

	return nil
}

// PerformSuccessiveOverRelaxationStep updates x in place with one
// Gauss-Seidel sweep relaxed by omega:
//
//	x[r] = (1-ω)·x[r] + ω·(b[r] - Σ_{c≠r} A[r][c]·x[c]) / A[r][r]
//
// Rows are processed in increasing order, so updated values are used
// immediately. A missing or zero diagonal fails with ErrDivisionByZero; x
// holds the rows updated so far.
func (m *Matrix[V]) PerformSuccessiveOverRelaxationStep(omega V, x, b []V) error {
	div, err := value.AsDivider(m.ops)
	if err != nil {
		return sparseErrorf(opSOR, ErrNotSupported)
	}
	if m.rowCount != m.columnCount {
		return detailf(opSOR, ErrInvalidArgument, "matrix is %dx%d, want square", m.rowCount, m.columnCount)
	}
	if len(x) != m.rowCount || len(b) != m.rowCount {
		return detailf(opSOR, ErrDimensionMismatch, "x has %d, b has %d, want %d", len(x), len(b), m.rowCount)
	}

	ops := m.ops
	oneMinusOmega := ops.Sub(ops.One(), omega)
	for r := range m.rowCount {
		tmp := ops.Zero()
		diag := ops.Zero()
		for _, e := range m.Row(r).entries {
			if e.Column == r {
				diag = e.Value
			} else {
				tmp = ops.Add(tmp, ops.Mul(e.Value, x[e.Column]))
			}
		}
		if ops.IsZero(diag) {
			return detailf(opSOR, ErrDivisionByZero, "zero diagonal in row %d", r)
		}
		x[r] = ops.Add(ops.Mul(oneMinusOmega, x[r]), div.Div(ops.Mul(omega, ops.Sub(b[r], tmp)), diag))
	}

	return nil
}

// JacobiDecomposition splits A into its off-diagonal part LU and the
// element-wise inverse of its diagonal. A missing diagonal yields a zero in
// the inverse vector; a stored zero diagonal fails with ErrDivisionByZero.
func (m *Matrix[V]) JacobiDecomposition() (*Matrix[V], []V, error) {
	div, err := value.AsDivider(m.ops)
	if err != nil {
		return nil, nil, sparseErrorf(opJacobi, ErrNotSupported)
	}
	if m.rowCount != m.columnCount {
		return nil, nil, detailf(opJacobi, ErrInvalidArgument, "matrix is %dx%d, want square", m.rowCount, m.columnCount)
	}

	ops := m.ops
	b := NewBuilder(ops, withConfig(m.cfg), WithInitialDimensions(m.rowCount, m.columnCount, len(m.columnsAndValues)))
	inverted := make([]V, m.rowCount)
	for r := range m.rowCount {
		inverted[r] = ops.Zero()
		for _, e := range m.Row(r).entries {
			if e.Column == r {
				if ops.IsZero(e.Value) {
					return nil, nil, detailf(opJacobi, ErrDivisionByZero, "zero diagonal in row %d", r)
				}
				inverted[r] = div.Div(ops.One(), e.Value)

				continue
			}
			if err := b.AddNextValue(r, e.Column, e.Value); err != nil {
				return nil, nil, sparseErrorf(opJacobi, err)
			}
		}
	}
	lu, err := b.Build(m.rowCount, m.columnCount, 0)
	if err != nil {
		return nil, nil, sparseErrorf(opJacobi, err)
	}

	return lu, inverted, nil
}

// ScaleRowsInPlace multiplies every entry of row r by factors[r].
func (m *Matrix[V]) ScaleRowsInPlace(factors []V) error {
	if len(factors) != m.rowCount {
		return detailf(opScale, ErrDimensionMismatch, "%d factors for %d rows", len(factors), m.rowCount)
	}
	for r, f := range factors {
		row := m.Row(r).entries
		for i := range row {
			row[i] = row[i].Scale(m.ops, f)
		}
	}
	m.UpdateNonzeroEntryCount()

	return nil
}

// DivideRowsInPlace divides every entry of row r by divisors[r]. All divisors
// are checked before any row is touched.
func (m *Matrix[V]) DivideRowsInPlace(divisors []V) error {
	div, err := value.AsDivider(m.ops)
	if err != nil {
		return sparseErrorf(opDivide, ErrNotSupported)
	}
	if len(divisors) != m.rowCount {
		return detailf(opDivide, ErrDimensionMismatch, "%d divisors for %d rows", len(divisors), m.rowCount)
	}
	for r, d := range divisors {
		if m.ops.IsZero(d) {
			return detailf(opDivide, ErrDivisionByZero, "divisor of row %d", r)
		}
	}
	for r, d := range divisors {
		row := m.Row(r).entries
		for i := range row {
			row[i].Value = div.Div(row[i].Value, d)
		}
	}
	m.UpdateNonzeroEntryCount()

	return nil
}

// PointwiseProductRowSumVector returns, per row, Σ_c A[r][c]·B[r][c] over the
// columns stored in both matrices.
func (m *Matrix[V]) PointwiseProductRowSumVector(other *Matrix[V]) ([]V, error) {
	if other == nil || other.rowCount != m.rowCount || other.columnCount != m.columnCount {
		return nil, detailf(opPointwise, ErrDimensionMismatch, "operands differ in shape")
	}
	out := make([]V, m.rowCount)
	for r := range m.rowCount {
		a, b := m.Row(r).entries, other.Row(r).entries
		sum := m.ops.Zero()
		for i, j := 0, 0; i < len(a) && j < len(b); {
			switch {
			case a[i].Column < b[j].Column:
				i++
			case a[i].Column > b[j].Column:
				j++
			default:
				sum = m.ops.Add(sum, m.ops.Mul(a[i].Value, b[j].Value))
				i++
				j++
			}
		}
		out[r] = sum
	}

	return out, nil
}
