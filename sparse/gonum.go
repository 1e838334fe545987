// SPDX-License-Identifier: MIT

package sparse

import (
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/sparsemc/value"
)

// ToGonumDense copies a float64 matrix into a dense gonum matrix. Gonum
// cannot represent empty matrices, so zero rows or columns are rejected.
func ToGonumDense(m *Matrix[float64]) (*mat.Dense, error) {
	if m == nil || m.rowCount == 0 || m.columnCount == 0 {
		return nil, detailf(opGonum, ErrInvalidArgument, "dense matrices need at least one row and column")
	}
	d := mat.NewDense(m.rowCount, m.columnCount, nil)
	for r := range m.rowCount {
		for _, e := range m.Row(r).entries {
			d.Set(r, e.Column, e.Value)
		}
	}

	return d, nil
}

// FromGonum builds a trivially grouped matrix from the non-zero cells of a.
func FromGonum(a mat.Matrix, opts ...BuilderOption) (*Matrix[float64], error) {
	if a == nil {
		return nil, detailf(opGonum, ErrInvalidArgument, "nil matrix")
	}
	rows, cols := a.Dims()
	b := NewBuilder[float64](value.NewFloat64(), append([]BuilderOption{WithInitialDimensions(rows, cols, 0)}, opts...)...)
	for r := range rows {
		for c := range cols {
			if v := a.At(r, c); v != 0 {
				if err := b.AddNextValue(r, c, v); err != nil {
					return nil, sparseErrorf(opGonum, err)
				}
			}
		}
	}
	m, err := b.Build(rows, cols, 0)
	if err != nil {
		return nil, sparseErrorf(opGonum, err)
	}

	return m, nil
}
