// SPDX-License-Identifier: MIT
// Sentinel error set.
// Every exported operation returns one of these sentinels (possibly wrapped
// with an operation tag); callers match them with errors.Is.

package sparse

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/sparsemc/value"
)

var (
	// ErrOutOfOrderRow is returned by AddNextValue when the row index moves backwards.
	ErrOutOfOrderRow = errors.New("sparse: row index moved backwards")

	// ErrOutOfRange indicates a row, column, group or offset outside valid bounds.
	ErrOutOfRange = errors.New("sparse: index out of range")

	// ErrInvalidState reports a builder or matrix that cannot perform the call
	// in its current state (grouping disabled, forced dimensions exceeded, empty row).
	ErrInvalidState = errors.New("sparse: invalid state")

	// ErrInvalidArgument reports a malformed argument (constraint size, mapping, length).
	ErrInvalidArgument = errors.New("sparse: invalid argument")

	// ErrNotSupported marks an operation the value type cannot perform.
	// It also matches value.ErrNotSupported.
	ErrNotSupported = fmt.Errorf("sparse: %w", value.ErrNotSupported)
)

// Refinements. Each wraps a base sentinel so both match with errors.Is.
var (
	// ErrBuilderConsumed is returned by any call on a builder after Build.
	ErrBuilderConsumed = fmt.Errorf("%w: builder already consumed", ErrInvalidState)

	// ErrMissingDiagonal is returned when a row group lacks its diagonal entry.
	ErrMissingDiagonal = fmt.Errorf("%w: missing diagonal entry", ErrInvalidArgument)

	// ErrDivisionByZero is returned when a divisor or pivot is zero.
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrInvalidArgument)

	// ErrDimensionMismatch is returned when vector or matrix sizes disagree.
	ErrDimensionMismatch = fmt.Errorf("%w: dimension mismatch", ErrInvalidArgument)
)

// Operation tags used as error prefixes.
const (
	opAddNextValue   = "AddNextValue"
	opNewRowGroup    = "NewRowGroup"
	opBuild          = "Build"
	opReplaceColumns = "ReplaceColumns"
	opReopen         = "NewBuilderFromMatrix"
	opAccess         = "Access"
	opSubmatrix      = "Submatrix"
	opRestrictRows   = "RestrictRows"
	opSelectRows     = "SelectRows"
	opTranspose      = "Transpose"
	opSwapRows       = "SwapRows"
	opPermute        = "Permute"
	opGrouping       = "MakeRowGroupingTrivial"
	opInvertDiagonal = "InvertDiagonal"
	opDirac          = "MakeRowDirac"
	opMultiply       = "Multiply"
	opSOR            = "PerformSuccessiveOverRelaxationStep"
	opJacobi         = "JacobiDecomposition"
	opScale          = "ScaleRowsInPlace"
	opDivide         = "DivideRowsInPlace"
	opPointwise      = "PointwiseProductRowSumVector"
	opGonum          = "Gonum"
	opMatlab         = "MatlabString"
)

// sparseErrorf prefixes err with an operation tag, preserving the chain.
func sparseErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// detailf attaches detail to a sentinel, then tags it.
func detailf(tag string, sentinel error, format string, args ...any) error {
	return fmt.Errorf("%s: %w: %s", tag, sentinel, fmt.Sprintf(format, args...))
}
