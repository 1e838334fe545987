// Package sparse provides the compressed-sparse-row matrix used to store
// transition structures of probabilistic models.
//
// The sparse package provides:
//
//   - Builder, an append-only assembler that accepts entries row by row,
//     sums repeated cells, repairs rows whose columns arrive out of order,
//     and records row groups (one group per state, one row per action).
//   - Matrix[V], an immutable-shape CSR matrix with views over rows and
//     groups, structural transforms (Submatrix, RestrictRows, selections,
//     Transpose, SwapRows) and the numeric kernels iterative solvers need
//     (MultiplyWithVector, successive over-relaxation, Jacobi splitting).
//   - Equality modulo explicit zeros, a matching Hash, and IsProbabilistic.
//
// Entry values are generic; a value.Arithmetic descriptor supplies the
// operations. Kernels that need division fail with ErrNotSupported for value
// types that cannot divide.
//
// Matrices are safe for concurrent readers. In-place methods (SwapRows,
// MakeRowDirac, ScaleRowsInPlace, ...) need exclusive access.
package sparse
