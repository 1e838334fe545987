// SPDX-License-Identifier: MIT

// Package value describes the arithmetic of matrix entries.
//
// Purpose:
//   - Decouple sparse storage from the concrete number type stored in a cell.
//   - Express per-type capabilities (division, ordering, constant detection)
//     as small optional interfaces discovered with a type assertion.
//
// Provided descriptors:
//   - Float64:   IEEE-754 doubles; full capability set.
//   - Rational:  exact *big.Rat arithmetic; full capability set.
//   - Intervals: closed [Lo, Hi] intervals; no division, no total order.
//
// Contract:
//   - Descriptors are stateless (or immutable after construction) and safe for
//     concurrent use by any number of goroutines.
//   - Operations never mutate their operands. Rational allocates a fresh
//     *big.Rat for every result.
//
// AI-Hints:
//   - Use Supports(ops) to inspect capabilities before scheduling kernels that need them.
//   - Rational values must not be shared and mutated elsewhere; treat them as immutable.
package value
