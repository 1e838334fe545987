// SPDX-License-Identifier: MIT

package sparse

// Test bridge: exposes unexported helpers to sparse_test.

var (
	ExportedSetBitsBefore   = setBitsBefore
	ExportedCheckConstraint = checkConstraint
)

// ParallelPolicy reports the multiplication policy m carries.
func (m *Matrix[V]) ParallelPolicy() (threshold, chunk int) {
	return m.cfg.parallelThreshold, m.cfg.parallelChunk
}
