// Package reach answers qualitative reachability questions over the
// transition structure of a sparse.Matrix.
//
// What
//
//   - Row group g is state g; every column with a nonzero entry in any row of
//     the group is a successor of g. Explicit zeros are not transitions.
//   - Forward(m, initial): states reachable from initial.
//   - Backward(m, constraint, targets): states that can reach targets while
//     every intermediate state stays inside constraint. This is the
//     "probability greater than zero" pre-analysis run before a numeric solve.
//   - Both return a Result with the Reached set, the visit Order and the
//     Depth of every state (-1 when unreached).
//
// Options
//
//   - WithContext(ctx):  cancellation between dequeues.
//   - WithMaxSteps(n):   bounded reachability (n > 0); 0 means unbounded.
//   - WithOnVisit(fn):   hook per visited state; a returned error aborts.
//
// Errors
//
//   - ErrNilMatrix        if the matrix pointer is nil.
//   - ErrNotSquare        if the row group count differs from the column count.
//   - ErrStateOutOfRange  if a seed set names a state past the last column.
//   - ErrOptionViolation  for invalid options (e.g. negative MaxSteps).
//   - Wrapped OnVisit errors and ctx.Err() on cancellation.
//
// Complexity
//
//   - Forward: O(S + E) time and O(S) memory for S states and E entries.
//   - Backward: adds one O(E) transpose.
package reach
