// Package sparsemc is the matrix layer of a probabilistic model checker:
// compressed sparse rows with row groups, generic over the entry type.
//
// What is inside?
//
//	value     entry arithmetic for float64, exact *big.Rat and intervals
//	sparse    Builder and Matrix: CSR storage, row groups, transforms,
//	          matrix-vector kernels, SOR and Jacobi helpers, gonum bridge
//	reach     forward and backward graph reachability over a Matrix
//	examples  runnable programs (Knuth-Yao die, MDP scheduler synthesis)
//
// Row groups:
//
//	A DTMC has one row per state. An MDP groups the rows of a state, one row
//	per action:
//
//	    group 0 ─┬─ row 0  (action a)
//	             └─ row 1  (action b)
//	    group 1 ─── row 2
//
// Entries are added row by row through a Builder; the built Matrix keeps
// its shape while in-place methods may rewrite values and columns.
//
//	go get github.com/katalvlaran/sparsemc
package sparsemc
