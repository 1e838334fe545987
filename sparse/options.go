// SPDX-License-Identifier: MIT

// Functional configuration for builders and the matrices
// they produce. This file defines:
//   - documented defaults (constants, single source of truth),
//   - BuilderOption constructors with strict validation (panic on nonsensical values),
//   - the internal config that matrices inherit from their builder.
//
// Notes:
//   - Dimension hints are reservations unless WithForceDimensions is given,
//     in which case they become hard upper bounds (and an exact entry count).
//   - Logger and parallel policy propagate to every matrix derived from the
//     built one (submatrix, transpose, selections).
package sparse

import "github.com/go-logr/logr"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultParallelThreshold is the nonzero count above which
	// MultiplyWithVector splits the rows across goroutines.
	DefaultParallelThreshold = 10000

	// DefaultParallelChunk is the minimum number of rows handed to one goroutine.
	DefaultParallelChunk = 10

	// DefaultForceDimensions keeps dimension hints advisory.
	DefaultForceDimensions = false

	// DefaultCustomRowGrouping builds matrices with the trivial grouping.
	DefaultCustomRowGrouping = false
)

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicNegativeDimensions = "sparse: WithInitialDimensions: dimensions must be non-negative"
	panicNegativeGroupCount = "sparse: WithInitialRowGroupCount: count must be non-negative"
	panicThresholdInvalid   = "sparse: WithParallelThreshold: threshold must be positive"
	panicChunkInvalid       = "sparse: WithParallelChunk: chunk must be positive"
)

// ---------- Public option type (functional) ----------

// BuilderOption mutates builder configuration. Safe to apply repeatedly.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	// hints; zero means "not given"
	initialRows      int
	initialColumns   int
	initialEntries   int
	initialRowGroups int

	forceDimensions   bool // DefaultForceDimensions
	customRowGrouping bool // DefaultCustomRowGrouping

	cfg config
}

// config is the part of the builder configuration a Matrix keeps.
type config struct {
	log               logr.Logger
	parallelThreshold int
	parallelChunk     int
}

func defaultConfig() config {
	return config{
		log:               logr.Discard(),
		parallelThreshold: DefaultParallelThreshold,
		parallelChunk:     DefaultParallelChunk,
	}
}

func gatherOptions(opts []BuilderOption) builderOptions {
	o := builderOptions{
		forceDimensions:   DefaultForceDimensions,
		customRowGrouping: DefaultCustomRowGrouping,
		cfg:               defaultConfig(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	return o
}

// ---------- Constructors (WithX) ----------

// WithInitialDimensions reserves storage for rows, columns and entries.
// Under WithForceDimensions the values become hard limits.
// Panics when any value is negative.
func WithInitialDimensions(rows, columns, entries int) BuilderOption {
	if rows < 0 || columns < 0 || entries < 0 {
		panic(panicNegativeDimensions)
	}

	return func(o *builderOptions) {
		o.initialRows = rows
		o.initialColumns = columns
		o.initialEntries = entries
	}
}

// WithForceDimensions turns the initial dimensions into enforced bounds:
// rows and columns may not exceed them, and the entry count must match exactly.
func WithForceDimensions() BuilderOption {
	return func(o *builderOptions) { o.forceDimensions = true }
}

// WithCustomRowGrouping enables NewRowGroup. Without it the built matrix has
// the trivial grouping (one row per group).
func WithCustomRowGrouping() BuilderOption {
	return func(o *builderOptions) { o.customRowGrouping = true }
}

// WithInitialRowGroupCount reserves (or, when forced, bounds) the group count.
func WithInitialRowGroupCount(n int) BuilderOption {
	if n < 0 {
		panic(panicNegativeGroupCount)
	}

	return func(o *builderOptions) { o.initialRowGroups = n }
}

// WithLogger routes repair warnings and diagnostics to l.
// The builder and its matrices log under the name "sparse".
func WithLogger(l logr.Logger) BuilderOption {
	return func(o *builderOptions) { o.cfg.log = l.WithName("sparse") }
}

// WithParallelThreshold sets the nonzero count above which matrix-vector
// multiplication runs in parallel. Panics when n <= 0.
func WithParallelThreshold(n int) BuilderOption {
	if n <= 0 {
		panic(panicThresholdInvalid)
	}

	return func(o *builderOptions) { o.cfg.parallelThreshold = n }
}

// WithParallelChunk sets the minimum rows per goroutine. Panics when n <= 0.
func WithParallelChunk(n int) BuilderOption {
	if n <= 0 {
		panic(panicChunkInvalid)
	}

	return func(o *builderOptions) { o.cfg.parallelChunk = n }
}

// withConfig copies an existing matrix configuration into a derived builder.
func withConfig(c config) BuilderOption {
	return func(o *builderOptions) { o.cfg = c }
}
