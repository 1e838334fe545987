// SPDX-License-Identifier: MIT

package sparse

import "sync"

type groupingKind uint8

const (
	groupingTrivial groupingKind = iota
	groupingExplicit
)

// rowGrouping is either trivial (group g is row g) or an explicit index
// vector of length groupCount+1 whose last element is the row count.
// The trivial index vector is materialised once on demand.
type rowGrouping struct {
	kind     groupingKind
	explicit []int
	lazy     *lazyIndices
}

type lazyIndices struct {
	once    sync.Once
	indices []int
}

func trivialGrouping() rowGrouping {
	return rowGrouping{kind: groupingTrivial, lazy: &lazyIndices{}}
}

func explicitGrouping(indices []int) rowGrouping {
	return rowGrouping{kind: groupingExplicit, explicit: indices}
}

func (g rowGrouping) indices(rowCount int) []int {
	if g.kind == groupingExplicit {
		return g.explicit
	}
	g.lazy.once.Do(func() { g.lazy.indices = identityIndices(rowCount) })

	return g.lazy.indices
}

// bounds returns the row range [start, end) of group.
func (g rowGrouping) bounds(group int) (int, int) {
	if g.kind == groupingTrivial {
		return group, group + 1
	}

	return g.explicit[group], g.explicit[group+1]
}

func (g rowGrouping) count(rowCount int) int {
	if g.kind == groupingTrivial {
		return rowCount
	}

	return len(g.explicit) - 1
}

func identityIndices(n int) []int {
	idx := make([]int, n+1)
	for i := range idx {
		idx[i] = i
	}

	return idx
}
