// SPDX-License-Identifier: MIT

package sparse

import (
	"strconv"
	"strings"
)

// String renders m as a dense table, one block per row group, framed by
// column headers. Missing entries print as the zero value.
func (m *Matrix[V]) String() string {
	var sb strings.Builder
	header := func() {
		sb.WriteString("\t\t")
		for c := range m.columnCount {
			sb.WriteString(strconv.Itoa(c))
			sb.WriteByte('\t')
		}
		sb.WriteByte('\n')
	}
	zero := m.ops.Format(m.ops.Zero())

	header()
	groups := m.RowGroupCount()
	for g := range groups {
		sb.WriteString("\t---- group " + strconv.Itoa(g) + "/" + strconv.Itoa(groups-1) + " ---- \n")
		start, end := m.grouping.bounds(g)
		for r := start; r < end; r++ {
			sb.WriteString(strconv.Itoa(r) + "\t(\t")
			m.writeDenseRow(&sb, r, zero, "\t")
			sb.WriteString("\t)\t" + strconv.Itoa(r) + "\n")
		}
	}
	header()

	return sb.String()
}

// MatlabString renders m as a MATLAB matrix literal. Only matrices whose
// groups hold exactly one row can be rendered.
func (m *Matrix[V]) MatlabString() (string, error) {
	for g := range m.RowGroupCount() {
		if m.RowGroupSize(g) != 1 {
			return "", detailf(opMatlab, ErrInvalidState, "group %d has %d rows", g, m.RowGroupSize(g))
		}
	}

	var sb strings.Builder
	zero := m.ops.Format(m.ops.Zero())
	sb.WriteString("[\n")
	for r := range m.rowCount {
		m.writeDenseRow(&sb, r, zero, " ")
		sb.WriteString(";\n")
	}
	sb.WriteString("]")

	return sb.String(), nil
}

func (m *Matrix[V]) writeDenseRow(sb *strings.Builder, r int, zero, sep string) {
	entries := m.Row(r).entries
	next := 0
	for c := range m.columnCount {
		if next < len(entries) && entries[next].Column == c {
			sb.WriteString(m.ops.Format(entries[next].Value))
			next++
		} else {
			sb.WriteString(zero)
		}
		sb.WriteString(sep)
	}
}
