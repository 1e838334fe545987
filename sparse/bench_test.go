// Package sparse_test provides benchmarks for building, multiplying and
// transforming banded sparse matrices.
package sparse_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/sparsemc/sparse"
)

// benchSizes are the row counts to benchmark.
var benchSizes = []int{1 << 10, 1 << 14, 1 << 16}

// sinks to defeat dead-code elimination
var (
	sinkM *sparse.Matrix[float64]
	sinkV []float64
	sinkH uint64
)

func BenchmarkBuild(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				sinkM = banded(b, n)
			}
		})
	}
}

func BenchmarkMultiplyWithVector(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		m := banded(b, n)
		x := make([]float64, n)
		for i := range x {
			x[i] = 1
		}
		for _, mode := range []struct {
			name      string
			threshold int
		}{{"sequential", 1 << 30}, {"parallel", 1}} {
			b.Run(fmt.Sprintf("n=%d/%s", n, mode.name), func(b *testing.B) {
				mm := m.WithParallelism(mode.threshold, 0)
				y := make([]float64, n)
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					if err := mm.MultiplyWithVector(x, y); err != nil {
						b.Fatal(err)
					}
				}
				sinkV = y
			})
		}
	}
}

func BenchmarkTranspose(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := banded(b, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkM = m.Transpose(false, false)
			}
		})
	}
}

func BenchmarkHash(b *testing.B) {
	b.ReportAllocs()
	for _, n := range benchSizes {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			m := banded(b, n)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				sinkH = m.Hash()
			}
		})
	}
}
