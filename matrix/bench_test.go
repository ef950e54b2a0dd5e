package matrix_test

import (
	"testing"

	"github.com/Ectophasme/neutronres/matrix"
)

// bench4x4 is a representative symmetric positive-definite covariance.
var bench4x4 = []float64{
	5, 1, 0, 0,
	1, 4, 1, 0,
	0, 1, 3, 1,
	0, 0, 1, 2,
}

func BenchmarkInverse4x4(b *testing.B) {
	m, err := matrix.NewDenseFrom(4, 4, bench4x4)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err = matrix.Inverse(m); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEigen4x4(b *testing.B) {
	m, err := matrix.NewDenseFrom(4, 4, bench4x4)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err = matrix.Eigen(m, 0); err != nil {
			b.Fatal(err)
		}
	}
}
