// Package matrix: canonical validators. Kernels delegate their guard logic
// here so every entry point fails the same way on the same condition. All
// checks are pure, deterministic and allocation-free; they return plain
// sentinels which the kernels wrap with their operation tag.

package matrix

import "math"

// ValidateNotNil ensures m is non-nil. O(1).
func ValidateNotNil(m *Dense) error {
	if m == nil {
		return ErrNilMatrix
	}

	return nil
}

// ValidateSquare ensures m is non-nil and square. O(1).
func ValidateSquare(m *Dense) error {
	if err := ValidateNotNil(m); err != nil {
		return err
	}
	if m.r != m.c {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateMulCompatible ensures a and b are non-nil with a.Cols == b.Rows.
// O(1).
func ValidateMulCompatible(a, b *Dense) error {
	if err := ValidateNotNil(a); err != nil {
		return err
	}
	if err := ValidateNotNil(b); err != nil {
		return err
	}
	if a.c != b.r {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateVecLen ensures x is non-nil with the exact length n. O(1).
func ValidateVecLen(x []float64, n int) error {
	if x == nil {
		return ErrNilMatrix
	}
	if len(x) != n {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateSymmetric checks |A[i,j] − A[j,i]| ≤ tol over the strict upper
// triangle. Use before the Jacobi eigen solver to fail fast on inputs that
// would silently yield garbage. O(n²), space O(1).
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf (bad
// tolerance), ErrAsymmetry (violation).
func ValidateSymmetric(m *Dense, tol float64) error {
	if err := ValidateSquare(m); err != nil {
		return err
	}
	if math.IsNaN(tol) || math.IsInf(tol, 0) {
		return ErrNaNInf
	}
	if tol < 0 {
		tol = -tol
	}
	n := m.r
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if math.Abs(m.data[i*n+j]-m.data[j*n+i]) > tol {
				return ErrAsymmetry
			}
		}
	}

	return nil
}
