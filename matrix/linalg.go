package matrix

import (
	"errors"
	"math"
)

const (
	opLU       = "LU"
	opInverse  = "Inverse"
	opDet      = "Det"
	opEigen    = "Eigen"
	zeroPivot  = 0.0
	defaultTol = 1e-10
	maxSweeps  = 200
)

// LU computes the Doolittle factorization A = L·U with unit diagonal on L.
// No pivoting: the factorization is fully deterministic and a zero pivot is
// reported as ErrSingular instead of being permuted away. Suitable for the
// small, well-conditioned symmetric matrices of this library; callers that
// hit ErrSingular have a degenerate instrument configuration, not a
// numerical nuisance to paper over.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch (non-square), ErrSingular.
// Complexity: Time O(n³), Space O(n²).
func LU(m *Dense) (l, u *Dense, err error) {
	if err = ValidateSquare(m); err != nil {
		return nil, nil, opErrorf(opLU, err)
	}
	n := m.r
	if l, err = Identity(n); err != nil {
		return nil, nil, opErrorf(opLU, err)
	}
	if u, err = NewDense(n, n); err != nil {
		return nil, nil, opErrorf(opLU, err)
	}

	var i, j, k int
	var sum, pivot float64
	for i = 0; i < n; i++ {
		// Row i of U for j >= i.
		for j = i; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * u.data[k*n+j]
			}
			u.data[i*n+j] = m.data[i*n+j] - sum
		}
		pivot = u.data[i*n+i]
		if pivot == zeroPivot {
			return nil, nil, opErrorf(opLU, ErrSingular)
		}
		// Column i of L for j > i.
		for j = i + 1; j < n; j++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l.data[j*n+k] * u.data[k*n+i]
			}
			l.data[j*n+i] = (m.data[j*n+i] - sum) / pivot
		}
	}

	return l, u, nil
}

// Inverse computes A⁻¹ via LU factorization and one pair of triangular
// solves per canonical basis column. The input is never mutated.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrSingular.
// Complexity: Time O(n³), Space O(n²).
func Inverse(m *Dense) (*Dense, error) {
	l, u, err := LU(m)
	if err != nil {
		return nil, opErrorf(opInverse, err)
	}
	n := m.r
	inv, err := NewDense(n, n)
	if err != nil {
		return nil, opErrorf(opInverse, err)
	}

	var (
		col, i, k int
		sum       float64
		y         = make([]float64, n)
		x         = make([]float64, n)
	)
	for col = 0; col < n; col++ {
		// Forward solve L·y = e_col.
		for i = 0; i < n; i++ {
			sum = 0
			for k = 0; k < i; k++ {
				sum += l.data[i*n+k] * y[k]
			}
			if i == col {
				y[i] = 1 - sum
			} else {
				y[i] = -sum
			}
		}
		// Backward solve U·x = y.
		for i = n - 1; i >= 0; i-- {
			sum = 0
			for k = i + 1; k < n; k++ {
				sum += u.data[i*n+k] * x[k]
			}
			x[i] = (y[i] - sum) / u.data[i*n+i]
		}
		for i = 0; i < n; i++ {
			inv.data[i*n+col] = x[i]
		}
	}

	return inv, nil
}

// Det computes the determinant as the product of the U pivots. ErrSingular
// from the factorization maps to a determinant of exactly zero, which is
// reported as a value rather than an error here since "singular" is a valid
// answer to the determinant question.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch.
// Complexity: Time O(n³).
func Det(m *Dense) (float64, error) {
	_, u, err := LU(m)
	if err != nil {
		if errors.Is(err, ErrSingular) {
			return 0, nil
		}

		return 0, opErrorf(opDet, err)
	}
	n := m.r
	det := 1.0
	for i := 0; i < n; i++ {
		det *= u.data[i*n+i]
	}

	return det, nil
}

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via
// Jacobi rotations with a deterministic largest-off-diagonal pivot scan.
// The returned vecs matrix holds the eigenvectors as columns; eigenvalues
// come out in the order the diagonal settles, not sorted.
//
// Errors: ErrNilMatrix, ErrDimensionMismatch, ErrAsymmetry (input not
// symmetric within tol), ErrEigenFailed (no convergence within the cap).
// Complexity: Time O(sweeps·n³), Space O(n²).
func Eigen(m *Dense, tol float64) (vals []float64, vecs *Dense, err error) {
	if tol <= 0 {
		tol = defaultTol
	}
	if err = ValidateSymmetric(m, tol); err != nil {
		return nil, nil, opErrorf(opEigen, err)
	}
	n := m.r
	a := m.Clone()
	if vecs, err = Identity(n); err != nil {
		return nil, nil, opErrorf(opEigen, err)
	}

	var (
		iter, i, j, p, q   int
		off, maxOff        float64
		app, aqq, apq      float64
		theta, t, c, s     float64
		aip, aiq, vip, viq float64
	)
	for iter = 0; iter < maxSweeps; iter++ {
		// Deterministic pivot scan over the strict upper triangle.
		maxOff = 0
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				off = math.Abs(a.data[i*n+j])
				if off > maxOff {
					maxOff, p, q = off, i, j
				}
			}
		}
		if maxOff < tol {
			break
		}

		app, aqq, apq = a.data[p*n+p], a.data[q*n+q], a.data[p*n+q]
		theta = (aqq - app) / (2 * apq)
		t = math.Copysign(1/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1 / math.Sqrt(t*t+1)
		s = t * c

		// Apply the rotation to A symmetrically.
		for i = 0; i < n; i++ {
			if i == p || i == q {
				continue
			}
			aip, aiq = a.data[i*n+p], a.data[i*n+q]
			a.data[i*n+p], a.data[p*n+i] = c*aip-s*aiq, c*aip-s*aiq
			a.data[i*n+q], a.data[q*n+i] = s*aip+c*aiq, s*aip+c*aiq
		}
		a.data[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
		a.data[q*n+q] = s*s*app + 2*c*s*apq + c*c*aqq
		a.data[p*n+q], a.data[q*n+p] = 0, 0

		// Accumulate into the eigenvector columns.
		for i = 0; i < n; i++ {
			vip, viq = vecs.data[i*n+p], vecs.data[i*n+q]
			vecs.data[i*n+p] = c*vip - s*viq
			vecs.data[i*n+q] = s*vip + c*viq
		}
	}

	// Final convergence check.
	maxOff = 0
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			off = math.Abs(a.data[i*n+j])
			if off > maxOff {
				maxOff = off
			}
		}
	}
	if maxOff >= tol {
		return nil, nil, opErrorf(opEigen, ErrEigenFailed)
	}

	vals = make([]float64, n)
	for i = 0; i < n; i++ {
		vals[i] = a.data[i*n+i]
	}

	return vals, vecs, nil
}

// RotationND returns the dim×dim rotation by angle in the (0, 1) plane and
// identity elsewhere. The result is orthogonal with determinant +1; the
// resolution assembler conjugates with it to change basis without touching
// eigenvalues.
//
// Errors: ErrBadShape when dim < 2.
// Complexity: Time O(dim²).
func RotationND(dim int, angle float64) (*Dense, error) {
	if dim < 2 {
		return nil, opErrorf(opRotation, ErrBadShape)
	}
	rot, err := Identity(dim)
	if err != nil {
		return nil, opErrorf(opRotation, err)
	}
	c, s := math.Cos(angle), math.Sin(angle)
	rot.data[0*dim+0], rot.data[0*dim+1] = c, -s
	rot.data[1*dim+0], rot.data[1*dim+1] = s, c

	return rot, nil
}
