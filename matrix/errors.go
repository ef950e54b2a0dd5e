// Package matrix: sentinel error set. All kernels return these sentinels
// (possibly wrapped with an operation tag via fmt.Errorf("%s: %w", ...));
// tests and callers match them with errors.Is. Panics are reserved for
// programmer errors in private helpers.

package matrix

import "errors"

var (
	// ErrBadShape is returned when a requested shape is invalid (r <= 0 or
	// c <= 0) or a data slice does not match the requested dimensions.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	// At/Set return this; they never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions,
	// e.g. Mul where a.Cols != b.Rows, or a vector of the wrong length.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNilMatrix indicates a nil *Dense receiver or argument.
	ErrNilMatrix = errors.New("matrix: nil matrix")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are
	// required (construction and Set).
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated
	// symmetry within the given tolerance.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within tol")

	// ErrSingular is returned when a zero pivot is encountered during
	// LU/inversion. The scheme does not pivot, so a singular (or
	// structurally degenerate) matrix is reported rather than worked around.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrEigenFailed indicates the Jacobi sweep did not converge below the
	// requested tolerance within the iteration cap.
	ErrEigenFailed = errors.New("matrix: eigen decomposition failed")
)
