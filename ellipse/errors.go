package ellipse

import "errors"

// Sentinel errors of the ellipse package, matched via errors.Is.
var (
	// ErrBadMatrix indicates a nil, non-4×4 or asymmetric input matrix.
	ErrBadMatrix = errors.New("ellipse: input must be a symmetric 4x4 matrix")

	// ErrNotPositive indicates a negative eigenvalue or diagonal entry; the
	// matrix is not a valid resolution matrix. Zero eigenvalues are not an
	// error, they mark an unbounded direction.
	ErrNotPositive = errors.New("ellipse: resolution matrix not positive semi-definite")
)
