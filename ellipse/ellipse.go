package ellipse

import (
	"fmt"
	"math"

	"github.com/Ectophasme/neutronres/kinematics"
	"github.com/Ectophasme/neutronres/matrix"
)

// Kind distinguishes the two cross-sections of a resolution ellipsoid.
type Kind int

const (
	// Slice fixes the other coordinates to zero: a cut through the
	// resolution function.
	Slice Kind = iota + 1

	// Projection integrates the other coordinates out: the function's
	// shadow on the plane.
	Projection
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case Slice:
		return "slice"
	case Projection:
		return "projection"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Ellipse is one 2D cross-section of the resolution ellipsoid. Semi-axes
// are half-widths at half maximum; the center is always the nominal
// scattering point, so the offsets are zero. An unbounded direction carries
// a +Inf semi-axis and the matching flag.
type Ellipse struct {
	// XAxis, YAxis are the resolution-axis indices of the plane, with
	// 0..3 = (Q∥, Q⊥, Qz, E).
	XAxis, YAxis int

	Kind Kind

	// SemiX, SemiY are the HWHM semi-axes along the rotated principal
	// directions.
	SemiX, SemiY float64

	// UnboundedX, UnboundedY flag flat directions (zero eigenvalue).
	UnboundedX, UnboundedY bool

	// Angle is the rotation of the principal axes within the plane, in
	// radians; exactly zero for a diagonal submatrix.
	Angle float64

	// OffsX, OffsY are the ellipse center coordinates, zero in this model.
	OffsX, OffsY float64

	// Area is pi·SemiX·SemiY; +Inf when any direction is unbounded.
	Area float64
}

// defaultTol separates a genuinely flat direction from numerical noise.
const defaultTol = 1e-12

// Option configures a Calc call.
type Option func(*options)

type options struct {
	tol float64
}

// WithTol overrides the zero-eigenvalue tolerance. Non-positive values keep
// the default.
func WithTol(tol float64) Option {
	return func(o *options) {
		if tol > 0 {
			o.tol = tol
		}
	}
}

// axisPairs enumerates the unordered axis pairs in a fixed order.
var axisPairs = [6][2]int{{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}}

// Calc produces the slice and projection ellipse for every unordered pair
// of the four resolution axes, 12 ellipses in a fixed deterministic order.
//
// Errors: ErrBadMatrix, ErrNotPositive. Zero eigenvalues are reported via
// the Unbounded flags, never as an error.
func Calc(reso *matrix.Dense, opts ...Option) ([]Ellipse, error) {
	o := options{tol: defaultTol}
	for _, fn := range opts {
		fn(&o)
	}
	if err := validate(reso); err != nil {
		return nil, err
	}

	out := make([]Ellipse, 0, 2*len(axisPairs))
	for _, pair := range axisPairs {
		i, j := pair[0], pair[1]

		sub, err := submatrix2(reso, i, j)
		if err != nil {
			return nil, err
		}
		sl, err := fromQuadric(sub, i, j, Slice, o.tol)
		if err != nil {
			return nil, err
		}
		out = append(out, sl)

		proj, err := projectPlane(reso, i, j)
		if err != nil {
			return nil, err
		}
		pr, err := fromQuadric(proj, i, j, Projection, o.tol)
		if err != nil {
			return nil, err
		}
		out = append(out, pr)
	}

	return out, nil
}

// BraggFWHMs returns the per-axis coherent widths SigmaToFWHM/√(reso[i][i]).
//
// Errors: ErrBadMatrix, ErrNotPositive (non-positive diagonal entry).
func BraggFWHMs(reso *matrix.Dense) ([4]float64, error) {
	var out [4]float64
	if err := validate(reso); err != nil {
		return out, err
	}
	for i := 0; i < 4; i++ {
		v, err := reso.At(i, i)
		if err != nil {
			return out, err
		}
		if v <= 0 {
			return out, fmt.Errorf("axis %d: %w", i, ErrNotPositive)
		}
		out[i] = kinematics.SigmaToFWHM / math.Sqrt(v)
	}

	return out, nil
}

// VanadiumFWHMs returns the per-axis incoherent widths: all other axes are
// integrated out by repeated Schur-complement projection, leaving a 1×1
// quadric per axis.
//
// Errors: ErrBadMatrix, ErrNotPositive.
func VanadiumFWHMs(reso *matrix.Dense) ([4]float64, error) {
	var out [4]float64
	if err := validate(reso); err != nil {
		return out, err
	}
	for axis := 0; axis < 4; axis++ {
		m := reso
		kept := []int{0, 1, 2, 3}
		// Remove the other axes highest index first so the remaining
		// positions stay stable.
		for k := 3; k >= 0; k-- {
			if k == axis {
				continue
			}
			var err error
			if m, err = quadricProj(m, position(kept, k)); err != nil {
				return out, err
			}
			kept = remove(kept, k)
		}
		v, err := m.At(0, 0)
		if err != nil {
			return out, err
		}
		if v <= 0 {
			return out, fmt.Errorf("axis %d: %w", axis, ErrNotPositive)
		}
		out[axis] = kinematics.SigmaToFWHM / math.Sqrt(v)
	}

	return out, nil
}

// Volume returns the 4D resolution-ellipsoid volume pi²/(2·√det).
//
// Errors: ErrBadMatrix, ErrNotPositive (non-positive determinant).
func Volume(reso *matrix.Dense) (float64, error) {
	if err := validate(reso); err != nil {
		return 0, err
	}
	det, err := matrix.Det(reso)
	if err != nil {
		return 0, err
	}
	if det <= 0 {
		return 0, ErrNotPositive
	}

	return math.Pi * math.Pi / (2 * math.Sqrt(det)), nil
}

// quadricProj integrates coordinate idx out of the quadric m via the Schur
// complement m − |col idx⟩⟨col idx| / m[idx][idx], then removes the row and
// column. A zero diagonal pivot means the coordinate is already decoupled
// from the quadric's scale; the projection degenerates to plain removal.
func quadricProj(m *matrix.Dense, idx int) (*matrix.Dense, error) {
	pivot, err := m.At(idx, idx)
	if err != nil {
		return nil, err
	}
	if pivot == 0 {
		return removeRowCol(m, idx)
	}

	n := m.Rows()
	col := make([]float64, n)
	for i := 0; i < n; i++ {
		if col[i], err = m.At(i, idx); err != nil {
			return nil, err
		}
	}
	outer, err := matrix.Outer(col, col)
	if err != nil {
		return nil, err
	}
	outer, err = matrix.Scale(outer, -1/pivot)
	if err != nil {
		return nil, err
	}

	proj := m.Clone()
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			mv, _ := proj.At(i, j)
			ov, _ := outer.At(i, j)
			if err = proj.Set(i, j, mv+ov); err != nil {
				return nil, err
			}
		}
	}

	return removeRowCol(proj, idx)
}

// projectPlane marginalizes the two axes outside the (i, j) plane, highest
// index first, and returns the resulting 2×2 quadric.
func projectPlane(reso *matrix.Dense, i, j int) (*matrix.Dense, error) {
	kept := []int{0, 1, 2, 3}
	m := reso
	for k := 3; k >= 0; k-- {
		if k == i || k == j {
			continue
		}
		var err error
		if m, err = quadricProj(m, position(kept, k)); err != nil {
			return nil, err
		}
		kept = remove(kept, k)
	}

	return m, nil
}

// fromQuadric turns a 2×2 quadric into an Ellipse via the analytic
// eigen-decomposition of [[a, b], [b, c]].
func fromQuadric(m *matrix.Dense, xAxis, yAxis int, kind Kind, tol float64) (Ellipse, error) {
	e := Ellipse{XAxis: xAxis, YAxis: yAxis, Kind: kind}

	a, err := m.At(0, 0)
	if err != nil {
		return e, err
	}
	b, err := m.At(0, 1)
	if err != nil {
		return e, err
	}
	c, err := m.At(1, 1)
	if err != nil {
		return e, err
	}

	var lx, ly float64
	if math.Abs(2*b) <= tol {
		// Already diagonal: principal axes coincide with the plane axes
		// and the rotation angle is exactly zero.
		lx, ly = a, c
	} else {
		e.Angle = 0.5 * math.Atan2(2*b, a-c)
		mean := (a + c) / 2
		d := math.Hypot((a-c)/2, b)
		lx, ly = mean+d, mean-d
	}

	if e.SemiX, e.UnboundedX, err = semiAxis(lx, tol); err != nil {
		return e, err
	}
	if e.SemiY, e.UnboundedY, err = semiAxis(ly, tol); err != nil {
		return e, err
	}
	if e.UnboundedX || e.UnboundedY {
		e.Area = math.Inf(1)
	} else {
		e.Area = math.Pi * e.SemiX * e.SemiY
	}

	return e, nil
}

// semiAxis maps an eigenvalue to an HWHM semi-axis. A zero eigenvalue
// within tol is an unbounded direction; a negative one is invalid.
func semiAxis(lambda, tol float64) (float64, bool, error) {
	switch {
	case math.Abs(lambda) <= tol:
		return math.Inf(1), true, nil
	case lambda < 0:
		return 0, false, ErrNotPositive
	default:
		return kinematics.SigmaToHWHM / math.Sqrt(lambda), false, nil
	}
}

// validate checks the Calc input contract.
func validate(reso *matrix.Dense) error {
	if reso == nil || reso.Rows() != 4 || reso.Cols() != 4 {
		return ErrBadMatrix
	}
	if err := matrix.ValidateSymmetric(reso, 1e-9); err != nil {
		return fmt.Errorf("%w: %v", ErrBadMatrix, err)
	}

	return nil
}

// submatrix2 extracts the 2×2 principal submatrix on axes (i, j).
func submatrix2(m *matrix.Dense, i, j int) (*matrix.Dense, error) {
	a, err := m.At(i, i)
	if err != nil {
		return nil, err
	}
	b, err := m.At(i, j)
	if err != nil {
		return nil, err
	}
	c, err := m.At(j, j)
	if err != nil {
		return nil, err
	}

	return matrix.NewDenseFrom(2, 2, []float64{a, b, b, c})
}

// removeRowCol returns m without row and column idx.
func removeRowCol(m *matrix.Dense, idx int) (*matrix.Dense, error) {
	n := m.Rows()
	out, err := matrix.NewDense(n-1, n-1)
	if err != nil {
		return nil, err
	}
	for i, oi := 0, 0; i < n; i++ {
		if i == idx {
			continue
		}
		for j, oj := 0, 0; j < n; j++ {
			if j == idx {
				continue
			}
			v, errAt := m.At(i, j)
			if errAt != nil {
				return nil, errAt
			}
			if err = out.Set(oi, oj, v); err != nil {
				return nil, err
			}
			oj++
		}
		oi++
	}

	return out, nil
}

// position returns the index of value v in the kept-axis list.
func position(kept []int, v int) int {
	for i, k := range kept {
		if k == v {
			return i
		}
	}

	return -1
}

// remove returns kept without value v.
func remove(kept []int, v int) []int {
	out := make([]int, 0, len(kept)-1)
	for _, k := range kept {
		if k != v {
			out = append(out, k)
		}
	}

	return out
}
