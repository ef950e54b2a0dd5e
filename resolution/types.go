package resolution

import (
	"fmt"
	"strings"

	"github.com/Ectophasme/neutronres/kinematics"
	"github.com/Ectophasme/neutronres/matrix"
)

// Triangle is the scattering triangle. Ki, Kf and Q are wavevector
// magnitudes in Å⁻¹; the energy transfer is derived, never stored.
type Triangle struct {
	Ki, Kf, Q float64
}

// Energy returns the energy transfer of the triangle in meV.
func (t Triangle) Energy() float64 { return kinematics.Energy(t.Ki, t.Kf) }

// DetectorShape tags the detector geometry. The zero value is not a valid
// shape; the calculation never proceeds on an unrecognized tag.
type DetectorShape int

const (
	// ShapeRectangular is the flat detector of a triple-axis instrument.
	ShapeRectangular DetectorShape = iota + 1

	// ShapeSphere is a spherical time-of-flight detector bank; the polar
	// exit angle is given directly.
	ShapeSphere

	// ShapeCylVertical is a vertical-axis cylindrical bank; the polar exit
	// angle follows from atan(z/r).
	ShapeCylVertical

	// ShapeCylHorizontal is a horizontal-axis cylindrical bank; the polar
	// exit angle follows from atan(r/z).
	ShapeCylHorizontal
)

// String implements fmt.Stringer with the canonical parse tags.
func (s DetectorShape) String() string {
	switch s {
	case ShapeRectangular:
		return "rectangular"
	case ShapeSphere:
		return "sphere"
	case ShapeCylVertical:
		return "vcyl"
	case ShapeCylHorizontal:
		return "hcyl"
	default:
		return fmt.Sprintf("DetectorShape(%d)", int(s))
	}
}

// ParseDetectorShape maps a tag to a DetectorShape, case-insensitively.
//
// Errors: ErrUnknownShape for any tag outside the enum; the caller must not
// substitute a default.
func ParseDetectorShape(tag string) (DetectorShape, error) {
	switch strings.ToLower(tag) {
	case "rectangular":
		return ShapeRectangular, nil
	case "sphere":
		return ShapeSphere, nil
	case "vcyl":
		return ShapeCylVertical, nil
	case "hcyl":
		return ShapeCylHorizontal, nil
	default:
		return 0, fmt.Errorf("%q: %w", tag, ErrUnknownShape)
	}
}

// Backend selects the covariance algorithm.
type Backend int

const (
	// CooperNathans is the classic triple-axis Gaussian approximation.
	CooperNathans Backend = iota + 1

	// Popovici extends Cooper–Nathans with spatial and curvature terms.
	Popovici

	// EckoldSobolev treats mosaicities as independent additive variables.
	EckoldSobolev

	// Violini is the time-of-flight covariance model.
	Violini
)

// String implements fmt.Stringer with the canonical parse tags.
func (b Backend) String() string {
	switch b {
	case CooperNathans:
		return "cooper-nathans"
	case Popovici:
		return "popovici"
	case EckoldSobolev:
		return "eckold-sobolev"
	case Violini:
		return "violini"
	default:
		return fmt.Sprintf("Backend(%d)", int(b))
	}
}

// ParseBackend maps a selector tag to a Backend. Both the full names and
// the short forms cn, pop, eck and vio are accepted.
//
// Errors: ErrUnknownBackend.
func ParseBackend(tag string) (Backend, error) {
	switch strings.ToLower(tag) {
	case "cooper-nathans", "cn":
		return CooperNathans, nil
	case "popovici", "pop":
		return Popovici, nil
	case "eckold-sobolev", "eck":
		return EckoldSobolev, nil
	case "violini", "vio":
		return Violini, nil
	default:
		return 0, fmt.Errorf("%q: %w", tag, ErrUnknownBackend)
	}
}

// Result is the outcome of one resolution calculation. It always carries
// the unrotated triangle inputs alongside the rotated matrix for
// traceability. OK is false when any stage failed; a failed Result carries
// no matrix.
type Result struct {
	// Ki, Kf, Q echo the scattering triangle in Å⁻¹.
	Ki, Kf, Q float64

	// VecQ is the momentum-transfer vector (Qx, Qy, Qz) in the instrument
	// frame, Å⁻¹.
	VecQ [3]float64

	// E is the energy transfer in meV.
	E float64

	// Reso is the 4×4 resolution (inverse-covariance) matrix in the
	// (Q∥, Q⊥, Qz, E) basis. Nil when OK is false.
	Reso *matrix.Dense

	// R0 is the absolute normalization factor; zero for backends that do
	// not define one.
	R0 float64

	// ResVol is the 4D resolution-ellipsoid volume derived from Reso.
	ResVol float64

	// OK reports success of the whole pipeline.
	OK bool
}
