package kinematics

import (
	"errors"
	"math"
)

// Sentinel errors of the kinematics package. Callers match them with
// errors.Is; none of them is ever wrapped twice inside this package.
var (
	// ErrTriangle indicates a scattering triangle violating
	// |ki−kf| ≤ Q ≤ ki+kf (the triangle cannot close).
	ErrTriangle = errors.New("kinematics: scattering triangle violates |ki-kf| <= Q <= ki+kf")

	// ErrSense indicates a scattering sense that is not exactly +1 or −1.
	ErrSense = errors.New("kinematics: scattering sense must be +1 or -1")

	// ErrBragg indicates a Bragg reflection that is kinematically
	// unreachable for the given d-spacing and wavenumber.
	ErrBragg = errors.New("kinematics: Bragg angle out of range")
)

// cosTol absorbs floating-point overshoot of a law-of-cosines argument just
// outside [-1, 1]; anything beyond it is a genuine triangle violation.
const cosTol = 1e-9

// Velocity converts a wavenumber k [Å⁻¹] to a velocity [m/s]. No error path.
func Velocity(k float64) float64 { return k * VelocityPerInvAngstrom }

// Wavenumber converts a velocity v [m/s] to a wavenumber [Å⁻¹]. No error path.
func Wavenumber(v float64) float64 { return v / VelocityPerInvAngstrom }

// Energy returns the energy transfer E = ħ²/(2mₙ)·(ki² − kf²) in meV.
// Positive E means energy loss of the neutron.
func Energy(ki, kf float64) float64 { return KSqToMeV * (ki*ki - kf*kf) }

// ScatteringAngle returns the angle between ki and kf derived from the law
// of cosines on the scattering triangle:
//
//	cos 2θ = (ki² + kf² − Q²) / (2·ki·kf)
//
// The result lies in [0, π]. ErrTriangle is returned when the triangle
// inequality |ki−kf| ≤ Q ≤ ki+kf is violated; callers must not proceed with
// the calculation in that case.
func ScatteringAngle(ki, kf, q float64) (float64, error) {
	if ki <= 0 || kf <= 0 || q < 0 {
		return 0, ErrTriangle
	}
	c := (ki*ki + kf*kf - q*q) / (2 * ki * kf)
	c, ok := clampCos(c)
	if !ok {
		return 0, ErrTriangle
	}

	return math.Acos(c), nil
}

// Psi returns the in-plane angle between the momentum transfer Q and the
// incident wavevector ki, signed by the sample scattering sense (+1 for
// counter-clockwise, −1 for clockwise). The inputs are the in-plane (xy)
// magnitudes of ki, kf and Q. This is the rotation angle the assembler uses
// to express the resolution matrix in the (Q∥, Q⊥) basis.
func Psi(kiXY, kfXY, qXY, sense float64) (float64, error) {
	if sense != 1 && sense != -1 {
		return 0, ErrSense
	}
	if kiXY <= 0 || qXY <= 0 {
		return 0, ErrTriangle
	}
	c := (kiXY*kiXY + qXY*qXY - kfXY*kfXY) / (2 * kiXY * qXY)
	c, ok := clampCos(c)
	if !ok {
		return 0, ErrTriangle
	}

	return sense * math.Acos(c), nil
}

// BraggAngle returns the Bragg angle θ = asin(π/(d·k)) of a crystal with
// d-spacing d [Å] reflecting neutrons of wavenumber k [Å⁻¹]. ErrBragg is
// returned when the reflection is unreachable (d·k < π) or the inputs are
// non-positive.
func BraggAngle(d, k float64) (float64, error) {
	if d <= 0 || k <= 0 {
		return 0, ErrBragg
	}
	s := math.Pi / (d * k)
	if s > 1 {
		return 0, ErrBragg
	}

	return math.Asin(s), nil
}

// clampCos pulls a cosine argument within [-1, 1] when it overshoots by no
// more than cosTol and reports whether the argument was acceptable at all.
func clampCos(c float64) (float64, bool) {
	switch {
	case c > 1+cosTol || c < -1-cosTol:
		return 0, false
	case c > 1:
		return 1, true
	case c < -1:
		return -1, true
	default:
		return c, true
	}
}
