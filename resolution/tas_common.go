package resolution

import (
	"fmt"
	"math"

	"github.com/Ectophasme/neutronres/kinematics"
)

// tasFrame fixes the triple-axis coordinate convention: ki along x in the
// scattering plane, kf rotated by the signed scattering angle, Qz out of
// plane. All Jacobian columns of the TAS backends are expressed in this
// frame over (Qx, Qy, Qz, E).
type tasFrame struct {
	ki, kf, q      float64
	thetaF         float64 // scattering angle, signed by the sample sense
	thetaM, thetaA float64 // Bragg angles of mono and analyzer
	qx, qy         float64
}

// newTASFrame resolves the scattering and Bragg angles of the triangle on
// the given TAS geometry.
//
// Errors: kinematics.ErrTriangle, kinematics.ErrBragg.
func newTASFrame(cfg *InstrumentConfig, tri Triangle) (*tasFrame, error) {
	twoTheta, err := kinematics.ScatteringAngle(tri.Ki, tri.Kf, tri.Q)
	if err != nil {
		return nil, fmt.Errorf("scattering angle: %w", err)
	}
	thetaM, err := kinematics.BraggAngle(cfg.TAS.MonoD, tri.Ki)
	if err != nil {
		return nil, fmt.Errorf("monochromator: %w", err)
	}
	thetaA, err := kinematics.BraggAngle(cfg.TAS.AnaD, tri.Kf)
	if err != nil {
		return nil, fmt.Errorf("analyzer: %w", err)
	}

	f := &tasFrame{
		ki:     tri.Ki,
		kf:     tri.Kf,
		q:      tri.Q,
		thetaF: cfg.SampleSense * twoTheta,
		thetaM: thetaM,
		thetaA: thetaA,
	}
	f.qx = f.ki - f.kf*math.Cos(f.thetaF)
	f.qy = -f.kf * math.Sin(f.thetaF)

	return f, nil
}

// Jacobian columns of (Qx, Qy, Qz, E) with respect to the frame's
// independent directions. dE/dk = 2·KSqToMeV·k from E = KSqToMeV·(ki²−kf²).

// jKi is the column for a change of the incident wavenumber magnitude.
func (f *tasFrame) jKi() [4]float64 {
	return [4]float64{1, 0, 0, 2 * kinematics.KSqToMeV * f.ki}
}

// jKf is the column for a change of the final wavenumber magnitude.
func (f *tasFrame) jKf() [4]float64 {
	return [4]float64{
		-math.Cos(f.thetaF),
		-math.Sin(f.thetaF),
		0,
		-2 * kinematics.KSqToMeV * f.kf,
	}
}

// jDivI is the column for an in-plane rotation of the incident beam.
func (f *tasFrame) jDivI() [4]float64 { return [4]float64{0, f.ki, 0, 0} }

// jDivIV is the column for a vertical tilt of the incident beam.
func (f *tasFrame) jDivIV() [4]float64 { return [4]float64{0, 0, f.ki, 0} }

// jDivF is the column for an in-plane rotation of the final beam.
func (f *tasFrame) jDivF() [4]float64 {
	return [4]float64{f.kf * math.Sin(f.thetaF), -f.kf * math.Cos(f.thetaF), 0, 0}
}

// jDivFV is the column for a vertical tilt of the final beam.
func (f *tasFrame) jDivFV() [4]float64 { return [4]float64{0, 0, -f.kf, 0} }

// jMosaicS is the column for an in-plane sample mosaic rotation of Q.
func (f *tasFrame) jMosaicS() [4]float64 { return [4]float64{-f.qy, f.qx, 0, 0} }

// jMosaicSV is the column for a vertical sample mosaic tilt of Q.
func (f *tasFrame) jMosaicSV() [4]float64 { return [4]float64{0, 0, f.q, 0} }

// preMonoDivs returns the effective divergences feeding the monochromator:
// the pre-mono collimations, replaced by the guide divergences when a guide
// is installed.
func preMonoDivs(t *TASConfig) (alpha0, beta0 float64) {
	if t.UseGuide {
		return t.GuideDivH, t.GuideDivV
	}

	return t.CollH[0], t.CollV[0]
}

// r0Numerator is the Chesser–Axe-style normalization numerator shared by
// the TAS backends; the assembler divides it by the square root of the
// covariance determinant.
func (f *tasFrame) r0Numerator(t *TASConfig) float64 {
	cotM := math.Abs(1 / math.Tan(f.thetaM))
	cotA := math.Abs(1 / math.Tan(f.thetaA))

	return t.MonoRefl * t.AnaEffic *
		f.ki * f.ki * f.ki * cotM *
		f.kf * f.kf * f.kf * cotA
}

// finish packages a TAS covariance accumulation into a covResult. The TAS
// frame is in-plane, so the rotation inputs are the triangle magnitudes
// themselves.
func (f *tasFrame) finish(acc *covAccum, t *TASConfig) (*covResult, error) {
	cov, err := acc.matrix()
	if err != nil {
		return nil, err
	}

	return &covResult{
		cov:   cov,
		kiXY:  f.ki,
		kfXY:  f.kf,
		qXY:   f.q,
		vecQ:  [3]float64{f.qx, f.qy, 0},
		r0Num: f.r0Numerator(t),
	}, nil
}
