package resolution

import (
	"fmt"
	"math"

	"github.com/Ectophasme/neutronres/kinematics"
)

// buildViolini propagates time-of-flight uncertainties into the
// (Qx, Qy, Qz, E) covariance. The independent variables are the chopper and
// detection times, the flight-path lengths, the detection-point coordinates
// on the bank and the beam angles; the velocity chain is
//
//	vi = L_PM / (tM − tP)
//	tSD = tD − tM − L_MS/vi
//	vf = L_SD / tSD
//
// and every column of the Jacobian follows analytically from it. The
// detector shape fixes how the exit angle and the final flight path depend
// on the detection point: a spherical bank takes the polar angle as given,
// a vertical cylinder has phi_f = atan(z/r), a horizontal one
// phi_f = atan(r/z).
func buildViolini(cfg *InstrumentConfig, tri Triangle, o options) (*covResult, error) {
	thetaF, err := kinematics.ScatteringAngle(tri.Ki, tri.Kf, tri.Q)
	if err != nil {
		return nil, fmt.Errorf("scattering angle: %w", err)
	}
	thetaF *= cfg.SampleSense
	t := cfg.TOF

	// Geometry in meters.
	const m = kinematics.Angstrom
	lPM, sigLPM := t.DistPM.L*m, t.DistPM.Sigma*m
	lMS, sigLMS := t.DistMS.L*m, t.DistMS.Sigma*m
	rDet, sigR := t.DetRadius.L*m, t.DetRadius.Sigma*m
	zDet, sigZ := t.DetZ.L*m, t.DetZ.Sigma*m

	thetaI, phiI := t.ThetaI.Value, t.PhiI.Value
	var phiF, lSD float64
	switch cfg.Shape {
	case ShapeSphere:
		phiF = t.PhiF.Value
		lSD = rDet
	case ShapeCylVertical:
		phiF = math.Atan2(zDet, rDet)
		lSD = math.Hypot(rDet, zDet)
	case ShapeCylHorizontal:
		phiF = math.Atan2(rDet, zDet)
		lSD = math.Hypot(rDet, zDet)
	default:
		return nil, badConfig("Shape")
	}

	vi := kinematics.Velocity(tri.Ki)
	vf := kinematics.Velocity(tri.Kf)

	// Wavevector components and the momentum transfer in the instrument
	// frame.
	kiXY, kiZ := tri.Ki*math.Cos(phiI), tri.Ki*math.Sin(phiI)
	kfXY, kfZ := tri.Kf*math.Cos(phiF), tri.Kf*math.Sin(phiF)
	qx := kiXY*math.Cos(thetaI) - kfXY*math.Cos(thetaF)
	qy := kiXY*math.Sin(thetaI) - kfXY*math.Sin(thetaF)
	qz := kiZ - kfZ
	qXY := math.Hypot(qx, qy)

	// Direction columns of (Qx, Qy, Qz, E).
	dKi := [4]float64{
		math.Cos(phiI) * math.Cos(thetaI),
		math.Cos(phiI) * math.Sin(thetaI),
		math.Sin(phiI),
		2 * kinematics.KSqToMeV * tri.Ki,
	}
	dKf := [4]float64{
		-math.Cos(phiF) * math.Cos(thetaF),
		-math.Cos(phiF) * math.Sin(thetaF),
		-math.Sin(phiF),
		-2 * kinematics.KSqToMeV * tri.Kf,
	}
	dThetaI := [4]float64{-kiXY * math.Sin(thetaI), kiXY * math.Cos(thetaI), 0, 0}
	dThetaF := [4]float64{kfXY * math.Sin(thetaF), -kfXY * math.Cos(thetaF), 0, 0}
	dPhiI := [4]float64{
		-tri.Ki * math.Sin(phiI) * math.Cos(thetaI),
		-tri.Ki * math.Sin(phiI) * math.Sin(thetaI),
		tri.Ki * math.Cos(phiI),
		0,
	}
	dPhiF := [4]float64{
		tri.Kf * math.Sin(phiF) * math.Cos(thetaF),
		tri.Kf * math.Sin(phiF) * math.Sin(thetaF),
		-tri.Kf * math.Cos(phiF),
		0,
	}

	// Velocity chain partials.
	kPerV := 1 / kinematics.VelocityPerInvAngstrom
	dviDtP := vi * vi / lPM
	dviDtM := -vi * vi / lPM
	dviDlPM := vi / lPM
	dvfDtSD := -vf * vf / lSD
	dtSDdvi := lMS / (vi * vi)
	dvfDlSD := vf / lSD

	var acc covAccum
	// Pulse-chopper time: moves vi, which shifts both ki and the arrival
	// of the pulse at the sample.
	acc.add(t.ChopperP.BurstSigma(), axpy4(
		kPerV*dviDtP, dKi,
		kPerV*dvfDtSD*dtSDdvi*dviDtP, dKf))
	// Monochromating-chopper time: same vi chain plus the direct shift of
	// the sample-detector flight time.
	acc.add(t.ChopperM.BurstSigma(), axpy4(
		kPerV*dviDtM, dKi,
		kPerV*dvfDtSD*(-1+dtSDdvi*dviDtM), dKf))
	// Detection time.
	acc.add(t.DetTimeSigma, scale4(kPerV*dvfDtSD, dKf))
	// Flight-path lengths.
	acc.add(sigLPM, axpy4(
		kPerV*dviDlPM, dKi,
		kPerV*dvfDtSD*dtSDdvi*dviDlPM, dKf))
	acc.add(sigLMS, scale4(kPerV*dvfDtSD*(-1/vi), dKf))

	// Detection-point geometry.
	switch cfg.Shape {
	case ShapeSphere:
		acc.add(sigR, scale4(kPerV*dvfDlSD, dKf))
		acc.add(t.PhiF.Sigma, dPhiF)
	case ShapeCylVertical:
		l2 := lSD * lSD
		acc.add(sigR, axpy4(
			kPerV*dvfDlSD*(rDet/lSD), dKf,
			-zDet/l2, dPhiF))
		acc.add(sigZ, axpy4(
			kPerV*dvfDlSD*(zDet/lSD), dKf,
			rDet/l2, dPhiF))
	case ShapeCylHorizontal:
		l2 := lSD * lSD
		acc.add(sigR, axpy4(
			kPerV*dvfDlSD*(rDet/lSD), dKf,
			zDet/l2, dPhiF))
		acc.add(sigZ, axpy4(
			kPerV*dvfDlSD*(zDet/lSD), dKf,
			-rDet/l2, dPhiF))
	}

	// Beam angles.
	acc.add(t.ThetaI.Sigma, dThetaI)
	acc.add(t.PhiI.Sigma, dPhiI)
	acc.add(t.ThetaFSigma, dThetaF)

	if o.trace != nil {
		fmt.Fprintf(o.trace, "violini: vi = %g, vf = %g\n", vi, vf)
		fmt.Fprintf(o.trace, "violini: thetaI = %g, phiI = %g, thetaF = %g, phiF = %g\n",
			thetaI, phiI, thetaF, phiF)
		fmt.Fprintf(o.trace, "violini: vecQ = (%g %g %g), lSD = %g\n", qx, qy, qz, lSD)
	}

	cov, err := acc.matrix()
	if err != nil {
		return nil, err
	}

	// No absolute normalization is defined for the time-of-flight model.
	return &covResult{
		cov:  cov,
		kiXY: kiXY,
		kfXY: kfXY,
		qXY:  qXY,
		vecQ: [3]float64{qx, qy, qz},
	}, nil
}
