package resolution

import (
	"fmt"
	"math"
)

// buildEckoldSobolev uses the alternate parametrization suited to focusing
// geometries: crystal mosaicities are independent additive variables with
// their own Jacobian columns instead of reciprocally narrowing the
// collimation widths. A mosaic tilt both detunes the Bragg-selected
// wavenumber (cot θ) and deflects the reflected beam (factor 2). Spatial
// focusing terms enter on the sample side only.
func buildEckoldSobolev(cfg *InstrumentConfig, tri Triangle, o options) (*covResult, error) {
	f, err := newTASFrame(cfg, tri)
	if err != nil {
		return nil, err
	}
	t := cfg.TAS
	alpha0, beta0 := preMonoDivs(t)
	alpha1, beta1 := t.CollH[1], t.CollV[1]
	alpha2, beta2 := t.CollH[2], t.CollV[2]
	alpha3, beta3 := t.CollH[3], t.CollV[3]

	cotM := 1 / math.Tan(f.thetaM)
	cotA := 1 / math.Tan(f.thetaA)

	// Collimation-only widths; the mosaics are accounted for separately.
	sigKi := f.ki * cotM * seriesWidth(alpha0, alpha1)
	sigDivI := seriesWidth(alpha0, alpha1)
	sigDivIV := seriesWidth(beta0, beta1)
	sigKf := f.kf * cotA * seriesWidth(alpha2, alpha3)
	sigDivF := seriesWidth(alpha2, alpha3)
	sigDivFV := seriesWidth(beta2, beta3)

	var acc covAccum
	acc.add(sigKi, f.jKi())
	acc.add(sigDivI, f.jDivI())
	acc.add(sigDivIV, f.jDivIV())
	acc.add(sigKf, f.jKf())
	acc.add(sigDivF, f.jDivF())
	acc.add(sigDivFV, f.jDivFV())

	// Independent mosaic variables.
	acc.add(t.MonoMosaic, axpy4(f.ki*cotM, f.jKi(), 2, f.jDivI()))
	acc.add(t.MonoMosaicV, scale4(2, f.jDivIV()))
	acc.add(t.AnaMosaic, axpy4(f.kf*cotA, f.jKf(), 2, f.jDivF()))
	acc.add(t.AnaMosaicV, scale4(2, f.jDivFV()))
	acc.add(t.SampleMosaic, f.jMosaicS())
	acc.add(t.SampleMosaicV, f.jMosaicSV())

	// Sample-side spatial focusing terms.
	acc.add(t.SampleW/t.DistMonoSample, f.jDivI())
	acc.add(t.SampleH/t.DistMonoSample, f.jDivIV())
	acc.add(t.SampleW/t.DistSampleAna, f.jDivF())
	acc.add(t.SampleH/t.DistSampleAna, f.jDivFV())

	if o.trace != nil {
		fmt.Fprintf(o.trace, "eckold-sobolev: thetaM = %g, thetaA = %g, thetaF = %g\n",
			f.thetaM, f.thetaA, f.thetaF)
		fmt.Fprintf(o.trace, "eckold-sobolev: sigKi = %g, sigKf = %g\n", sigKi, sigKf)
	}

	return f.finish(&acc, t)
}
