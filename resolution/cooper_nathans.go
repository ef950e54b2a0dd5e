package resolution

import (
	"fmt"
	"math"
)

// buildCooperNathans propagates the eight Cooper–Nathans variables into a
// (Qx, Qy, Qz, E) covariance: wavenumber spreads from the mosaic-limited
// Bragg widths of monochromator and analyzer, in-plane and vertical beam
// divergences at the sample, and the two sample mosaic rotations. Crystal
// curvature and component sizes are ignored.
func buildCooperNathans(cfg *InstrumentConfig, tri Triangle, o options) (*covResult, error) {
	f, err := newTASFrame(cfg, tri)
	if err != nil {
		return nil, err
	}
	t := cfg.TAS
	alpha0, beta0 := preMonoDivs(t)
	alpha1, beta1 := t.CollH[1], t.CollV[1]
	alpha2, beta2 := t.CollH[2], t.CollV[2]
	alpha3, beta3 := t.CollH[3], t.CollV[3]

	// Incident side: Bragg width of the mono maps onto |ki| via the
	// cotangent of the Bragg angle; the surviving divergence is what the
	// pre-sample collimator passes.
	sigKi := f.ki * mosaicLimitedWidth(alpha0, alpha1, t.MonoMosaic) / math.Tan(f.thetaM)
	sigDivI := divergenceWidth(alpha0, alpha1, t.MonoMosaic)
	sigDivIV := divergenceWidth(beta0, beta1, t.MonoMosaicV)

	// Final side, mirrored through the analyzer.
	sigKf := f.kf * mosaicLimitedWidth(alpha2, alpha3, t.AnaMosaic) / math.Tan(f.thetaA)
	sigDivF := divergenceWidth(alpha3, alpha2, t.AnaMosaic)
	sigDivFV := divergenceWidth(beta3, beta2, t.AnaMosaicV)

	var acc covAccum
	acc.add(sigKi, f.jKi())
	acc.add(sigDivI, f.jDivI())
	acc.add(sigDivIV, f.jDivIV())
	acc.add(sigKf, f.jKf())
	acc.add(sigDivF, f.jDivF())
	acc.add(sigDivFV, f.jDivFV())
	acc.add(t.SampleMosaic, f.jMosaicS())
	acc.add(t.SampleMosaicV, f.jMosaicSV())

	if o.trace != nil {
		fmt.Fprintf(o.trace, "cooper-nathans: thetaM = %g, thetaA = %g, thetaF = %g\n",
			f.thetaM, f.thetaA, f.thetaF)
		fmt.Fprintf(o.trace, "cooper-nathans: sigKi = %g, sigKf = %g, divs = (%g %g %g %g)\n",
			sigKi, sigKf, sigDivI, sigDivIV, sigDivF, sigDivFV)
	}

	return f.finish(&acc, t)
}
