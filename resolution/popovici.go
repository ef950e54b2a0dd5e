package resolution

import (
	"fmt"
	"math"
)

// buildPopovici extends the Cooper–Nathans variable set with the spatial
// terms of finite component sizes: each size divided by its lever arm acts
// as an additional independent divergence. A curved crystal focuses the
// matching image, so its size term is suppressed. Strictly more
// contributions than Cooper–Nathans, never fewer.
func buildPopovici(cfg *InstrumentConfig, tri Triangle, o options) (*covResult, error) {
	f, err := newTASFrame(cfg, tri)
	if err != nil {
		return nil, err
	}
	t := cfg.TAS
	alpha0, beta0 := preMonoDivs(t)
	alpha1, beta1 := t.CollH[1], t.CollV[1]
	alpha2, beta2 := t.CollH[2], t.CollV[2]
	alpha3, beta3 := t.CollH[3], t.CollV[3]

	sigKi := f.ki * mosaicLimitedWidth(alpha0, alpha1, t.MonoMosaic) / math.Tan(f.thetaM)
	sigDivI := divergenceWidth(alpha0, alpha1, t.MonoMosaic)
	sigDivIV := divergenceWidth(beta0, beta1, t.MonoMosaicV)
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

	// Spatial terms, incident side. The source is seen over the
	// source-mono distances, mono and sample images over mono-sample.
	acc.add(t.SrcW/t.DistHSrcMono, f.jDivI())
	acc.add(t.SrcH/t.DistVSrcMono, f.jDivIV())
	if !t.MonoCurvedH {
		acc.add(t.MonoW/t.DistMonoSample, f.jDivI())
	}
	if !t.MonoCurvedV {
		acc.add(t.MonoH/t.DistMonoSample, f.jDivIV())
	}
	acc.add(t.SampleW/t.DistMonoSample, f.jDivI())
	acc.add(t.SampleH/t.DistMonoSample, f.jDivIV())

	// Spatial terms, final side.
	acc.add(t.SampleW/t.DistSampleAna, f.jDivF())
	acc.add(t.SampleH/t.DistSampleAna, f.jDivFV())
	if !t.AnaCurvedH {
		acc.add(t.AnaW/t.DistAnaDet, f.jDivF())
	}
	if !t.AnaCurvedV {
		acc.add(t.AnaH/t.DistAnaDet, f.jDivFV())
	}
	acc.add(t.DetW/t.DistAnaDet, f.jDivF())
	acc.add(t.DetH/t.DistAnaDet, f.jDivFV())

	if o.trace != nil {
		fmt.Fprintf(o.trace, "popovici: thetaM = %g, thetaA = %g, thetaF = %g\n",
			f.thetaM, f.thetaA, f.thetaF)
		fmt.Fprintf(o.trace, "popovici: sigKi = %g, sigKf = %g, curved = (%t %t %t %t)\n",
			sigKi, sigKf, t.MonoCurvedH, t.MonoCurvedV, t.AnaCurvedH, t.AnaCurvedV)
	}

	return f.finish(&acc, t)
}
