package resolution

import (
	"fmt"
	"math"
)

// Calculate runs the full resolution pipeline for one scattering triangle:
// per-backend config validation, covariance build, inversion and basis
// rotation. The returned Result is never nil; on failure it carries the
// triangle echo with OK set to false and no matrix, and the error
// identifies the failing stage. Calls are independent and side-effect-free,
// so scans over many (Q, E) points may run concurrently.
func Calculate(cfg *InstrumentConfig, tri Triangle, backend Backend, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	res := &Result{Ki: tri.Ki, Kf: tri.Kf, Q: tri.Q, E: tri.Energy()}

	if err := cfg.validate(backend); err != nil {
		return res, fmt.Errorf("config: %w", err)
	}

	var (
		cr  *covResult
		err error
	)
	switch backend {
	case CooperNathans:
		cr, err = buildCooperNathans(cfg, tri, o)
	case Popovici:
		cr, err = buildPopovici(cfg, tri, o)
	case EckoldSobolev:
		cr, err = buildEckoldSobolev(cfg, tri, o)
	case Violini:
		cr, err = buildViolini(cfg, tri, o)
	default:
		err = ErrUnknownBackend
	}
	if err != nil {
		return res, fmt.Errorf("covariance: %w", err)
	}
	res.VecQ = cr.vecQ

	reso, covDet, err := assemble(cr, cfg.SampleSense, o)
	if err != nil {
		return res, fmt.Errorf("resolution: %w", err)
	}
	res.Reso = reso

	if cr.r0Num > 0 && covDet > 0 {
		res.R0 = cr.r0Num / math.Sqrt(covDet)
	}
	if res.ResVol, err = resVolume(reso); err != nil {
		return res, fmt.Errorf("resolution volume: %w", err)
	}
	res.OK = true

	return res, nil
}
