// Package resolution computes the instrumental resolution function of a
// neutron spectrometer.
//
// Given a scattering triangle (ki, kf, Q) and an InstrumentConfig, one of
// four interchangeable backends builds a 4×4 covariance matrix over
// (Qx, Qy, Qz, E) by Gaussian propagation of the instrument's independent
// uncertainties:
//
//   - CooperNathans — angular divergences and mosaicities of a triple-axis
//     spectrometer, reciprocal width combination, curvature ignored.
//   - Popovici — Cooper–Nathans plus finite component sizes over their lever
//     arms, with curvature suppressing the matching spatial term.
//   - EckoldSobolev — mosaicities treated as independent additive variables,
//     spatial focusing terms on the sample side.
//   - Violini — time-of-flight: chopper burst times, flight-path lengths and
//     detector geometry instead of Bragg-angle uncertainties.
//
// The assembler then converts the FWHM-quoted covariance to sigma widths,
// inverts it into a resolution (precision) matrix and rotates the basis into
// the (Q∥, Q⊥, Qz, E) frame. The whole pipeline is purely functional over
// immutable inputs; every failure is local to a single Calculate call and is
// reported through the package sentinels, never by panic.
//
// Typical use:
//
//	res, err := resolution.Calculate(cfg, tri, resolution.Violini)
//	if err != nil { ... }
//	ellipses, err := ellipse.Calc(res.Reso)
package resolution
