// Package neutronres computes the instrumental resolution function of a
// neutron-scattering spectrometer: a multivariate Gaussian description of
// the uncertainty of a measured point in (Q, E) space, plus the 2D ellipse
// cross-sections used for visualization.
//
// 🚀 What is neutronres?
//
//	A small, deterministic, pure-Go library that brings together:
//		• Kinematics: wavevector ↔ velocity ↔ energy, scattering-triangle angles
//		• Covariance builders: Cooper–Nathans, Popovici, Eckold–Sobolev,
//		  and a time-of-flight (Violini) backend
//		• Resolution assembly: FWHM normalization, matrix inversion, basis
//		  rotation into the (Q∥, Q⊥, Qz, E) frame
//		• Ellipse extraction: slice and projection ellipses for all axis pairs,
//		  Bragg and vanadium widths, ellipsoid volume
//
// ✨ Why choose neutronres?
//
//   - Fail-fast validation – sentinel errors, no silent defaults, no panics
//     on user input
//   - Deterministic numerics – fixed loop orders, reproducible results
//   - Pure Go – no cgo, no hidden deps, trivially parallel across Q/E points
//
// Everything is organized under four subpackages:
//
//	kinematics/ — physical constants and scattering-triangle geometry
//	matrix/     — dense linear-algebra kernels (LU inverse, Jacobi eigen)
//	resolution/ — instrument configuration, backends, resolution assembly
//	ellipse/    — 2D cross-sections of the 4×4 resolution matrix
//
// A calculation is a single synchronous call:
//
//	res, err := resolution.Calculate(cfg, tri, resolution.Violini)
//	ells, err := ellipse.Calc(res.Reso)
//
// Each call is independent and side-effect-free; scanning a grid of (Q, E)
// points may run on as many goroutines as desired without coordination.
package neutronres
