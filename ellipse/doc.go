// Package ellipse reduces a 4×4 resolution matrix to the 2D cross-sections
// used for plotting and reporting.
//
// For every unordered pair of the four axes (Q∥, Q⊥, Qz, E) it produces two
// physically distinct ellipses: the slice (the other two coordinates fixed
// to zero, a cut through the resolution function) and the projection (the
// other two coordinates integrated out via Schur-complement
// marginalization, the function's shadow on the plane). Semi-axes are
// half-widths at half maximum; a zero eigenvalue marks the direction as
// unbounded rather than failing.
//
// The package also derives the per-axis coherent (Bragg) and incoherent
// (vanadium) widths and the 4D ellipsoid volume.
package ellipse
