package resolution

import (
	"math"

	"github.com/Ectophasme/neutronres/matrix"
)

// covAccum accumulates independent Gaussian contributions into a symmetric
// 4×4 covariance over (Qx, Qy, Qz, E): for each variable with width sigma
// and Jacobian column jac it adds sigma²·|jac⟩⟨jac|. Contributions are added
// in a fixed order so the result is fully deterministic.
type covAccum struct {
	data [16]float64
}

// add accumulates one independent variable. A zero sigma contributes
// nothing and is skipped.
func (a *covAccum) add(sigma float64, jac [4]float64) {
	if sigma == 0 {
		return
	}
	s2 := sigma * sigma
	for i := 0; i < 4; i++ {
		if jac[i] == 0 {
			continue
		}
		for j := 0; j < 4; j++ {
			a.data[i*4+j] += s2 * jac[i] * jac[j]
		}
	}
}

// matrix returns the accumulated covariance as a fresh Dense.
func (a *covAccum) matrix() (*matrix.Dense, error) {
	return matrix.NewDenseFrom(4, 4, a.data[:])
}

// covResult is what a covariance builder hands to the assembler: the raw
// FWHM-quoted covariance, the in-plane triangle components for the basis
// rotation, the momentum-transfer vector and the backend's R0 numerator
// (zero when the backend defines no normalization).
type covResult struct {
	cov             *matrix.Dense
	kiXY, kfXY, qXY float64
	vecQ            [3]float64
	r0Num           float64
}

// axpy4 returns a·x + b·y for 4-component Jacobian columns.
func axpy4(a float64, x [4]float64, b float64, y [4]float64) [4]float64 {
	var out [4]float64
	for i := range out {
		out[i] = a*x[i] + b*y[i]
	}

	return out
}

// scale4 returns a·x.
func scale4(a float64, x [4]float64) [4]float64 {
	var out [4]float64
	for i := range out {
		out[i] = a * x[i]
	}

	return out
}

// seriesWidth combines two collimations in series: a·b/√(a²+b²). Either
// width being zero means that leg is perfectly collimated and the combined
// width is zero.
func seriesWidth(a, b float64) float64 {
	if a == 0 || b == 0 {
		return 0
	}

	return a * b / math.Hypot(a, b)
}

// mosaicLimitedWidth is the effective Bragg-angle width of a crystal seen
// through collimations a (before) and b (after) with mosaic eta:
//
//	sigma² = (a²b² + 4η²(a²+b²)) / (a²+b²+4η²)
//
// With everything zero the width is zero (ideal instrument).
func mosaicLimitedWidth(a, b, eta float64) float64 {
	den := a*a + b*b + 4*eta*eta
	if den == 0 {
		return 0
	}

	return math.Sqrt((a*a*b*b + 4*eta*eta*(a*a+b*b)) / den)
}

// divergenceWidth is the effective beam divergence after a mosaic crystal,
// filtered by the downstream collimation b with a upstream:
//
//	sigma² = b²(a²+4η²) / (a²+b²+4η²)
func divergenceWidth(a, b, eta float64) float64 {
	den := a*a + b*b + 4*eta*eta
	if den == 0 {
		return 0
	}

	return math.Sqrt(b * b * (a*a + 4*eta*eta) / den)
}
