package resolution

import (
	"errors"
	"fmt"
	"math"

	"github.com/Ectophasme/neutronres/kinematics"
	"github.com/Ectophasme/neutronres/matrix"
)

// assemble turns a raw FWHM-quoted covariance into the resolution matrix in
// the (Q∥, Q⊥, Qz, E) basis: scale to sigma widths, invert, then conjugate
// with the rotation by −ψ, where ψ is the in-plane angle between Q and ki
// signed by the sample sense. The conjugation is an orthogonal change of
// basis and leaves the eigenvalues untouched.
func assemble(cr *covResult, sense float64, o options) (*matrix.Dense, float64, error) {
	covSigma, err := matrix.Scale(cr.cov, 1/kinematics.SigmaToFWHM)
	if err != nil {
		return nil, 0, err
	}

	reso, err := matrix.Inverse(covSigma)
	if err != nil {
		if errors.Is(err, matrix.ErrSingular) {
			return nil, 0, ErrSingularCovariance
		}

		return nil, 0, err
	}

	psi, err := kinematics.Psi(cr.kiXY, cr.kfXY, cr.qXY, sense)
	if err != nil {
		return nil, 0, fmt.Errorf("basis rotation: %w", err)
	}
	rot, err := matrix.RotationND(4, -psi)
	if err != nil {
		return nil, 0, err
	}
	rotT, err := matrix.Transpose(rot)
	if err != nil {
		return nil, 0, err
	}
	reso, err = matrix.Mul(rotT, reso)
	if err != nil {
		return nil, 0, err
	}
	reso, err = matrix.Mul(reso, rot)
	if err != nil {
		return nil, 0, err
	}
	if err = symmetrize(reso); err != nil {
		return nil, 0, err
	}

	// Determinant of the sigma-scaled covariance, for the R0 denominator.
	det, err := matrix.Det(covSigma)
	if err != nil {
		return nil, 0, err
	}

	if o.trace != nil {
		fmt.Fprintf(o.trace, "assemble: psi = %g, det(cov) = %g\n", psi, det)
		fmt.Fprintf(o.trace, "assemble: reso =\n%s", reso)
	}

	return reso, det, nil
}

// symmetrize restores the exact symmetry the inversion and conjugation lose
// to rounding; the resolution matrix is symmetric by construction.
func symmetrize(m *matrix.Dense) error {
	n := m.Rows()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			a, err := m.At(i, j)
			if err != nil {
				return err
			}
			b, err := m.At(j, i)
			if err != nil {
				return err
			}
			avg := (a + b) / 2
			if err = m.Set(i, j, avg); err != nil {
				return err
			}
			if err = m.Set(j, i, avg); err != nil {
				return err
			}
		}
	}

	return nil
}

// resVolume is the 4D resolution-ellipsoid volume pi²/(2·√det(Reso)).
func resVolume(reso *matrix.Dense) (float64, error) {
	det, err := matrix.Det(reso)
	if err != nil {
		return 0, err
	}
	if det <= 0 {
		return 0, nil
	}

	return math.Pi * math.Pi / (2 * math.Sqrt(det)), nil
}
