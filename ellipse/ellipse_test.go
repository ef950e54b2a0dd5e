package ellipse_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ectophasme/neutronres/ellipse"
	"github.com/Ectophasme/neutronres/kinematics"
	"github.com/Ectophasme/neutronres/matrix"
)

func mustDense(t *testing.T, data []float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(4, 4, data)
	require.NoError(t, err)

	return m
}

func diag(a, b, c, d float64) []float64 {
	return []float64{
		a, 0, 0, 0,
		0, b, 0, 0,
		0, 0, c, 0,
		0, 0, 0, d,
	}
}

// find returns the ellipse of the given plane and kind.
func find(t *testing.T, es []ellipse.Ellipse, x, y int, kind ellipse.Kind) ellipse.Ellipse {
	t.Helper()
	for _, e := range es {
		if e.XAxis == x && e.YAxis == y && e.Kind == kind {
			return e
		}
	}
	t.Fatalf("no %v ellipse for plane (%d, %d)", kind, x, y)

	return ellipse.Ellipse{}
}

// TestCalc_Diagonal: on a diagonal matrix the slice semi-axes are exactly
// k/sqrt(entry) with zero rotation, and projections coincide with slices
// since nothing couples.
func TestCalc_Diagonal(t *testing.T) {
	reso := mustDense(t, diag(4, 9, 16, 25))

	es, err := ellipse.Calc(reso)
	require.NoError(t, err)
	require.Len(t, es, 12)

	const k = kinematics.SigmaToHWHM
	sl := find(t, es, 0, 1, ellipse.Slice)
	assert.Equal(t, k/2, sl.SemiX)
	assert.Equal(t, k/3, sl.SemiY)
	assert.Zero(t, sl.Angle)
	assert.Zero(t, sl.OffsX)
	assert.Zero(t, sl.OffsY)
	assert.InDelta(t, math.Pi*(k/2)*(k/3), sl.Area, 1e-12)

	pr := find(t, es, 0, 1, ellipse.Projection)
	assert.Equal(t, sl.SemiX, pr.SemiX)
	assert.Equal(t, sl.SemiY, pr.SemiY)
	assert.Zero(t, pr.Angle)

	sl23 := find(t, es, 2, 3, ellipse.Slice)
	assert.Equal(t, k/4, sl23.SemiX)
	assert.Equal(t, k/5, sl23.SemiY)
}

// TestCalc_Rotated: equal diagonal with coupling rotates the principal
// axes by 45 degrees and splits the eigenvalues to a+b, a-b.
func TestCalc_Rotated(t *testing.T) {
	reso := mustDense(t, []float64{
		2, 1, 0, 0,
		1, 2, 0, 0,
		0, 0, 3, 0,
		0, 0, 0, 4,
	})

	es, err := ellipse.Calc(reso)
	require.NoError(t, err)

	const k = kinematics.SigmaToHWHM
	sl := find(t, es, 0, 1, ellipse.Slice)
	assert.InDelta(t, math.Pi/4, sl.Angle, 1e-12)
	assert.InDelta(t, k/math.Sqrt(3), sl.SemiX, 1e-12)
	assert.InDelta(t, k/math.Sqrt(1), sl.SemiY, 1e-12)
}

// TestCalc_ProjectionWiderThanSlice: integrating out a coupled axis can
// only widen the footprint, never narrow it.
func TestCalc_ProjectionWiderThanSlice(t *testing.T) {
	reso := mustDense(t, []float64{
		2, 0.5, 0, 0,
		0.5, 3, 0, 0.4,
		0, 0, 4, 0,
		0, 0.4, 0, 5,
	})

	es, err := ellipse.Calc(reso)
	require.NoError(t, err)

	sl := find(t, es, 0, 1, ellipse.Slice)
	pr := find(t, es, 0, 1, ellipse.Projection)
	assert.NotEqual(t, sl.SemiY, pr.SemiY, "axis 1 couples to the energy axis")
	assert.GreaterOrEqual(t, pr.Area, sl.Area)
}

// TestCalc_Unbounded: a zero eigenvalue degenerates the ellipse into an
// infinite strip, reported via the flag rather than an error.
func TestCalc_Unbounded(t *testing.T) {
	reso := mustDense(t, diag(1, 0, 1, 1))

	es, err := ellipse.Calc(reso)
	require.NoError(t, err)

	sl := find(t, es, 0, 1, ellipse.Slice)
	assert.False(t, sl.UnboundedX)
	assert.True(t, sl.UnboundedY)
	assert.True(t, math.IsInf(sl.SemiY, 1))
	assert.True(t, math.IsInf(sl.Area, 1))
}

// TestCalc_NotPositive: a negative eigenvalue is an invalid resolution
// matrix, not a degenerate geometry.
func TestCalc_NotPositive(t *testing.T) {
	reso := mustDense(t, diag(1, -1, 1, 1))

	_, err := ellipse.Calc(reso)
	assert.ErrorIs(t, err, ellipse.ErrNotPositive)
}

func TestCalc_BadMatrix(t *testing.T) {
	_, err := ellipse.Calc(nil)
	assert.ErrorIs(t, err, ellipse.ErrBadMatrix)

	m, errNew := matrix.NewDenseFrom(2, 2, []float64{1, 0, 0, 1})
	require.NoError(t, errNew)
	_, err = ellipse.Calc(m)
	assert.ErrorIs(t, err, ellipse.ErrBadMatrix)

	asym := mustDense(t, diag(1, 1, 1, 1))
	require.NoError(t, asym.Set(0, 1, 0.5))
	_, err = ellipse.Calc(asym)
	assert.ErrorIs(t, err, ellipse.ErrBadMatrix)
}

// TestWidths: on a diagonal matrix the coherent and incoherent widths
// coincide; with coupling the incoherent width is the larger one.
func TestWidths(t *testing.T) {
	const f = kinematics.SigmaToFWHM

	plain := mustDense(t, diag(4, 9, 16, 25))
	bragg, err := ellipse.BraggFWHMs(plain)
	require.NoError(t, err)
	vana, err := ellipse.VanadiumFWHMs(plain)
	require.NoError(t, err)
	want := [4]float64{f / 2, f / 3, f / 4, f / 5}
	for i := range want {
		assert.InDelta(t, want[i], bragg[i], 1e-12, "bragg %d", i)
		assert.InDelta(t, want[i], vana[i], 1e-12, "vanadium %d", i)
	}

	coupled := mustDense(t, []float64{
		4, 1, 0, 0,
		1, 9, 0, 0,
		0, 0, 16, 0,
		0, 0, 0, 25,
	})
	bragg, err = ellipse.BraggFWHMs(coupled)
	require.NoError(t, err)
	vana, err = ellipse.VanadiumFWHMs(coupled)
	require.NoError(t, err)
	assert.Greater(t, vana[0], bragg[0])
	assert.Greater(t, vana[1], bragg[1])
}

func TestVolume(t *testing.T) {
	reso := mustDense(t, diag(1, 1, 1, 16))

	vol, err := ellipse.Volume(reso)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi*math.Pi/8, vol, 1e-12)

	flat := mustDense(t, diag(1, 0, 1, 1))
	_, err = ellipse.Volume(flat)
	assert.ErrorIs(t, err, ellipse.ErrNotPositive)
}
