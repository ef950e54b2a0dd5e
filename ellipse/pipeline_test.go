package ellipse_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ectophasme/neutronres/ellipse"
	"github.com/Ectophasme/neutronres/kinematics"
	"github.com/Ectophasme/neutronres/resolution"
)

// TestCalc_FromResolution feeds a real Cooper–Nathans resolution matrix
// through the extractor: every plane yields a bounded slice and projection,
// and the projection never shrinks the footprint.
func TestCalc_FromResolution(t *testing.T) {
	const min2rad = kinematics.MinuteToRad
	cfg := &resolution.InstrumentConfig{
		Shape:       resolution.ShapeRectangular,
		SampleSense: 1,
		TAS: &resolution.TASConfig{
			MonoD: 3.355, AnaD: 3.355,
			MonoSense: -1, AnaSense: -1,
			CollH: [4]float64{30 * min2rad, 30 * min2rad, 30 * min2rad, 30 * min2rad},
			CollV: [4]float64{30 * min2rad, 30 * min2rad, 30 * min2rad, 30 * min2rad},
			MonoMosaic: 45 * min2rad, MonoMosaicV: 45 * min2rad,
			SampleMosaic: 30 * min2rad, SampleMosaicV: 30 * min2rad,
			AnaMosaic: 45 * min2rad, AnaMosaicV: 45 * min2rad,
			MonoRefl: 1, AnaEffic: 1,
		},
	}
	tri := resolution.Triangle{Ki: 1.4, Kf: 1.4, Q: 1.777}

	res, err := resolution.Calculate(cfg, tri, resolution.CooperNathans)
	require.NoError(t, err)
	require.True(t, res.OK)

	es, err := ellipse.Calc(res.Reso)
	require.NoError(t, err)
	require.Len(t, es, 12)
	for _, e := range es {
		assert.False(t, e.UnboundedX, "plane (%d,%d) %v", e.XAxis, e.YAxis, e.Kind)
		assert.False(t, e.UnboundedY, "plane (%d,%d) %v", e.XAxis, e.YAxis, e.Kind)
		assert.Greater(t, e.SemiX, 0.0)
		assert.Greater(t, e.SemiY, 0.0)
		assert.False(t, math.IsInf(e.Area, 0))
	}

	// Projection covers at least the slice in every plane.
	for i := 0; i < len(es); i += 2 {
		sl, pr := es[i], es[i+1]
		require.Equal(t, ellipse.Slice, sl.Kind)
		require.Equal(t, ellipse.Projection, pr.Kind)
		assert.GreaterOrEqual(t, pr.Area*(1+1e-9), sl.Area,
			"plane (%d,%d)", sl.XAxis, sl.YAxis)
	}

	widths, err := ellipse.VanadiumFWHMs(res.Reso)
	require.NoError(t, err)
	bragg, err := ellipse.BraggFWHMs(res.Reso)
	require.NoError(t, err)
	for i := range widths {
		assert.GreaterOrEqual(t, widths[i]*(1+1e-9), bragg[i], "axis %d", i)
	}

	vol, err := ellipse.Volume(res.Reso)
	require.NoError(t, err)
	assert.InDelta(t, res.ResVol, vol, res.ResVol*1e-9)
}
