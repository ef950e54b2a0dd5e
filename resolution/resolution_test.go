package resolution_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ectophasme/neutronres/kinematics"
	"github.com/Ectophasme/neutronres/resolution"
)

// tasConfig is a conventional triple-axis setup: PG(002) crystals, 30'
// collimation everywhere, 45'/30' mosaics.
func tasConfig() *resolution.InstrumentConfig {
	const (
		min2rad = kinematics.MinuteToRad
		cm2A    = kinematics.CmToAngstrom
	)

	return &resolution.InstrumentConfig{
		Shape:       resolution.ShapeRectangular,
		SampleSense: 1,
		TAS: &resolution.TASConfig{
			MonoD:     3.355,
			AnaD:      3.355,
			MonoSense: -1,
			AnaSense:  -1,

			DistVSrcMono:   10 * cm2A,
			DistHSrcMono:   10 * cm2A,
			DistMonoSample: 200 * cm2A,
			DistSampleAna:  115 * cm2A,
			DistAnaDet:     85 * cm2A,

			SrcW: 6 * cm2A, SrcH: 12 * cm2A,
			MonoW: 12 * cm2A, MonoH: 8 * cm2A,
			SampleW: 1 * cm2A, SampleH: 1 * cm2A,
			AnaW: 12 * cm2A, AnaH: 8 * cm2A,
			DetW: 1.5 * cm2A, DetH: 5 * cm2A,

			CollH: [4]float64{30 * min2rad, 30 * min2rad, 30 * min2rad, 30 * min2rad},
			CollV: [4]float64{30 * min2rad, 30 * min2rad, 30 * min2rad, 30 * min2rad},

			MonoMosaic: 45 * min2rad, MonoMosaicV: 45 * min2rad,
			SampleMosaic: 30 * min2rad, SampleMosaicV: 30 * min2rad,
			AnaMosaic: 45 * min2rad, AnaMosaicV: 45 * min2rad,

			MonoRefl: 1,
			AnaEffic: 1,
		},
	}
}

// tofConfig is an IN5-like disc-chopper setup with a vertical cylindrical
// bank, a perfectly collimated incident beam and a point sample.
func tofConfig() *resolution.InstrumentConfig {
	rpm := func(n float64) float64 { return n * math.Pi / 30 }

	return &resolution.InstrumentConfig{
		Shape:       resolution.ShapeCylVertical,
		SampleSense: 1,
		TOF: &resolution.TOFConfig{
			DistPM:    resolution.Leg{L: 8005.2e7},
			DistMS:    resolution.Leg{L: 1229.5e7},
			DetRadius: resolution.Leg{L: 4000e7, Sigma: 26e7},
			DetZ:      resolution.Leg{L: 0, Sigma: 30e7},

			ThetaI:      resolution.Angle{},
			PhiI:        resolution.Angle{},
			ThetaFSigma: 6.5e-3,

			ChopperP: resolution.Chopper{
				WindowAngle: 9 * math.Pi / 180,
				MinSpeed:    rpm(7000), MaxSpeed: rpm(17000),
				Speed: rpm(8500),
			},
			ChopperM: resolution.Chopper{
				WindowAngle: 3.25 * math.Pi / 180,
				MinSpeed:    rpm(7000), MaxSpeed: rpm(17000),
				Speed: rpm(8500),
			},
		},
	}
}

func TestParseDetectorShape(t *testing.T) {
	for tag, want := range map[string]resolution.DetectorShape{
		"rectangular": resolution.ShapeRectangular,
		"sphere":      resolution.ShapeSphere,
		"VCYL":        resolution.ShapeCylVertical,
		"hcyl":        resolution.ShapeCylHorizontal,
	} {
		got, err := resolution.ParseDetectorShape(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got, tag)
	}

	_, err := resolution.ParseDetectorShape("CONE")
	assert.ErrorIs(t, err, resolution.ErrUnknownShape)
}

func TestParseBackend(t *testing.T) {
	for tag, want := range map[string]resolution.Backend{
		"cooper-nathans": resolution.CooperNathans,
		"cn":             resolution.CooperNathans,
		"popovici":       resolution.Popovici,
		"eckold-sobolev": resolution.EckoldSobolev,
		"vio":            resolution.Violini,
	} {
		got, err := resolution.ParseBackend(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, want, got, tag)
	}

	_, err := resolution.ParseBackend("monte-carlo")
	assert.ErrorIs(t, err, resolution.ErrUnknownBackend)
}

// TestAllBackends_Shape runs every backend on its conventional instrument
// and checks the common output contract: a 4×4 matrix with a strictly
// positive diagonal. The values differ between backends since the physical
// models differ.
func TestAllBackends_Shape(t *testing.T) {
	tri := resolution.Triangle{Ki: 1.4, Kf: 1.4, Q: 1.777}
	tofTri := resolution.Triangle{Ki: 2 * math.Pi / 5, Kf: 2 * math.Pi / 5, Q: 1}

	cases := []struct {
		name    string
		cfg     *resolution.InstrumentConfig
		tri     resolution.Triangle
		backend resolution.Backend
		wantR0  bool
	}{
		{"cooper-nathans", tasConfig(), tri, resolution.CooperNathans, true},
		{"popovici", tasConfig(), tri, resolution.Popovici, true},
		{"eckold-sobolev", tasConfig(), tri, resolution.EckoldSobolev, true},
		{"violini", tofConfig(), tofTri, resolution.Violini, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := resolution.Calculate(tc.cfg, tc.tri, tc.backend)
			require.NoError(t, err)
			require.True(t, res.OK)
			require.NotNil(t, res.Reso)
			assert.Equal(t, 4, res.Reso.Rows())
			assert.Equal(t, 4, res.Reso.Cols())
			for i := 0; i < 4; i++ {
				v, errAt := res.Reso.At(i, i)
				require.NoError(t, errAt)
				assert.Greater(t, v, 0.0, "diagonal %d", i)
			}
			assert.Greater(t, res.ResVol, 0.0)
			if tc.wantR0 {
				assert.Greater(t, res.R0, 0.0)
			} else {
				assert.Zero(t, res.R0)
			}
		})
	}
}

// TestViolini_EndToEnd is the perfectly-collimated point-sample scenario:
// finite window angles are the only time uncertainty, yet the energy
// resolution must come out finite and positive.
func TestViolini_EndToEnd(t *testing.T) {
	tri := resolution.Triangle{Ki: 2 * math.Pi / 5, Kf: 2 * math.Pi / 5, Q: 1}

	res, err := resolution.Calculate(tofConfig(), tri, resolution.Violini)
	require.NoError(t, err)
	require.True(t, res.OK)

	ee, err := res.Reso.At(3, 3)
	require.NoError(t, err)
	assert.Greater(t, ee, 0.0)
	assert.False(t, math.IsInf(ee, 0))

	assert.InDelta(t, 0, res.E, 1e-12, "elastic triangle")
	assert.InDelta(t, tri.Q, math.Hypot(res.VecQ[0], res.VecQ[1]), 1e-9)
}

// TestCalculate_BadInput exercises the fail-fast paths: wrong shape per
// backend, invalid triangle, chopper speed outside its bounds, bad sense.
func TestCalculate_BadInput(t *testing.T) {
	tri := resolution.Triangle{Ki: 1.4, Kf: 1.4, Q: 1.777}

	t.Run("tas with tof shape", func(t *testing.T) {
		for _, backend := range []resolution.Backend{
			resolution.CooperNathans, resolution.Popovici, resolution.EckoldSobolev,
		} {
			cfg := tasConfig()
			cfg.Shape = resolution.ShapeSphere
			res, err := resolution.Calculate(cfg, tri, backend)
			assert.ErrorIs(t, err, resolution.ErrBadConfig, backend)
			assert.False(t, res.OK)
			assert.Nil(t, res.Reso)
		}
	})

	t.Run("violini with rectangular shape", func(t *testing.T) {
		cfg := tofConfig()
		cfg.Shape = resolution.ShapeRectangular
		res, err := resolution.Calculate(cfg, resolution.Triangle{Ki: 1.26, Kf: 1.26, Q: 1}, resolution.Violini)
		assert.ErrorIs(t, err, resolution.ErrBadConfig)
		assert.False(t, res.OK)
	})

	t.Run("invalid triangle", func(t *testing.T) {
		res, err := resolution.Calculate(tasConfig(),
			resolution.Triangle{Ki: 1.4, Kf: 1.4, Q: 10}, resolution.CooperNathans)
		assert.ErrorIs(t, err, kinematics.ErrTriangle)
		assert.False(t, res.OK)
	})

	t.Run("chopper speed out of bounds", func(t *testing.T) {
		cfg := tofConfig()
		cfg.TOF.ChopperP.Speed = cfg.TOF.ChopperP.MaxSpeed * 2
		res, err := resolution.Calculate(cfg,
			resolution.Triangle{Ki: 1.26, Kf: 1.26, Q: 1}, resolution.Violini)
		assert.ErrorIs(t, err, resolution.ErrBadConfig)
		assert.False(t, res.OK)
	})

	t.Run("bad sample sense", func(t *testing.T) {
		cfg := tasConfig()
		cfg.SampleSense = 0.5
		res, err := resolution.Calculate(cfg, tri, resolution.CooperNathans)
		assert.ErrorIs(t, err, resolution.ErrBadConfig)
		assert.False(t, res.OK)
	})
}

// TestCalculate_Deterministic: two identical calls yield identical
// matrices, entry for entry.
func TestCalculate_Deterministic(t *testing.T) {
	tri := resolution.Triangle{Ki: 1.4, Kf: 1.4, Q: 1.777}

	a, err := resolution.Calculate(tasConfig(), tri, resolution.Popovici)
	require.NoError(t, err)
	b, err := resolution.Calculate(tasConfig(), tri, resolution.Popovici)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			va, _ := a.Reso.At(i, j)
			vb, _ := b.Reso.At(i, j)
			assert.Equal(t, va, vb)
		}
	}
	assert.Equal(t, a.R0, b.R0)
}

// TestPopovici_MoreTerms: the Popovici covariance carries strictly more
// contributions, so its resolution cannot be sharper than Cooper–Nathans
// on the same instrument (diagonal entries no larger).
func TestPopovici_MoreTerms(t *testing.T) {
	tri := resolution.Triangle{Ki: 1.4, Kf: 1.4, Q: 1.777}

	cn, err := resolution.Calculate(tasConfig(), tri, resolution.CooperNathans)
	require.NoError(t, err)
	pop, err := resolution.Calculate(tasConfig(), tri, resolution.Popovici)
	require.NoError(t, err)

	for i := 0; i < 4; i++ {
		vcn, _ := cn.Reso.At(i, i)
		vpop, _ := pop.Reso.At(i, i)
		assert.LessOrEqual(t, vpop, vcn*(1+1e-9), "diagonal %d", i)
	}
}
