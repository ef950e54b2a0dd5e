package resolution

import (
	"fmt"
	"math"
)

// Leg is a flight-path segment: nominal length and its FWHM uncertainty,
// both in Å.
type Leg struct {
	L, Sigma float64
}

// Angle is a beam angle: nominal value and its FWHM uncertainty, both in
// radians.
type Angle struct {
	Value, Sigma float64
}

// Chopper describes one disc chopper. The burst-time width follows from
// WindowAngle/Speed; Speed must lie within [MinSpeed, MaxSpeed]. Angles in
// radians, speeds in rad/s.
type Chopper struct {
	WindowAngle        float64
	MinSpeed, MaxSpeed float64
	Speed              float64
}

// BurstSigma returns the chopper burst-time FWHM in seconds.
func (c Chopper) BurstSigma() float64 { return c.WindowAngle / c.Speed }

// TASConfig holds the triple-axis geometry used by the Cooper–Nathans,
// Popovici and Eckold–Sobolev backends. Distances and sizes in Å, angles
// and mosaicities as FWHM in radians. All widths are quoted as FWHM.
type TASConfig struct {
	// Crystal d-spacings in Å.
	MonoD, AnaD float64

	// Scattering senses, +1 or −1 per crystal.
	MonoSense, AnaSense float64

	// Distances between components.
	DistVSrcMono, DistHSrcMono    float64
	DistMonoSample, DistSampleAna float64
	DistAnaDet                    float64

	// Component sizes (width, height).
	SrcW, SrcH       float64
	MonoW, MonoH     float64
	SampleW, SampleH float64
	AnaW, AnaH       float64
	DetW, DetH       float64

	// Collimations, indexed pre-mono, pre-sample, post-sample, post-ana.
	CollH [4]float64
	CollV [4]float64

	// Mosaicities, horizontal and vertical per crystal.
	MonoMosaic, MonoMosaicV     float64
	SampleMosaic, SampleMosaicV float64
	AnaMosaic, AnaMosaicV       float64

	// Curvature flags. A curved crystal focuses the matching spatial image
	// and its size term drops out of the Popovici covariance.
	MonoCurvedH, MonoCurvedV bool
	AnaCurvedH, AnaCurvedV   bool

	// Guide before the monochromator; when set, the guide divergences
	// replace the pre-mono collimations.
	UseGuide             bool
	GuideDivH, GuideDivV float64

	// Crystal reflectivity and analyzer efficiency entering R0.
	MonoRefl, AnaEffic float64
}

// TOFConfig holds the time-of-flight geometry used by the Violini backend.
// Distances in Å, times in s, angles in radians; all widths FWHM.
type TOFConfig struct {
	// DistPM is the pulse-chopper to monochromating-chopper leg, DistMS
	// the chopper-to-sample leg.
	DistPM, DistMS Leg

	// DetRadius and DetZ locate the detection point on the bank: radial
	// and axial coordinate with their uncertainties. For a spherical bank
	// DetRadius is the flight distance and DetZ is unused.
	DetRadius, DetZ Leg

	// ThetaI, PhiI are the incident in-plane and out-of-plane angles.
	ThetaI, PhiI Angle

	// ThetaFSigma is the uncertainty of the final in-plane angle; the
	// nominal value comes from the scattering triangle.
	ThetaFSigma float64

	// PhiF is the polar exit angle, used only by the spherical bank;
	// cylindrical banks derive it from DetRadius and DetZ.
	PhiF Angle

	// ChopperP is the pulse chopper, ChopperM the monochromating chopper.
	ChopperP, ChopperM Chopper

	// DetTimeSigma is the detection-time uncertainty in s.
	DetTimeSigma float64
}

// InstrumentConfig is the immutable instrument description consumed by
// Calculate. Exactly the block required by the selected backend must be
// present: TAS for Cooper–Nathans, Popovici and Eckold–Sobolev, TOF for
// Violini.
type InstrumentConfig struct {
	// Shape tags the detector geometry.
	Shape DetectorShape

	// SampleSense is the sample scattering sense, +1 or −1.
	SampleSense float64

	TAS *TASConfig
	TOF *TOFConfig
}

// badConfig wraps ErrBadConfig with the offending field name.
func badConfig(field string) error {
	return fmt.Errorf("%s: %w", field, ErrBadConfig)
}

// validSense reports whether s is exactly +1 or −1.
func validSense(s float64) bool { return s == 1 || s == -1 }

// validate checks the fields the selected backend requires. Validation runs
// once, up front; builders assume a valid config afterwards.
func (cfg *InstrumentConfig) validate(backend Backend) error {
	if cfg == nil {
		return badConfig("config")
	}
	if !validSense(cfg.SampleSense) {
		return badConfig("SampleSense")
	}

	switch backend {
	case CooperNathans, Popovici, EckoldSobolev:
		return cfg.validateTAS(backend)
	case Violini:
		return cfg.validateTOF()
	default:
		return fmt.Errorf("%v: %w", backend, ErrUnknownBackend)
	}
}

func (cfg *InstrumentConfig) validateTAS(backend Backend) error {
	t := cfg.TAS
	if t == nil {
		return badConfig("TAS")
	}
	if cfg.Shape != ShapeRectangular {
		return badConfig("Shape")
	}
	if t.MonoD <= 0 {
		return badConfig("TAS.MonoD")
	}
	if t.AnaD <= 0 {
		return badConfig("TAS.AnaD")
	}
	if !validSense(t.MonoSense) {
		return badConfig("TAS.MonoSense")
	}
	if !validSense(t.AnaSense) {
		return badConfig("TAS.AnaSense")
	}
	for i, c := range t.CollH {
		if c < 0 {
			return badConfig(fmt.Sprintf("TAS.CollH[%d]", i))
		}
	}
	for i, c := range t.CollV {
		if c < 0 {
			return badConfig(fmt.Sprintf("TAS.CollV[%d]", i))
		}
	}
	for _, m := range []struct {
		name string
		v    float64
	}{
		{"TAS.MonoMosaic", t.MonoMosaic},
		{"TAS.MonoMosaicV", t.MonoMosaicV},
		{"TAS.SampleMosaic", t.SampleMosaic},
		{"TAS.SampleMosaicV", t.SampleMosaicV},
		{"TAS.AnaMosaic", t.AnaMosaic},
		{"TAS.AnaMosaicV", t.AnaMosaicV},
	} {
		if m.v < 0 || math.IsNaN(m.v) {
			return badConfig(m.name)
		}
	}
	if t.UseGuide && (t.GuideDivH < 0 || t.GuideDivV < 0) {
		return badConfig("TAS.GuideDiv")
	}

	// Spatial terms only enter the Popovici and Eckold–Sobolev models.
	if backend != CooperNathans {
		for _, d := range []struct {
			name string
			v    float64
		}{
			{"TAS.DistVSrcMono", t.DistVSrcMono},
			{"TAS.DistHSrcMono", t.DistHSrcMono},
			{"TAS.DistMonoSample", t.DistMonoSample},
			{"TAS.DistSampleAna", t.DistSampleAna},
			{"TAS.DistAnaDet", t.DistAnaDet},
		} {
			if d.v <= 0 {
				return badConfig(d.name)
			}
		}
	}

	return nil
}

func (cfg *InstrumentConfig) validateTOF() error {
	t := cfg.TOF
	if t == nil {
		return badConfig("TOF")
	}
	switch cfg.Shape {
	case ShapeSphere, ShapeCylVertical, ShapeCylHorizontal:
	default:
		// Rectangular is not a time-of-flight bank geometry.
		return badConfig("Shape")
	}
	if t.DistPM.L <= 0 {
		return badConfig("TOF.DistPM.L")
	}
	if t.DistMS.L <= 0 {
		return badConfig("TOF.DistMS.L")
	}
	if t.DetRadius.L <= 0 {
		return badConfig("TOF.DetRadius.L")
	}
	for _, ch := range []struct {
		name string
		c    Chopper
	}{
		{"TOF.ChopperP", t.ChopperP},
		{"TOF.ChopperM", t.ChopperM},
	} {
		if ch.c.WindowAngle <= 0 {
			return badConfig(ch.name + ".WindowAngle")
		}
		if ch.c.Speed <= 0 || ch.c.Speed < ch.c.MinSpeed || ch.c.Speed > ch.c.MaxSpeed {
			return badConfig(ch.name + ".Speed")
		}
	}
	if t.DetTimeSigma < 0 {
		return badConfig("TOF.DetTimeSigma")
	}

	return nil
}
