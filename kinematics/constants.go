package kinematics

// Physical constants (CODATA 2018). These are process-wide immutable values;
// everything derived from them is computed at compile time.
const (
	// HBar is the reduced Planck constant in J·s.
	HBar = 1.054571817e-34

	// NeutronMass is the neutron rest mass in kg.
	NeutronMass = 1.674927498e-27

	// MilliEVJoule is one meV expressed in J.
	MilliEVJoule = 1.602176634e-22

	// Angstrom is one Å in m.
	Angstrom = 1e-10
)

// Derived conversion factors.
const (
	// VelocityPerInvAngstrom converts a wavenumber in Å⁻¹ to a velocity in
	// m/s: v = ħk/mₙ. Numerically ≈ 629.622 m/s per Å⁻¹.
	VelocityPerInvAngstrom = HBar / (NeutronMass * Angstrom)

	// KSqToMeV converts a squared wavenumber in Å⁻² to an energy in meV:
	// E = ħ²k²/(2mₙ). Numerically ≈ 2.0721 meV·Å².
	KSqToMeV = HBar * HBar / (2 * NeutronMass * Angstrom * Angstrom * MilliEVJoule)
)

// Width-convention and unit-conversion constants. Instrument parameters are
// quoted as FWHM widths while the Gaussian resolution model is defined on
// standard deviations; SigmaToFWHM is the fixed bridge between the two.
const (
	// SigmaToFWHM is 2·√(2·ln 2).
	SigmaToFWHM = 2.3548200450309493

	// SigmaToHWHM is √(2·ln 2), the confidence constant used for ellipse
	// semi-axes.
	SigmaToHWHM = 1.1774100225154747

	// MinuteToRad converts arc minutes to radians (π / (180·60)).
	MinuteToRad = 2.9088820866572158e-4

	// CmToAngstrom converts centimetres to Å.
	CmToAngstrom = 1e8
)
