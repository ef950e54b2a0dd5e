// Package kinematics provides the physical constants and scattering-triangle
// geometry shared by every resolution backend.
//
// Conventions:
//   - Wavevector magnitudes (ki, kf, Q) are in Å⁻¹.
//   - Velocities are in m/s, energies in meV, angles in radians.
//   - Energy transfer is E = ħ²/(2mₙ)·(ki² − kf²): positive E means the
//     neutron loses energy to the sample.
//
// All functions are pure and deterministic. Invalid geometry (a scattering
// triangle that cannot close, an unreachable Bragg reflection) is reported
// through sentinel errors matched with errors.Is; no function panics on
// user input and no function substitutes a default.
package kinematics
