// Package matrix provides the small dense linear-algebra kernels the
// resolution pipeline relies on: multiplication, transpose, scaling,
// LU-based inversion and determinant, a Jacobi eigen solver for symmetric
// matrices, and plane rotations of arbitrary dimension.
//
// Design rules, applied uniformly:
//   - Strict fail-fast validation; all user-triggered failures are sentinel
//     errors matched via errors.Is, never panics.
//   - Deterministic numerics: fixed loop orders, no pivoting in LU (a zero
//     pivot is reported as ErrSingular instead of being permuted away),
//     reproducible results for identical inputs.
//   - Inputs are never mutated; every kernel allocates a fresh result.
//
// The matrices involved here are tiny (4×4 up to the dimensionality of an
// instrument's variable set), so clarity and determinism win over blocked
// or pivoted algorithms throughout.
package matrix
