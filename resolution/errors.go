package resolution

import "errors"

// Sentinel errors of the resolution package. Callers match them with
// errors.Is; facades add stage context via fmt.Errorf("...: %w", err).
var (
	// ErrUnknownShape indicates a detector-shape tag outside the fixed enum.
	ErrUnknownShape = errors.New("resolution: unknown detector shape")

	// ErrUnknownBackend indicates a backend selector outside the fixed enum.
	ErrUnknownBackend = errors.New("resolution: unknown backend")

	// ErrBadConfig indicates a missing or out-of-range InstrumentConfig
	// field for the selected backend. The wrapped message names the field.
	ErrBadConfig = errors.New("resolution: invalid instrument configuration")

	// ErrSingularCovariance indicates a covariance matrix that cannot be
	// inverted into a resolution matrix; the instrument configuration is
	// degenerate. No regularization is attempted.
	ErrSingularCovariance = errors.New("resolution: singular covariance matrix")
)
