package resolution

import "io"

// Option configures a single Calculate call.
type Option func(*options)

type options struct {
	trace io.Writer
}

// WithTrace writes a diagnostic trace of intermediate angles, velocities
// and matrices to w. Tracing never changes numeric results; the default is
// no output.
func WithTrace(w io.Writer) Option {
	return func(o *options) { o.trace = w }
}

func newOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}

	return o
}
