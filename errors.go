package fractal

import "errors"

// Sentinel errors returned by Engine methods. Returned errors wrap one of
// these with context; test for them with errors.Is.
var (
	// ErrInvalidConfiguration reports a rejected argument: non-positive
	// dimensions, degenerate or non-finite bounds, a bad zoom factor,
	// iteration budget, thread count or precision, or a pan before the
	// window was configured.
	ErrInvalidConfiguration = errors.New("fractal: invalid configuration")

	// ErrUnsupportedBackend reports a numeric mode that is unknown or
	// declared but not implemented.
	ErrUnsupportedBackend = errors.New("fractal: unsupported backend")
)
