package fractal

import (
	"github.com/gogpu/fractal/internal/parallel"
	"github.com/gogpu/fractal/numeric"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// Defaults: (-2, 1, -1, 1), float64 backend, 10x10 tile grid
//	e := fractal.New()
//
//	// Start in exact mode on a 1280x720 window
//	e := fractal.New(
//	    fractal.WithWindow(1280, 720),
//	    fractal.WithBackend(numeric.ModeExact),
//	    fractal.WithPrecision(256),
//	)
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	gridX, gridY  int
	prec          uint
	mode          numeric.Mode
	width, height int
	rect          [4]float64
	iterations    int
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		gridX: parallel.DefaultGridX,
		gridY: parallel.DefaultGridY,
		prec:  numeric.DefaultPrecision,
		mode:  numeric.ModeFast,
		rect:  [4]float64{-2, 1, -1, 1},

		iterations: DefaultIterations,
	}
}

// WithGrid sets the tile grid used to split a render. Values are clamped to
// the image size at render time; non-positive values keep the default.
func WithGrid(gx, gy int) Option {
	return func(o *engineOptions) {
		if gx > 0 {
			o.gridX = gx
		}
		if gy > 0 {
			o.gridY = gy
		}
	}
}

// WithPrecision sets the mantissa precision, in bits, of the exact backend.
// Zero keeps the default.
func WithPrecision(bits uint) Option {
	return func(o *engineOptions) {
		if bits > 0 {
			o.prec = bits
		}
	}
}

// WithBackend selects the initial numeric backend. Unsupported modes are
// ignored and the float64 backend is used.
func WithBackend(mode numeric.Mode) Option {
	return func(o *engineOptions) {
		if mode.Supported() {
			o.mode = mode
		}
	}
}

// WithWindow configures the pixel size up front, so the engine can render
// without a separate ConfigureWindow call. Non-positive sizes are ignored.
func WithWindow(width, height int) Option {
	return func(o *engineOptions) {
		if width > 0 && height > 0 {
			o.width, o.height = width, height
		}
	}
}

// WithBounds sets the initial fractal rectangle. Degenerate or non-finite
// rectangles are ignored.
func WithBounds(xmin, xmax, ymin, ymax float64) Option {
	return func(o *engineOptions) {
		if validRect(xmin, xmax, ymin, ymax) == nil {
			o.rect = [4]float64{xmin, xmax, ymin, ymax}
		}
	}
}

// WithIterations sets the default iteration budget reported by
// Engine.Iterations. Non-positive values keep DefaultIterations.
func WithIterations(n int) Option {
	return func(o *engineOptions) {
		if n > 0 {
			o.iterations = n
		}
	}
}
