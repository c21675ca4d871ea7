// Package fractal renders deep-zoom views of the Mandelbrot set.
//
// An Engine keeps a viewport in fractal space, lets the caller zoom and pan
// it, and renders it into an 8-bit grayscale RGB buffer with a pool of
// goroutines working through a grid of tiles.
//
// # Backends
//
// Two numeric backends are available. [numeric.ModeFast] evaluates with
// float64 and is the default. [numeric.ModeExact] evaluates with math/big
// floats at a configurable precision and keeps working past the point where
// float64 runs out of mantissa, at a large cost in speed. Both views are
// updated on every zoom and pan, so switching backends keeps the position.
//
//	e := fractal.New(fractal.WithWindow(800, 600))
//	_ = e.Zoom(1e6)
//	_ = e.SelectBackend(numeric.ModeExact)
//	if err := e.Render(500, runtime.NumCPU()); err != nil {
//	    log.Fatal(err)
//	}
//	pix := e.PixelBuffer() // 800*600*3 bytes, row 0 at the top
//
// # Preview
//
// Zoom and Pan change the live rectangle only. Until the next Render the
// buffer still shows the previous one, and [Engine.PreviewRect] tells where
// the live rectangle lies inside it so a viewer can draw an overlay.
//
// # Logging
//
// The package is silent by default. See [SetLogger].
package fractal
