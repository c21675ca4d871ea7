// Package escape implements the escape-time Mandelbrot evaluator.
//
// The evaluator is generic over numeric.Arith, so the float64 and big.Float
// backends share one implementation. It writes grayscale RGB triples into a
// caller-owned buffer, one tile at a time.
package escape

import (
	"github.com/gogpu/fractal/internal/viewport"
	"github.com/gogpu/fractal/numeric"
)

// Channels is the number of bytes written per pixel.
const Channels = 3

// Frame is the read-only input shared by all workers of one render.
//
// A Frame must be built with NewFrame and must not be copied, because the
// big.Float backend keeps mantissa storage behind the values.
type Frame[T any, M numeric.Arith[T]] struct {
	m M

	XMin, YMin T
	DX, DY     T

	Width, Height int
	MaxIter       int

	// Pix receives Width*Height*Channels bytes.
	Pix []byte
}

// NewFrame captures the origin and per-pixel scale of b for a render of
// maxIter iterations into pix. b is only read. maxIter must be positive,
// the size of b must be positive, and len(pix) must be at least
// width*height*Channels.
func NewFrame[T any, M numeric.Arith[T]](b *viewport.Bounds[T, M], maxIter int, pix []byte) *Frame[T, M] {
	m := b.Arith()
	f := &Frame[T, M]{m: m, MaxIter: maxIter, Pix: pix}
	m.Init(&f.XMin)
	m.Init(&f.YMin)
	m.Init(&f.DX)
	m.Init(&f.DY)

	m.Set(&f.XMin, &b.XMin)
	m.Set(&f.YMin, &b.YMin)
	b.Scale(&f.DX, &f.DY)
	f.Width, f.Height = b.Size()
	return f
}

// Release drops the storage held by the frame's values.
func (f *Frame[T, M]) Release() {
	f.m.Release(&f.XMin)
	f.m.Release(&f.YMin)
	f.m.Release(&f.DX)
	f.m.Release(&f.DY)
}

// Intensity maps an iteration count to a gray level:
// floor(255 * iter / maxIter). A point that never escaped (iter == maxIter)
// maps to 255.
func Intensity(iter, maxIter int) byte {
	return byte(255 * iter / maxIter)
}
