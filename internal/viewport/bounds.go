// Package viewport implements the fractal-space coordinate model: the live
// and rendered rectangles, the pixel size, and the transforms applied to
// them (scale, normalize, zoom, pan, preview projection).
//
// Everything is written against numeric.Arith so the same code serves the
// float64 and big.Float backends.
//
// Thread safety: Bounds is NOT safe for concurrent mutation. Renders should
// work on a Clone taken while mutation is excluded.
package viewport

import "github.com/gogpu/fractal/numeric"

// Rect is a float64 rectangle in fractal space.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Valid reports whether the rectangle has positive extent on both axes.
func (r Rect) Valid() bool {
	return r.XMax > r.XMin && r.YMax > r.YMin
}

// Bounds holds one backend's view of the viewport.
//
// The fractal rect (XMin..YMax) is the live, user-mutable rectangle. The
// rendered rect (RXMin..RYMax) is the rectangle the last committed render
// used; pan and preview projection are expressed relative to it. W and H
// carry the pixel size in the backend representation so the scale can be
// computed without conversions.
type Bounds[T any, M numeric.Arith[T]] struct {
	m M

	XMin, XMax T
	YMin, YMax T

	RXMin, RXMax T
	RYMin, RYMax T

	W, H T

	width, height int
	aux           Rect
}

// New returns bounds with every value initialized by m. The rectangle and
// the size are zero until SetRect and SetSize are called.
func New[T any, M numeric.Arith[T]](m M) *Bounds[T, M] {
	b := &Bounds[T, M]{m: m}
	for _, v := range b.values() {
		m.Init(v)
	}
	return b
}

func (b *Bounds[T, M]) values() []*T {
	return []*T{
		&b.XMin, &b.XMax, &b.YMin, &b.YMax,
		&b.RXMin, &b.RXMax, &b.RYMin, &b.RYMax,
		&b.W, &b.H,
	}
}

// Arith returns the backend the bounds were created with.
func (b *Bounds[T, M]) Arith() M {
	return b.m
}

// SetRect sets both the live and the rendered rectangle.
func (b *Bounds[T, M]) SetRect(xmin, xmax, ymin, ymax float64) {
	m := b.m
	m.SetFloat64(&b.XMin, xmin)
	m.SetFloat64(&b.XMax, xmax)
	m.SetFloat64(&b.YMin, ymin)
	m.SetFloat64(&b.YMax, ymax)
	b.Commit()
	b.refresh()
}

// SetSize sets the pixel size.
func (b *Bounds[T, M]) SetSize(width, height int) {
	b.m.SetInt(&b.W, width)
	b.m.SetInt(&b.H, height)
	b.width = width
	b.height = height
}

// Size returns the pixel size.
func (b *Bounds[T, M]) Size() (width, height int) {
	return b.width, b.height
}

// Degenerate reports whether the live rectangle has lost its extent on
// either axis in the backend representation, as happens when a zoom goes
// past the backend's precision.
func (b *Bounds[T, M]) Degenerate() bool {
	m := b.m
	return m.Cmp(&b.XMax, &b.XMin) <= 0 || m.Cmp(&b.YMax, &b.YMin) <= 0
}

// Aux returns the float64 mirror of the live rectangle. It is refreshed
// after every mutation and is meant for UI feedback only.
func (b *Bounds[T, M]) Aux() Rect {
	return b.aux
}

// Rendered returns the rendered rectangle narrowed to float64.
func (b *Bounds[T, M]) Rendered() Rect {
	m := b.m
	return Rect{
		XMin: m.Float64(&b.RXMin),
		XMax: m.Float64(&b.RXMax),
		YMin: m.Float64(&b.RYMin),
		YMax: m.Float64(&b.RYMax),
	}
}

// Commit snapshots the live rectangle as the rendered one.
func (b *Bounds[T, M]) Commit() {
	m := b.m
	m.Set(&b.RXMin, &b.XMin)
	m.Set(&b.RXMax, &b.XMax)
	m.Set(&b.RYMin, &b.YMin)
	m.Set(&b.RYMax, &b.YMax)
}

// CommitFrom copies the live rectangle of src into the rendered rectangle
// of b. Used to commit the snapshot a render actually used.
func (b *Bounds[T, M]) CommitFrom(src *Bounds[T, M]) {
	m := b.m
	m.Set(&b.RXMin, &src.XMin)
	m.Set(&b.RXMax, &src.XMax)
	m.Set(&b.RYMin, &src.YMin)
	m.Set(&b.RYMax, &src.YMax)
}

// Clone returns a deep copy of b that shares no storage with it.
func (b *Bounds[T, M]) Clone() *Bounds[T, M] {
	return b.CloneWith(b.m)
}

// CloneWith returns a deep copy of b whose values are initialized by m,
// rounding them to m's representation where it differs from b's.
func (b *Bounds[T, M]) CloneWith(m M) *Bounds[T, M] {
	c := New[T](m)
	dst, src := c.values(), b.values()
	for i := range dst {
		m.Set(dst[i], src[i])
	}
	c.width, c.height = b.width, b.height
	c.refresh()
	return c
}

// Release drops the storage of every value. b must not be used afterwards.
func (b *Bounds[T, M]) Release() {
	for _, v := range b.values() {
		b.m.Release(v)
	}
}

// refresh recomputes the float64 mirror of the live rectangle.
func (b *Bounds[T, M]) refresh() {
	m := b.m
	b.aux = Rect{
		XMin: m.Float64(&b.XMin),
		XMax: m.Float64(&b.XMax),
		YMin: m.Float64(&b.YMin),
		YMax: m.Float64(&b.YMax),
	}
}
