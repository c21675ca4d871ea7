package escape

import (
	"github.com/gogpu/fractal/internal/parallel"
	"github.com/gogpu/fractal/numeric"
)

// state is the per-worker scratch space. Values are initialized once per
// tile and reused for every pixel.
type state[T any] struct {
	cx, cy   T
	tx, ty   T
	zx, zy   T
	zx2, zy2 T
	mag, nzy T
	four     T
}

func (s *state[T]) values() []*T {
	return []*T{
		&s.cx, &s.cy, &s.tx, &s.ty, &s.zx, &s.zy,
		&s.zx2, &s.zy2, &s.mag, &s.nzy, &s.four,
	}
}

func newState[T any, M numeric.Arith[T]](m M) *state[T] {
	s := &state[T]{}
	for _, v := range s.values() {
		m.Init(v)
	}
	m.SetInt(&s.four, 4)
	return s
}

func (s *state[T]) release(m numeric.Arith[T]) {
	for _, v := range s.values() {
		m.Release(v)
	}
}

// iterate runs the recurrence z = z² + c from z = 0 and returns the
// iteration at which |z|² first exceeded 4, or maxIter if it never did.
func iterate[T any, M numeric.Arith[T]](m M, s *state[T], maxIter int) int {
	m.SetInt(&s.zx, 0)
	m.SetInt(&s.zy, 0)

	iter := 0
	for ; iter < maxIter; iter++ {
		m.Mul(&s.zx2, &s.zx, &s.zx)
		m.Mul(&s.zy2, &s.zy, &s.zy)

		m.Add(&s.mag, &s.zx2, &s.zy2)
		if m.Cmp(&s.mag, &s.four) > 0 {
			break
		}

		// zy' = 2*zx*zy + cy
		m.Mul(&s.nzy, &s.zx, &s.zy)
		m.Add(&s.nzy, &s.nzy, &s.nzy)
		m.Add(&s.nzy, &s.nzy, &s.cy)

		// zx' = zx² - zy² + cx
		m.Sub(&s.zx, &s.zx2, &s.zy2)
		m.Add(&s.zx, &s.zx, &s.cx)

		m.Set(&s.zy, &s.nzy)
	}
	return iter
}

// Tile evaluates every pixel of t and writes its gray level into f.Pix.
//
// Pixel (x, y) maps to c = (XMin + x*DX, YMin + (Height-1-y)*DY), so row 0
// is the top of the image. Tile only writes the bytes belonging to t;
// concurrent calls with disjoint tiles need no synchronization.
func Tile[T any, M numeric.Arith[T]](f *Frame[T, M], t parallel.Tile) {
	m := f.m
	s := newState[T](m)
	defer s.release(m)

	for y := t.Y0; y < t.Y1; y++ {
		m.SetInt(&s.ty, f.Height-1-y)
		m.Mul(&s.cy, &s.ty, &f.DY)
		m.Add(&s.cy, &s.cy, &f.YMin)

		row := y * f.Width
		for x := t.X0; x < t.X1; x++ {
			m.SetInt(&s.tx, x)
			m.Mul(&s.cx, &s.tx, &f.DX)
			m.Add(&s.cx, &s.cx, &f.XMin)

			v := Intensity(iterate(m, s, f.MaxIter), f.MaxIter)

			i := (row + x) * Channels
			f.Pix[i+0] = v
			f.Pix[i+1] = v
			f.Pix[i+2] = v
		}
	}
}

// Count returns the escape iteration for the single point c = (cx, cy).
// It returns maxIter when the point did not escape within the budget.
func Count[T any, M numeric.Arith[T]](m M, cx, cy *T, maxIter int) int {
	s := newState[T](m)
	defer s.release(m)

	m.Set(&s.cx, cx)
	m.Set(&s.cy, cy)
	return iterate(m, s, maxIter)
}
