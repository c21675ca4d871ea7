package viewport

import (
	"math"
	"math/big"
	"math/rand"
	"testing"

	"github.com/gogpu/fractal/numeric"
)

func newFast(xmin, xmax, ymin, ymax float64, w, h int) *Bounds[float64, numeric.Float64] {
	b := New[float64](numeric.Float64{})
	b.SetRect(xmin, xmax, ymin, ymax)
	b.SetSize(w, h)
	return b
}

func newExact(prec uint, xmin, xmax, ymin, ymax float64, w, h int) *Bounds[big.Float, numeric.BigFloat] {
	b := New[big.Float](numeric.NewBigFloat(prec))
	b.SetRect(xmin, xmax, ymin, ymax)
	b.SetSize(w, h)
	return b
}

func approx(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func rectApprox(a, b Rect, eps float64) bool {
	return approx(a.XMin, b.XMin, eps) && approx(a.XMax, b.XMax, eps) &&
		approx(a.YMin, b.YMin, eps) && approx(a.YMax, b.YMax, eps)
}

// =============================================================================
// Construction Tests
// =============================================================================

func TestSetRect_CommitsRendered(t *testing.T) {
	b := newFast(-2, 1, -1, 1, 300, 200)
	want := Rect{XMin: -2, XMax: 1, YMin: -1, YMax: 1}
	if b.Aux() != want {
		t.Errorf("Aux() = %+v, want %+v", b.Aux(), want)
	}
	if b.Rendered() != want {
		t.Errorf("Rendered() = %+v, want %+v", b.Rendered(), want)
	}
	if w, h := b.Size(); w != 300 || h != 200 {
		t.Errorf("Size() = (%d, %d), want (300, 200)", w, h)
	}
}

func TestDegenerate(t *testing.T) {
	fast := newFast(0.3, 0.301, 0.1, 0.101, 30, 20)
	exact := newExact(128, 0.3, 0.301, 0.1, 0.101, 30, 20)
	defer exact.Release()

	if fast.Degenerate() || exact.Degenerate() {
		t.Fatal("Degenerate() = true before zooming")
	}

	for range 4 {
		fast.Zoom(1e5)
		exact.Zoom(1e5)
	}

	if !fast.Degenerate() {
		t.Errorf("fast Degenerate() = false after zooming by 1e20, aux %+v", fast.Aux())
	}
	if exact.Degenerate() {
		t.Error("exact Degenerate() = true after zooming by 1e20 at 128 bits")
	}
}

func TestRectValid(t *testing.T) {
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{-2, 1, -1, 1}, true},
		{Rect{1, 1, -1, 1}, false},
		{Rect{-2, 1, 1, -1}, false},
		{Rect{math.NaN(), 1, -1, 1}, false},
	}
	for _, tt := range tests {
		if got := tt.r.Valid(); got != tt.want {
			t.Errorf("%+v.Valid() = %v, want %v", tt.r, got, tt.want)
		}
	}
}

// =============================================================================
// Scale Tests
// =============================================================================

func TestScale(t *testing.T) {
	b := newFast(-2, 1, -1, 1, 300, 200)
	var dx, dy float64
	b.Scale(&dx, &dy)
	if !approx(dx, 0.01, 1e-15) || !approx(dy, 0.01, 1e-15) {
		t.Errorf("Scale() = (%v, %v), want (0.01, 0.01)", dx, dy)
	}
}

func TestScale_Exact(t *testing.T) {
	b := newExact(128, -2, 1, -1, 1, 300, 200)
	m := b.Arith()
	var dx, dy big.Float
	m.Init(&dx)
	m.Init(&dy)
	b.Scale(&dx, &dy)
	if got := m.Float64(&dx); !approx(got, 0.01, 1e-15) {
		t.Errorf("dx = %v, want 0.01", got)
	}
	if got := m.Float64(&dy); !approx(got, 0.01, 1e-15) {
		t.Errorf("dy = %v, want 0.01", got)
	}
}

// =============================================================================
// Normalize Tests
// =============================================================================

func TestNormalize_CentersRect(t *testing.T) {
	b := newFast(-2, 1, -1, 3, 10, 10)
	var ox, oy float64
	b.Normalize(&ox, &oy)
	if ox != -0.5 || oy != 1 {
		t.Errorf("offsets = (%v, %v), want (-0.5, 1)", ox, oy)
	}
	want := Rect{XMin: -1.5, XMax: 1.5, YMin: -2, YMax: 2}
	if b.Aux() != want {
		t.Errorf("normalized = %+v, want %+v", b.Aux(), want)
	}
}

func TestNormalize_NilOffsets(t *testing.T) {
	b := newFast(0, 2, 0, 2, 10, 10)
	b.Normalize(nil, nil)
	want := Rect{XMin: -1, XMax: 1, YMin: -1, YMax: 1}
	if b.Aux() != want {
		t.Errorf("normalized = %+v, want %+v", b.Aux(), want)
	}
}

func TestNormalize_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		xmin := rng.Float64()*8 - 4
		ymin := rng.Float64()*8 - 4
		r := Rect{XMin: xmin, XMax: xmin + rng.Float64()*3 + 1e-9, YMin: ymin, YMax: ymin + rng.Float64()*3 + 1e-9}

		fb := newFast(r.XMin, r.XMax, r.YMin, r.YMax, 64, 64)
		var ox, oy float64
		fb.Normalize(&ox, &oy)
		fb.Unnormalize(&ox, &oy)
		if !rectApprox(fb.Aux(), r, 1e-15) {
			t.Fatalf("float64 round trip %+v -> %+v", r, fb.Aux())
		}

		eb := newExact(256, r.XMin, r.XMax, r.YMin, r.YMax, 64, 64)
		m := eb.Arith()
		var ex, ey big.Float
		m.Init(&ex)
		m.Init(&ey)
		eb.Normalize(&ex, &ey)
		eb.Unnormalize(&ex, &ey)
		// Inputs need at most 53 bits; at 256 bits the trip is exact.
		if eb.Aux() != r {
			t.Fatalf("big.Float round trip %+v -> %+v", r, eb.Aux())
		}
	}
}

// =============================================================================
// Zoom Tests
// =============================================================================

func TestZoom_KeepsCenter(t *testing.T) {
	b := newFast(-2, 1, -1, 1, 300, 200)
	b.Zoom(2)
	want := Rect{XMin: -1.25, XMax: 0.25, YMin: -0.5, YMax: 0.5}
	if !rectApprox(b.Aux(), want, 1e-15) {
		t.Errorf("Zoom(2) = %+v, want %+v", b.Aux(), want)
	}
	// The rendered rectangle is untouched until the next commit.
	if b.Rendered() != (Rect{-2, 1, -1, 1}) {
		t.Errorf("Rendered() changed to %+v", b.Rendered())
	}
}

func TestZoom_Out(t *testing.T) {
	b := newFast(-1, 1, -1, 1, 10, 10)
	b.Zoom(0.5)
	want := Rect{XMin: -2, XMax: 2, YMin: -2, YMax: 2}
	if b.Aux() != want {
		t.Errorf("Zoom(0.5) = %+v, want %+v", b.Aux(), want)
	}
}

func TestZoom_Composition(t *testing.T) {
	tests := []struct {
		name   string
		f1, f2 float64
	}{
		{"in-in", 2, 3},
		{"in-out", 4, 0.25},
		{"fractional", 1.5, 1.1},
		{"large", 1e3, 1e4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newFast(-0.8, -0.7, 0.05, 0.15, 100, 100)
			a.Zoom(tt.f1)
			a.Zoom(tt.f2)

			b := newFast(-0.8, -0.7, 0.05, 0.15, 100, 100)
			b.Zoom(tt.f1 * tt.f2)

			if !rectApprox(a.Aux(), b.Aux(), 1e-12) {
				t.Errorf("zoom(zoom(b,%v),%v) = %+v, zoom(b,%v) = %+v",
					tt.f1, tt.f2, a.Aux(), tt.f1*tt.f2, b.Aux())
			}

			ea := newExact(192, -0.8, -0.7, 0.05, 0.15, 100, 100)
			ea.Zoom(tt.f1)
			ea.Zoom(tt.f2)
			eb := newExact(192, -0.8, -0.7, 0.05, 0.15, 100, 100)
			eb.Zoom(tt.f1 * tt.f2)
			if !rectApprox(ea.Aux(), eb.Aux(), 1e-15) {
				t.Errorf("exact: %+v vs %+v", ea.Aux(), eb.Aux())
			}
		})
	}
}

func TestZoom_DeepExactKeepsResolution(t *testing.T) {
	const cx, cy = -0.743643887037158704752191506114774, 0.131825904205311970493132056385139

	fast := newFast(cx-1, cx+1, cy-1, cy+1, 100, 100)
	exact := newExact(256, cx-1, cx+1, cy-1, cy+1, 100, 100)
	for i := 0; i < 3; i++ {
		fast.Zoom(1e10)
		exact.Zoom(1e10)
	}

	var fdx, fdy float64
	fast.Scale(&fdx, &fdy)
	if fdx != 0 && fast.XMin+fdx != fast.XMin {
		t.Skip("float64 unexpectedly resolves a 1e-32 step")
	}

	m := exact.Arith()
	var dx, dy, next big.Float
	m.Init(&dx)
	m.Init(&dy)
	m.Init(&next)
	exact.Scale(&dx, &dy)
	if dx.Sign() <= 0 || dy.Sign() <= 0 {
		t.Fatalf("exact scale collapsed: dx=%v dy=%v", m.Text(&dx), m.Text(&dy))
	}
	m.Add(&next, &exact.XMin, &dx)
	if m.Cmp(&next, &exact.XMin) <= 0 {
		t.Error("exact backend cannot step one pixel at 1e30 magnification")
	}
}

// =============================================================================
// Pan Tests
// =============================================================================

func TestPanToPixel(t *testing.T) {
	tests := []struct {
		name           string
		px, py         int
		wantCX, wantCY float64
	}{
		{"center", 150, 100, -0.5, 0},
		{"top-left", 0, 0, -2, 1},
		{"bottom-right", 300, 200, 1, -1},
		{"top-right", 300, 0, 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newFast(-2, 1, -1, 1, 300, 200)
			b.PanToPixel(tt.px, tt.py)
			r := b.Aux()
			cx, cy := (r.XMin+r.XMax)/2, (r.YMin+r.YMax)/2
			if !approx(cx, tt.wantCX, 1e-15) || !approx(cy, tt.wantCY, 1e-15) {
				t.Errorf("center = (%v, %v), want (%v, %v)", cx, cy, tt.wantCX, tt.wantCY)
			}
			if !approx(r.XMax-r.XMin, 3, 1e-15) || !approx(r.YMax-r.YMin, 2, 1e-15) {
				t.Errorf("size changed to %v x %v", r.XMax-r.XMin, r.YMax-r.YMin)
			}
		})
	}
}

func TestPanToPixel_UsesRenderedRect(t *testing.T) {
	b := newFast(-2, 1, -1, 1, 300, 200)
	b.Zoom(2)
	b.PanToPixel(300, 200)

	r := b.Aux()
	cx, cy := (r.XMin+r.XMax)/2, (r.YMin+r.YMax)/2
	if !approx(cx, 1, 1e-15) || !approx(cy, -1, 1e-15) {
		t.Errorf("center = (%v, %v), want (1, -1)", cx, cy)
	}
	if !approx(r.XMax-r.XMin, 1.5, 1e-15) {
		t.Errorf("width = %v, want 1.5 (zoom must survive the pan)", r.XMax-r.XMin)
	}
}

func TestPanToPixel_ExactMatchesFast(t *testing.T) {
	fb := newFast(-2, 1, -1, 1, 300, 200)
	eb := newExact(128, -2, 1, -1, 1, 300, 200)
	for _, p := range [][2]int{{10, 20}, {299, 1}, {150, 150}} {
		fb.PanToPixel(p[0], p[1])
		eb.PanToPixel(p[0], p[1])
	}
	if !rectApprox(fb.Aux(), eb.Aux(), 1e-14) {
		t.Errorf("fast %+v != exact %+v", fb.Aux(), eb.Aux())
	}
}

// =============================================================================
// Preview Tests
// =============================================================================

func TestPreviewRect_Identity(t *testing.T) {
	b := newFast(-2, 1, -1, 1, 300, 200)
	x1, y1, x2, y2 := b.PreviewRect()
	if x1 != -1 || x2 != 1 || y1 != 1 || y2 != -1 {
		t.Errorf("PreviewRect() = (%v, %v, %v, %v), want (-1, 1, 1, -1)", x1, y1, x2, y2)
	}
}

func TestPreviewRect_AfterZoom(t *testing.T) {
	b := newFast(-2, 2, -2, 2, 100, 100)
	b.Zoom(2)
	before := b.Aux()
	x1, y1, x2, y2 := b.PreviewRect()
	if x1 != -0.5 || x2 != 0.5 || y1 != 0.5 || y2 != -0.5 {
		t.Errorf("PreviewRect() = (%v, %v, %v, %v), want (-0.5, 0.5, 0.5, -0.5)", x1, y1, x2, y2)
	}
	if b.Aux() != before {
		t.Error("PreviewRect() mutated the bounds")
	}
}

func TestPreviewRect_AfterCommit(t *testing.T) {
	b := newExact(128, -2, 2, -2, 2, 100, 100)
	b.Zoom(4)
	b.PanToPixel(0, 50)
	b.Commit()
	x1, y1, x2, y2 := b.PreviewRect()
	if x1 != -1 || x2 != 1 || y1 != 1 || y2 != -1 {
		t.Errorf("PreviewRect() after Commit = (%v, %v, %v, %v), want (-1, 1, 1, -1)", x1, y1, x2, y2)
	}
}

// =============================================================================
// Clone Tests
// =============================================================================

func TestClone_Independent(t *testing.T) {
	b := newExact(128, -2, 1, -1, 1, 300, 200)
	c := b.Clone()
	c.Zoom(10)
	c.PanToPixel(0, 0)

	if b.Aux() != (Rect{-2, 1, -1, 1}) {
		t.Errorf("original changed to %+v after mutating clone", b.Aux())
	}
	if w, h := c.Size(); w != 300 || h != 200 {
		t.Errorf("clone Size() = (%d, %d), want (300, 200)", w, h)
	}
}

func TestCloneWith_Requantizes(t *testing.T) {
	b := newExact(256, -2, 1, -1, 1, 300, 200)
	c := b.CloneWith(numeric.NewBigFloat(64))
	if c.XMin.Prec() != 64 {
		t.Errorf("clone prec = %d, want 64", c.XMin.Prec())
	}
	if c.Aux() != b.Aux() {
		t.Errorf("clone %+v != original %+v", c.Aux(), b.Aux())
	}
	c.Release()
	if c.XMin.Prec() != 0 {
		t.Error("Release did not drop storage")
	}
}

func TestCommitFrom(t *testing.T) {
	live := newFast(-2, 1, -1, 1, 300, 200)
	snap := live.Clone()
	live.Zoom(3)
	live.CommitFrom(snap)
	if live.Rendered() != (Rect{-2, 1, -1, 1}) {
		t.Errorf("Rendered() = %+v, want the snapshot rect", live.Rendered())
	}
}
