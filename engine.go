package fractal

import (
	"fmt"
	"math"
	"math/big"
	"sync"
	"time"

	"github.com/gogpu/fractal/internal/escape"
	"github.com/gogpu/fractal/internal/parallel"
	"github.com/gogpu/fractal/internal/viewport"
	"github.com/gogpu/fractal/numeric"
)

// DefaultIterations is the iteration budget reported by Engine.Iterations
// when WithIterations is not given.
const DefaultIterations = 256

// Engine is a deep-zoom escape-time renderer.
//
// It keeps two views of the same viewport, one per numeric backend, and
// mutates them in lockstep so switching backends never loses position.
// The selected backend decides which view is rendered.
//
// Engine is safe for concurrent use. Zoom, Pan, SetFractalBounds and the
// accessors may be called while Render is running: Render works on a
// snapshot of the bounds taken when it starts. Render and ConfigureWindow
// are serialized against each other.
type Engine struct {
	// renderMu serializes Render, ConfigureWindow and ClearPixels, which
	// own the pixel buffer.
	renderMu sync.Mutex

	// mu guards every field below.
	mu sync.Mutex

	fast  *viewport.Bounds[float64, numeric.Float64]
	exact *viewport.Bounds[big.Float, numeric.BigFloat]
	zoom  big.Float

	mode       numeric.Mode
	prec       uint
	gridX      int
	gridY      int
	iterations int

	pix   []byte
	stats RenderStats
}

// New creates an engine. Without options it uses the float64 backend, the
// rectangle (-2, 1, -1, 1) and a 10x10 tile grid. The window is
// unconfigured until ConfigureWindow is called or WithWindow is given.
func New(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		fast:       viewport.New[float64](numeric.Float64{}),
		exact:      viewport.New[big.Float](numeric.NewBigFloat(o.prec)),
		mode:       o.mode,
		prec:       o.prec,
		gridX:      o.gridX,
		gridY:      o.gridY,
		iterations: o.iterations,
	}
	e.zoom.SetPrec(o.prec).SetInt64(1)

	r := o.rect
	e.fast.SetRect(r[0], r[1], r[2], r[3])
	e.exact.SetRect(r[0], r[1], r[2], r[3])

	if o.width > 0 && o.height > 0 {
		e.resize(o.width, o.height)
	}
	return e
}

// ConfigureWindow sets the pixel size and resizes the pixel buffer to
// width*height*3 bytes. It waits for a render in progress to finish.
func (e *Engine) ConfigureWindow(width, height int) error {
	if width <= 0 || height <= 0 {
		return invalid("configure window", "size %dx%d must be positive", width, height)
	}

	e.renderMu.Lock()
	defer e.renderMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	e.resize(width, height)
	Logger().Debug("fractal: window configured", "width", width, "height", height, "bytes", len(e.pix))
	return nil
}

// resize must be called with mu held and no render running.
func (e *Engine) resize(width, height int) {
	e.fast.SetSize(width, height)
	e.exact.SetSize(width, height)

	n := width * height * escape.Channels
	if cap(e.pix) >= n {
		e.pix = e.pix[:n]
		clear(e.pix)
		return
	}
	e.pix = make([]byte, n)
}

// SetFractalBounds sets the live rectangle and marks it as rendered, so the
// next pan is relative to it. Both backends receive the same values.
func (e *Engine) SetFractalBounds(xmin, xmax, ymin, ymax float64) error {
	if err := validRect(xmin, xmax, ymin, ymax); err != nil {
		return invalid("set bounds", "%v", err)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.fast.SetRect(xmin, xmax, ymin, ymax)
	e.exact.SetRect(xmin, xmax, ymin, ymax)
	return nil
}

// SelectBackend chooses the numeric backend used by Render. Declared but
// unimplemented modes return ErrUnsupportedBackend and leave the selection
// unchanged.
func (e *Engine) SelectBackend(mode numeric.Mode) error {
	if !mode.Supported() {
		err := fmt.Errorf("fractal: select backend %v: %w", mode, ErrUnsupportedBackend)
		Logger().Warn("fractal: backend rejected", "mode", mode.String())
		return err
	}

	e.mu.Lock()
	prev := e.mode
	e.mode = mode
	e.mu.Unlock()

	if prev != mode {
		Logger().Debug("fractal: backend selected", "mode", mode.String(), "previous", prev.String())
	}
	return nil
}

// Zoom scales the live rectangle about its center by factor and multiplies
// the zoom accumulator by it. factor > 1 zooms in. The rendered rectangle
// is untouched, so PreviewRect shows where the next render will land.
func (e *Engine) Zoom(factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 0) {
		return invalid("zoom", "factor %v must be positive and finite", factor)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.fast.Zoom(factor)
	e.exact.Zoom(factor)

	var f big.Float
	f.SetPrec(e.prec).SetFloat64(factor)
	e.zoom.Mul(&e.zoom, &f)

	Logger().Debug("fractal: zoom", "factor", factor, "bounds", e.fast.Aux())
	return nil
}

// Pan re-centers the live rectangle on the fractal point under pixel
// (px, py) of the last rendered image. Row 0 is the top of the image.
func (e *Engine) Pan(px, py int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if w, h := e.fast.Size(); w == 0 || h == 0 {
		return invalid("pan", "window not configured")
	}

	e.fast.PanToPixel(px, py)
	e.exact.PanToPixel(px, py)

	Logger().Debug("fractal: pan", "x", px, "y", py, "bounds", e.fast.Aux())
	return nil
}

// Render computes the escape-time image of the live rectangle with the
// selected backend, splitting the image into tiles evaluated by threads
// workers. It blocks until every pixel is written.
//
// On return the rendered rectangle equals the live rectangle as it was when
// Render started. Mutations made during the render apply to the next one.
// A live rectangle that the selected backend can no longer resolve, such as
// float64 bounds zoomed past about 1e-16 of their magnitude, is rejected
// with ErrInvalidConfiguration before any work is done.
func (e *Engine) Render(maxIter, threads int) error {
	if maxIter <= 0 {
		return invalid("render", "iteration budget %d must be positive", maxIter)
	}
	if threads < 1 {
		return invalid("render", "thread count %d must be at least 1", threads)
	}

	e.renderMu.Lock()
	defer e.renderMu.Unlock()

	e.mu.Lock()
	width, height := e.fast.Size()
	if width == 0 || height == 0 {
		e.mu.Unlock()
		return invalid("render", "window not configured")
	}
	degenerate := e.fast.Degenerate()
	if e.mode == numeric.ModeExact {
		degenerate = e.exact.Degenerate()
	}
	if degenerate {
		mode, r := e.mode, e.fast.Aux()
		e.mu.Unlock()
		return invalid("render", "bounds (%v, %v, %v, %v) have no extent in %v mode",
			r.XMin, r.XMax, r.YMin, r.YMax, mode)
	}
	fast := e.fast.Clone()
	exact := e.exact.Clone()
	mode := e.mode
	gx, gy := e.gridX, e.gridY
	pix := e.pix
	e.mu.Unlock()

	defer exact.Release()

	Logger().Debug("fractal: render start",
		"width", width, "height", height, "mode", mode.String(),
		"iterations", maxIter, "threads", threads)

	start := time.Now()
	var tiles int
	var counts []int
	switch mode {
	case numeric.ModeExact:
		tiles, counts = render(exact, pix, maxIter, threads, gx, gy)
	default:
		tiles, counts = render(fast, pix, maxIter, threads, gx, gy)
	}
	elapsed := time.Since(start)

	e.mu.Lock()
	e.fast.CommitFrom(fast)
	e.exact.CommitFrom(exact)
	e.stats = RenderStats{
		Mode:       mode,
		Iterations: maxIter,
		Workers:    threads,
		Tiles:      tiles,
		PerWorker:  counts,
		Width:      width,
		Height:     height,
		Duration:   elapsed,
	}
	e.mu.Unlock()

	Logger().Debug("fractal: render done",
		"mode", mode.String(), "tiles", tiles, "workers", threads, "duration", elapsed)
	return nil
}

// render evaluates every tile of b into pix and returns the tile count and
// the number of tiles each worker claimed.
func render[T any, M numeric.Arith[T]](b *viewport.Bounds[T, M], pix []byte, maxIter, threads, gx, gy int) (int, []int) {
	f := escape.NewFrame(b, maxIter, pix)
	defer f.Release()

	w, h := b.Size()
	pool := parallel.NewTilePool(w, h, gx, gy)
	counts := parallel.Run(threads, pool, func(_ int, t parallel.Tile) {
		escape.Tile(f, t)
	})
	return pool.Len(), counts
}

// PreviewRect projects the live rectangle into the frame of the last
// rendered one, in normalized coordinates where the rendered image spans
// [-1, 1] on both axes. x1 and x2 belong to the left and right edges. The
// y axis is inverted: y1 belongs to YMin and maps toward +1 at the bottom
// of the image, y2 belongs to YMax and maps toward -1 at the top. Before
// any zoom or pan it returns (-1, 1, 1, -1). See PreviewPixels for screen
// coordinates.
//
// The projection always uses the float64 view; it is UI feedback only.
func (e *Engine) PreviewRect() (x1, y1, x2, y2 float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fast.PreviewRect()
}

// PreviewPixels returns PreviewRect in pixel coordinates of the rendered
// image, row 0 at the top. The edges may lie outside the image.
func (e *Engine) PreviewPixels() (left, top, right, bottom float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	x1, y1, x2, y2 := e.fast.PreviewRect()
	w, h := e.fast.Size()
	fw, fh := float64(w), float64(h)
	return (x1 + 1) / 2 * fw, (y2 + 1) / 2 * fh, (x2 + 1) / 2 * fw, (y1 + 1) / 2 * fh
}

// PixelBuffer returns the RGB pixel buffer, width*height*3 bytes, row 0 at
// the top. The slice is shared with the engine: callers must not modify it
// and must not read it while a render is running.
func (e *Engine) PixelBuffer() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pix
}

// ZoomAccumulator returns the product of every zoom factor applied since
// the engine was created, as a decimal string at the exact backend's
// precision. SetFractalBounds does not reset it.
func (e *Engine) ZoomAccumulator() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return numeric.BigFloat{}.Text(&e.zoom)
}

// Bounds returns the live rectangle of the selected backend narrowed to
// float64.
func (e *Engine) Bounds() (xmin, xmax, ymin, ymax float64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	r := e.fast.Aux()
	if e.mode == numeric.ModeExact {
		r = e.exact.Aux()
	}
	return r.XMin, r.XMax, r.YMin, r.YMax
}

// Size returns the configured pixel size, or (0, 0) before ConfigureWindow.
func (e *Engine) Size() (width, height int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.fast.Size()
}

// Backend returns the selected numeric mode.
func (e *Engine) Backend() numeric.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Iterations returns the default iteration budget set with WithIterations.
func (e *Engine) Iterations() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.iterations
}

// Precision returns the mantissa precision of the exact backend in bits.
func (e *Engine) Precision() uint {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.prec
}

// SetPrecision changes the mantissa precision of the exact backend. The
// exact bounds and the zoom accumulator are rounded to the new precision.
func (e *Engine) SetPrecision(bits uint) error {
	if bits == 0 {
		return invalid("set precision", "precision must be positive")
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if bits == e.prec {
		return nil
	}
	old := e.exact
	e.exact = old.CloneWith(numeric.NewBigFloat(bits))
	old.Release()
	e.zoom.SetPrec(bits)
	prev := e.prec
	e.prec = bits

	Logger().Debug("fractal: precision changed", "bits", bits, "previous", prev)
	return nil
}

// ClearPixels zeroes the pixel buffer. It waits for a render in progress.
func (e *Engine) ClearPixels() {
	e.renderMu.Lock()
	defer e.renderMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()
	clear(e.pix)
}

// Buffer returns an image.Image view of the pixel buffer. The view shares
// storage with the engine and follows the same rules as PixelBuffer; it is
// invalidated by ConfigureWindow.
func (e *Engine) Buffer() *Buffer {
	e.mu.Lock()
	defer e.mu.Unlock()
	w, h := e.fast.Size()
	return &Buffer{width: w, height: h, data: e.pix}
}

// Stats returns statistics about the last completed render.
func (e *Engine) Stats() RenderStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	s := e.stats
	s.PerWorker = append([]int(nil), s.PerWorker...)
	return s
}

// validRect reports why a rectangle cannot be used, or nil.
func validRect(xmin, xmax, ymin, ymax float64) error {
	for _, v := range [...]float64{xmin, xmax, ymin, ymax} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("bounds (%v, %v, %v, %v) must be finite", xmin, xmax, ymin, ymax)
		}
	}
	if !(viewport.Rect{XMin: xmin, XMax: xmax, YMin: ymin, YMax: ymax}).Valid() {
		return fmt.Errorf("bounds (%v, %v, %v, %v) must have positive extent", xmin, xmax, ymin, ymax)
	}
	return nil
}

// invalid builds an ErrInvalidConfiguration error for op and logs it.
func invalid(op, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	Logger().Warn("fractal: rejected configuration", "op", op, "reason", detail)
	return fmt.Errorf("fractal: %s: %s: %w", op, detail, ErrInvalidConfiguration)
}
