package main

import (
	"image"
	"image/color"
	"sync/atomic"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/numeric"
)

// wheelStep is the zoom factor applied per wheel notch.
const wheelStep = 1.25

var overlayColor = color.RGBA{R: 0xff, G: 0x40, B: 0x40, A: 0xff}

// viewer implements ebiten.Game on top of a fractal.Engine. Renders run on
// a background goroutine; the texture is refreshed when one completes.
type viewer struct {
	e       *fractal.Engine
	iter    int
	threads int

	rendering atomic.Bool
	done      chan error
	lastErr   error

	frame   *ebiten.Image
	scratch []byte
	hud     *hud
}

func newViewer(e *fractal.Engine, iter, threads int) *viewer {
	return &viewer{
		e:       e,
		iter:    iter,
		threads: threads,
		done:    make(chan error, 1),
		hud:     newHUD(),
	}
}

// startRender kicks off a render unless one is already running.
func (v *viewer) startRender() {
	if !v.rendering.CompareAndSwap(false, true) {
		return
	}
	iter, threads := v.iter, v.threads
	go func() {
		v.done <- v.e.Render(iter, threads)
	}()
}

func (v *viewer) Update() error {
	select {
	case err := <-v.done:
		v.lastErr = err
		if err == nil {
			v.upload()
		}
		v.rendering.Store(false)
	default:
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		f := wheelStep
		if dy < 0 {
			f = 1 / wheelStep
		}
		v.report(v.e.Zoom(f))
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		v.report(v.e.Pan(x, y))
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.startRender()
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		next := numeric.ModeExact
		if v.e.Backend() == numeric.ModeExact {
			next = numeric.ModeFast
		}
		v.report(v.e.SelectBackend(next))
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual), inpututil.IsKeyJustPressed(ebiten.KeyNumpadAdd):
		v.iter *= 2
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus), inpututil.IsKeyJustPressed(ebiten.KeyNumpadSubtract):
		v.iter = max(v.iter/2, 1)
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		v.report(v.e.SetFractalBounds(-2, 1, -1, 1))
		v.iter = v.e.Iterations()
		v.startRender()
	}
	return nil
}

func (v *viewer) report(err error) {
	if err != nil {
		v.lastErr = err
	}
}

// upload copies the engine's buffer into the frame texture. It must only
// be called while no render is running.
func (v *viewer) upload() {
	buf := v.e.Buffer()
	w, h := buf.Width(), buf.Height()
	if v.frame == nil || v.frame.Bounds() != image.Rect(0, 0, w, h) {
		if v.frame != nil {
			v.frame.Deallocate()
		}
		v.frame = ebiten.NewImage(w, h)
		v.scratch = make([]byte, w*h*4)
	}
	buf.CopyRGBA(v.scratch)
	v.frame.WritePixels(v.scratch)
}

func (v *viewer) Draw(screen *ebiten.Image) {
	if v.frame != nil {
		screen.DrawImage(v.frame, nil)
	}
	v.drawPreview(screen)

	s := v.e.Stats()
	v.hud.draw(screen, hudState{
		mode:      v.e.Backend(),
		iter:      v.iter,
		zoom:      v.e.ZoomAccumulator(),
		last:      s.Duration.Round(time.Millisecond),
		rendering: v.rendering.Load(),
		err:       v.lastErr,
	})
}

// drawPreview outlines where the live rectangle lies in the shown frame.
func (v *viewer) drawPreview(screen *ebiten.Image) {
	x1, y1, x2, y2 := v.e.PreviewRect()
	if x1 == -1 && y1 == 1 && x2 == 1 && y2 == -1 {
		return
	}
	left, top, right, bottom := v.e.PreviewPixels()
	vector.StrokeRect(screen, float32(left), float32(top),
		float32(right-left), float32(bottom-top), 1, overlayColor, false)
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.e.Size()
}
