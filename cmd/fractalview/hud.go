package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"slices"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/numeric"
)

const (
	hudWidth   = 320
	lineHeight = 15
	hudLines   = 5
)

type hudState struct {
	mode      numeric.Mode
	iter      int
	zoom      string
	last      time.Duration
	rendering bool
	err       error
}

// hud draws status text with basicfont into an RGBA image and uploads it
// as a texture. The texture is only rewritten when the text changes.
type hud struct {
	img  *image.RGBA
	tex  *ebiten.Image
	prev []string
}

func newHUD() *hud {
	r := image.Rect(0, 0, hudWidth, hudLines*lineHeight+6)
	return &hud{
		img: image.NewRGBA(r),
		tex: ebiten.NewImage(r.Dx(), r.Dy()),
	}
}

func (h *hud) lines(s hudState) []string {
	status := fmt.Sprintf("last render %v", s.last)
	if s.rendering {
		status = "rendering..."
	}
	errLine := ""
	if s.err != nil {
		errLine = s.err.Error()
	}
	return []string{
		fmt.Sprintf("backend %v", s.mode),
		fmt.Sprintf("iterations %d", s.iter),
		"zoom " + fractal.FormatMagnification(language.English, s.zoom),
		status,
		errLine,
	}
}

func (h *hud) draw(screen *ebiten.Image, s hudState) {
	lines := h.lines(s)
	if !slices.Equal(lines, h.prev) {
		h.render(lines)
		h.prev = lines
	}
	screen.DrawImage(h.tex, nil)
}

func (h *hud) render(lines []string) {
	draw.Draw(h.img, h.img.Bounds(), image.NewUniform(color.RGBA{A: 0xa0}), image.Point{}, draw.Src)
	d := &font.Drawer{
		Dst:  h.img,
		Src:  image.NewUniform(color.White),
		Face: basicfont.Face7x13,
	}
	for i, line := range lines {
		d.Dot = fixed.P(4, (i+1)*lineHeight)
		d.DrawString(line)
	}
	h.tex.WritePixels(h.img.Pix)
}
