package fractal

import (
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// Buffer is a read-only image.Image view of an engine's pixel buffer.
// Pixels are stored as 3 bytes per pixel with equal channels, row 0 at the
// top. Obtain one with Engine.Buffer.
type Buffer struct {
	width  int
	height int
	data   []byte // RGB, 3 bytes per pixel
}

// Width returns the width of the buffer.
func (b *Buffer) Width() int {
	return b.width
}

// Height returns the height of the buffer.
func (b *Buffer) Height() int {
	return b.height
}

// Data returns the raw pixel data (RGB format).
func (b *Buffer) Data() []byte {
	return b.data
}

// Gray returns the intensity of pixel (x, y), or 0 outside the buffer.
func (b *Buffer) Gray(x, y int) uint8 {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return 0
	}
	return b.data[(y*b.width+x)*3]
}

// At implements the image.Image interface.
func (b *Buffer) At(x, y int) color.Color {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return color.RGBA{}
	}
	i := (y*b.width + x) * 3
	return color.RGBA{R: b.data[i], G: b.data[i+1], B: b.data[i+2], A: 0xff}
}

// Bounds implements the image.Image interface.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.width, b.height)
}

// ColorModel implements the image.Image interface.
func (b *Buffer) ColorModel() color.Model {
	return color.RGBAModel
}

// ToRGBA converts the buffer to an opaque image.RGBA.
func (b *Buffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(b.Bounds())
	b.CopyRGBA(img.Pix)
	return img
}

// CopyRGBA expands the buffer into dst as 4 bytes per pixel with alpha set
// to 255. dst must hold at least Width*Height*4 bytes; it can be reused
// across frames to avoid an allocation per render.
func (b *Buffer) CopyRGBA(dst []byte) {
	n := b.width * b.height
	for i := range n {
		s, d := i*3, i*4
		dst[d+0] = b.data[s+0]
		dst[d+1] = b.data[s+1]
		dst[d+2] = b.data[s+2]
		dst[d+3] = 0xff
	}
}

// Thumbnail returns the buffer scaled down to fit within maxW x maxH,
// keeping the aspect ratio. A buffer that already fits is copied unscaled.
// It returns nil for an empty buffer or a non-positive limit.
func (b *Buffer) Thumbnail(maxW, maxH int) *image.RGBA {
	if b.width == 0 || b.height == 0 || maxW <= 0 || maxH <= 0 {
		return nil
	}
	src := b.ToRGBA()
	if b.width <= maxW && b.height <= maxH {
		return src
	}

	w, h := maxW, b.height*maxW/b.width
	if h > maxH {
		w, h = b.width*maxH/b.height, maxH
	}
	w, h = max(w, 1), max(h, 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
