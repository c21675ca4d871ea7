// Package parallel provides the tile scheduling used by the fractal engine.
//
// The image is divided into a fixed grid of disjoint rectangular tiles that
// are rendered independently. Key properties:
//
//   - The tile list is computed once per render and never modified.
//   - Workers claim tiles through a single atomic counter; no locks.
//   - Tiles never overlap, so workers write the shared pixel buffer without
//     synchronization.
//
// Thread safety: TilePool.Claim is safe for concurrent use. Everything else
// is immutable after construction.
package parallel

import "image"

// Default grid dimensions used when the caller does not choose one.
const (
	// DefaultGridX is the default number of tile columns.
	DefaultGridX = 10

	// DefaultGridY is the default number of tile rows.
	DefaultGridY = 10
)

// Tile is a rectangular region [X0, X1) x [Y0, Y1) of the pixel buffer.
type Tile struct {
	// Index is the tile's position in row-major grid order.
	Index int

	// X0 and Y0 are the inclusive top-left pixel coordinates.
	X0, Y0 int

	// X1 and Y1 are the exclusive bottom-right pixel coordinates.
	X1, Y1 int
}

// Bounds returns the pixel bounds of this tile.
// Returns (x, y, width, height) where x,y is the top-left corner.
func (t Tile) Bounds() (x, y, w, h int) {
	return t.X0, t.Y0, t.X1 - t.X0, t.Y1 - t.Y0
}

// Width returns the tile width in pixels.
func (t Tile) Width() int {
	return t.X1 - t.X0
}

// Height returns the tile height in pixels.
func (t Tile) Height() int {
	return t.Y1 - t.Y0
}

// Pixels returns the number of pixels covered by the tile.
func (t Tile) Pixels() int {
	return t.Width() * t.Height()
}

// Contains reports whether pixel (x, y) lies inside the tile.
func (t Tile) Contains(x, y int) bool {
	return x >= t.X0 && x < t.X1 && y >= t.Y0 && y < t.Y1
}

// Rect returns the tile as an image.Rectangle.
func (t Tile) Rect() image.Rectangle {
	return image.Rect(t.X0, t.Y0, t.X1, t.Y1)
}
