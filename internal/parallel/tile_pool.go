package parallel

import "sync/atomic"

// TilePool is an immutable list of tiles plus a shared claim counter.
//
// A pool is built fresh for each render and dropped once all workers have
// returned. Claim hands out every tile exactly once, in index order, to
// whichever goroutine asks first.
type TilePool struct {
	tiles []Tile
	next  atomic.Int64

	width, height int
	gridX, gridY  int
}

// NewTilePool divides a width x height image into gridX x gridY tiles.
//
// Tiles are uniform except for the last column and row, which absorb the
// remainder of the integer division. The grid is clamped to at least 1x1
// and to at most one pixel per tile, so tiny images still produce a valid,
// gap-free cover. Returns an empty pool if width or height is <= 0.
func NewTilePool(width, height, gridX, gridY int) *TilePool {
	if width <= 0 || height <= 0 {
		return &TilePool{}
	}

	gridX = clamp(gridX, 1, width)
	gridY = clamp(gridY, 1, height)

	tileW := width / gridX
	tileH := height / gridY

	p := &TilePool{
		tiles:  make([]Tile, 0, gridX*gridY),
		width:  width,
		height: height,
		gridX:  gridX,
		gridY:  gridY,
	}

	for ty := range gridY {
		y0 := ty * tileH
		y1 := y0 + tileH
		if ty == gridY-1 {
			y1 = height
		}
		for tx := range gridX {
			x0 := tx * tileW
			x1 := x0 + tileW
			if tx == gridX-1 {
				x1 = width
			}
			p.tiles = append(p.tiles, Tile{
				Index: len(p.tiles),
				X0:    x0,
				Y0:    y0,
				X1:    x1,
				Y1:    y1,
			})
		}
	}

	return p
}

// Claim returns the next unclaimed tile. Once every tile has been handed
// out it returns false, for this and all later calls.
func (p *TilePool) Claim() (Tile, bool) {
	i := p.next.Add(1) - 1
	if i >= int64(len(p.tiles)) {
		return Tile{}, false
	}
	return p.tiles[i], true
}

// Len returns the total number of tiles.
func (p *TilePool) Len() int {
	return len(p.tiles)
}

// Remaining returns the number of tiles not yet claimed. It is a snapshot
// and may be stale by the time it is read.
func (p *TilePool) Remaining() int {
	n := int64(len(p.tiles)) - p.next.Load()
	if n < 0 {
		return 0
	}
	return int(n)
}

// Tiles returns all tiles in row-major order.
// The returned slice should not be modified.
func (p *TilePool) Tiles() []Tile {
	return p.tiles
}

// Grid returns the effective grid dimensions after clamping.
func (p *TilePool) Grid() (gridX, gridY int) {
	return p.gridX, p.gridY
}

// Size returns the image dimensions the pool covers.
func (p *TilePool) Size() (width, height int) {
	return p.width, p.height
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
