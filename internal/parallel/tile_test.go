package parallel

import (
	"image"
	"testing"
)

// =============================================================================
// Tile Tests
// =============================================================================

func TestTile_Bounds(t *testing.T) {
	tests := []struct {
		name         string
		tile         Tile
		wantX, wantY int
		wantW, wantH int
	}{
		{
			name:  "first tile",
			tile:  Tile{X0: 0, Y0: 0, X1: 30, Y1: 20},
			wantX: 0, wantY: 0, wantW: 30, wantH: 20,
		},
		{
			name:  "edge tile",
			tile:  Tile{X0: 270, Y0: 180, X1: 305, Y1: 203},
			wantX: 270, wantY: 180, wantW: 35, wantH: 23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, w, h := tt.tile.Bounds()
			if x != tt.wantX || y != tt.wantY || w != tt.wantW || h != tt.wantH {
				t.Errorf("Bounds() = (%d,%d,%d,%d), want (%d,%d,%d,%d)",
					x, y, w, h, tt.wantX, tt.wantY, tt.wantW, tt.wantH)
			}
			if tt.tile.Pixels() != tt.wantW*tt.wantH {
				t.Errorf("Pixels() = %d, want %d", tt.tile.Pixels(), tt.wantW*tt.wantH)
			}
		})
	}
}

func TestTile_Contains(t *testing.T) {
	tile := Tile{X0: 10, Y0: 20, X1: 15, Y1: 25}
	tests := []struct {
		x, y int
		want bool
	}{
		{10, 20, true},
		{14, 24, true},
		{15, 24, false},
		{14, 25, false},
		{9, 20, false},
	}
	for _, tt := range tests {
		if got := tile.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestTile_Rect(t *testing.T) {
	tile := Tile{X0: 1, Y0: 2, X1: 3, Y1: 4}
	if tile.Rect() != image.Rect(1, 2, 3, 4) {
		t.Errorf("Rect() = %v, want %v", tile.Rect(), image.Rect(1, 2, 3, 4))
	}
}

// =============================================================================
// TilePool Construction Tests
// =============================================================================

// checkCover verifies that the pool's tiles are pairwise disjoint and cover
// [0,w) x [0,h) exactly.
func checkCover(t *testing.T, p *TilePool, w, h int) {
	t.Helper()

	owner := make([]int, w*h)
	for i := range owner {
		owner[i] = -1
	}
	for _, tile := range p.Tiles() {
		if tile.Width() <= 0 || tile.Height() <= 0 {
			t.Fatalf("empty tile %+v for %dx%d", tile, w, h)
		}
		for y := tile.Y0; y < tile.Y1; y++ {
			for x := tile.X0; x < tile.X1; x++ {
				if x < 0 || x >= w || y < 0 || y >= h {
					t.Fatalf("tile %+v leaves the %dx%d image", tile, w, h)
				}
				if prev := owner[y*w+x]; prev != -1 {
					t.Fatalf("pixel (%d,%d) in tiles %d and %d", x, y, prev, tile.Index)
				}
				owner[y*w+x] = tile.Index
			}
		}
	}
	for i, o := range owner {
		if o == -1 {
			t.Fatalf("pixel (%d,%d) not covered for %dx%d", i%w, i/w, w, h)
		}
	}
}

func TestNewTilePool_Coverage(t *testing.T) {
	tests := []struct {
		w, h, gx, gy int
	}{
		{300, 200, 10, 10},
		{301, 203, 10, 10},
		{64, 64, 1, 1},
		{7, 5, 10, 10},
		{1, 1, 10, 10},
		{1000, 3, 10, 10},
		{97, 89, 7, 13},
		{10, 10, 0, -3},
	}
	for _, tt := range tests {
		p := NewTilePool(tt.w, tt.h, tt.gx, tt.gy)
		checkCover(t, p, tt.w, tt.h)
	}
}

func TestNewTilePool_Exhaustive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping exhaustive coverage in short mode")
	}
	for w := 1; w <= 24; w++ {
		for h := 1; h <= 24; h++ {
			for g := 1; g <= 12; g += 3 {
				checkCover(t, NewTilePool(w, h, g, g+1), w, h)
			}
		}
	}
}

func TestNewTilePool_DefaultGrid(t *testing.T) {
	p := NewTilePool(300, 200, DefaultGridX, DefaultGridY)
	if p.Len() != 100 {
		t.Errorf("Len() = %d, want 100", p.Len())
	}
	if gx, gy := p.Grid(); gx != 10 || gy != 10 {
		t.Errorf("Grid() = (%d, %d), want (10, 10)", gx, gy)
	}
	if w, h := p.Size(); w != 300 || h != 200 {
		t.Errorf("Size() = (%d, %d), want (300, 200)", w, h)
	}
}

func TestNewTilePool_RemainderInLastTile(t *testing.T) {
	p := NewTilePool(305, 207, 10, 10)
	tiles := p.Tiles()

	first := tiles[0]
	if first.Width() != 30 || first.Height() != 20 {
		t.Errorf("first tile = %dx%d, want 30x20", first.Width(), first.Height())
	}
	last := tiles[len(tiles)-1]
	if last.Width() != 35 || last.Height() != 27 {
		t.Errorf("last tile = %dx%d, want 35x27", last.Width(), last.Height())
	}
}

func TestNewTilePool_ClampsGrid(t *testing.T) {
	p := NewTilePool(3, 2, 10, 10)
	if gx, gy := p.Grid(); gx != 3 || gy != 2 {
		t.Errorf("Grid() = (%d, %d), want (3, 2)", gx, gy)
	}
	if p.Len() != 6 {
		t.Errorf("Len() = %d, want 6", p.Len())
	}
}

func TestNewTilePool_Empty(t *testing.T) {
	for _, dims := range [][2]int{{0, 10}, {10, 0}, {-1, -1}} {
		p := NewTilePool(dims[0], dims[1], 10, 10)
		if p.Len() != 0 {
			t.Errorf("NewTilePool(%d, %d).Len() = %d, want 0", dims[0], dims[1], p.Len())
		}
		if _, ok := p.Claim(); ok {
			t.Errorf("Claim() on empty pool returned a tile")
		}
	}
}

func TestNewTilePool_RowMajorIndex(t *testing.T) {
	p := NewTilePool(40, 40, 4, 4)
	for i, tile := range p.Tiles() {
		if tile.Index != i {
			t.Fatalf("tile %d has Index %d", i, tile.Index)
		}
		if tile.X0 != (i%4)*10 || tile.Y0 != (i/4)*10 {
			t.Errorf("tile %d at (%d,%d), want (%d,%d)", i, tile.X0, tile.Y0, (i%4)*10, (i/4)*10)
		}
	}
}
