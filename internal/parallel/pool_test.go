package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

// =============================================================================
// Claim Tests
// =============================================================================

func TestTilePool_ClaimSequential(t *testing.T) {
	p := NewTilePool(100, 100, 5, 5)
	for i := 0; i < 25; i++ {
		tile, ok := p.Claim()
		if !ok {
			t.Fatalf("Claim() #%d = false, want true", i)
		}
		if tile.Index != i {
			t.Errorf("Claim() #%d returned tile %d", i, tile.Index)
		}
		if p.Remaining() != 25-i-1 {
			t.Errorf("Remaining() = %d, want %d", p.Remaining(), 25-i-1)
		}
	}
	for i := 0; i < 3; i++ {
		if _, ok := p.Claim(); ok {
			t.Error("Claim() after exhaustion returned a tile")
		}
	}
	if p.Remaining() != 0 {
		t.Errorf("Remaining() = %d, want 0", p.Remaining())
	}
}

func TestTilePool_ClaimConcurrent(t *testing.T) {
	const claimers = 32
	p := NewTilePool(1920, 1080, 10, 10)

	seen := make([]atomic.Int32, p.Len())
	var successes atomic.Int64
	var wg sync.WaitGroup
	wg.Add(claimers)
	for range claimers {
		go func() {
			defer wg.Done()
			for {
				tile, ok := p.Claim()
				if !ok {
					return
				}
				seen[tile.Index].Add(1)
				successes.Add(1)
			}
		}()
	}
	wg.Wait()

	if successes.Load() != int64(p.Len()) {
		t.Errorf("successful claims = %d, want %d", successes.Load(), p.Len())
	}
	for i := range seen {
		if n := seen[i].Load(); n != 1 {
			t.Errorf("tile %d claimed %d times", i, n)
		}
	}
	if _, ok := p.Claim(); ok {
		t.Error("Claim() after concurrent exhaustion returned a tile")
	}
}

// =============================================================================
// Run Tests
// =============================================================================

func TestRun_VisitsEveryTileOnce(t *testing.T) {
	for _, workers := range []int{1, 4, 16, 200} {
		p := NewTilePool(300, 200, 10, 10)
		visits := make([]atomic.Int32, p.Len())

		counts := Run(workers, p, func(_ int, tile Tile) {
			visits[tile.Index].Add(1)
		})

		if len(counts) != workers {
			t.Errorf("workers=%d: len(counts) = %d", workers, len(counts))
		}
		total := 0
		for _, c := range counts {
			total += c
		}
		if total != p.Len() {
			t.Errorf("workers=%d: processed %d tiles, want %d", workers, total, p.Len())
		}
		for i := range visits {
			if n := visits[i].Load(); n != 1 {
				t.Errorf("workers=%d: tile %d visited %d times", workers, i, n)
			}
		}
	}
}

func TestRun_ZeroWorkers(t *testing.T) {
	p := NewTilePool(10, 10, 2, 2)
	var n atomic.Int32
	counts := Run(0, p, func(int, Tile) { n.Add(1) })
	if len(counts) != 1 {
		t.Errorf("len(counts) = %d, want 1", len(counts))
	}
	if n.Load() != 4 {
		t.Errorf("visited %d tiles, want 4", n.Load())
	}
}

func TestRun_WorkerIDs(t *testing.T) {
	p := NewTilePool(64, 64, 8, 8)
	var mu sync.Mutex
	ids := make(map[int]bool)
	Run(3, p, func(w int, _ Tile) {
		mu.Lock()
		ids[w] = true
		mu.Unlock()
	})
	for id := range ids {
		if id < 0 || id >= 3 {
			t.Errorf("worker id %d out of range [0,3)", id)
		}
	}
}

func TestRun_DisjointWrites(t *testing.T) {
	const w, h = 257, 131
	p := NewTilePool(w, h, 10, 10)
	buf := make([]byte, w*h)

	Run(8, p, func(_ int, tile Tile) {
		for y := tile.Y0; y < tile.Y1; y++ {
			for x := tile.X0; x < tile.X1; x++ {
				buf[y*w+x]++
			}
		}
	})

	for i, v := range buf {
		if v != 1 {
			t.Fatalf("pixel %d written %d times", i, v)
		}
	}
}
