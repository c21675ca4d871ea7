package fractal

import (
	"time"

	"github.com/gogpu/fractal/numeric"
)

// RenderStats describes the last completed render.
type RenderStats struct {
	Mode       numeric.Mode
	Iterations int
	Workers    int
	Tiles      int

	// PerWorker holds the number of tiles each worker claimed, indexed by
	// worker. Its sum equals Tiles.
	PerWorker []int

	Width, Height int
	Duration      time.Duration
}

// PixelsPerSecond returns the render throughput, or 0 before any render.
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Width*s.Height) / s.Duration.Seconds()
}
