// Command fractalview is an interactive deep-zoom Mandelbrot viewer.
//
// Controls:
//
//	wheel          zoom the preview about its center
//	left click     center the view on the clicked point
//	enter, space   render the previewed rectangle
//	B              toggle between the float64 and math/big backends
//	+, -           double or halve the iteration budget
//	R              reset to the initial view
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/fractal"
	"github.com/gogpu/fractal/numeric"
)

func main() {
	var (
		width   = flag.Int("width", 960, "render width in pixels")
		height  = flag.Int("height", 640, "render height in pixels")
		iter    = flag.Int("iter", fractal.DefaultIterations, "initial iteration budget")
		threads = flag.Int("threads", runtime.NumCPU(), "render workers")
		prec    = flag.Uint("prec", numeric.DefaultPrecision, "mantissa bits of the exact backend")
		mode    = flag.String("mode", "fast", "numeric backend: fast or exact")
		verbose = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	m, err := numeric.ParseMode(*mode)
	if err != nil {
		log.Fatalf("Invalid -mode: %v", err)
	}

	e := fractal.New(
		fractal.WithPrecision(*prec),
		fractal.WithIterations(*iter),
	)
	if err := e.ConfigureWindow(*width, *height); err != nil {
		log.Fatalf("Failed to configure window: %v", err)
	}
	if err := e.SelectBackend(m); err != nil {
		log.Fatalf("Failed to select backend: %v", err)
	}

	v := newViewer(e, *iter, *threads)
	v.startRender()

	ebiten.SetWindowTitle("fractalview")
	ebiten.SetWindowSize(*width, *height)
	ebiten.SetTPS(60)
	if err := ebiten.RunGame(v); err != nil {
		log.Fatalf("Viewer stopped: %v", err)
	}
}
