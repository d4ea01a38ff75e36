package renderer

import (
	"fmt"
	"io"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// writerLogger implements core.Logger on top of an io.Writer
type writerLogger struct {
	w io.Writer
}

func (wl writerLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.w, format, args...)
}

// NewWriterLogger creates a logger that writes to w. io.Discard silences it.
func NewWriterLogger(w io.Writer) core.Logger {
	return writerLogger{w: w}
}

// RenderScene renders s with config, after applying the scene's own render
// settings
func RenderScene(s *scene.Scene, config Config, logger core.Logger) (*canvas.Canvas, RenderStats, error) {
	return Render(s.Camera, s.World, MergeConfig(config, s.Render), logger)
}

// Render traces one ray through the center of every pixel of camera and
// returns the resulting canvas. The image is identical for any worker count.
// The first tile error aborts the render.
func Render(camera *geometry.Camera, world *scene.World, config Config, logger core.Logger) (*canvas.Canvas, RenderStats, error) {
	if logger == nil {
		logger = NewWriterLogger(io.Discard)
	}
	if err := config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}

	width, height := camera.HSize(), camera.VSize()
	tiles := NewTileGrid(width, height, config.TileSize)
	numWorkers := min(config.workers(), len(tiles))

	logger.Printf("Rendering %dx%d (%d tiles, %d workers, max depth %d)...\n",
		width, height, len(tiles), numWorkers, config.MaxDepth)

	startTime := time.Now()
	img := canvas.New(width, height)
	stats := RenderStats{Width: width, Height: height, Workers: numWorkers}

	var err error
	if numWorkers <= 1 {
		err = renderSequential(camera, world, config, tiles, img, &stats)
	} else {
		err = renderParallel(camera, world, config, numWorkers, tiles, img, &stats)
	}
	if err != nil {
		return nil, RenderStats{}, err
	}

	stats.Duration = time.Since(startTime)
	stats.AverageLuminance = CalculateAverageLuminance(img)

	logger.Printf("Render completed in %v (%d pixels, %d rays, %.1f rays/pixel)\n",
		stats.Duration, stats.TotalPixels, stats.RaysTraced, stats.RaysPerPixel())

	return img, stats, nil
}

// renderSequential renders every tile on the calling goroutine
func renderSequential(camera *geometry.Camera, world *scene.World, config Config, tiles []*Tile, img *canvas.Canvas, stats *RenderStats) error {
	raytracer, err := NewRaytracer(world, config)
	if err != nil {
		return err
	}
	tr := NewTileRenderer(camera, raytracer)

	for _, tile := range tiles {
		tileStats, err := tr.RenderTileBounds(tile.Bounds, img)
		if err != nil {
			return fmt.Errorf("tile %d: %w", tile.ID, err)
		}
		stats.Add(tileStats)
	}
	return nil
}

// renderParallel spreads the tiles over a worker pool
func renderParallel(camera *geometry.Camera, world *scene.World, config Config, numWorkers int, tiles []*Tile, img *canvas.Canvas, stats *RenderStats) error {
	pool, err := NewWorkerPool(world, camera, config, numWorkers, len(tiles))
	if err != nil {
		return err
	}
	pool.Start()
	defer pool.Stop()

	// Submit all tiles as tasks
	for i, tile := range tiles {
		pool.SubmitTask(TileTask{Tile: tile, TaskID: i, Canvas: img})
	}

	// Collect results; queues are sized for every tile so an early return
	// cannot block the workers
	for i := 0; i < len(tiles); i++ {
		result, ok := pool.GetResult()
		if !ok {
			return fmt.Errorf("worker pool closed unexpectedly")
		}
		if result.Error != nil {
			return fmt.Errorf("tile %d: %w", tiles[result.TaskID].ID, result.Error)
		}
		stats.Add(result.Stats)
	}
	return nil
}
