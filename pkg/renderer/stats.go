package renderer

import (
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Width            int           // Image width in pixels
	Height           int           // Image height in pixels
	TotalPixels      int           // Total number of pixels rendered
	RaysTraced       int           // Camera, secondary and shadow rays cast
	Tiles            int           // Number of tiles rendered
	Workers          int           // Number of workers used
	Duration         time.Duration // Wall-clock render time
	AverageLuminance float64       // Mean luminance of the clamped image
}

// Add accumulates the per-tile counters of other into s
func (s *RenderStats) Add(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.RaysTraced += other.RaysTraced
	s.Tiles += other.Tiles
}

// TimePerPixel returns the average wall-clock time spent on each pixel
func (s RenderStats) TimePerPixel() time.Duration {
	if s.TotalPixels == 0 {
		return 0
	}
	return s.Duration / time.Duration(s.TotalPixels)
}

// RaysPerPixel returns the average number of rays cast for each pixel
func (s RenderStats) RaysPerPixel() float64 {
	if s.TotalPixels == 0 {
		return 0
	}
	return float64(s.RaysTraced) / float64(s.TotalPixels)
}

// CalculateAverageLuminance returns the mean luminance of the canvas with
// each component clamped to 0..1
func CalculateAverageLuminance(c *canvas.Canvas) float64 {
	total := c.Width() * c.Height()
	if total == 0 {
		return 0
	}

	sum := 0.0
	for y := 0; y < c.Height(); y++ {
		for x := 0; x < c.Width(); x++ {
			sum += c.At(x, y).Clamp(0, 1).Luminance()
		}
	}
	return sum / float64(total)
}
