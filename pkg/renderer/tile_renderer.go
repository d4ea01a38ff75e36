package renderer

import (
	"fmt"
	"image"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// TileRenderer handles the actual rendering of individual tiles
type TileRenderer struct {
	camera    *geometry.Camera
	raytracer *Raytracer
}

// NewTileRenderer creates a new tile renderer drawing through camera
func NewTileRenderer(camera *geometry.Camera, raytracer *Raytracer) *TileRenderer {
	return &TileRenderer{
		camera:    camera,
		raytracer: raytracer,
	}
}

// RenderTileBounds traces one ray per pixel within bounds and writes the
// results to c. Only pixels inside bounds are touched, so tiles with
// disjoint bounds may render into the same canvas concurrently.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, c *canvas.Canvas) (RenderStats, error) {
	raysBefore := tr.raytracer.RaysTraced()

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			color, err := tr.raytracer.TracePixelRay(tr.camera.RayForPixel(x, y))
			if err != nil {
				return RenderStats{}, fmt.Errorf("pixel (%d, %d): %w", x, y, err)
			}
			c.Write(x, y, color)
		}
	}

	return RenderStats{
		TotalPixels: bounds.Dx() * bounds.Dy(),
		RaysTraced:  tr.raytracer.RaysTraced() - raysBefore,
		Tiles:       1,
	}, nil
}
