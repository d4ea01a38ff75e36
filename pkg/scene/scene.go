package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	World  *World
	Camera *geometry.Camera
	Render RenderSettings
}

// RenderSettings carries per-scene overrides of the renderer configuration.
// Zero fields mean "use the renderer default".
type RenderSettings struct {
	MaxDepth   int // Recursion limit for reflection and refraction rays
	TileSize   int // Edge length of a render tile in pixels
	NumWorkers int // Parallel tile workers (0 = one per CPU, 1 = sequential)
}

// ShapeCount returns the number of shapes in the scene
func (s *Scene) ShapeCount() int {
	return len(s.World.Shapes())
}

// LightCount returns the number of lights in the scene
func (s *Scene) LightCount() int {
	return len(s.World.Lights())
}
