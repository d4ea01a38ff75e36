package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// NewDefaultScene renders the default world from slightly above, looking at
// the spheres
func NewDefaultScene(width, height int) (*Scene, error) {
	camera, err := newLookAtCamera(width, height, math.Pi/3,
		core.Point(0, 1.5, -5), // Eye above and in front of the spheres
		core.Point(0, 0, 0),    // Look at their common center
	)
	if err != nil {
		return nil, err
	}

	return &Scene{
		Name:   "default",
		World:  DefaultWorld(),
		Camera: camera,
	}, nil
}

// newLookAtCamera creates a camera at from looking toward to with +y up
func newLookAtCamera(width, height int, fov float64, from, to mgl64.Vec4) (*geometry.Camera, error) {
	camera, err := geometry.NewCamera(width, height, fov)
	if err != nil {
		return nil, err
	}
	if err := camera.SetTransform(transform.ViewTransform(from, to, core.Vector(0, 1, 0))); err != nil {
		return nil, err
	}
	return camera, nil
}
