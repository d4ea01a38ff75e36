package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// NewShapesScene shows every primitive side by side, each with a different
// pattern, lit by two lights
func NewShapesScene(width, height int) (*Scene, error) {
	camera, err := newLookAtCamera(width, height, math.Pi/3,
		core.Point(0, 3, -8),
		core.Point(0, 0.8, 0),
	)
	if err != nil {
		return nil, err
	}

	w := NewWorld(DefaultLimits())
	for _, l := range []*lights.PointLight{
		lights.NewPointLight(core.Point(-6, 10, -10), core.NewColor(0.8, 0.8, 0.8)),
		lights.NewPointLight(core.Point(6, 6, -6), core.NewColor(0.3, 0.3, 0.35)),
	} {
		if err := w.AddLight(l); err != nil {
			return nil, err
		}
	}

	// Striped floor
	stripes := material.NewPattern(material.Stripe, core.NewColor(0.85, 0.85, 0.8), core.NewColor(0.55, 0.55, 0.5))
	if err := stripes.SetTransform(transform.RotationY(math.Pi / 4)); err != nil {
		return nil, err
	}
	floor := geometry.NewPlane()
	floor.Material.Pattern = stripes
	floor.Material.Specular = 0

	// Gradient cube, turned toward the camera
	gradient := material.NewPattern(material.Gradient, core.NewColor(0.9, 0.3, 0.2), core.NewColor(0.2, 0.3, 0.9))
	if err := gradient.SetTransform(transform.Chain(
		transform.Translation(1, 0, 0),
		transform.Scaling(2, 1, 1),
	)); err != nil {
		return nil, err
	}
	cube := geometry.NewCube()
	if err := cube.SetTransform(transform.Chain(
		transform.Scaling(0.7, 0.7, 0.7),
		transform.RotationY(math.Pi/6),
		transform.Translation(-3, 0.7, 0.5),
	)); err != nil {
		return nil, err
	}
	cube.Material.Pattern = gradient

	// Closed cylinder with a ring pattern on its caps and wall
	rings := material.NewPattern(material.Ring, core.NewColor(0.2, 0.6, 0.3), core.NewColor(0.9, 0.9, 0.6))
	if err := rings.SetTransform(transform.Scaling(0.2, 0.2, 0.2)); err != nil {
		return nil, err
	}
	cylinder := geometry.NewCylinder()
	cylinder.Minimum = 0
	cylinder.Maximum = 1.5
	cylinder.Closed = true
	if err := cylinder.SetTransform(transform.Chain(
		transform.Scaling(0.6, 1, 0.6),
		transform.Translation(-1, 0, 0),
	)); err != nil {
		return nil, err
	}
	cylinder.Material.Pattern = rings

	// Closed cone standing on its tip cut off at the base
	cone := geometry.NewCone()
	cone.Minimum = -1
	cone.Maximum = 0
	cone.Closed = true
	if err := cone.SetTransform(transform.Chain(
		transform.Scaling(0.7, 1.5, 0.7),
		transform.Translation(1, 1.5, 0),
	)); err != nil {
		return nil, err
	}
	cone.Material.Color = core.NewColor(0.95, 0.75, 0.2)
	cone.Material.Shininess = 50

	// Mirror sphere with a checker pattern to show the reflections
	checker := material.NewPattern(material.Checker, core.NewColor(0.1, 0.1, 0.1), core.NewColor(0.4, 0.4, 0.45))
	if err := checker.SetTransform(transform.Scaling(0.25, 0.25, 0.25)); err != nil {
		return nil, err
	}
	sphere := geometry.NewSphere()
	if err := sphere.SetTransform(transform.Chain(
		transform.Scaling(0.8, 0.8, 0.8),
		transform.Translation(3, 0.8, 0.5),
	)); err != nil {
		return nil, err
	}
	sphere.Material.Pattern = checker
	sphere.Material.Reflective = 0.5

	for _, s := range []*geometry.Shape{floor, cube, cylinder, cone, sphere} {
		if err := w.AddShape(s); err != nil {
			return nil, err
		}
	}

	return &Scene{
		Name:   "shapes",
		World:  w,
		Camera: camera,
	}, nil
}
