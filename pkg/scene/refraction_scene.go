package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// NewRefractionScene creates a glass sphere holding an air bubble, sitting on
// a checkered floor in front of a mirror
func NewRefractionScene(width, height int) (*Scene, error) {
	camera, err := newLookAtCamera(width, height, math.Pi/3,
		core.Point(0, 2.5, -6),
		core.Point(0, 1, 0),
	)
	if err != nil {
		return nil, err
	}

	w := NewWorld(DefaultLimits())
	if err := w.AddLight(lights.NewPointLight(core.Point(-4, 8, -8), core.White)); err != nil {
		return nil, err
	}

	// Checkered floor, slightly reflective
	checker := material.NewPattern(material.Checker, core.NewColor(0.9, 0.9, 0.9), core.NewColor(0.15, 0.15, 0.2))
	floor := geometry.NewPlane()
	floor.Material.Pattern = checker
	floor.Material.Specular = 0
	floor.Material.Reflective = 0.15

	// Mirror wall behind the spheres
	mirror := geometry.NewCube()
	if err := mirror.SetTransform(transform.Chain(
		transform.Scaling(4, 3, 0.05),
		transform.Translation(0, 3, 4),
	)); err != nil {
		return nil, err
	}
	mirror.Material.Color = core.NewColor(0.05, 0.05, 0.05)
	mirror.Material.Diffuse = 0.1
	mirror.Material.Reflective = 0.9

	// Glass sphere with a hollow air center; neither blocks the light
	glass := geometry.NewGlassSphere()
	if err := glass.SetTransform(transform.Translation(0, 1, 0)); err != nil {
		return nil, err
	}
	glass.Material.Color = core.NewColor(0.05, 0.05, 0.05)
	glass.Material.Diffuse = 0.1
	glass.Material.Reflective = 0.9
	glass.Material.Shininess = 300
	glass.Material.RefractiveIndex = material.RefractiveGlass
	glass.CastsShadow = false

	bubble := geometry.NewGlassSphere()
	if err := bubble.SetTransform(transform.Chain(
		transform.Scaling(0.5, 0.5, 0.5),
		transform.Translation(0, 1, 0),
	)); err != nil {
		return nil, err
	}
	bubble.Material = glass.Material
	bubble.Material.RefractiveIndex = material.RefractiveAir
	bubble.CastsShadow = false

	// Solid red ball to the side, seen through the glass
	ball := geometry.NewSphere()
	if err := ball.SetTransform(transform.Chain(
		transform.Scaling(0.6, 0.6, 0.6),
		transform.Translation(1.8, 0.6, 1.5),
	)); err != nil {
		return nil, err
	}
	ball.Material.Color = core.NewColor(0.8, 0.2, 0.15)
	ball.Material.Specular = 0.4

	for _, s := range []*geometry.Shape{floor, mirror, glass, bubble, ball} {
		if err := w.AddShape(s); err != nil {
			return nil, err
		}
	}

	return &Scene{
		Name:   "refraction",
		World:  w,
		Camera: camera,
		Render: RenderSettings{MaxDepth: 6},
	}, nil
}
