package scene

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

var (
	// ErrTooManyObjects is returned by AddShape once MaxObjects is reached
	ErrTooManyObjects = errors.New("too many objects")
	// ErrTooManyLights is returned by AddLight once MaxLights is reached
	ErrTooManyLights = errors.New("too many lights")
)

// Limits bounds the size of a world and of the per-ray intersection buffer
type Limits struct {
	MaxObjects       int // Maximum number of shapes
	MaxLights        int // Maximum number of point lights
	MaxIntersections int // Capacity of the collection built for each ray
}

// DefaultLimits returns limits generous enough for the built-in scenes
func DefaultLimits() Limits {
	return Limits{
		MaxObjects:       512,
		MaxLights:        512,
		MaxIntersections: geometry.DefaultMaxIntersections,
	}
}

// World is the set of shapes and lights a ray is traced against. It is not
// modified during rendering, so concurrent reads are safe.
type World struct {
	limits Limits
	shapes []*geometry.Shape
	lights []*lights.PointLight
}

// NewWorld creates an empty world. Zero fields in limits take their default.
func NewWorld(limits Limits) *World {
	defaults := DefaultLimits()
	if limits.MaxObjects <= 0 {
		limits.MaxObjects = defaults.MaxObjects
	}
	if limits.MaxLights <= 0 {
		limits.MaxLights = defaults.MaxLights
	}
	if limits.MaxIntersections <= 0 {
		limits.MaxIntersections = defaults.MaxIntersections
	}

	return &World{
		limits: limits,
		shapes: make([]*geometry.Shape, 0),
		lights: make([]*lights.PointLight, 0),
	}
}

// Limits returns the limits the world was created with
func (w *World) Limits() Limits {
	return w.limits
}

// AddShape adds a shape. The world takes ownership of it.
func (w *World) AddShape(s *geometry.Shape) error {
	if len(w.shapes) >= w.limits.MaxObjects {
		return fmt.Errorf("%w: limit is %d", ErrTooManyObjects, w.limits.MaxObjects)
	}
	w.shapes = append(w.shapes, s)
	return nil
}

// AddLight adds a point light
func (w *World) AddLight(l *lights.PointLight) error {
	if len(w.lights) >= w.limits.MaxLights {
		return fmt.Errorf("%w: limit is %d", ErrTooManyLights, w.limits.MaxLights)
	}
	w.lights = append(w.lights, l)
	return nil
}

// Shapes returns the shapes in insertion order
func (w *World) Shapes() []*geometry.Shape {
	return w.shapes
}

// Lights returns the lights in insertion order
func (w *World) Lights() []*lights.PointLight {
	return w.lights
}

// Intersect collects every crossing of ray with every shape, sorted by t.
// Shapes added earlier win ties.
func (w *World) Intersect(ray core.Ray) (*geometry.Intersections, error) {
	xs := geometry.NewIntersections(w.limits.MaxIntersections)
	for _, s := range w.shapes {
		if err := s.Intersect(ray, xs); err != nil {
			return nil, fmt.Errorf("intersecting %s: %w", s, err)
		}
	}
	return xs, nil
}

// IsShadowed reports whether a shadow-casting shape lies strictly between
// point and the light
func (w *World) IsShadowed(light *lights.PointLight, point mgl64.Vec4) (bool, error) {
	direction, distance := light.DirectionFrom(point)

	xs, err := w.Intersect(core.NewRay(point, direction))
	if err != nil {
		return false, err
	}

	hit, ok := xs.ShadowHit()
	return ok && hit.T < distance, nil
}

// DefaultWorld returns the two concentric spheres lit from the upper left
// that the shading tests are written against
func DefaultWorld() *World {
	w := NewWorld(DefaultLimits())

	must(w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White)))

	outer := geometry.NewSphere()
	outer.Material.Color = core.NewColor(0.8, 1.0, 0.6)
	outer.Material.Diffuse = 0.7
	outer.Material.Specular = 0.2

	inner := geometry.NewSphere()
	must(inner.SetTransform(transform.Scaling(0.5, 0.5, 0.5)))

	must(w.AddShape(outer))
	must(w.AddShape(inner))
	return w
}

// must panics on errors that fixed scene construction cannot produce: the
// default limits hold it and every transform is invertible
func must(err error) {
	if err != nil {
		panic(fmt.Sprintf("scene: %v", err))
	}
}
