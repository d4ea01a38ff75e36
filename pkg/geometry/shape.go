package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// ShapeKind identifies the primitive a Shape represents
type ShapeKind int

const (
	SphereKind ShapeKind = iota
	PlaneKind
	CubeKind
	CylinderKind
	ConeKind
)

func (k ShapeKind) String() string {
	switch k {
	case SphereKind:
		return "sphere"
	case PlaneKind:
		return "plane"
	case CubeKind:
		return "cube"
	case CylinderKind:
		return "cylinder"
	case ConeKind:
		return "cone"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is a primitive in canonical object space placed in the world by a
// transform. Two shapes are the same object only if they are the same pointer.
type Shape struct {
	Kind        ShapeKind
	Material    material.Material
	CastsShadow bool // Whether the shape blocks light for shadow rays

	// Cylinder and cone extent along y, and whether the ends are capped
	Minimum float64
	Maximum float64
	Closed  bool

	transform       mgl64.Mat4
	inverse         mgl64.Mat4 // Always the inverse of transform
	normalTransform mgl64.Mat4 // Transpose of inverse
}

func newShape(kind ShapeKind) *Shape {
	return &Shape{
		Kind:            kind,
		Material:        material.NewMaterial(),
		CastsShadow:     true,
		Minimum:         math.Inf(-1),
		Maximum:         math.Inf(1),
		transform:       mgl64.Ident4(),
		inverse:         mgl64.Ident4(),
		normalTransform: mgl64.Ident4(),
	}
}

// NewSphere creates a unit sphere centered at the origin
func NewSphere() *Shape {
	return newShape(SphereKind)
}

// NewGlassSphere creates a unit sphere made of fully transparent glass with
// refractive index 1.5
func NewGlassSphere() *Shape {
	s := newShape(SphereKind)
	s.Material = material.NewGlass(1.5)
	return s
}

// NewPlane creates the xz plane (y = 0)
func NewPlane() *Shape {
	return newShape(PlaneKind)
}

// NewCube creates an axis-aligned cube spanning -1..1 on every axis
func NewCube() *Shape {
	return newShape(CubeKind)
}

// NewCylinder creates an infinite, open cylinder of radius 1 around the y axis
func NewCylinder() *Shape {
	return newShape(CylinderKind)
}

// NewCone creates an infinite, open double cone with its apex at the origin
func NewCone() *Shape {
	return newShape(ConeKind)
}

// Transform returns the object-to-world transform
func (s *Shape) Transform() mgl64.Mat4 {
	return s.transform
}

// InverseTransform returns the cached world-to-object transform
func (s *Shape) InverseTransform() mgl64.Mat4 {
	return s.inverse
}

// SetTransform replaces the object-to-world transform and refreshes the
// cached inverse. A singular matrix is rejected and the shape is unchanged.
func (s *Shape) SetTransform(m mgl64.Mat4) error {
	inv, err := transform.Inverse(m)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Kind, err)
	}
	s.transform = m
	s.inverse = inv
	s.normalTransform = inv.Transpose()
	return nil
}

// Intersect appends every crossing of the world-space ray with the shape to
// xs. It fails only when xs runs out of capacity.
func (s *Shape) Intersect(ray core.Ray, xs *Intersections) error {
	local := ray.Transform(s.inverse)

	switch s.Kind {
	case SphereKind:
		return s.intersectSphere(local, xs)
	case PlaneKind:
		return s.intersectPlane(local, xs)
	case CubeKind:
		return s.intersectCube(local, xs)
	case CylinderKind:
		return s.intersectCylinder(local, xs)
	case ConeKind:
		return s.intersectCone(local, xs)
	default:
		panic(fmt.Sprintf("geometry: unknown shape kind %d", int(s.Kind)))
	}
}

// NormalAt returns the unit surface normal at a world-space point. Points
// where the surface has no normal (cone apex, shape center) report the
// transformed +y axis.
func (s *Shape) NormalAt(worldPoint mgl64.Vec4) mgl64.Vec4 {
	p := s.inverse.Mul4x1(worldPoint)

	var local mgl64.Vec4
	switch s.Kind {
	case SphereKind:
		local = sphereNormal(p)
	case PlaneKind:
		local = planeNormal(p)
	case CubeKind:
		local = cubeNormal(p)
	case CylinderKind:
		local = s.cylinderNormal(p)
	case ConeKind:
		local = s.coneNormal(p)
	default:
		panic(fmt.Sprintf("geometry: unknown shape kind %d", int(s.Kind)))
	}

	// Degenerate points such as the cone apex have no defined normal
	if local.Len() == 0 {
		local = core.Vector(0, 1, 0)
	}

	world := s.normalTransform.Mul4x1(local)
	world[3] = 0
	return core.Normalize(world)
}

// String returns a short description used in logs and errors
func (s *Shape) String() string {
	return fmt.Sprintf("%s@%p", s.Kind, s)
}
