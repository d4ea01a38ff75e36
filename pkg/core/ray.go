package core

import "github.com/go-gl/mathgl/mgl64"

// Ray represents a ray with a homogeneous origin point and direction vector
type Ray struct {
	Origin    mgl64.Vec4
	Direction mgl64.Vec4
}

// NewRay creates a new ray
func NewRay(origin, direction mgl64.Vec4) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) mgl64.Vec4 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Transform returns a new ray with origin and direction multiplied by m
func (r Ray) Transform(m mgl64.Mat4) Ray {
	return Ray{
		Origin:    m.Mul4x1(r.Origin),
		Direction: m.Mul4x1(r.Direction),
	}
}
