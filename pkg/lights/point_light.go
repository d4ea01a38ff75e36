package lights

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight is a light source with no size, radiating equally in all
// directions from a single point
type PointLight struct {
	Position  mgl64.Vec4 // World-space point (w = 1)
	Intensity core.Color // Brightness and color of the light
}

// NewPointLight creates a point light at position with the given intensity
func NewPointLight(position mgl64.Vec4, intensity core.Color) *PointLight {
	return &PointLight{
		Position:  position,
		Intensity: intensity,
	}
}

// DirectionFrom returns the unit vector from p toward the light and the
// distance between them
func (l *PointLight) DirectionFrom(p mgl64.Vec4) (mgl64.Vec4, float64) {
	v := l.Position.Sub(p)
	distance := v.Len()
	return v.Mul(1 / distance), distance
}
