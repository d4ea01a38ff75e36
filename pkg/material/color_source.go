package material

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Object is the part of a shape a material needs: its world-to-object
// transform. Declared here to avoid an import cycle with geometry.
type Object interface {
	InverseTransform() mgl64.Mat4
}

// ColorSampler provides spatially-varying colors for materials. Sampling is
// pure: the same object and world point always give the same color.
type ColorSampler interface {
	ColorAt(obj Object, worldPoint mgl64.Vec4) core.Color
}

// SolidColor provides a uniform color through the ColorSampler interface
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// ColorAt returns the solid color regardless of object or position
func (s *SolidColor) ColorAt(obj Object, worldPoint mgl64.Vec4) core.Color {
	return s.Color
}
