package material

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Refractive indices of common media
const (
	RefractiveVacuum  = 1.0
	RefractiveAir     = 1.00029
	RefractiveWater   = 1.333
	RefractiveGlass   = 1.52
	RefractiveDiamond = 2.417
)

// Material holds the Phong coefficients and the reflection/refraction
// properties of a surface. When Pattern is set it takes precedence over
// Color.
type Material struct {
	Color           core.Color
	Pattern         ColorSampler
	Ambient         float64
	Diffuse         float64
	Specular        float64
	Shininess       float64
	Reflective      float64 // 0 = matte, 1 = perfect mirror
	Transparency    float64 // 0 = opaque, 1 = fully transparent
	RefractiveIndex float64 // Must be > 0
}

// NewMaterial returns the default material: white, slightly ambient, fully
// opaque and non-reflective, in vacuum
func NewMaterial() Material {
	return Material{
		Color:           core.White,
		Ambient:         0.1,
		Diffuse:         0.9,
		Specular:        0.9,
		Shininess:       200.0,
		Reflective:      0.0,
		Transparency:    0.0,
		RefractiveIndex: RefractiveVacuum,
	}
}

// NewGlass returns a fully transparent material with the given refractive index
func NewGlass(refractiveIndex float64) Material {
	m := NewMaterial()
	m.Transparency = 1.0
	m.RefractiveIndex = refractiveIndex
	return m
}

// IsReflective reports whether the surface reflects anything
func (m Material) IsReflective() bool {
	return !core.ApproxEqual(m.Reflective, 0)
}

// IsTransparent reports whether the surface transmits anything
func (m Material) IsTransparent() bool {
	return !core.ApproxEqual(m.Transparency, 0)
}

// BaseColor resolves the surface color at a world point on obj: the pattern
// when present, otherwise the flat color
func (m Material) BaseColor(obj Object, worldPoint mgl64.Vec4) core.Color {
	if m.Pattern != nil {
		return m.Pattern.ColorAt(obj, worldPoint)
	}
	return m.Color
}
