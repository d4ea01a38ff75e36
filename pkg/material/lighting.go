package material

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
)

// Lighting computes one light's Phong contribution at point on obj. The
// result is not clamped.
func Lighting(m Material, light *lights.PointLight, obj Object, point, eyev, normalv mgl64.Vec4, inShadow bool) core.Color {
	effectiveColor := m.BaseColor(obj, point).Blend(light.Intensity)
	ambient := effectiveColor.Multiply(m.Ambient)

	lightv := light.Position.Sub(point).Normalize()
	lightDotNormal := lightv.Dot(normalv)

	// Light on the other side of the surface, or blocked
	if inShadow || lightDotNormal < 0 {
		return ambient
	}

	diffuse := effectiveColor.Multiply(m.Diffuse * lightDotNormal)

	specular := core.Black
	reflectv := core.Reflect(lightv.Mul(-1), normalv)
	if reflectDotEye := reflectv.Dot(eyev); reflectDotEye > 0 {
		factor := math.Pow(reflectDotEye, m.Shininess)
		specular = light.Intensity.Multiply(m.Specular * factor)
	}

	return ambient.Add(diffuse).Add(specular)
}
