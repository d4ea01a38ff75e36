package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// intersectSphere solves the ray/unit-sphere quadratic in object space.
// A tangent ray reports the same t twice.
func (s *Shape) intersectSphere(ray core.Ray, xs *Intersections) error {
	sphereToRay := ray.Origin.Sub(core.Point(0, 0, 0))

	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(sphereToRay)
	c := sphereToRay.Dot(sphereToRay) - 1

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	if err := xs.Insert((-b-sqrtD)/(2*a), s); err != nil {
		return err
	}
	return xs.Insert((-b+sqrtD)/(2*a), s)
}

func sphereNormal(p mgl64.Vec4) mgl64.Vec4 {
	return p.Sub(core.Point(0, 0, 0))
}
