package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// intersectCone hits the double cone x²+z²=y² between Minimum and Maximum,
// then the caps when closed. A cap's radius equals |y| at its level.
func (s *Shape) intersectCone(ray core.Ray, xs *Intersections) error {
	ox, oy, oz := ray.Origin.X(), ray.Origin.Y(), ray.Origin.Z()
	dx, dy, dz := ray.Direction.X(), ray.Direction.Y(), ray.Direction.Z()

	a := dx*dx - dy*dy + dz*dz
	b := 2*ox*dx - 2*oy*dy + 2*oz*dz
	c := ox*ox - oy*oy + oz*oz

	switch {
	case math.Abs(a) < core.Epsilon && math.Abs(b) < core.Epsilon:
		// Parallel to the surface and passing through the apex region: no wall hit
	case math.Abs(a) < core.Epsilon:
		// Parallel to one nappe: a single crossing of the other
		if err := s.insertWithinBounds(ray, xs, -c/(2*b)); err != nil {
			return err
		}
	default:
		discriminant := b*b - 4*a*c
		if discriminant < 0 {
			// Rounding can push a tangent ray slightly negative
			if discriminant < -core.Epsilon {
				break
			}
			discriminant = 0
		}

		sqrtD := math.Sqrt(discriminant)
		t0 := (-b - sqrtD) / (2 * a)
		t1 := (-b + sqrtD) / (2 * a)
		if err := s.insertWithinBounds(ray, xs, t0, t1); err != nil {
			return err
		}
	}

	return s.intersectCaps(ray, xs, math.Abs)
}

func (s *Shape) coneNormal(p mgl64.Vec4) mgl64.Vec4 {
	dist := p.X()*p.X() + p.Z()*p.Z()

	if p.Y() >= s.Maximum-core.Epsilon && dist < s.Maximum*s.Maximum {
		return core.Vector(0, 1, 0)
	}
	if p.Y() <= s.Minimum+core.Epsilon && dist < s.Minimum*s.Minimum {
		return core.Vector(0, -1, 0)
	}

	y := math.Sqrt(dist)
	if p.Y() > 0 {
		y = -y
	}
	return core.Vector(p.X(), y, p.Z())
}
