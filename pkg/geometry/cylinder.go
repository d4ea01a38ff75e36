package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// intersectCylinder hits the wall x²+z²=1 between Minimum and Maximum
// (exclusive), then the end caps when the cylinder is closed.
func (s *Shape) intersectCylinder(ray core.Ray, xs *Intersections) error {
	dx, dz := ray.Direction.X(), ray.Direction.Z()
	ox, oz := ray.Origin.X(), ray.Origin.Z()

	a := dx*dx + dz*dz

	// Rays parallel to the y axis can only hit the caps
	if math.Abs(a) >= core.Epsilon {
		b := 2*ox*dx + 2*oz*dz
		c := ox*ox + oz*oz - 1

		discriminant := b*b - 4*a*c
		if discriminant >= 0 {
			sqrtD := math.Sqrt(discriminant)
			t0 := (-b - sqrtD) / (2 * a)
			t1 := (-b + sqrtD) / (2 * a)
			if err := s.insertWithinBounds(ray, xs, t0, t1); err != nil {
				return err
			}
		}
	}

	return s.intersectCaps(ray, xs, func(float64) float64 { return 1 })
}

// insertWithinBounds keeps the candidates whose y lies strictly inside the
// shape's extent
func (s *Shape) insertWithinBounds(ray core.Ray, xs *Intersections, ts ...float64) error {
	for _, t := range ts {
		y := ray.Origin.Y() + t*ray.Direction.Y()
		if s.Minimum < y && y < s.Maximum {
			if err := xs.Insert(t, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// intersectCaps tests the finite planes y=Minimum and y=Maximum of a closed
// shape.
// radius gives the cap radius at a given y level.
func (s *Shape) intersectCaps(ray core.Ray, xs *Intersections, radius func(y float64) float64) error {
	if !s.Closed || math.Abs(ray.Direction.Y()) < core.Epsilon {
		return nil
	}

	for _, y := range [2]float64{s.Minimum, s.Maximum} {
		// An unbounded end has no cap
		if math.IsInf(y, 0) {
			continue
		}
		t := (y - ray.Origin.Y()) / ray.Direction.Y()
		if checkCap(ray, t, radius(y)) {
			if err := xs.Insert(t, s); err != nil {
				return err
			}
		}
	}
	return nil
}

// checkCap reports whether the ray at t lies within radius of the y axis
func checkCap(ray core.Ray, t, radius float64) bool {
	x := ray.Origin.X() + t*ray.Direction.X()
	z := ray.Origin.Z() + t*ray.Direction.Z()
	return x*x+z*z <= radius*radius
}

func (s *Shape) cylinderNormal(p mgl64.Vec4) mgl64.Vec4 {
	dist := p.X()*p.X() + p.Z()*p.Z()

	if dist < 1 && p.Y() >= s.Maximum-core.Epsilon {
		return core.Vector(0, 1, 0)
	}
	if dist < 1 && p.Y() <= s.Minimum+core.Epsilon {
		return core.Vector(0, -1, 0)
	}
	return core.Vector(p.X(), 0, p.Z())
}
