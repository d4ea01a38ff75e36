package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// intersectPlane hits the y = 0 plane. Rays parallel to or lying in the
// plane miss.
func (s *Shape) intersectPlane(ray core.Ray, xs *Intersections) error {
	if math.Abs(ray.Direction.Y()) < core.Epsilon {
		return nil
	}
	return xs.Insert(-ray.Origin.Y()/ray.Direction.Y(), s)
}

func planeNormal(mgl64.Vec4) mgl64.Vec4 {
	return core.Vector(0, 1, 0)
}
