package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// intersectCube runs the slab test against the -1..1 box on each axis
func (s *Shape) intersectCube(ray core.Ray, xs *Intersections) error {
	xMin, xMax := checkAxis(ray.Origin.X(), ray.Direction.X())
	yMin, yMax := checkAxis(ray.Origin.Y(), ray.Direction.Y())
	zMin, zMax := checkAxis(ray.Origin.Z(), ray.Direction.Z())

	tMin := math.Max(xMin, math.Max(yMin, zMin))
	tMax := math.Min(xMax, math.Min(yMax, zMax))
	if tMin > tMax {
		return nil
	}

	if err := xs.Insert(tMin, s); err != nil {
		return err
	}
	return xs.Insert(tMax, s)
}

// checkAxis returns the ray parameters where it enters and leaves one slab
func checkAxis(origin, direction float64) (float64, float64) {
	tMinNumerator := -1 - origin
	tMaxNumerator := 1 - origin

	var tMin, tMax float64
	if math.Abs(direction) >= core.Epsilon {
		tMin = tMinNumerator / direction
		tMax = tMaxNumerator / direction
	} else {
		// Parallel to the slab: either always inside it or never
		tMin = math.Copysign(math.Inf(1), tMinNumerator)
		tMax = math.Copysign(math.Inf(1), tMaxNumerator)
	}

	if tMin > tMax {
		tMin, tMax = tMax, tMin
	}
	return tMin, tMax
}

// cubeNormal picks the face whose axis has the largest absolute coordinate
func cubeNormal(p mgl64.Vec4) mgl64.Vec4 {
	ax, ay, az := math.Abs(p.X()), math.Abs(p.Y()), math.Abs(p.Z())
	maxc := math.Max(ax, math.Max(ay, az))

	switch maxc {
	case ax:
		return core.Vector(p.X(), 0, 0)
	case ay:
		return core.Vector(0, p.Y(), 0)
	default:
		return core.Vector(0, 0, p.Z())
	}
}
