package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Computations holds the shading state derived from a hit
type Computations struct {
	T     float64
	Shape *Shape

	Point      mgl64.Vec4
	OverPoint  mgl64.Vec4 // Point nudged along the normal, used for shadow and reflection rays
	UnderPoint mgl64.Vec4 // Point nudged against the normal, used for refraction rays
	EyeV       mgl64.Vec4
	NormalV    mgl64.Vec4
	ReflectV   mgl64.Vec4
	Inside     bool

	// Refractive indices on the incoming (N1) and outgoing (N2) side
	N1 float64
	N2 float64
}

// PrepareComputations derives shading state for hit along ray. xs is the full
// sorted collection hit belongs to and determines N1 and N2. With a nil xs
// both indices are 1.0.
func PrepareComputations(hit Intersection, ray core.Ray, xs *Intersections) Computations {
	comps := Computations{
		T:     hit.T,
		Shape: hit.Shape,
		N1:    material.RefractiveVacuum,
		N2:    material.RefractiveVacuum,
	}

	comps.Point = ray.At(hit.T)
	comps.EyeV = ray.Direction.Mul(-1)
	comps.NormalV = hit.Shape.NormalAt(comps.Point)

	if comps.NormalV.Dot(comps.EyeV) < 0 {
		comps.Inside = true
		comps.NormalV = comps.NormalV.Mul(-1)
	}

	comps.ReflectV = core.Reflect(ray.Direction, comps.NormalV)
	comps.OverPoint = comps.Point.Add(comps.NormalV.Mul(core.Epsilon))
	comps.UnderPoint = comps.Point.Sub(comps.NormalV.Mul(core.Epsilon))

	if xs != nil {
		comps.N1, comps.N2 = refractiveIndices(hit, xs)
	}
	return comps
}

// refractiveIndices walks xs in t order tracking which shapes the ray is
// inside of, and returns the indices on either side of hit
func refractiveIndices(hit Intersection, xs *Intersections) (n1, n2 float64) {
	n1, n2 = material.RefractiveVacuum, material.RefractiveVacuum
	containers := make([]*Shape, 0, xs.Len())

	indexOfLast := func() float64 {
		if len(containers) == 0 {
			return material.RefractiveVacuum
		}
		return containers[len(containers)-1].Material.RefractiveIndex
	}

	for _, x := range xs.All() {
		if x == hit {
			n1 = indexOfLast()
		}

		if i := indexOfShape(containers, x.Shape); i >= 0 {
			containers = append(containers[:i], containers[i+1:]...)
		} else {
			containers = append(containers, x.Shape)
		}

		if x == hit {
			n2 = indexOfLast()
			break
		}
	}
	return n1, n2
}

func indexOfShape(shapes []*Shape, s *Shape) int {
	for i, candidate := range shapes {
		if candidate == s {
			return i
		}
	}
	return -1
}

// Schlick approximates the Fresnel reflectance at the hit, returning 1 under
// total internal reflection
func Schlick(comps Computations) float64 {
	cos := comps.EyeV.Dot(comps.NormalV)

	if comps.N1 > comps.N2 {
		n := comps.N1 / comps.N2
		sin2T := n * n * (1 - cos*cos)
		if sin2T > 1 {
			return 1
		}
		cos = math.Sqrt(1 - sin2T)
	}

	r0 := (comps.N1 - comps.N2) / (comps.N1 + comps.N2)
	r0 *= r0
	return r0 + (1-r0)*math.Pow(1-cos, 5)
}
