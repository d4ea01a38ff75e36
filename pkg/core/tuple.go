package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used for float comparisons and surface offsets
const Epsilon = 0.00001

// Point creates a homogeneous point (w = 1)
func Point(x, y, z float64) mgl64.Vec4 {
	return mgl64.Vec4{x, y, z, 1}
}

// Vector creates a homogeneous direction (w = 0)
func Vector(x, y, z float64) mgl64.Vec4 {
	return mgl64.Vec4{x, y, z, 0}
}

// IsPoint reports whether the tuple has w = 1
func IsPoint(t mgl64.Vec4) bool {
	return ApproxEqual(t.W(), 1)
}

// IsVector reports whether the tuple has w = 0
func IsVector(t mgl64.Vec4) bool {
	return ApproxEqual(t.W(), 0)
}

// Reflect returns v reflected about the normal n
func Reflect(v, n mgl64.Vec4) mgl64.Vec4 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// ApproxEqual compares two floats within Epsilon
func ApproxEqual(a, b float64) bool {
	return math.Abs(a-b) < Epsilon
}

// TupleApproxEqual compares two tuples component-wise within tolerance
func TupleApproxEqual(a, b mgl64.Vec4, tolerance float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tolerance {
			return false
		}
	}
	return true
}

// Normalize returns a unit vector in the same direction. A zero vector is
// returned unchanged.
func Normalize(v mgl64.Vec4) mgl64.Vec4 {
	length := v.Len()
	if length == 0 {
		return v
	}
	return v.Mul(1 / length)
}
