// Package transform builds the affine 4x4 matrices used to place shapes,
// patterns and the camera. Matrices are mgl64.Mat4 values; points and
// vectors are column tuples multiplied on the right.
package transform

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// ErrNotInvertible is returned when a transform has a zero determinant
var ErrNotInvertible = errors.New("transform is not invertible")

// Identity returns the 4x4 identity matrix
func Identity() mgl64.Mat4 {
	return mgl64.Ident4()
}

// Translation moves points by (x, y, z); vectors are unaffected
func Translation(x, y, z float64) mgl64.Mat4 {
	return mgl64.Translate3D(x, y, z)
}

// Scaling scales along each axis
func Scaling(x, y, z float64) mgl64.Mat4 {
	return mgl64.Scale3D(x, y, z)
}

// RotationX rotates r radians around the x axis
func RotationX(r float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DX(r)
}

// RotationY rotates r radians around the y axis
func RotationY(r float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DY(r)
}

// RotationZ rotates r radians around the z axis
func RotationZ(r float64) mgl64.Mat4 {
	return mgl64.HomogRotate3DZ(r)
}

// Shearing moves each component in proportion to the other two
func Shearing(xy, xz, yx, yz, zx, zy float64) mgl64.Mat4 {
	return mgl64.Mat4FromRows(
		mgl64.Vec4{1, xy, xz, 0},
		mgl64.Vec4{yx, 1, yz, 0},
		mgl64.Vec4{zx, zy, 1, 0},
		mgl64.Vec4{0, 0, 0, 1},
	)
}

// ViewTransform orients the world relative to an eye at from, looking at to.
// up only needs to be roughly upward.
func ViewTransform(from, to, up mgl64.Vec4) mgl64.Mat4 {
	forward := to.Sub(from).Normalize()
	left := cross(forward, up.Normalize())
	trueUp := cross(left, forward)

	orientation := mgl64.Mat4FromRows(
		mgl64.Vec4{left.X(), left.Y(), left.Z(), 0},
		mgl64.Vec4{trueUp.X(), trueUp.Y(), trueUp.Z(), 0},
		mgl64.Vec4{-forward.X(), -forward.Y(), -forward.Z(), 0},
		mgl64.Vec4{0, 0, 0, 1},
	)

	return orientation.Mul4(Translation(-from.X(), -from.Y(), -from.Z()))
}

// Chain composes transforms in the order they are listed: the first one is
// applied to a point first.
func Chain(transforms ...mgl64.Mat4) mgl64.Mat4 {
	result := mgl64.Ident4()
	for _, m := range transforms {
		result = m.Mul4(result)
	}
	return result
}

// Inverse returns the inverse of m, or ErrNotInvertible when the determinant
// is (nearly) zero.
func Inverse(m mgl64.Mat4) (mgl64.Mat4, error) {
	if math.Abs(m.Det()) < core.Epsilon*core.Epsilon {
		return mgl64.Mat4{}, ErrNotInvertible
	}
	return m.Inv(), nil
}

// cross is the 3-component cross product of two homogeneous vectors
func cross(a, b mgl64.Vec4) mgl64.Vec4 {
	return a.Vec3().Cross(b.Vec3()).Vec4(0)
}
