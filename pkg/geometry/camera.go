package geometry

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// Camera maps pixels to rays. The canvas sits one unit in front of the eye
// along -z in camera space; the view transform places the camera in the world.
type Camera struct {
	hsize       int
	vsize       int
	fieldOfView float64 // Radians, spanning the larger image dimension

	transform mgl64.Mat4
	inverse   mgl64.Mat4

	halfWidth  float64
	halfHeight float64
	pixelSize  float64
}

// NewCamera creates a camera with an identity view transform
func NewCamera(hsize, vsize int, fieldOfView float64) (*Camera, error) {
	if hsize <= 0 || vsize <= 0 {
		return nil, fmt.Errorf("camera size must be positive, got %dx%d", hsize, vsize)
	}
	if fieldOfView <= 0 || fieldOfView >= math.Pi {
		return nil, fmt.Errorf("camera field of view must be in (0, pi), got %f", fieldOfView)
	}

	c := &Camera{
		hsize:       hsize,
		vsize:       vsize,
		fieldOfView: fieldOfView,
		transform:   mgl64.Ident4(),
		inverse:     mgl64.Ident4(),
	}

	// Size of the canvas at z=-1, fitted to the aspect ratio
	halfView := math.Tan(fieldOfView / 2)
	aspect := float64(hsize) / float64(vsize)
	if aspect >= 1 {
		c.halfWidth = halfView
		c.halfHeight = halfView / aspect
	} else {
		c.halfWidth = halfView * aspect
		c.halfHeight = halfView
	}
	c.pixelSize = c.halfWidth * 2 / float64(hsize)

	return c, nil
}

// HSize returns the image width in pixels
func (c *Camera) HSize() int { return c.hsize }

// VSize returns the image height in pixels
func (c *Camera) VSize() int { return c.vsize }

// FieldOfView returns the field of view in radians
func (c *Camera) FieldOfView() float64 { return c.fieldOfView }

// PixelSize returns the world-space width of one pixel on the canvas
func (c *Camera) PixelSize() float64 { return c.pixelSize }

// Transform returns the view transform
func (c *Camera) Transform() mgl64.Mat4 { return c.transform }

// SetTransform replaces the view transform. A singular matrix is rejected and
// the camera is unchanged.
func (c *Camera) SetTransform(m mgl64.Mat4) error {
	inv, err := transform.Inverse(m)
	if err != nil {
		return fmt.Errorf("camera: %w", err)
	}
	c.transform = m
	c.inverse = inv
	return nil
}

// RayForPixel returns the world-space ray through the center of pixel (px, py).
// Pixel (0, 0) is the top-left corner of the image.
func (c *Camera) RayForPixel(px, py int) core.Ray {
	xOffset := (float64(px) + 0.5) * c.pixelSize
	yOffset := (float64(py) + 0.5) * c.pixelSize

	// Camera looks toward -z, so +x is to the left
	worldX := c.halfWidth - xOffset
	worldY := c.halfHeight - yOffset

	pixel := c.inverse.Mul4x1(core.Point(worldX, worldY, -1))
	origin := c.inverse.Mul4x1(core.Point(0, 0, 0))
	direction := core.Normalize(pixel.Sub(origin))

	return core.NewRay(origin, direction)
}
