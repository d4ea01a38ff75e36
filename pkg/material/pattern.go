package material

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// PatternKind selects the color function of a Pattern
type PatternKind int

const (
	Stripe PatternKind = iota
	Gradient
	Ring
	Checker
)

func (k PatternKind) String() string {
	switch k {
	case Stripe:
		return "stripe"
	case Gradient:
		return "gradient"
	case Ring:
		return "ring"
	case Checker:
		return "checker"
	default:
		return fmt.Sprintf("PatternKind(%d)", int(k))
	}
}

// Pattern is a two-color procedural texture with its own transform,
// evaluated in pattern space
type Pattern struct {
	Kind      PatternKind
	A, B      core.Color
	transform mgl64.Mat4
	inverse   mgl64.Mat4
}

// NewPattern creates a pattern of the given kind with an identity transform
func NewPattern(kind PatternKind, a, b core.Color) *Pattern {
	return &Pattern{
		Kind:      kind,
		A:         a,
		B:         b,
		transform: mgl64.Ident4(),
		inverse:   mgl64.Ident4(),
	}
}

// Transform returns the pattern-to-object transform
func (p *Pattern) Transform() mgl64.Mat4 {
	return p.transform
}

// SetTransform replaces the pattern transform. A singular matrix is rejected
// and the previous transform is kept.
func (p *Pattern) SetTransform(m mgl64.Mat4) error {
	inv, err := transform.Inverse(m)
	if err != nil {
		return fmt.Errorf("pattern %s: %w", p.Kind, err)
	}
	p.transform = m
	p.inverse = inv
	return nil
}

// ColorAt converts worldPoint to object space, then pattern space, and
// evaluates the pattern there
func (p *Pattern) ColorAt(obj Object, worldPoint mgl64.Vec4) core.Color {
	objectPoint := obj.InverseTransform().Mul4x1(worldPoint)
	return p.LocalColorAt(p.inverse.Mul4x1(objectPoint))
}

// LocalColorAt evaluates the pattern at a point already in pattern space
func (p *Pattern) LocalColorAt(point mgl64.Vec4) core.Color {
	x, y, z := point.X(), point.Y(), point.Z()

	switch p.Kind {
	case Stripe:
		return p.pick(int(math.Floor(x)))
	case Gradient:
		fraction := x - math.Floor(x)
		return p.A.Add(p.B.Subtract(p.A).Multiply(fraction))
	case Ring:
		return p.pick(int(math.Floor(math.Sqrt(x*x + z*z))))
	case Checker:
		// Nudge so faces lying exactly on integer planes do not flicker
		return p.pick(int(math.Floor(x+core.Epsilon) + math.Floor(y+core.Epsilon) + math.Floor(z+core.Epsilon)))
	default:
		return p.A
	}
}

func (p *Pattern) pick(n int) core.Color {
	if n%2 == 0 {
		return p.A
	}
	return p.B
}
