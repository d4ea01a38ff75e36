package loaders

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/colornames"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// Color is a scene-file color: either an SVG color name ("steelblue") or a
// list of three linear components ([0.8, 1.0, 0.6])
type Color core.Color

// UnmarshalYAML implements yaml.Unmarshaler
func (c *Color) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var name string
	if err := unmarshal(&name); err == nil {
		rgba, ok := colornames.Map[strings.ToLower(name)]
		if !ok {
			return fmt.Errorf("unknown color name %q", name)
		}
		*c = Color(core.NewColor(float64(rgba.R)/255, float64(rgba.G)/255, float64(rgba.B)/255))
		return nil
	}

	var components []float64
	if err := unmarshal(&components); err != nil {
		return fmt.Errorf("color must be a name or [r, g, b]: %w", err)
	}
	if len(components) != 3 {
		return fmt.Errorf("color needs 3 components, got %d", len(components))
	}
	*c = Color(core.NewColor(components[0], components[1], components[2]))
	return nil
}

// Tuple is a three-component list read as a point or vector
type Tuple [3]float64

// UnmarshalYAML implements yaml.Unmarshaler
func (t *Tuple) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var components []float64
	if err := unmarshal(&components); err != nil {
		return err
	}
	if len(components) != 3 {
		return fmt.Errorf("expected [x, y, z], got %d values", len(components))
	}
	copy(t[:], components)
	return nil
}

// Point returns the tuple as a homogeneous point
func (t Tuple) Point() mgl64.Vec4 {
	return core.Point(t[0], t[1], t[2])
}

// Vector returns the tuple as a homogeneous vector
func (t Tuple) Vector() mgl64.Vec4 {
	return core.Vector(t[0], t[1], t[2])
}

// RefractiveIndex is a number or the name of a common medium
// (vacuum, air, water, glass, diamond)
type RefractiveIndex float64

var namedMedia = map[string]float64{
	"vacuum":  material.RefractiveVacuum,
	"air":     material.RefractiveAir,
	"water":   material.RefractiveWater,
	"glass":   material.RefractiveGlass,
	"diamond": material.RefractiveDiamond,
}

// UnmarshalYAML implements yaml.Unmarshaler
func (r *RefractiveIndex) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var value float64
	if err := unmarshal(&value); err == nil {
		if value <= 0 {
			return fmt.Errorf("refractive index must be positive, got %f", value)
		}
		*r = RefractiveIndex(value)
		return nil
	}

	var name string
	if err := unmarshal(&name); err != nil {
		return err
	}
	value, ok := namedMedia[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("unknown medium %q", name)
	}
	*r = RefractiveIndex(value)
	return nil
}

// Transform is an ordered list of operations such as
//
//	- [scale, 2, 2, 2]
//	- [rotate_y, 45]
//	- [translate, 0, 1, 0]
//
// applied to a point in the order listed. Angles are in degrees.
type Transform []transformOp

type transformOp struct {
	name string
	args []float64
}

// UnmarshalYAML implements yaml.Unmarshaler
func (op *transformOp) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw []interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return fmt.Errorf("empty transform operation")
	}

	name, ok := raw[0].(string)
	if !ok {
		return fmt.Errorf("transform operation must start with its name, got %v", raw[0])
	}
	op.name = name

	for _, v := range raw[1:] {
		switch n := v.(type) {
		case int:
			op.args = append(op.args, float64(n))
		case float64:
			op.args = append(op.args, n)
		default:
			return fmt.Errorf("%s: argument %v is not a number", name, v)
		}
	}
	return nil
}

// Matrix composes the operations into a single matrix
func (t Transform) Matrix() (mgl64.Mat4, error) {
	ms := make([]mgl64.Mat4, 0, len(t))
	for _, op := range t {
		m, err := op.matrix()
		if err != nil {
			return mgl64.Mat4{}, err
		}
		ms = append(ms, m)
	}
	return transform.Chain(ms...), nil
}

func (op transformOp) matrix() (mgl64.Mat4, error) {
	a := op.args
	switch op.name {
	case "translate":
		if len(a) != 3 {
			return mgl64.Mat4{}, op.arityError("3")
		}
		return transform.Translation(a[0], a[1], a[2]), nil
	case "scale":
		switch len(a) {
		case 1:
			return transform.Scaling(a[0], a[0], a[0]), nil
		case 3:
			return transform.Scaling(a[0], a[1], a[2]), nil
		}
		return mgl64.Mat4{}, op.arityError("1 or 3")
	case "rotate_x", "rotate_y", "rotate_z":
		if len(a) != 1 {
			return mgl64.Mat4{}, op.arityError("1")
		}
		radians := a[0] * math.Pi / 180
		switch op.name {
		case "rotate_x":
			return transform.RotationX(radians), nil
		case "rotate_y":
			return transform.RotationY(radians), nil
		default:
			return transform.RotationZ(radians), nil
		}
	case "shear":
		if len(a) != 6 {
			return mgl64.Mat4{}, op.arityError("6")
		}
		return transform.Shearing(a[0], a[1], a[2], a[3], a[4], a[5]), nil
	default:
		return mgl64.Mat4{}, fmt.Errorf("unknown transform operation %q", op.name)
	}
}

func (op transformOp) arityError(expected string) error {
	return fmt.Errorf("%s takes %s values, got %d", op.name, expected, len(op.args))
}
