package material

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

func TestPattern_LocalColorAt(t *testing.T) {
	white, black := core.White, core.Black

	tests := []struct {
		name     string
		kind     PatternKind
		point    mgl64.Vec4
		expected core.Color
	}{
		{"stripe constant in y", Stripe, core.Point(0, 1, 0), white},
		{"stripe constant in z", Stripe, core.Point(0, 0, 2), white},
		{"stripe at 0.9", Stripe, core.Point(0.9, 0, 0), white},
		{"stripe at 1", Stripe, core.Point(1, 0, 0), black},
		{"stripe at -0.1", Stripe, core.Point(-0.1, 0, 0), black},
		{"stripe at -1", Stripe, core.Point(-1, 0, 0), black},
		{"stripe at -1.1", Stripe, core.Point(-1.1, 0, 0), white},
		{"gradient at 0", Gradient, core.Point(0, 0, 0), white},
		{"gradient at 0.25", Gradient, core.Point(0.25, 0, 0), core.NewColor(0.75, 0.75, 0.75)},
		{"gradient at 0.5", Gradient, core.Point(0.5, 0, 0), core.NewColor(0.5, 0.5, 0.5)},
		{"gradient at 0.75", Gradient, core.Point(0.75, 0, 0), core.NewColor(0.25, 0.25, 0.25)},
		{"ring at origin", Ring, core.Point(0, 0, 0), white},
		{"ring at x=1", Ring, core.Point(1, 0, 0), black},
		{"ring at z=1", Ring, core.Point(0, 0, 1), black},
		{"ring at diagonal", Ring, core.Point(0.708, 0, 0.708), black},
		{"checker x 0.99", Checker, core.Point(0.99, 0, 0), white},
		{"checker x 1.01", Checker, core.Point(1.01, 0, 0), black},
		{"checker y 0.99", Checker, core.Point(0, 0.99, 0), white},
		{"checker y 1.01", Checker, core.Point(0, 1.01, 0), black},
		{"checker z 0.99", Checker, core.Point(0, 0, 0.99), white},
		{"checker z 1.01", Checker, core.Point(0, 0, 1.01), black},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPattern(tt.kind, white, black)
			if got := p.LocalColorAt(tt.point); !got.ApproxEqual(tt.expected, 1e-9) {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestPattern_ColorAt_Transforms(t *testing.T) {
	white, black := core.White, core.Black

	t.Run("object transform", func(t *testing.T) {
		p := NewPattern(Stripe, white, black)
		obj := newTestObject(transform.Scaling(2, 2, 2))
		if got := p.ColorAt(obj, core.Point(1.5, 0, 0)); got != white {
			t.Errorf("Expected white, got %v", got)
		}
	})

	t.Run("pattern transform", func(t *testing.T) {
		p := NewPattern(Stripe, white, black)
		if err := p.SetTransform(transform.Scaling(2, 2, 2)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		obj := newTestObject(mgl64.Ident4())
		if got := p.ColorAt(obj, core.Point(1.5, 0, 0)); got != white {
			t.Errorf("Expected white, got %v", got)
		}
	})

	t.Run("both transforms", func(t *testing.T) {
		p := NewPattern(Stripe, white, black)
		if err := p.SetTransform(transform.Translation(0.5, 0, 0)); err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		obj := newTestObject(transform.Scaling(2, 2, 2))
		if got := p.ColorAt(obj, core.Point(2.5, 0, 0)); got != white {
			t.Errorf("Expected white, got %v", got)
		}
	})
}

func TestPattern_SetTransform_RejectsSingular(t *testing.T) {
	p := NewPattern(Checker, core.White, core.Black)
	original := transform.Scaling(2, 2, 2)
	if err := p.SetTransform(original); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	err := p.SetTransform(transform.Scaling(0, 1, 1))
	if !errors.Is(err, transform.ErrNotInvertible) {
		t.Fatalf("Expected ErrNotInvertible, got %v", err)
	}
	if p.Transform() != original {
		t.Errorf("Expected previous transform to be kept, got %v", p.Transform())
	}
}
