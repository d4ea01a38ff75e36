package geometry

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

func TestCube_Intersect(t *testing.T) {
	tests := []struct {
		name      string
		origin    mgl64.Vec4
		direction mgl64.Vec4
		t1, t2    float64
	}{
		{"+x", core.Point(5, 0.5, 0), core.Vector(-1, 0, 0), 4, 6},
		{"-x", core.Point(-5, 0.5, 0), core.Vector(1, 0, 0), 4, 6},
		{"+y", core.Point(0.5, 5, 0), core.Vector(0, -1, 0), 4, 6},
		{"-y", core.Point(0.5, -5, 0), core.Vector(0, 1, 0), 4, 6},
		{"+z", core.Point(0.5, 0, 5), core.Vector(0, 0, -1), 4, 6},
		{"-z", core.Point(0.5, 0, -5), core.Vector(0, 0, 1), 4, 6},
		{"inside", core.Point(0, 0.5, 0), core.Vector(0, 0, 1), -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := intersectTs(t, NewCube(), core.NewRay(tt.origin, tt.direction))
			assertTs(t, got, []float64{tt.t1, tt.t2})
		})
	}
}

func TestCube_Miss(t *testing.T) {
	tests := []struct {
		origin    mgl64.Vec4
		direction mgl64.Vec4
	}{
		{core.Point(-2, 0, 0), core.Vector(0.2673, 0.5345, 0.8018)},
		{core.Point(0, -2, 0), core.Vector(0.8018, 0.2673, 0.5345)},
		{core.Point(0, 0, -2), core.Vector(0.5345, 0.8018, 0.2673)},
		{core.Point(2, 0, 2), core.Vector(0, 0, -1)},
		{core.Point(0, 2, 2), core.Vector(0, -1, 0)},
		{core.Point(2, 2, 0), core.Vector(-1, 0, 0)},
	}

	for _, tt := range tests {
		got := intersectTs(t, NewCube(), core.NewRay(tt.origin, tt.direction))
		if len(got) != 0 {
			t.Errorf("Ray from %v along %v: expected miss, got %v", tt.origin, tt.direction, got)
		}
	}
}

func TestCube_NormalAt(t *testing.T) {
	tests := []struct {
		point    mgl64.Vec4
		expected mgl64.Vec4
	}{
		{core.Point(1, 0.5, -0.8), core.Vector(1, 0, 0)},
		{core.Point(-1, -0.2, 0.9), core.Vector(-1, 0, 0)},
		{core.Point(-0.4, 1, -0.1), core.Vector(0, 1, 0)},
		{core.Point(0.3, -1, -0.7), core.Vector(0, -1, 0)},
		{core.Point(-0.6, 0.3, 1), core.Vector(0, 0, 1)},
		{core.Point(0.4, 0.4, -1), core.Vector(0, 0, -1)},
		{core.Point(1, 1, 1), core.Vector(1, 0, 0)},
		{core.Point(-1, -1, -1), core.Vector(-1, 0, 0)},
	}

	c := NewCube()
	for _, tt := range tests {
		if n := c.NormalAt(tt.point); !core.TupleApproxEqual(n, tt.expected, tolerance) {
			t.Errorf("At %v: expected normal %v, got %v", tt.point, tt.expected, n)
		}
	}
}
