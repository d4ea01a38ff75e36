package renderer

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

const tolerance = 1e-4

// testPattern colors each point by its object-space coordinates
type testPattern struct{}

func (testPattern) ColorAt(obj material.Object, worldPoint mgl64.Vec4) core.Color {
	p := obj.InverseTransform().Mul4x1(worldPoint)
	return core.NewColor(p.X(), p.Y(), p.Z())
}

func newTestRaytracer(t *testing.T, w *scene.World) *Raytracer {
	t.Helper()
	rt, err := NewRaytracer(w, DefaultConfig())
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}
	return rt
}

// defaultWorldWithLight returns the default shapes lit by light instead
func defaultWorldWithLight(light *lights.PointLight) *scene.World {
	w := scene.NewWorld(scene.DefaultLimits())
	for _, s := range scene.DefaultWorld().Shapes() {
		_ = w.AddShape(s)
	}
	_ = w.AddLight(light)
	return w
}

// computationsFor builds shading state for xs.At(index) along ray
func computationsFor(t *testing.T, ray core.Ray, index int, hits ...geometry.Intersection) geometry.Computations {
	t.Helper()
	xs := geometry.NewIntersections(len(hits))
	for _, h := range hits {
		if err := xs.Insert(h.T, h.Shape); err != nil {
			t.Fatal(err)
		}
	}
	return geometry.PrepareComputations(xs.At(index), ray, xs)
}

func assertColor(t *testing.T, got, expected core.Color) {
	t.Helper()
	if !got.ApproxEqual(expected, tolerance) {
		t.Errorf("Expected color %v, got %v", expected, got)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"defaults", DefaultConfig(), false},
		{"zero depth", Config{MaxDepth: 0, TileSize: 8}, false},
		{"negative depth", Config{MaxDepth: -1, TileSize: 8}, true},
		{"zero tile size", Config{MaxDepth: 5, TileSize: 0}, true},
		{"negative workers", Config{MaxDepth: 5, TileSize: 8, NumWorkers: -2}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Expected ErrInvalidConfig, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestMergeConfig(t *testing.T) {
	base := DefaultConfig()

	merged := MergeConfig(base, scene.RenderSettings{MaxDepth: 8})
	if merged.MaxDepth != 8 || merged.TileSize != base.TileSize || merged.NumWorkers != base.NumWorkers {
		t.Errorf("Expected only MaxDepth overridden, got %+v", merged)
	}

	if MergeConfig(base, scene.RenderSettings{}) != base {
		t.Error("Expected empty settings to leave config unchanged")
	}
}

func TestRaytracer_ColorAt(t *testing.T) {
	tests := []struct {
		name     string
		ray      core.Ray
		expected core.Color
	}{
		{"ray misses", core.NewRay(core.Point(0, 0, -5), core.Vector(0, 1, 0)), core.Black},
		{"ray hits", core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1)), core.NewColor(0.38066, 0.47583, 0.2855)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rt := newTestRaytracer(t, scene.DefaultWorld())
			got, err := rt.ColorAt(tt.ray, 5)
			if err != nil {
				t.Fatalf("ColorAt failed: %v", err)
			}
			assertColor(t, got, tt.expected)
		})
	}
}

func TestRaytracer_ColorAtIntersectionBehindRay(t *testing.T) {
	w := scene.DefaultWorld()
	outer, inner := w.Shapes()[0], w.Shapes()[1]
	outer.Material.Ambient = 1
	inner.Material.Ambient = 1

	rt := newTestRaytracer(t, w)
	got, err := rt.ColorAt(core.NewRay(core.Point(0, 0, 0.75), core.Vector(0, 0, -1)), 5)
	if err != nil {
		t.Fatal(err)
	}
	assertColor(t, got, inner.Material.Color)
}

func TestRaytracer_ShadeHit(t *testing.T) {
	t.Run("outside", func(t *testing.T) {
		w := scene.DefaultWorld()
		ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
		comps := computationsFor(t, ray, 0, geometry.NewIntersection(4, w.Shapes()[0]))

		got, err := newTestRaytracer(t, w).ShadeHit(comps, 5)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.NewColor(0.38066, 0.47583, 0.2855))
	})

	t.Run("inside", func(t *testing.T) {
		w := defaultWorldWithLight(lights.NewPointLight(core.Point(0, 0.25, 0), core.White))
		ray := core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1))
		comps := computationsFor(t, ray, 0, geometry.NewIntersection(0.5, w.Shapes()[1]))

		got, err := newTestRaytracer(t, w).ShadeHit(comps, 5)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.NewColor(0.90498, 0.90498, 0.90498))
	})

	t.Run("in shadow", func(t *testing.T) {
		w := scene.NewWorld(scene.DefaultLimits())
		_ = w.AddLight(lights.NewPointLight(core.Point(0, 0, -10), core.White))
		_ = w.AddShape(geometry.NewSphere())
		s2 := geometry.NewSphere()
		_ = s2.SetTransform(transform.Translation(0, 0, 10))
		_ = w.AddShape(s2)

		ray := core.NewRay(core.Point(0, 0, 5), core.Vector(0, 0, 1))
		comps := computationsFor(t, ray, 0, geometry.NewIntersection(4, s2))

		got, err := newTestRaytracer(t, w).ShadeHit(comps, 5)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.NewColor(0.1, 0.1, 0.1))
	})
}

func TestRaytracer_ShadeHitSumsLights(t *testing.T) {
	w := scene.DefaultWorld()
	_ = w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))

	ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
	comps := computationsFor(t, ray, 0, geometry.NewIntersection(4, w.Shapes()[0]))

	got, err := newTestRaytracer(t, w).ShadeHit(comps, 5)
	if err != nil {
		t.Fatal(err)
	}
	assertColor(t, got, core.NewColor(0.38066, 0.47583, 0.2855).Multiply(2))
}

func TestRaytracer_ReflectedColor(t *testing.T) {
	half := math.Sqrt2 / 2

	t.Run("non-reflective material", func(t *testing.T) {
		w := scene.DefaultWorld()
		inner := w.Shapes()[1]
		inner.Material.Ambient = 1

		ray := core.NewRay(core.Point(0, 0, 0), core.Vector(0, 0, 1))
		comps := computationsFor(t, ray, 0, geometry.NewIntersection(1, inner))

		got, err := newTestRaytracer(t, w).ReflectedColor(comps, 5)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.Black)
	})

	newMirrorWorld := func() (*scene.World, *geometry.Shape) {
		w := scene.DefaultWorld()
		plane := geometry.NewPlane()
		plane.Material.Reflective = 0.5
		_ = plane.SetTransform(transform.Translation(0, -1, 0))
		_ = w.AddShape(plane)
		return w, plane
	}
	ray := core.NewRay(core.Point(0, 0, -3), core.Vector(0, -half, half))

	t.Run("reflective material", func(t *testing.T) {
		w, plane := newMirrorWorld()
		comps := computationsFor(t, ray, 0, geometry.NewIntersection(math.Sqrt2, plane))

		got, err := newTestRaytracer(t, w).ReflectedColor(comps, 5)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.NewColor(0.19033, 0.23791, 0.14274))
	})

	t.Run("shade hit with reflection", func(t *testing.T) {
		w, plane := newMirrorWorld()
		comps := computationsFor(t, ray, 0, geometry.NewIntersection(math.Sqrt2, plane))

		got, err := newTestRaytracer(t, w).ShadeHit(comps, 5)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.NewColor(0.87676, 0.92435, 0.82918))
	})

	t.Run("no bounces remaining", func(t *testing.T) {
		w, plane := newMirrorWorld()
		comps := computationsFor(t, ray, 0, geometry.NewIntersection(math.Sqrt2, plane))

		got, err := newTestRaytracer(t, w).ReflectedColor(comps, 0)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.Black)
	})
}

func TestRaytracer_MutuallyReflectiveSurfaces(t *testing.T) {
	w := scene.NewWorld(scene.DefaultLimits())
	_ = w.AddLight(lights.NewPointLight(core.Point(0, 0, 0), core.White))

	lower := geometry.NewPlane()
	lower.Material.Reflective = 1
	_ = lower.SetTransform(transform.Translation(0, -1, 0))

	upper := geometry.NewPlane()
	upper.Material.Reflective = 1
	_ = upper.SetTransform(transform.Translation(0, 1, 0))

	_ = w.AddShape(lower)
	_ = w.AddShape(upper)

	rt := newTestRaytracer(t, w)
	if _, err := rt.ColorAt(core.NewRay(core.Point(0, 0, 0), core.Vector(0, 1, 0)), 5); err != nil {
		t.Fatalf("ColorAt failed: %v", err)
	}

	// One camera ray plus five bounces, each with one shadow ray
	if got := rt.RaysTraced(); got != 12 {
		t.Errorf("Expected 12 rays, got %d", got)
	}
}

func TestRaytracer_RefractedColor(t *testing.T) {
	half := math.Sqrt2 / 2

	t.Run("opaque surface", func(t *testing.T) {
		w := scene.DefaultWorld()
		shape := w.Shapes()[0]
		ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
		comps := computationsFor(t, ray, 0,
			geometry.NewIntersection(4, shape), geometry.NewIntersection(6, shape))

		got, err := newTestRaytracer(t, w).RefractedColor(comps, 5)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.Black)
	})

	t.Run("no bounces remaining", func(t *testing.T) {
		w := scene.DefaultWorld()
		shape := w.Shapes()[0]
		shape.Material.Transparency = 1
		shape.Material.RefractiveIndex = 1.5
		ray := core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1))
		comps := computationsFor(t, ray, 0,
			geometry.NewIntersection(4, shape), geometry.NewIntersection(6, shape))

		got, err := newTestRaytracer(t, w).RefractedColor(comps, 0)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.Black)
	})

	t.Run("total internal reflection", func(t *testing.T) {
		w := scene.DefaultWorld()
		shape := w.Shapes()[0]
		shape.Material.Transparency = 1
		shape.Material.RefractiveIndex = 1.5
		ray := core.NewRay(core.Point(0, 0, half), core.Vector(0, 1, 0))
		comps := computationsFor(t, ray, 1,
			geometry.NewIntersection(-half, shape), geometry.NewIntersection(half, shape))

		got, err := newTestRaytracer(t, w).RefractedColor(comps, 5)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.Black)
	})

	t.Run("refracted ray", func(t *testing.T) {
		w := scene.DefaultWorld()
		a, b := w.Shapes()[0], w.Shapes()[1]
		a.Material.Ambient = 1
		a.Material.Pattern = testPattern{}
		b.Material.Transparency = 1
		b.Material.RefractiveIndex = 1.5

		ray := core.NewRay(core.Point(0, 0, 0.1), core.Vector(0, 1, 0))
		comps := computationsFor(t, ray, 2,
			geometry.NewIntersection(-0.9899, a),
			geometry.NewIntersection(-0.4899, b),
			geometry.NewIntersection(0.4899, b),
			geometry.NewIntersection(0.9899, a),
		)

		got, err := newTestRaytracer(t, w).RefractedColor(comps, 5)
		if err != nil {
			t.Fatal(err)
		}
		assertColor(t, got, core.NewColor(0, 0.99888, 0.04725))
	})
}

func TestRaytracer_ShadeHitTransparent(t *testing.T) {
	half := math.Sqrt2 / 2

	tests := []struct {
		name       string
		reflective float64
		expected   core.Color
	}{
		{"transparent floor", 0, core.NewColor(0.93642, 0.68642, 0.68642)},
		{"reflective transparent floor", 0.5, core.NewColor(0.93391, 0.69643, 0.69243)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := scene.DefaultWorld()

			floor := geometry.NewPlane()
			_ = floor.SetTransform(transform.Translation(0, -1, 0))
			floor.Material.Reflective = tt.reflective
			floor.Material.Transparency = 0.5
			floor.Material.RefractiveIndex = 1.5
			_ = w.AddShape(floor)

			ball := geometry.NewSphere()
			ball.Material.Color = core.NewColor(1, 0, 0)
			ball.Material.Ambient = 0.5
			_ = ball.SetTransform(transform.Translation(0, -3.5, -0.5))
			_ = w.AddShape(ball)

			ray := core.NewRay(core.Point(0, 0, -3), core.Vector(0, -half, half))
			comps := computationsFor(t, ray, 0, geometry.NewIntersection(math.Sqrt2, floor))

			got, err := newTestRaytracer(t, w).ShadeHit(comps, 5)
			if err != nil {
				t.Fatal(err)
			}
			assertColor(t, got, tt.expected)
		})
	}
}

func TestRaytracer_CapacityErrorPropagates(t *testing.T) {
	// Two spheres give four crossings; the collection holds two
	w := scene.NewWorld(scene.Limits{MaxIntersections: 2})
	_ = w.AddLight(lights.NewPointLight(core.Point(-10, 10, -10), core.White))
	_ = w.AddShape(geometry.NewSphere())
	_ = w.AddShape(geometry.NewSphere())

	_, err := newTestRaytracer(t, w).ColorAt(core.NewRay(core.Point(0, 0, -5), core.Vector(0, 0, 1)), 5)
	if !errors.Is(err, geometry.ErrTooManyIntersections) {
		t.Fatalf("Expected ErrTooManyIntersections, got %v", err)
	}
}

func TestRaytracer_ShadeHitLightsOverPoint(t *testing.T) {
	w := scene.NewWorld(scene.DefaultLimits())
	_ = w.AddLight(lights.NewPointLight(core.Point(0, 10, 0), core.White))

	floor := geometry.NewPlane()
	floor.Material.Pattern = testPattern{}
	floor.Material.Ambient = 1
	floor.Material.Diffuse = 0
	floor.Material.Specular = 0
	_ = w.AddShape(floor)

	ray := core.NewRay(core.Point(0.25, 1, 0.5), core.Vector(0, -1, 0))
	comps := computationsFor(t, ray, 0, geometry.NewIntersection(1, floor))

	got, err := newTestRaytracer(t, w).ShadeHit(comps, 0)
	if err != nil {
		t.Fatal(err)
	}

	// The pattern is sampled just above the surface, where the shadow ray starts
	if math.Abs(got.G-core.Epsilon) > 1e-12 {
		t.Errorf("Expected pattern sampled at y=%g, got %g", core.Epsilon, got.G)
	}
	assertColor(t, got, core.NewColor(0.25, 0, 0.5))
}
