package renderer

import (
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// ErrInvalidConfig is returned for a configuration the renderer cannot use
var ErrInvalidConfig = errors.New("invalid render config")

// Config contains rendering configuration
type Config struct {
	MaxDepth   int // Recursion limit for reflection and refraction rays
	TileSize   int // Edge length of a render tile in pixels
	NumWorkers int // Number of parallel workers (0 = use CPU count, 1 = sequential)
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		MaxDepth:   5,
		TileSize:   32,
		NumWorkers: 0, // Auto-detect CPU count
	}
}

// MergeConfig applies the non-zero scene overrides on top of base
func MergeConfig(base Config, overrides scene.RenderSettings) Config {
	result := base
	if overrides.MaxDepth != 0 {
		result.MaxDepth = overrides.MaxDepth
	}
	if overrides.TileSize != 0 {
		result.TileSize = overrides.TileSize
	}
	if overrides.NumWorkers != 0 {
		result.NumWorkers = overrides.NumWorkers
	}
	return result
}

// Validate checks that every field is usable
func (c Config) Validate() error {
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must be non-negative, got %d", ErrInvalidConfig, c.MaxDepth)
	}
	if c.TileSize <= 0 {
		return fmt.Errorf("%w: tile size must be positive, got %d", ErrInvalidConfig, c.TileSize)
	}
	if c.NumWorkers < 0 {
		return fmt.Errorf("%w: worker count must be non-negative, got %d", ErrInvalidConfig, c.NumWorkers)
	}
	return nil
}

// workers resolves NumWorkers to an actual goroutine count
func (c Config) workers() int {
	if c.NumWorkers == 0 {
		return runtime.NumCPU()
	}
	return c.NumWorkers
}

// Raytracer computes the color seen along a ray: direct Phong lighting from
// every light plus recursively traced reflection and refraction. It counts the
// rays it casts, so each goroutine needs its own Raytracer.
type Raytracer struct {
	world      *scene.World
	config     Config
	raysTraced int
}

// NewRaytracer creates a new raytracer for world
func NewRaytracer(world *scene.World, config Config) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Raytracer{world: world, config: config}, nil
}

// Config returns the configuration in use
func (rt *Raytracer) Config() Config {
	return rt.config
}

// RaysTraced returns the number of camera, secondary and shadow rays cast so far
func (rt *Raytracer) RaysTraced() int {
	return rt.raysTraced
}

// TracePixelRay returns the color for a camera ray at the configured depth
func (rt *Raytracer) TracePixelRay(ray core.Ray) (core.Color, error) {
	return rt.ColorAt(ray, rt.config.MaxDepth)
}

// ColorAt returns the color along ray, or black if it hits nothing.
// remaining is the number of bounces still allowed.
func (rt *Raytracer) ColorAt(ray core.Ray, remaining int) (core.Color, error) {
	rt.raysTraced++

	xs, err := rt.world.Intersect(ray)
	if err != nil {
		return core.Black, err
	}

	hit, ok := xs.Hit()
	if !ok {
		return core.Black, nil
	}

	comps := geometry.PrepareComputations(hit, ray, xs)
	return rt.ShadeHit(comps, remaining)
}

// ShadeHit combines the surface color with the reflected and refracted
// contributions at a hit. Surfaces that both reflect and refract split the
// energy by Schlick reflectance.
func (rt *Raytracer) ShadeHit(comps geometry.Computations, remaining int) (core.Color, error) {
	surface := core.Black
	m := comps.Shape.Material

	// Each light is shadow tested on its own
	for _, light := range rt.world.Lights() {
		rt.raysTraced++
		shadowed, err := rt.world.IsShadowed(light, comps.OverPoint)
		if err != nil {
			return core.Black, err
		}
		surface = surface.Add(material.Lighting(m, light, comps.Shape, comps.OverPoint, comps.EyeV, comps.NormalV, shadowed))
	}

	reflected, err := rt.ReflectedColor(comps, remaining)
	if err != nil {
		return core.Black, err
	}
	refracted, err := rt.RefractedColor(comps, remaining)
	if err != nil {
		return core.Black, err
	}

	if m.IsReflective() && m.IsTransparent() {
		reflectance := geometry.Schlick(comps)
		reflected = reflected.Multiply(reflectance)
		refracted = refracted.Multiply(1 - reflectance)
	}

	return surface.Add(reflected).Add(refracted), nil
}

// ReflectedColor traces the mirror ray from the hit, scaled by reflectivity
func (rt *Raytracer) ReflectedColor(comps geometry.Computations, remaining int) (core.Color, error) {
	m := comps.Shape.Material
	if remaining <= 0 || !m.IsReflective() {
		return core.Black, nil
	}

	c, err := rt.ColorAt(core.NewRay(comps.OverPoint, comps.ReflectV), remaining-1)
	if err != nil {
		return core.Black, err
	}
	return c.Multiply(m.Reflective), nil
}

// RefractedColor traces the transmitted ray through the hit by Snell's law,
// scaled by transparency. Total internal reflection transmits nothing.
func (rt *Raytracer) RefractedColor(comps geometry.Computations, remaining int) (core.Color, error) {
	m := comps.Shape.Material
	if remaining <= 0 || !m.IsTransparent() {
		return core.Black, nil
	}

	nRatio := comps.N1 / comps.N2
	cosI := comps.EyeV.Dot(comps.NormalV)
	sin2T := nRatio * nRatio * (1 - cosI*cosI)
	if sin2T > 1 {
		return core.Black, nil
	}

	cosT := math.Sqrt(1 - sin2T)
	direction := comps.NormalV.Mul(nRatio*cosI - cosT).Sub(comps.EyeV.Mul(nRatio))

	c, err := rt.ColorAt(core.NewRay(comps.UnderPoint, direction), remaining-1)
	if err != nil {
		return core.Black, err
	}
	return c.Multiply(m.Transparency), nil
}
