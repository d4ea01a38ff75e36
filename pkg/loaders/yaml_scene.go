package loaders

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
	"github.com/df07/go-whitted-raytracer/pkg/transform"
)

// Camera defaults used when a scene file leaves them out
const (
	DefaultWidth  = 400
	DefaultHeight = 300
	DefaultFOV    = 60.0 // degrees
)

// SceneFile is the YAML document layout of a scene
type SceneFile struct {
	Render RenderBlock  `yaml:"render"`
	Limits LimitsBlock  `yaml:"limits"`
	Camera CameraBlock  `yaml:"camera"`
	Lights []LightBlock `yaml:"lights"`
	Shapes []ShapeBlock `yaml:"shapes"`
}

type RenderBlock struct {
	MaxDepth int `yaml:"max_depth"`
	TileSize int `yaml:"tile_size"`
	Workers  int `yaml:"workers"`
}

type LimitsBlock struct {
	MaxObjects       int `yaml:"max_objects"`
	MaxLights        int `yaml:"max_lights"`
	MaxIntersections int `yaml:"max_intersections"`
}

type CameraBlock struct {
	Width  int      `yaml:"width"`
	Height int      `yaml:"height"`
	FOV    *float64 `yaml:"fov"`
	From   *Tuple   `yaml:"from"`
	To     *Tuple   `yaml:"to"`
	Up     *Tuple   `yaml:"up"`
}

type LightBlock struct {
	Position  *Tuple `yaml:"position"`
	Intensity *Color `yaml:"intensity"`
}

type ShapeBlock struct {
	Type        string         `yaml:"type"`
	Transform   Transform      `yaml:"transform"`
	Material    *MaterialBlock `yaml:"material"`
	CastsShadow *bool          `yaml:"casts_shadow"`
	Min         *float64       `yaml:"min"`
	Max         *float64       `yaml:"max"`
	Closed      bool           `yaml:"closed"`
}

type MaterialBlock struct {
	Preset          string           `yaml:"preset"`
	Color           *Color           `yaml:"color"`
	Pattern         *PatternBlock    `yaml:"pattern"`
	Ambient         *float64         `yaml:"ambient"`
	Diffuse         *float64         `yaml:"diffuse"`
	Specular        *float64         `yaml:"specular"`
	Shininess       *float64         `yaml:"shininess"`
	Reflective      *float64         `yaml:"reflective"`
	Transparency    *float64         `yaml:"transparency"`
	RefractiveIndex *RefractiveIndex `yaml:"refractive_index"`
}

type PatternBlock struct {
	Type      string    `yaml:"type"`
	Colors    []Color   `yaml:"colors"`
	Transform Transform `yaml:"transform"`
}

// LoadYAMLScene reads and builds a scene file. The scene is named after the
// file unless a "# Scene:" header says otherwise.
func LoadYAMLScene(filename string) (*scene.Scene, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, fmt.Errorf("invalid file path: %w", err)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	if info, err := scene.ParseSceneMetadata(filename); err == nil && info.Name != "" {
		name = info.Name
	}

	s, err := ParseYAMLScene(bytes.NewReader(data), name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return s, nil
}

// ParseYAMLScene builds a scene from a YAML document. Unknown keys are errors.
func ParseYAMLScene(r io.Reader, name string) (*scene.Scene, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}

	var file SceneFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return file.Build(name)
}

// Build turns the parsed document into a scene
func (f *SceneFile) Build(name string) (*scene.Scene, error) {
	world := scene.NewWorld(scene.Limits{
		MaxObjects:       f.Limits.MaxObjects,
		MaxLights:        f.Limits.MaxLights,
		MaxIntersections: f.Limits.MaxIntersections,
	})

	camera, err := f.Camera.build()
	if err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	for i, lb := range f.Lights {
		light, err := lb.build()
		if err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
		if err := world.AddLight(light); err != nil {
			return nil, fmt.Errorf("light %d: %w", i, err)
		}
	}

	for i, sb := range f.Shapes {
		shape, err := sb.build()
		if err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sb.Type, err)
		}
		if err := world.AddShape(shape); err != nil {
			return nil, fmt.Errorf("shape %d (%s): %w", i, sb.Type, err)
		}
	}

	return &scene.Scene{
		Name:   name,
		World:  world,
		Camera: camera,
		Render: scene.RenderSettings{
			MaxDepth:   f.Render.MaxDepth,
			TileSize:   f.Render.TileSize,
			NumWorkers: f.Render.Workers,
		},
	}, nil
}

func (cb CameraBlock) build() (*geometry.Camera, error) {
	width, height, fov := cb.Width, cb.Height, DefaultFOV
	if width == 0 {
		width = DefaultWidth
	}
	if height == 0 {
		height = DefaultHeight
	}
	if cb.FOV != nil {
		fov = *cb.FOV
	}

	from, to, up := core.Point(0, 0, -5), core.Point(0, 0, 0), core.Vector(0, 1, 0)
	if cb.From != nil {
		from = cb.From.Point()
	}
	if cb.To != nil {
		to = cb.To.Point()
	}
	if cb.Up != nil {
		up = cb.Up.Vector()
	}

	camera, err := geometry.NewCamera(width, height, fov*math.Pi/180)
	if err != nil {
		return nil, err
	}
	if err := camera.SetTransform(transform.ViewTransform(from, to, up)); err != nil {
		return nil, err
	}
	return camera, nil
}

func (lb LightBlock) build() (*lights.PointLight, error) {
	if lb.Position == nil {
		return nil, fmt.Errorf("position is required")
	}
	intensity := core.White
	if lb.Intensity != nil {
		intensity = core.Color(*lb.Intensity)
	}
	return lights.NewPointLight(lb.Position.Point(), intensity), nil
}

func (sb ShapeBlock) build() (*geometry.Shape, error) {
	var shape *geometry.Shape
	switch strings.ToLower(sb.Type) {
	case "sphere":
		shape = geometry.NewSphere()
	case "plane":
		shape = geometry.NewPlane()
	case "cube":
		shape = geometry.NewCube()
	case "cylinder":
		shape = geometry.NewCylinder()
	case "cone":
		shape = geometry.NewCone()
	case "":
		return nil, fmt.Errorf("type is required")
	default:
		return nil, fmt.Errorf("unknown shape type %q", sb.Type)
	}

	if sb.Min != nil || sb.Max != nil || sb.Closed {
		if shape.Kind != geometry.CylinderKind && shape.Kind != geometry.ConeKind {
			return nil, fmt.Errorf("min, max and closed only apply to cylinders and cones")
		}
		if sb.Min != nil {
			shape.Minimum = *sb.Min
		}
		if sb.Max != nil {
			shape.Maximum = *sb.Max
		}
		shape.Closed = sb.Closed
	}

	if sb.CastsShadow != nil {
		shape.CastsShadow = *sb.CastsShadow
	}

	if sb.Material != nil {
		m, err := sb.Material.build()
		if err != nil {
			return nil, fmt.Errorf("material: %w", err)
		}
		shape.Material = m
	}

	m, err := sb.Transform.Matrix()
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	if err := shape.SetTransform(m); err != nil {
		return nil, err
	}
	return shape, nil
}

func (mb MaterialBlock) build() (material.Material, error) {
	var m material.Material
	switch strings.ToLower(mb.Preset) {
	case "":
		m = material.NewMaterial()
	case "glass":
		m = material.NewGlass(material.RefractiveGlass)
	case "water":
		m = material.NewGlass(material.RefractiveWater)
	case "diamond":
		m = material.NewGlass(material.RefractiveDiamond)
	case "mirror":
		m = material.NewMaterial()
		m.Color = core.Black
		m.Reflective = 1
		m.Diffuse = 0.1
	default:
		return m, fmt.Errorf("unknown preset %q", mb.Preset)
	}

	if mb.Color != nil {
		m.Color = core.Color(*mb.Color)
	}

	for _, f := range []struct {
		name  string
		value *float64
		dst   *float64
	}{
		{"ambient", mb.Ambient, &m.Ambient},
		{"diffuse", mb.Diffuse, &m.Diffuse},
		{"specular", mb.Specular, &m.Specular},
		{"reflective", mb.Reflective, &m.Reflective},
		{"transparency", mb.Transparency, &m.Transparency},
	} {
		if f.value == nil {
			continue
		}
		if *f.value < 0 || *f.value > 1 {
			return m, fmt.Errorf("%s must be within [0, 1], got %g", f.name, *f.value)
		}
		*f.dst = *f.value
	}

	if mb.Shininess != nil {
		if *mb.Shininess <= 0 {
			return m, fmt.Errorf("shininess must be positive, got %g", *mb.Shininess)
		}
		m.Shininess = *mb.Shininess
	}
	if mb.RefractiveIndex != nil {
		m.RefractiveIndex = float64(*mb.RefractiveIndex)
	}

	if mb.Pattern != nil {
		p, err := mb.Pattern.build()
		if err != nil {
			return m, fmt.Errorf("pattern: %w", err)
		}
		m.Pattern = p
	}
	return m, nil
}

func (pb PatternBlock) build() (*material.Pattern, error) {
	var kind material.PatternKind
	switch strings.ToLower(pb.Type) {
	case "stripe":
		kind = material.Stripe
	case "gradient":
		kind = material.Gradient
	case "ring":
		kind = material.Ring
	case "checker", "checkers":
		kind = material.Checker
	default:
		return nil, fmt.Errorf("unknown pattern type %q", pb.Type)
	}

	if len(pb.Colors) != 2 {
		return nil, fmt.Errorf("%s needs 2 colors, got %d", kind, len(pb.Colors))
	}

	p := material.NewPattern(kind, core.Color(pb.Colors[0]), core.Color(pb.Colors[1]))
	m, err := pb.Transform.Matrix()
	if err != nil {
		return nil, fmt.Errorf("transform: %w", err)
	}
	if err := p.SetTransform(m); err != nil {
		return nil, err
	}
	return p, nil
}

// validateFilePath rejects paths that cannot name a scene file
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("empty path")
	}
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("path contains null bytes")
	}
	if len(filename) > 4096 {
		return fmt.Errorf("path too long")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("scene files must have a .yaml or .yml extension, got %q", ext)
	}
	return nil
}
