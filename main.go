package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/canvas"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	// Parse command line flags
	sceneType := flag.String("scene", "default", "Built-in scene name or path to a .yaml scene file")
	outDir := flag.String("out", "output", "Directory that receives the rendered image")
	format := flag.String("format", "png", "Output format: 'png' or 'ppm'")
	width := flag.Int("width", 400, "Image width for built-in scenes")
	height := flag.Int("height", 300, "Image height for built-in scenes")
	workers := flag.Int("workers", 0, "Parallel tile workers (0 = scene setting or one per CPU, 1 = sequential)")
	depth := flag.Int("depth", 0, "Reflection/refraction recursion limit (0 = scene setting or default)")
	list := flag.Bool("list", false, "List available scenes")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	if *help {
		printHelp()
		return
	}

	if *list {
		if err := printScenes("scenes"); err != nil {
			fmt.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *format != "png" && *format != "ppm" {
		fmt.Printf("Unknown output format: %s\n", *format)
		os.Exit(1)
	}

	fmt.Println("Starting Whitted Raytracer...")

	selectedScene, err := createScene(*sceneType, *width, *height)
	if err != nil {
		fmt.Printf("Error creating scene: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Using scene %q (%d shapes, %d lights)...\n",
		selectedScene.Name, selectedScene.ShapeCount(), selectedScene.LightCount())

	config := renderConfig(selectedScene, *workers, *depth)

	img, stats, err := renderer.Render(selectedScene.Camera, selectedScene.World, config, renderer.NewDefaultLogger())
	if err != nil {
		fmt.Printf("Error rendering scene: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Time per pixel: %v, average luminance: %.3f\n",
		stats.TimePerPixel(), renderer.CalculateAverageLuminance(img))

	outputDir := createOutputDir(*outDir, *sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, *format))
	if err := saveImage(img, filename, *format); err != nil {
		fmt.Printf("Error saving image: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Render saved as %s\n", filename)
}

func printHelp() {
	fmt.Println("Whitted Raytracer")
	fmt.Println("Usage: raytracer [options]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Available scenes:")
	for _, name := range scene.BuiltinNames() {
		fmt.Printf("  %s\n", name)
	}
	fmt.Println("  <file>.yaml - Scene description file (its camera sets the image size)")
	fmt.Println()
	fmt.Println("Output will be saved to <out>/<scene>/render_<timestamp>.<format>")
}

func printScenes(dir string) error {
	groups, err := scene.ListAllScenes(dir)
	if err != nil {
		return err
	}
	for _, group := range groups {
		fmt.Printf("%s:\n", group.Name)
		for _, info := range group.Scenes {
			line := fmt.Sprintf("  %-24s %s", info.ID, info.Name)
			if info.Description != "" {
				line += " - " + info.Description
			}
			fmt.Println(line)
		}
	}
	return nil
}

// isSceneFile reports whether the scene argument names a YAML file
func isSceneFile(sceneType string) bool {
	ext := strings.ToLower(filepath.Ext(sceneType))
	return ext == ".yaml" || ext == ".yml"
}

// createScene builds a built-in scene at the requested size or loads a
// scene file, which carries its own camera
func createScene(sceneType string, width, height int) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("no scene given")
	}
	if isSceneFile(sceneType) {
		return loaders.LoadYAMLScene(strings.TrimPrefix(sceneType, "yaml:"))
	}
	if strings.HasPrefix(sceneType, "yaml:") {
		// IDs printed by -list refer to files in the scenes directory
		return loaders.LoadYAMLScene(filepath.Join("scenes", strings.TrimPrefix(sceneType, "yaml:")+".yaml"))
	}
	return scene.NewBuiltin(sceneType, width, height)
}

// renderConfig layers the scene's render settings over the defaults, then
// the command line over both
func renderConfig(s *scene.Scene, workers, depth int) renderer.Config {
	config := renderer.MergeConfig(renderer.DefaultConfig(), s.Render)
	if workers > 0 {
		config.NumWorkers = workers
	}
	if depth > 0 {
		config.MaxDepth = depth
	}
	return config
}

// createOutputDir names the directory for a scene's renders
func createOutputDir(base, sceneType string) string {
	name := strings.TrimPrefix(sceneType, "yaml:")
	if isSceneFile(name) {
		name = strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	}
	return filepath.Join(base, name)
}

func saveImage(img *canvas.Canvas, filename, format string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	switch format {
	case "png":
		err = img.WritePNG(file)
	case "ppm":
		err = img.WritePPM(file)
	default:
		err = fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return file.Close()
}
