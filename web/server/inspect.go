package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Inside       bool                   `json:"inside"`
	N1           float64                `json:"n1"`
	N2           float64                `json:"n2"`
	Color        [3]float64             `json:"color"` // Shaded color of the pixel
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the shading context of the first object hit by an
// inspection ray
type InspectResult struct {
	Hit   bool
	Comps geometry.Computations
	Color core.Color
}

// inspectPixel casts the camera ray through a pixel center and reports the
// first object it hits
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY, maxDepth int) (InspectResult, error) {
	ray := sceneObj.Camera.RayForPixel(pixelX, pixelY)

	xs, err := sceneObj.World.Intersect(ray)
	if err != nil {
		return InspectResult{}, err
	}
	hit, ok := xs.Hit()
	if !ok {
		return InspectResult{Hit: false}, nil
	}

	config := renderer.MergeConfig(renderer.DefaultConfig(), sceneObj.Render)
	if maxDepth > 0 {
		config.MaxDepth = maxDepth
	}
	rt, err := renderer.NewRaytracer(sceneObj.World, config)
	if err != nil {
		return InspectResult{}, err
	}

	// Shade the same ray the renderer would trace for this pixel
	color, err := rt.TracePixelRay(ray)
	if err != nil {
		return InspectResult{}, err
	}

	return InspectResult{
		Hit:   true,
		Comps: geometry.PrepareComputations(hit, ray, xs),
		Color: color,
	}, nil
}

// extractMaterialInfo lists the Phong and optical parameters of a material
func extractMaterialInfo(m material.Material) map[string]interface{} {
	properties := map[string]interface{}{
		"color":           hexColor(m.Color),
		"ambient":         m.Ambient,
		"diffuse":         m.Diffuse,
		"specular":        m.Specular,
		"shininess":       m.Shininess,
		"reflective":      m.Reflective,
		"transparency":    m.Transparency,
		"refractiveIndex": m.RefractiveIndex,
	}

	switch p := m.Pattern.(type) {
	case nil:
	case *material.Pattern:
		properties["pattern"] = map[string]interface{}{
			"type":   p.Kind.String(),
			"colors": []string{hexColor(p.A), hexColor(p.B)},
		}
	default:
		properties["pattern"] = fmt.Sprintf("%T", p)
	}
	return properties
}

// extractGeometryInfo extracts the variant parameters of a shape
func extractGeometryInfo(shape *geometry.Shape) map[string]interface{} {
	properties := map[string]interface{}{
		"castsShadow": shape.CastsShadow,
		"transform":   shape.Transform(),
	}

	switch shape.Kind {
	case geometry.CylinderKind, geometry.ConeKind:
		properties["minimum"] = jsonFloat(shape.Minimum)
		properties["maximum"] = jsonFloat(shape.Maximum)
		properties["closed"] = shape.Closed
	}
	return properties
}

// jsonFloat renders unbounded limits as strings, which JSON can carry
func jsonFloat(v float64) interface{} {
	switch {
	case math.IsInf(v, 1):
		return "+inf"
	case math.IsInf(v, -1):
		return "-inf"
	default:
		return v
	}
}

func hexColor(c core.Color) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.R*255), int(c.G*255), int(c.B*255))
}

func xyz(v mgl64.Vec4) [3]float64 {
	return [3]float64{v.X(), v.Y(), v.Z()}
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createScene(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	// Scene files bring their own camera, so bounds come from the scene
	if pixelX < 0 || pixelX >= sceneObj.Camera.HSize() || pixelY < 0 || pixelY >= sceneObj.Camera.VSize() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result, err := inspectPixel(sceneObj, pixelX, pixelY, req.MaxDepth)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	comps := result.Comps
	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		GeometryType: comps.Shape.Kind.String(),
		Point:        xyz(comps.Point),
		Normal:       xyz(comps.NormalV),
		Distance:     comps.T,
		Inside:       comps.Inside,
		N1:           comps.N1,
		N2:           comps.N2,
		Color:        [3]float64{result.Color.R, result.Color.G, result.Color.B},
		Properties: map[string]interface{}{
			"material": extractMaterialInfo(comps.Shape.Material),
			"geometry": extractGeometryInfo(comps.Shape),
		},
	})
}
