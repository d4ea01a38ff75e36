package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const tinyScene = `# Scene: Tiny
camera:
  width: 8
  height: 6
lights:
  - position: [-10, 10, -10]
shapes:
  - type: cube
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tiny.yaml"), []byte(tinyScene), 0644); err != nil {
		t.Fatal(err)
	}
	return NewServer(0, dir)
}

func get(t *testing.T, s *Server, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandleHealth(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Unexpected health response: %s", rec.Body.String())
	}
}

func TestHandleScenes(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/scenes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var groups []struct {
		Name   string
		Scenes []struct{ ID string }
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &groups); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if len(groups) != 2 {
		t.Fatalf("Expected built-in and file groups, got %d groups", len(groups))
	}
	if groups[0].Name != "Built-in Scenes" {
		t.Errorf("Expected built-in scenes first, got %q", groups[0].Name)
	}
	if len(groups[1].Scenes) != 1 || groups[1].Scenes[0].ID != "yaml:tiny" {
		t.Errorf("Expected the tiny scene file, got %+v", groups[1].Scenes)
	}
}

func TestHandleRender(t *testing.T) {
	tests := []struct {
		name         string
		target       string
		expectEvents []string
		rejectEvents []string
	}{
		{"built-in scene", "/api/render?scene=default&width=16&height=12", []string{"event: console", "event: image", "event: complete"}, []string{"event: error"}},
		{"scene file", "/api/render?scene=yaml:tiny", []string{"event: image", "event: complete"}, []string{"event: error"}},
		{"unknown scene", "/api/render?scene=nonexistent", []string{"event: error"}, []string{"event: image"}},
		{"path outside scene directory", "/api/render?scene=yaml:../tiny", []string{"event: error"}, []string{"event: image"}},
		{"invalid width", "/api/render?width=0", []string{"event: error"}, []string{"event: image"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, newTestServer(t), tt.target)
			if ct := rec.Header().Get("Content-Type"); ct != "text/event-stream" {
				t.Errorf("Expected SSE content type, got %q", ct)
			}

			body := rec.Body.String()
			for _, event := range tt.expectEvents {
				if !strings.Contains(body, event) {
					t.Errorf("Expected %q in stream:\n%s", event, body)
				}
			}
			for _, event := range tt.rejectEvents {
				if strings.Contains(body, event) {
					t.Errorf("Unexpected %q in stream:\n%s", event, body)
				}
			}
		})
	}
}

func TestHandleRenderResult(t *testing.T) {
	rec := get(t, newTestServer(t), "/api/render?scene=yaml:tiny")

	var payload string
	lines := strings.Split(rec.Body.String(), "\n")
	for i, line := range lines {
		if line == "event: image" && i+1 < len(lines) {
			payload = strings.TrimPrefix(lines[i+1], "data: ")
		}
	}
	if payload == "" {
		t.Fatalf("No image event in stream:\n%s", rec.Body.String())
	}

	var result RenderResult
	if err := json.Unmarshal([]byte(payload), &result); err != nil {
		t.Fatalf("Invalid image payload: %v", err)
	}
	if result.Scene != "Tiny" {
		t.Errorf("Expected scene name 'Tiny', got %q", result.Scene)
	}
	if result.Stats.Width != 8 || result.Stats.Height != 6 || result.Stats.TotalPixels != 48 {
		t.Errorf("Unexpected stats: %+v", result.Stats)
	}
	if result.ImageData == "" {
		t.Error("Expected image data")
	}
}

func TestHandleInspect(t *testing.T) {
	s := newTestServer(t)

	rec := get(t, s, "/api/inspect?scene=default&width=21&height=21&x=10&y=10")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp InspectResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if !resp.Hit || resp.GeometryType != "sphere" {
		t.Fatalf("Expected to hit a sphere, got %+v", resp)
	}
	if resp.Inside {
		t.Error("Camera ray should hit the outside of the sphere")
	}
	if resp.N1 != 1 || resp.N2 != 1 {
		t.Errorf("Expected n1 = n2 = 1 for opaque spheres, got %f and %f", resp.N1, resp.N2)
	}
	if _, ok := resp.Properties["material"]; !ok {
		t.Error("Expected material properties")
	}

	// A corner pixel looks past the spheres
	rec = get(t, s, "/api/inspect?scene=default&width=21&height=21&x=0&y=0")
	resp = InspectResponse{}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid JSON: %v", err)
	}
	if resp.Hit {
		t.Errorf("Expected a miss at the corner, got %+v", resp)
	}
}

func TestHandleInspectErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
	}{
		{"missing x", "/api/inspect?scene=default&y=1"},
		{"invalid y", "/api/inspect?scene=default&x=1&y=abc"},
		{"out of bounds", "/api/inspect?scene=default&width=10&height=10&x=10&y=0"},
		{"scene file bounds", "/api/inspect?scene=yaml:tiny&x=8&y=0"},
		{"unknown scene", "/api/inspect?scene=nonexistent&x=0&y=0"},
	}

	s := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, s, tt.target)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}
