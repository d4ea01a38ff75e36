package scene

import (
	"testing"
)

func TestBuiltinScenes(t *testing.T) {
	for _, name := range BuiltinNames() {
		t.Run(name, func(t *testing.T) {
			s, err := NewBuiltin(name, 40, 30)
			if err != nil {
				t.Fatalf("NewBuiltin(%q) failed: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if s.ShapeCount() == 0 || s.LightCount() == 0 {
				t.Errorf("Expected shapes and lights, got %d shapes and %d lights", s.ShapeCount(), s.LightCount())
			}
			if s.Camera.HSize() != 40 || s.Camera.VSize() != 30 {
				t.Errorf("Expected 40x30 camera, got %dx%d", s.Camera.HSize(), s.Camera.VSize())
			}
		})
	}
}

func TestNewBuiltin_Unknown(t *testing.T) {
	if _, err := NewBuiltin("cornell-box", 10, 10); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestNewBuiltin_InvalidSize(t *testing.T) {
	if _, err := NewBuiltin("default", 0, 10); err == nil {
		t.Error("Expected error for zero width")
	}
}
