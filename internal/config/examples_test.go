package config

import (
	"path/filepath"
	"testing"

	"github.com/philipparndt/cylinter/internal/pose"
)

// TestAllExamplesLoadSuccessfully tests that all example generation files can be loaded and validated
func TestAllExamplesLoadSuccessfully(t *testing.T) {
	examples := []struct {
		name    string
		file    string
		samples int
	}{
		{"full generation", "../../example/generate.yaml", 10000},
		{"small generation", "../../example/generate-small.yaml", 500},
	}

	loader := NewLoader()

	for _, tt := range examples {
		t.Run(tt.name, func(t *testing.T) {
			absPath, err := filepath.Abs(tt.file)
			if err != nil {
				t.Fatalf("Failed to get absolute path: %v", err)
			}

			config, err := loader.LoadGeneration(absPath)
			if err != nil {
				t.Fatalf("Failed to load %s: %v", tt.name, err)
			}

			if !filepath.IsAbs(config.Output) {
				t.Errorf("Output %q should be resolved to an absolute path", config.Output)
			}
			if config.Samples != tt.samples {
				t.Errorf("Samples = %d, want %d", config.Samples, tt.samples)
			}
		})
	}
}

// TestSceneExample tests the scene.yaml example used by verify
func TestSceneExample(t *testing.T) {
	absPath, _ := filepath.Abs("../../example/scene.yaml")

	scene, err := NewLoader().LoadScene(absPath)
	if err != nil {
		t.Fatalf("Failed to load scene.yaml: %v", err)
	}

	if scene.Points != 10000 {
		t.Errorf("Points = %d, want 10000", scene.Points)
	}

	names := []string{"red", "red (clone)", "green", "blue", "purple"}
	if len(scene.Cylinders) != len(names) {
		t.Fatalf("Expected %d cylinders, got %d", len(names), len(scene.Cylinders))
	}
	for i, name := range names {
		if scene.Cylinders[i].Name != name {
			t.Errorf("cylinder %d = %q, want %q", i, scene.Cylinders[i].Name, name)
		}
	}

	cylinders, err := SceneCylinders(scene)
	if err != nil {
		t.Fatalf("SceneCylinders() error = %v", err)
	}

	// The clone sits exactly on the reference: its frame is the canonical X frame at the origin
	p := pose.Canonicalize(cylinders[0], cylinders[1])
	want := pose.RelativePose{1, 0, 0, 0, -1, 0, 0, 0, 0}
	for i := range p {
		if d := p[i] - want[i]; d > 1e-12 || d < -1e-12 {
			t.Errorf("clone pose = %v, want %v", p, want)
			break
		}
	}
}
