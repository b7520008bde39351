package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/philipparndt/cylinter/internal/geometry"
	"github.com/philipparndt/cylinter/internal/models"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGeneration_DefaultsAndPaths(t *testing.T) {
	path := writeConfig(t, "output: out/data.csv\nsamples: 12\nhistogram: /tmp/hist.png\n")

	cfg, err := NewLoader().LoadGeneration(path)
	if err != nil {
		t.Fatalf("LoadGeneration() error = %v", err)
	}

	want := filepath.Join(filepath.Dir(path), "out", "data.csv")
	if cfg.Output != want {
		t.Errorf("Output = %q, want %q", cfg.Output, want)
	}
	if cfg.Histogram != "/tmp/hist.png" {
		t.Errorf("Histogram = %q, absolute paths must be kept", cfg.Histogram)
	}
	if cfg.Samples != 12 {
		t.Errorf("Samples = %d, want 12", cfg.Samples)
	}

	defaults := DefaultGeneration()
	if cfg.Points != defaults.Points || cfg.GenCoeff != defaults.GenCoeff || cfg.Cylinder != defaults.Cylinder {
		t.Errorf("missing keys should keep defaults, got %+v", cfg)
	}
}

func TestLoadGeneration_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errText string
	}{
		{"invalid yaml", "samples: [1, 2", "failed to parse YAML"},
		{"unknown key", "sample: 10", "failed to parse YAML"},
		{"zero samples", "samples: 0", "samples must be at least 1"},
		{"zero points", "points: 0", "points must be at least 1"},
		{"negative coefficient", "gen_coeff: -1", "gen_coeff"},
		{"negative workers", "workers: -2", "workers"},
		{"bad radius", "cylinder: {radius: 0, length: 0.1}", "cylinder.radius"},
		{"bad length", "cylinder: {radius: 0.1, length: -1}", "cylinder.length"},
		{"empty output", "output: ''", "output file must be specified"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().LoadGeneration(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("LoadGeneration() should fail")
			}
			if !strings.Contains(err.Error(), tt.errText) {
				t.Errorf("error %q should contain %q", err, tt.errText)
			}
		})
	}
}

func TestLoadGeneration_MissingFile(t *testing.T) {
	if _, err := NewLoader().LoadGeneration(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadGeneration() should fail for a missing file")
	}
}

func TestGenerationOptions(t *testing.T) {
	cfg := DefaultGeneration()
	cfg.Seed = 9
	cfg.Workers = 3

	opts := GenerationOptions(&cfg)
	if opts.Samples != cfg.Samples || opts.Points != cfg.Points || opts.Seed != 9 || opts.Workers != 3 {
		t.Errorf("GenerationOptions() = %+v", opts)
	}
	if opts.Radius != cfg.Cylinder.Radius || opts.Length != cfg.Cylinder.Length {
		t.Errorf("GenerationOptions() cylinder = %v/%v", opts.Radius, opts.Length)
	}
}

func TestValidateScene(t *testing.T) {
	valid := func() *models.SceneConfig {
		return &models.SceneConfig{
			Points: 100,
			Cylinders: []models.CylinderSpec{
				{Name: "a", Position: []float64{0, 0, 0}, Axis: []float64{1, 0, 0}, Radius: 0.05, Length: 0.1},
				{Name: "b", Position: []float64{0, 0, 0}, Radius: 0.05, Length: 0.1},
			},
		}
	}

	tests := []struct {
		name    string
		modify  func(*models.SceneConfig)
		wantErr string
	}{
		{"valid", func(*models.SceneConfig) {}, ""},
		{"no points", func(c *models.SceneConfig) { c.Points = 0 }, "points"},
		{"single cylinder", func(c *models.SceneConfig) { c.Cylinders = c.Cylinders[:1] }, "at least two"},
		{"missing name", func(c *models.SceneConfig) { c.Cylinders[0].Name = "" }, "name is required"},
		{"duplicate name", func(c *models.SceneConfig) { c.Cylinders[1].Name = "a" }, "duplicate"},
		{"short position", func(c *models.SceneConfig) { c.Cylinders[0].Position = []float64{1} }, "position"},
		{"short axis", func(c *models.SceneConfig) { c.Cylinders[0].Axis = []float64{1, 0} }, "axis"},
		{"zero radius", func(c *models.SceneConfig) { c.Cylinders[1].Radius = 0 }, "radius"},
		{"zero length", func(c *models.SceneConfig) { c.Cylinders[1].Length = 0 }, "length"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.modify(cfg)
			err := NewLoader().ValidateScene(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("ValidateScene() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("ValidateScene() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestSceneCylinders(t *testing.T) {
	cfg := &models.SceneConfig{
		Seed: 3,
		Cylinders: []models.CylinderSpec{
			{Name: "fixed", Position: []float64{1, 2, 3}, Axis: []float64{0, 0, 2}, Radius: 0.05, Length: 0.1},
			{Name: "random", Position: []float64{0, 0, 0}, Radius: 0.05, Length: 0.1},
		},
	}

	cylinders, err := SceneCylinders(cfg)
	if err != nil {
		t.Fatalf("SceneCylinders() error = %v", err)
	}
	if len(cylinders) != 2 {
		t.Fatalf("SceneCylinders() returned %d cylinders", len(cylinders))
	}
	if cylinders[0].Position() != (r3.Vec{X: 1, Y: 2, Z: 3}) || cylinders[0].Axis() != geometry.ZAxis {
		t.Errorf("fixed cylinder = %v", cylinders[0])
	}

	again, err := SceneCylinders(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if again[1].Axis() != cylinders[1].Axis() {
		t.Errorf("random axis is not reproducible: %v vs %v", again[1].Axis(), cylinders[1].Axis())
	}

	cfg.Cylinders[0].Axis = []float64{0, 0, 0}
	if _, err := SceneCylinders(cfg); err == nil {
		t.Error("SceneCylinders() should reject a zero axis")
	}
}

func TestMarshal(t *testing.T) {
	cfg := DefaultGeneration()
	data, err := Marshal(&cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back models.GenerationConfig
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Marshal() produced invalid YAML: %v\n%s", err, data)
	}
	if back != cfg {
		t.Errorf("Marshal() lost values: %+v, want %+v", back, cfg)
	}
	if strings.Contains(string(data), "histogram") {
		t.Errorf("empty histogram should be omitted:\n%s", data)
	}
}
