package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/philipparndt/cylinter/internal/dataset"
	"github.com/philipparndt/cylinter/internal/generate"
	"github.com/philipparndt/cylinter/internal/plot"
)

func TestCLI_Parse(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		command string
	}{
		{"generate defaults", []string{"generate"}, "generate"},
		{"generate with config", []string{"generate", "config.yaml", "-n", "10", "--gen-coeff", "0.5"}, "generate <config>"},
		{"estimate", []string{"estimate", "--b-position", "0.05,0,0", "--b-axis", "0,1,0", "-p", "100"}, "estimate"},
		{"demo", []string{"demo", "--plane", "xz"}, "demo"},
		{"train", []string{"train", "data.csv", "--test-size", "0.3"}, "train <data>"},
		{"validate", []string{"validate", "data.csv", "--folds", "5"}, "validate <data>"},
		{"verify", []string{"verify", "scene.yaml", "--repeat", "1"}, "verify <scene>"},
		{"inspect", []string{"inspect", "data.csv"}, "inspect <file>"},
		{"version", []string{"version"}, "version"},
		{"completion", []string{"completion", "fish"}, "completion <shell>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cli := &CLI{}
			parser, err := kong.New(cli, kong.Name("cylinter"))
			if err != nil {
				t.Fatalf("kong.New() error = %v", err)
			}
			ctx, err := parser.Parse(tt.args)
			if err != nil {
				t.Fatalf("Parse(%v) error = %v", tt.args, err)
			}
			if ctx.Command() != tt.command {
				t.Errorf("Command() = %q, want %q", ctx.Command(), tt.command)
			}
		})
	}
}

func TestCLI_ParseCylinderFlags(t *testing.T) {
	cli := &CLI{}
	parser, err := kong.New(cli)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := parser.Parse([]string{"estimate", "--b-position", "0.05,0.01,0", "--a-radius", "0.2"}); err != nil {
		t.Fatal(err)
	}

	a, b, err := pairFromFlags(cli.Estimate.A, cli.Estimate.B)
	if err != nil {
		t.Fatalf("pairFromFlags() error = %v", err)
	}
	if a.Radius() != 0.2 || b.Radius() != 0.05 {
		t.Errorf("radii = %v, %v", a.Radius(), b.Radius())
	}
	if b.Position().X != 0.05 || b.Position().Y != 0.01 {
		t.Errorf("B position = %v", b.Position())
	}
	if cli.Estimate.Points != 10000 {
		t.Errorf("Points default = %d, want 10000", cli.Estimate.Points)
	}
}

func TestCylinderFlags_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		flags CylinderFlags
	}{
		{"short position", CylinderFlags{Position: []float64{0, 0}, Axis: []float64{1, 0, 0}, Radius: 1, Length: 1}},
		{"long axis", CylinderFlags{Position: []float64{0, 0, 0}, Axis: []float64{1, 0, 0, 0}, Radius: 1, Length: 1}},
		{"zero axis", CylinderFlags{Position: []float64{0, 0, 0}, Axis: []float64{0, 0, 0}, Radius: 1, Length: 1}},
		{"zero radius", CylinderFlags{Position: []float64{0, 0, 0}, Axis: []float64{1, 0, 0}, Radius: 0, Length: 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.flags.Cylinder(); err == nil {
				t.Error("Cylinder() should fail")
			}
		})
	}
}

func TestGenerateCmd_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gen.yaml")
	if err := os.WriteFile(path, []byte("output: data.csv\nsamples: 100\nseed: 5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	c := &GenerateCmd{Config: path, Points: 42, Histogram: "hist.png"}
	cfg, err := c.load()
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}
	if cfg.Samples != 100 || cfg.Seed != 5 {
		t.Errorf("config values lost: %+v", cfg)
	}
	if cfg.Points != 42 || cfg.Histogram != "hist.png" {
		t.Errorf("flags not applied: %+v", cfg)
	}
	if cfg.Output != filepath.Join(dir, "data.csv") {
		t.Errorf("Output = %q", cfg.Output)
	}

	c = &GenerateCmd{Samples: 7}
	cfg, err = c.load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Samples != 7 || cfg.Points != generate.DefaultOptions().Points {
		t.Errorf("defaults with flags = %+v", cfg)
	}
}

func TestWriteCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish"} {
		t.Run(shell, func(t *testing.T) {
			var buf bytes.Buffer
			if err := writeCompletion(&buf, shell); err != nil {
				t.Fatalf("writeCompletion() error = %v", err)
			}
			out := buf.String()
			for _, command := range []string{"generate", "train", "verify", "cylinter"} {
				if !strings.Contains(out, command) {
					t.Errorf("%s completion does not mention %q", shell, command)
				}
			}
		})
	}

	if err := writeCompletion(&bytes.Buffer{}, "powershell"); err == nil {
		t.Error("writeCompletion() should reject unsupported shells")
	}
}

func TestParsePlane(t *testing.T) {
	tests := []struct {
		in   string
		want plot.Plane
	}{
		{"xy", plot.PlaneXY},
		{"XZ", plot.PlaneXZ},
		{"yz", plot.PlaneYZ},
		{"", plot.PlaneXY},
	}
	for _, tt := range tests {
		if got := parsePlane(tt.in); got != tt.want {
			t.Errorf("parsePlane(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderHelp(t *testing.T) {
	for name, help := range map[string]string{
		"generate": renderGenerateHelp(),
		"demo":     renderDemoHelp(),
		"verify":   renderVerifyHelp(),
	} {
		if !strings.Contains(help, "Examples") || !strings.Contains(help, "cylinter "+name) {
			t.Errorf("%s help is missing its examples:\n%s", name, help)
		}
	}
}

// writeSmallDataset generates a labelled dataset small enough for unit tests
func writeSmallDataset(t *testing.T) string {
	t.Helper()
	opts := generate.DefaultOptions()
	opts.Samples = 60
	opts.Points = 200
	opts.Seed = 3

	g, err := generate.New(opts)
	if err != nil {
		t.Fatal(err)
	}
	samples, err := g.Run(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "data.csv")
	if err := dataset.WriteFile(path, samples); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestModelCommands(t *testing.T) {
	data := writeSmallDataset(t)
	parity := filepath.Join(t.TempDir(), "parity.png")

	if err := (&TrainCmd{Data: data, TestSize: 0.2, Neighbors: 3, Parity: parity}).Run(); err != nil {
		t.Errorf("train error = %v", err)
	}
	if _, err := os.Stat(parity); err != nil {
		t.Errorf("parity plot not written: %v", err)
	}

	if err := (&ValidateCmd{Data: data, Folds: 3, Neighbors: 3}).Run(); err != nil {
		t.Errorf("validate error = %v", err)
	}

	scene := filepath.Join(t.TempDir(), "scene.stl")
	if err := (&VerifyCmd{Scene: "../../example/scene.yaml", Data: data, Neighbors: 3, Repeat: 1, STL: scene}).Run(); err != nil {
		t.Errorf("verify error = %v", err)
	}
	if _, err := os.Stat(scene); err != nil {
		t.Errorf("scene STL not written: %v", err)
	}

	est := &EstimateCmd{
		A:         CylinderFlags{Position: []float64{0, 0, 0}, Axis: []float64{1, 0, 0}, Radius: 0.05, Length: 0.1},
		B:         CylinderFlags{Position: []float64{0.05, 0, 0}, Axis: []float64{1, 0, 0}, Radius: 0.05, Length: 0.1},
		Points:    500,
		Data:      data,
		Neighbors: 3,
	}
	if err := est.Run(); err != nil {
		t.Errorf("estimate error = %v", err)
	}

	if err := (&TrainCmd{Data: filepath.Join(t.TempDir(), "missing.csv"), TestSize: 0.2}).Run(); err == nil {
		t.Error("train should fail for a missing dataset")
	}
}

func TestDemoCmd(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.png")
	mesh := filepath.Join(dir, "demo.stl")
	c := &DemoCmd{
		A:      CylinderFlags{Position: []float64{0, 0, 0}, Axis: []float64{1, 0, 0}, Radius: 0.05, Length: 0.1},
		B:      CylinderFlags{Position: []float64{0.01, 0.05, 0.005}, Axis: []float64{1, 1, 1}, Radius: 0.05, Length: 0.1},
		Points: 500,
		Plot:   path,
		Plane:  "xy",
		STL:    mesh,
	}
	if err := c.Run(); err != nil {
		t.Fatalf("demo error = %v", err)
	}
	for _, f := range []string{path, mesh} {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("%s not written: %v", f, err)
		}
	}
}
