package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/philipparndt/cylinter/internal/generate"
	"github.com/philipparndt/cylinter/internal/geometry"
	"github.com/philipparndt/cylinter/internal/models"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

// DefaultScenePoints is the Monte-Carlo point count used when a scene sets none
const DefaultScenePoints = 10000

// Loader handles loading and validating YAML configuration files
type Loader struct{}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{}
}

// DefaultGeneration returns the generation settings used for missing keys
func DefaultGeneration() models.GenerationConfig {
	opts := generate.DefaultOptions()
	return models.GenerationConfig{
		Output:   fmt.Sprintf("data/data_%d_%d.csv", opts.Samples, opts.Points),
		Samples:  opts.Samples,
		Points:   opts.Points,
		GenCoeff: opts.GenCoeff,
		Cylinder: models.CylinderConfig{
			Radius: opts.Radius,
			Length: opts.Length,
		},
	}
}

// LoadGeneration reads, validates and resolves a generation config file
func (l *Loader) LoadGeneration(configPath string) (*models.GenerationConfig, error) {
	config := DefaultGeneration()
	if err := decodeFile(configPath, &config); err != nil {
		return nil, err
	}

	if err := l.ValidateGeneration(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Convert relative paths to absolute paths (relative to config file)
	absConfigDir, err := filepath.Abs(filepath.Dir(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path of config directory: %w", err)
	}
	config.Output = resolve(absConfigDir, config.Output)
	if config.Histogram != "" {
		config.Histogram = resolve(absConfigDir, config.Histogram)
	}

	return &config, nil
}

// ValidateGeneration checks if the generation configuration is valid
func (l *Loader) ValidateGeneration(config *models.GenerationConfig) error {
	if config.Output == "" {
		return fmt.Errorf("output file must be specified")
	}
	if config.Samples < 1 {
		return fmt.Errorf("samples must be at least 1, got %d", config.Samples)
	}
	if config.Points < 1 {
		return fmt.Errorf("points must be at least 1, got %d", config.Points)
	}
	if !(config.GenCoeff > 0) || math.IsInf(config.GenCoeff, 0) {
		return fmt.Errorf("gen_coeff must be a positive number, got %g", config.GenCoeff)
	}
	if config.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", config.Workers)
	}
	if !(config.Cylinder.Radius > 0) {
		return fmt.Errorf("cylinder.radius must be positive, got %g", config.Cylinder.Radius)
	}
	if !(config.Cylinder.Length > 0) {
		return fmt.Errorf("cylinder.length must be positive, got %g", config.Cylinder.Length)
	}
	return nil
}

// GenerationOptions converts a generation config to generator options
func GenerationOptions(config *models.GenerationConfig) generate.Options {
	return generate.Options{
		Samples:  config.Samples,
		Points:   config.Points,
		GenCoeff: config.GenCoeff,
		Radius:   config.Cylinder.Radius,
		Length:   config.Cylinder.Length,
		Seed:     config.Seed,
		Workers:  config.Workers,
	}
}

// LoadScene reads and validates a scene file
func (l *Loader) LoadScene(configPath string) (*models.SceneConfig, error) {
	config := models.SceneConfig{Points: DefaultScenePoints}
	if err := decodeFile(configPath, &config); err != nil {
		return nil, err
	}

	if err := l.ValidateScene(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// ValidateScene checks if the scene configuration is valid
func (l *Loader) ValidateScene(config *models.SceneConfig) error {
	if config.Points < 1 {
		return fmt.Errorf("points must be at least 1, got %d", config.Points)
	}
	if len(config.Cylinders) < 2 {
		return fmt.Errorf("at least two cylinders must be defined, got %d", len(config.Cylinders))
	}

	names := make(map[string]bool)
	for i, c := range config.Cylinders {
		if c.Name == "" {
			return fmt.Errorf("cylinder %d: name is required", i+1)
		}
		if names[c.Name] {
			return fmt.Errorf("cylinder %s: duplicate name", c.Name)
		}
		names[c.Name] = true

		if len(c.Position) != 3 {
			return fmt.Errorf("cylinder %s: position must have 3 values, got %d", c.Name, len(c.Position))
		}
		if len(c.Axis) != 0 && len(c.Axis) != 3 {
			return fmt.Errorf("cylinder %s: axis must have 3 values or be omitted, got %d", c.Name, len(c.Axis))
		}
		if !(c.Radius > 0) {
			return fmt.Errorf("cylinder %s: radius must be positive", c.Name)
		}
		if !(c.Length > 0) {
			return fmt.Errorf("cylinder %s: length must be positive", c.Name)
		}
	}
	return nil
}

// SceneCylinders builds the cylinders of a scene in file order. Cylinders
// without an axis get a random direction drawn from the scene seed.
func SceneCylinders(config *models.SceneConfig) ([]geometry.Cylinder, error) {
	rng := rand.New(rand.NewPCG(config.Seed, 0))

	cylinders := make([]geometry.Cylinder, len(config.Cylinders))
	for i, c := range config.Cylinders {
		position := toVec(c.Position)
		var axis r3.Vec
		if len(c.Axis) == 0 {
			axis = generate.RandomUnitVector(rng)
		} else {
			axis = toVec(c.Axis)
		}

		cyl, err := geometry.NewCylinder(position, axis, c.Radius, c.Length)
		if err != nil {
			return nil, fmt.Errorf("cylinder %s: %w", c.Name, err)
		}
		cylinders[i] = cyl
	}
	return cylinders, nil
}

// Marshal renders a config as YAML
func Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode YAML: %w", err)
	}
	return buf.Bytes(), nil
}

func decodeFile(configPath string, out any) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}
	return nil
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func toVec(v []float64) r3.Vec {
	return r3.Vec{X: v[0], Y: v[1], Z: v[2]}
}
