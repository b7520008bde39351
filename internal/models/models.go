package models

// GenerationConfig describes a dataset generation run
type GenerationConfig struct {
	Output    string         `yaml:"output"`
	Samples   int            `yaml:"samples"`
	Points    int            `yaml:"points"`
	GenCoeff  float64        `yaml:"gen_coeff"`
	Seed      uint64         `yaml:"seed"`
	Workers   int            `yaml:"workers"`
	Histogram string         `yaml:"histogram,omitempty"`
	Cylinder  CylinderConfig `yaml:"cylinder"`
}

// CylinderConfig holds the shape shared by both cylinders of a generated pair
type CylinderConfig struct {
	Radius float64 `yaml:"radius"`
	Length float64 `yaml:"length"`
}

// SceneConfig describes a set of cylinders checked pairwise by verify
type SceneConfig struct {
	Points    int            `yaml:"points"`
	Seed      uint64         `yaml:"seed"`
	Cylinders []CylinderSpec `yaml:"cylinders"`
}

// CylinderSpec is one named cylinder of a scene. An empty axis is replaced by
// a random direction drawn from the scene seed.
type CylinderSpec struct {
	Name     string    `yaml:"name"`
	Position []float64 `yaml:"position,flow"`
	Axis     []float64 `yaml:"axis,flow,omitempty"`
	Radius   float64   `yaml:"radius"`
	Length   float64   `yaml:"length"`
}
