package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/cylinter/internal/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// DefaultSegments is the number of side facets used to approximate a cylinder
const DefaultSegments = 48

// Vector3 represents a 3D vector
type Vector3 struct {
	X, Y, Z float32
}

func toVector3(v r3.Vec) Vector3 {
	return Vector3{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

// Triangle represents a triangle in 3D space
type Triangle struct {
	Normal     Vector3
	V1, V2, V3 Vector3
}

// Mesh represents an STL mesh
type Mesh struct {
	Name      string
	Triangles []Triangle
}

// Tessellate approximates a cylinder by a closed triangle mesh with the given
// number of side segments. Faces are wound counter-clockwise seen from outside.
func Tessellate(name string, c geometry.Cylinder, segments int) (*Mesh, error) {
	if segments < 3 {
		return nil, fmt.Errorf("a cylinder needs at least 3 segments, got %d", segments)
	}

	frame := c.Frame()
	base := c.Position()
	top := c.End()

	ring := func(center r3.Vec, i int) r3.Vec {
		theta := 2 * math.Pi * float64(i%segments) / float64(segments)
		sin, cos := math.Sincos(theta)
		offset := r3.Add(r3.Scale(c.Radius()*cos, frame.V), r3.Scale(c.Radius()*sin, frame.W))
		return r3.Add(center, offset)
	}

	mesh := &Mesh{Name: name, Triangles: make([]Triangle, 0, 4*segments)}
	add := func(a, b, d r3.Vec) {
		n, _ := geometry.Normalize(r3.Cross(r3.Sub(b, a), r3.Sub(d, a)))
		mesh.Triangles = append(mesh.Triangles, Triangle{
			Normal: toVector3(n),
			V1:     toVector3(a),
			V2:     toVector3(b),
			V3:     toVector3(d),
		})
	}

	for i := 0; i < segments; i++ {
		b0, b1 := ring(base, i), ring(base, i+1)
		t0, t1 := ring(top, i), ring(top, i+1)

		// Side quad
		add(b0, b1, t1)
		add(b0, t1, t0)
		// Caps
		add(base, b1, b0)
		add(top, t0, t1)
	}
	return mesh, nil
}

// WriteBinary writes meshes as one binary STL solid
func WriteBinary(w io.Writer, meshes ...*Mesh) error {
	var count uint32
	names := make([]string, 0, len(meshes))
	for _, m := range meshes {
		count += uint32(len(m.Triangles))
		names = append(names, m.Name)
	}

	header := make([]byte, 80)
	// Must not start with "solid" or readers take the file for ASCII
	copy(header, "cylinter "+strings.Join(names, ","))

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(header); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return fmt.Errorf("error writing triangle count: %w", err)
	}

	for _, m := range meshes {
		for _, t := range m.Triangles {
			if err := binary.Write(bw, binary.LittleEndian, t); err != nil {
				return fmt.Errorf("error writing triangle: %w", err)
			}
			// Attribute byte count
			if err := binary.Write(bw, binary.LittleEndian, uint16(0)); err != nil {
				return fmt.Errorf("error writing attribute count: %w", err)
			}
		}
	}
	return bw.Flush()
}

// WriteFile writes every named cylinder to a binary STL file
func WriteFile(path string, names []string, cylinders []geometry.Cylinder) error {
	if len(names) != len(cylinders) {
		return fmt.Errorf("got %d names for %d cylinders", len(names), len(cylinders))
	}

	meshes := make([]*Mesh, len(cylinders))
	for i, c := range cylinders {
		m, err := Tessellate(names[i], c, DefaultSegments)
		if err != nil {
			return err
		}
		meshes[i] = m
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create file: %w", err)
	}
	if err := WriteBinary(file, meshes...); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Parser parses STL files
type Parser struct{}

// NewParser creates a new STL parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads an STL file and returns the mesh data
func (p *Parser) Parse(filename string) (*Mesh, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	// Read first few bytes to detect format
	header := make([]byte, 80)
	if _, err := io.ReadFull(file, header); err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	// Reset file position
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("error seeking: %w", err)
	}

	// Check if it's ASCII (starts with "solid")
	if strings.HasPrefix(string(header), "solid") {
		return p.parseASCII(file, filename)
	}
	return p.parseBinary(file, filename)
}

// parseASCII parses an ASCII STL file
func (p *Parser) parseASCII(reader io.Reader, filename string) (*Mesh, error) {
	scanner := bufio.NewScanner(reader)
	mesh := &Mesh{Name: filepath.Base(filename)}

	var current Triangle
	var vertexCount int

	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				mesh.Name = strings.Join(fields[1:], " ")
			}
		case "facet":
			if len(fields) >= 5 && fields[1] == "normal" {
				fmt.Sscanf(strings.Join(fields[2:], " "), "%f %f %f",
					&current.Normal.X, &current.Normal.Y, &current.Normal.Z)
			}
			vertexCount = 0
		case "vertex":
			if len(fields) >= 4 {
				var v Vector3
				fmt.Sscanf(strings.Join(fields[1:], " "), "%f %f %f", &v.X, &v.Y, &v.Z)
				switch vertexCount {
				case 0:
					current.V1 = v
				case 1:
					current.V2 = v
				case 2:
					current.V3 = v
				}
				vertexCount++
			}
		case "endfacet":
			mesh.Triangles = append(mesh.Triangles, current)
			current = Triangle{}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}
	return mesh, nil
}

// parseBinary parses a binary STL file
func (p *Parser) parseBinary(reader io.Reader, filename string) (*Mesh, error) {
	mesh := &Mesh{Name: filepath.Base(filename)}

	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}

	var triangleCount uint32
	if err := binary.Read(reader, binary.LittleEndian, &triangleCount); err != nil {
		return nil, fmt.Errorf("error reading triangle count: %w", err)
	}

	mesh.Triangles = make([]Triangle, triangleCount)
	for i := range mesh.Triangles {
		if err := binary.Read(reader, binary.LittleEndian, &mesh.Triangles[i]); err != nil {
			return nil, fmt.Errorf("error reading triangle %d: %w", i, err)
		}
		var attributeCount uint16
		if err := binary.Read(reader, binary.LittleEndian, &attributeCount); err != nil {
			return nil, fmt.Errorf("error reading attribute count: %w", err)
		}
	}
	return mesh, nil
}
