// Package dataset stores interference samples as headerless CSV rows: the
// nine relative pose features followed by the interference ratio.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/philipparndt/cylinter/internal/pose"
)

// Columns is the number of fields per row
const Columns = pose.Size + 1

// Sample is one training record: a relative pose and the share of the
// reference cylinder's volume inside the other cylinder.
type Sample struct {
	Pose  pose.RelativePose
	Ratio float64
}

// Record formats the sample as CSV fields
func (s Sample) Record() []string {
	record := make([]string, 0, Columns)
	for _, v := range s.Pose {
		record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
	}
	return append(record, strconv.FormatFloat(s.Ratio, 'g', -1, 64))
}

// ParseRecord parses CSV fields into a sample
func ParseRecord(record []string) (Sample, error) {
	var s Sample
	if len(record) != Columns {
		return s, fmt.Errorf("expected %d fields, got %d", Columns, len(record))
	}

	values := make([]float64, Columns)
	for i, field := range record {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return s, fmt.Errorf("field %d: %w", i+1, err)
		}
		values[i] = v
	}

	p, err := pose.FromSlice(values[:pose.Size])
	if err != nil {
		return s, err
	}
	s.Pose = p
	s.Ratio = values[pose.Size]
	return s, nil
}

// Writer writes samples as CSV rows
type Writer struct {
	w *csv.Writer
}

// NewWriter creates a Writer on w
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: csv.NewWriter(w)}
}

// Write writes one sample
func (w *Writer) Write(s Sample) error {
	return w.w.Write(s.Record())
}

// Flush flushes buffered rows and reports any write error
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

// Read parses all rows from r
func Read(r io.Reader) ([]Sample, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = Columns
	reader.ReuseRecord = true

	var samples []Sample
	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", line, err)
		}
		s, err := ParseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("invalid row %d: %w", line, err)
		}
		samples = append(samples, s)
	}
	return samples, nil
}

// ReadFile reads a CSV dataset from path
func ReadFile(path string) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open dataset: %w", err)
	}
	defer f.Close()

	samples, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return samples, nil
}

// WriteFile writes samples to path, creating parent directories as needed
func WriteFile(path string, samples []Sample) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create dataset: %w", err)
	}

	w := NewWriter(f)
	for _, s := range samples {
		if err := w.Write(s); err != nil {
			f.Close()
			return fmt.Errorf("failed to write dataset: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write dataset: %w", err)
	}
	return f.Close()
}

// Split separates samples into the feature matrix and the target vector
func Split(samples []Sample) (x [][]float64, y []float64) {
	x = make([][]float64, len(samples))
	y = make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Pose.Slice()
		y[i] = s.Ratio
	}
	return x, y
}

// Ratios returns the target column
func Ratios(samples []Sample) []float64 {
	_, y := Split(samples)
	return y
}
