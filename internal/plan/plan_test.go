package plan

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/philipparndt/cylinter/internal/config"
	"github.com/philipparndt/cylinter/internal/dataset"
)

func TestCreatePlan_Steps(t *testing.T) {
	tests := []struct {
		name      string
		histogram string
		want      []string
	}{
		{
			name: "without histogram",
			want: []string{"Check preconditions", "Sample poses", "Estimate interference", "Summarize", "Write dataset"},
		},
		{
			name:      "with histogram",
			histogram: "hist.png",
			want:      []string{"Check preconditions", "Sample poses", "Estimate interference", "Summarize", "Write dataset", "Plot histogram"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.DefaultGeneration()
			cfg.Histogram = tt.histogram

			plan, err := NewPlanner().CreatePlan(&cfg)
			if err != nil {
				t.Fatalf("CreatePlan() error = %v", err)
			}
			if len(plan.Steps) != len(tt.want) {
				t.Fatalf("CreatePlan() has %d steps, want %d", len(plan.Steps), len(tt.want))
			}
			for i, step := range plan.Steps {
				if step.Name() != tt.want[i] {
					t.Errorf("step %d = %q, want %q", i+1, step.Name(), tt.want[i])
				}
			}
		})
	}
}

func TestCreatePlan_Invalid(t *testing.T) {
	cfg := config.DefaultGeneration()
	cfg.Samples = 0
	if _, err := NewPlanner().CreatePlan(&cfg); err == nil {
		t.Error("CreatePlan() should reject an invalid config")
	}
}

func TestPlan_Execute(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultGeneration()
	cfg.Output = filepath.Join(dir, "data", "out.csv")
	cfg.Histogram = filepath.Join(dir, "plots", "hist.png")
	cfg.Samples = 40
	cfg.Points = 200
	cfg.Workers = 2
	cfg.Seed = 11

	plan, err := NewPlanner().CreatePlan(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := plan.Execute(context.Background()); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	samples, err := dataset.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if len(samples) != 40 {
		t.Errorf("dataset has %d rows, want 40", len(samples))
	}
	if _, err := os.Stat(cfg.Histogram); err != nil {
		t.Errorf("histogram not written: %v", err)
	}
}

func TestPlan_ExecuteCancelled(t *testing.T) {
	cfg := config.DefaultGeneration()
	cfg.Output = filepath.Join(t.TempDir(), "out.csv")
	cfg.Samples = 10

	plan, err := NewPlanner().CreatePlan(&cfg)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := plan.Execute(ctx); err == nil {
		t.Error("Execute() should fail on a cancelled context")
	}
	if _, err := os.Stat(cfg.Output); err == nil {
		t.Error("no dataset should be written after cancellation")
	}
}
