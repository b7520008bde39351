package plan

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/philipparndt/cylinter/internal/config"
	"github.com/philipparndt/cylinter/internal/dataset"
	"github.com/philipparndt/cylinter/internal/generate"
	"github.com/philipparndt/cylinter/internal/interference"
	"github.com/philipparndt/cylinter/internal/models"
	"github.com/philipparndt/cylinter/internal/plot"
	"github.com/philipparndt/cylinter/internal/preconditions"
	"github.com/philipparndt/cylinter/internal/ui"
)

// HistogramBins is the bin count of the ratio histogram
const HistogramBins = 50

// Step represents a single step in the plan
type Step interface {
	Name() string
	Execute(ctx context.Context, c *Context) error
}

// Context holds shared data between steps
type Context struct {
	Config    *models.GenerationConfig
	Generator *generate.Generator
	Pairs     []interference.Pair
	Samples   []dataset.Sample
	Elapsed   time.Duration
}

// Plan contains all steps needed to generate a dataset
type Plan struct {
	Steps   []Step
	Context *Context
}

// Planner creates plans from a generation config
type Planner struct{}

// NewPlanner creates a new planner
func NewPlanner() *Planner {
	return &Planner{}
}

// CreatePlan builds the generation pipeline for cfg
func (p *Planner) CreatePlan(cfg *models.GenerationConfig) (*Plan, error) {
	if err := config.NewLoader().ValidateGeneration(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	plan := &Plan{Context: &Context{Config: cfg}}

	// Step 1: Check preconditions (workers, output paths)
	plan.Steps = append(plan.Steps, &CheckPreconditionsStep{})

	// Step 2: Draw the poses
	plan.Steps = append(plan.Steps, &SamplePosesStep{})

	// Step 3: Estimate the interference of every pose
	plan.Steps = append(plan.Steps, &EstimateStep{})

	// Step 4: Report the share of disjoint pairs
	plan.Steps = append(plan.Steps, &SummaryStep{})

	// Step 5: Write the dataset
	plan.Steps = append(plan.Steps, &WriteDatasetStep{})

	// Step 6: Optional histogram
	if cfg.Histogram != "" {
		plan.Steps = append(plan.Steps, &HistogramStep{})
	}

	return plan, nil
}

// Execute runs all steps in the plan
func (p *Plan) Execute(ctx context.Context) error {
	if ui.IsVerbose() {
		ui.PrintTitle("Generation Plan Execution")
		ui.PrintInfo(fmt.Sprintf("Total steps: %d", len(p.Steps)))
		ui.PrintSeparator()
	}

	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if ui.IsVerbose() {
			ui.PrintHeader(fmt.Sprintf("Step %d/%d: %s", i+1, len(p.Steps), step.Name()))
		}
		if err := step.Execute(ctx, p.Context); err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	ui.PrintSeparator()
	ui.PrintSuccess("Generation completed successfully!")
	ui.PrintKeyValue("Output file", relative(p.Context.Config.Output))
	if p.Context.Config.Histogram != "" {
		ui.PrintKeyValue("Histogram", relative(p.Context.Config.Histogram))
	}
	return nil
}

func relative(path string) string {
	// Convert to relative path if possible
	rel, err := filepath.Rel(".", path)
	if err != nil {
		return path
	}
	return rel
}

// CheckPreconditionsStep validates the environment and output paths
type CheckPreconditionsStep struct{}

func (s *CheckPreconditionsStep) Name() string {
	return "Check preconditions"
}

func (s *CheckPreconditionsStep) Execute(_ context.Context, c *Context) error {
	if err := preconditions.Check(c.Config.Workers); err != nil {
		return err
	}
	if err := preconditions.ValidateOutputPath(c.Config.Output); err != nil {
		return err
	}
	if c.Config.Histogram != "" {
		if err := preconditions.ValidateOutputPath(c.Config.Histogram); err != nil {
			return err
		}
	}
	if ui.IsVerbose() {
		ui.PrintSuccess("✓ Output paths are writable")
	}
	return nil
}

// SamplePosesStep draws the random cylinder pairs
type SamplePosesStep struct{}

func (s *SamplePosesStep) Name() string {
	return "Sample poses"
}

func (s *SamplePosesStep) Execute(_ context.Context, c *Context) error {
	g, err := generate.New(config.GenerationOptions(c.Config))
	if err != nil {
		return err
	}
	pairs, err := g.Pairs()
	if err != nil {
		return err
	}

	c.Generator = g
	c.Pairs = pairs
	ui.PrintSuccess(fmt.Sprintf("Sampled %s poses", ui.FormatCount(len(pairs))))
	if ui.IsVerbose() {
		ui.PrintItem(fmt.Sprintf("Reference: %s", g.Base()))
		ui.PrintItem(fmt.Sprintf("Generation radius: %.5f", g.GenerationRadius()))
	}
	return nil
}

// EstimateStep labels every pair with its Monte-Carlo interference ratio
type EstimateStep struct{}

func (s *EstimateStep) Name() string {
	return "Estimate interference"
}

func (s *EstimateStep) Execute(ctx context.Context, c *Context) error {
	if c.Generator == nil {
		return fmt.Errorf("no poses sampled")
	}

	bar := ui.NewProgress("poses")
	samples, err := c.Generator.Label(ctx, c.Pairs, bar.Update)
	if err != nil {
		return err
	}

	c.Samples = samples
	c.Elapsed = bar.Elapsed()
	ui.PrintSuccess(fmt.Sprintf("Estimated %s poses with %s points each in %s",
		ui.FormatCount(len(samples)), ui.FormatCount(c.Config.Points), ui.FormatDuration(c.Elapsed)))
	return nil
}

// SummaryStep reports the share of pairs without interference
type SummaryStep struct{}

func (s *SummaryStep) Name() string {
	return "Summarize"
}

func (s *SummaryStep) Execute(_ context.Context, c *Context) error {
	share := generate.ZeroShare(c.Samples)
	ui.PrintKeyValue("Zero ratio share", ui.FormatPercent(share))
	if share == 1 {
		ui.PrintWarning("No sampled pose interferes; consider a smaller gen_coeff")
	}
	return nil
}

// WriteDatasetStep writes the samples as a headerless CSV file
type WriteDatasetStep struct{}

func (s *WriteDatasetStep) Name() string {
	return "Write dataset"
}

func (s *WriteDatasetStep) Execute(_ context.Context, c *Context) error {
	if err := dataset.WriteFile(c.Config.Output, c.Samples); err != nil {
		return err
	}
	if ui.IsVerbose() {
		ui.PrintSuccess(fmt.Sprintf("✓ Wrote %s rows", ui.FormatCount(len(c.Samples))))
	}
	return nil
}

// HistogramStep plots the distribution of the ratios
type HistogramStep struct{}

func (s *HistogramStep) Name() string {
	return "Plot histogram"
}

func (s *HistogramStep) Execute(_ context.Context, c *Context) error {
	title := fmt.Sprintf("Interference ratio (%d poses, %d points)", c.Config.Samples, c.Config.Points)
	return plot.Histogram(dataset.Ratios(c.Samples), HistogramBins, title, c.Config.Histogram)
}
