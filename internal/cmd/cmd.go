package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/alecthomas/kong"
	"github.com/philipparndt/cylinter/internal/config"
	"github.com/philipparndt/cylinter/internal/inspect"
	"github.com/philipparndt/cylinter/internal/models"
	"github.com/philipparndt/cylinter/internal/plan"
	"github.com/philipparndt/cylinter/internal/ui"
	"github.com/philipparndt/cylinter/version"
)

type CLI struct {
	Generate   *GenerateCmd   `cmd:"" help:"Generate a dataset of random cylinder poses labelled with their interference"`
	Estimate   *EstimateCmd   `cmd:"" help:"Estimate the interference of two cylinders"`
	Demo       *DemoCmd       `cmd:"" help:"Classify sampled points of two cylinders and optionally plot them"`
	Train      *TrainCmd      `cmd:"" help:"Fit the surrogate on a dataset and score it on a held-out split"`
	Validate   *ValidateCmd   `cmd:"" help:"Cross-validate the surrogate on a dataset"`
	Verify     *VerifyCmd     `cmd:"" help:"Compare estimates and surrogate predictions for every pair of a scene"`
	Inspect    *InspectCmd    `cmd:"" help:"Inspect a dataset and show its statistics"`
	Config     *ConfigCmd     `cmd:"" help:"Print the effective generation configuration"`
	Version    *VersionCmd    `cmd:"" help:"Show version information"`
	Completion *CompletionCmd `cmd:"" help:"Generate shell completion script"`
}

type GenerateCmd struct {
	Config    string  `arg:"" optional:"" help:"Generation config file (YAML). Defaults are used when omitted."`
	Output    string  `help:"Output CSV file" short:"o"`
	Samples   int     `help:"Number of poses to draw" short:"n"`
	Points    int     `help:"Monte-Carlo points per pose" short:"p"`
	GenCoeff  float64 `help:"Generation ball coefficient" name:"gen-coeff"`
	Seed      uint64  `help:"Random seed (0 keeps the configured seed)"`
	Workers   int     `help:"Parallel workers (0 keeps the configured value, which defaults to every CPU)" short:"w"`
	Histogram string  `help:"Write a histogram of the ratios to this image file"`
}

// Help adds additional help text with examples
func (c *GenerateCmd) Help() string {
	return renderGenerateHelp()
}

func (c *GenerateCmd) Run() error {
	cfg, err := c.load()
	if err != nil {
		return err
	}

	planner := plan.NewPlanner()
	p, err := planner.CreatePlan(cfg)
	if err != nil {
		return fmt.Errorf("failed to create plan: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return p.Execute(ctx)
}

// load reads the config file, if any, and applies the flags on top
func (c *GenerateCmd) load() (*models.GenerationConfig, error) {
	var cfg *models.GenerationConfig
	if c.Config != "" {
		loaded, err := config.NewLoader().LoadGeneration(c.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		defaults := config.DefaultGeneration()
		cfg = &defaults
	}

	if c.Output != "" {
		cfg.Output = c.Output
	}
	if c.Samples != 0 {
		cfg.Samples = c.Samples
	}
	if c.Points != 0 {
		cfg.Points = c.Points
	}
	if c.GenCoeff != 0 {
		cfg.GenCoeff = c.GenCoeff
	}
	if c.Seed != 0 {
		cfg.Seed = c.Seed
	}
	if c.Workers != 0 {
		cfg.Workers = c.Workers
	}
	if c.Histogram != "" {
		cfg.Histogram = c.Histogram
	}
	return cfg, nil
}

type InspectCmd struct {
	File string `arg:"" help:"Dataset CSV file to inspect"`
}

func (c *InspectCmd) Run() error {
	inspector := inspect.NewInspector()
	return inspector.Inspect(c.File)
}

type ConfigCmd struct {
	File  string `arg:"" optional:"" help:"Generation config file (YAML). Prints the defaults when omitted."`
	Plain bool   `help:"Print without syntax highlighting"`
}

func (c *ConfigCmd) Run() error {
	var cfg models.GenerationConfig
	if c.File != "" {
		loaded, err := config.NewLoader().LoadGeneration(c.File)
		if err != nil {
			return err
		}
		cfg = *loaded
	} else {
		cfg = config.DefaultGeneration()
	}

	data, err := config.Marshal(&cfg)
	if err != nil {
		return err
	}

	if c.Plain || ui.IsVerbose() {
		fmt.Print(string(data))
		return nil
	}
	return quick.Highlight(os.Stdout, string(data), "yaml", "terminal256", "monokai")
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	info := version.Get()
	fmt.Println(info.String())
	return nil
}

// Parse parses command line arguments and executes the appropriate command
func Parse() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("cylinter"),
		kong.Description("Monte-Carlo interference of cylinders and a fast surrogate"),
		kong.UsageOnError(),
	)
	err := ctx.Run()
	if err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
