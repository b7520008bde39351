package cmd

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/philipparndt/cylinter/internal/config"
	"github.com/philipparndt/cylinter/internal/dataset"
	"github.com/philipparndt/cylinter/internal/interference"
	"github.com/philipparndt/cylinter/internal/plot"
	"github.com/philipparndt/cylinter/internal/pose"
	"github.com/philipparndt/cylinter/internal/stl"
	"github.com/philipparndt/cylinter/internal/preconditions"
	"github.com/philipparndt/cylinter/internal/surrogate"
	"github.com/philipparndt/cylinter/internal/ui"
	"gonum.org/v1/gonum/stat"
)

// loadDataset checks and reads a dataset file
func loadDataset(path string) ([][]float64, []float64, error) {
	if err := preconditions.ValidateFiles([]string{path}, ".csv"); err != nil {
		return nil, nil, err
	}
	samples, err := dataset.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	x, y := dataset.Split(samples)
	return x, y, nil
}

// trainFromFile fits the surrogate on every row of a dataset
func trainFromFile(path string, neighbors int) (*surrogate.Model, error) {
	x, y, err := loadDataset(path)
	if err != nil {
		return nil, err
	}
	model, err := surrogate.Train(x, y, surrogate.NewKNN(neighbors))
	if err != nil {
		return nil, fmt.Errorf("failed to fit surrogate: %w", err)
	}
	return model, nil
}

type TrainCmd struct {
	Data      string  `arg:"" help:"Dataset CSV file"`
	TestSize  float64 `help:"Fraction of rows held out for scoring" default:"0.2"`
	Neighbors int     `help:"Neighbours of the surrogate" default:"5" short:"k"`
	Seed      uint64  `help:"Shuffle seed"`
	Parity    string  `help:"Write a predicted against estimated plot of the test split to this image file"`
}

func (c *TrainCmd) Run() error {
	x, y, err := loadDataset(c.Data)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(c.Seed, 0))
	trainIdx, testIdx, err := surrogate.Split(len(x), c.TestSize, rng)
	if err != nil {
		return err
	}

	trainX, trainY := surrogate.Subset(x, y, trainIdx)
	testX, testY := surrogate.Subset(x, y, testIdx)

	start := time.Now()
	model, err := surrogate.Train(trainX, trainY, surrogate.NewKNN(c.Neighbors))
	if err != nil {
		return fmt.Errorf("failed to fit surrogate: %w", err)
	}
	fitTime := time.Since(start)

	score, err := surrogate.Score(model, testX, testY)
	if err != nil {
		return err
	}

	ui.PrintHeader("Surrogate")
	ui.PrintKeyValue("Train rows", ui.FormatCount(len(trainIdx)))
	ui.PrintKeyValue("Test rows", ui.FormatCount(len(testIdx)))
	ui.PrintKeyValue("Neighbours", fmt.Sprint(model.Regressor.(*surrogate.KNN).K))
	ui.PrintKeyValue("Fit time", ui.FormatDuration(fitTime))
	ui.PrintHighlight(fmt.Sprintf("Test R²: %.4f", score))

	if c.Parity != "" {
		predicted := make([]float64, len(testX))
		for i, row := range testX {
			predicted[i] = model.Predict(row)
		}
		if err := plot.Parity(testY, predicted, "Test split", c.Parity); err != nil {
			return err
		}
		ui.PrintSuccess("Plot written to " + c.Parity)
	}
	return nil
}

type ValidateCmd struct {
	Data      string `arg:"" help:"Dataset CSV file"`
	Folds     int    `help:"Number of folds" default:"10"`
	Neighbors int    `help:"Neighbours of the surrogate" default:"5" short:"k"`
	Seed      uint64 `help:"Shuffle seed"`
}

func (c *ValidateCmd) Run() error {
	x, y, err := loadDataset(c.Data)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewPCG(c.Seed, 0))
	scores, err := surrogate.CrossValidate(x, y, c.Folds, rng, func() surrogate.Fitter {
		return surrogate.NewKNN(c.Neighbors)
	})
	if err != nil {
		return err
	}

	ui.PrintHeader(fmt.Sprintf("%d-fold cross validation", c.Folds))
	table := ui.NewTable(6, 10)
	table.Header("fold", "R²")
	for i, s := range scores {
		table.Row(fmt.Sprint(i+1), fmt.Sprintf("%.4f", s))
	}

	mean, std := stat.MeanStdDev(scores, nil)
	ui.PrintHighlight(fmt.Sprintf("R²: %.4f ± %.4f", mean, std))
	return nil
}

type VerifyCmd struct {
	Scene     string `arg:"" help:"Scene file (YAML)"`
	Data      string `help:"Dataset CSV; when set surrogate predictions are compared too"`
	Neighbors int    `help:"Neighbours of the surrogate" default:"5" short:"k"`
	Repeat    int    `help:"Calls per timing measurement" default:"100"`
	STL       string `help:"Write the scene cylinders to this STL file" name:"stl"`
}

// Help adds additional help text with examples
func (c *VerifyCmd) Help() string {
	return renderVerifyHelp()
}

func (c *VerifyCmd) Run() error {
	scene, err := config.NewLoader().LoadScene(c.Scene)
	if err != nil {
		return err
	}
	cylinders, err := config.SceneCylinders(scene)
	if err != nil {
		return err
	}

	if c.STL != "" {
		names := make([]string, len(scene.Cylinders))
		for i, cyl := range scene.Cylinders {
			names[i] = cyl.Name
		}
		if err := stl.WriteFile(c.STL, names, cylinders); err != nil {
			return err
		}
		ui.PrintSuccess("Scene written to " + c.STL)
	}

	var model *surrogate.Model
	if c.Data != "" {
		if model, err = trainFromFile(c.Data, c.Neighbors); err != nil {
			return err
		}
	}

	estimator, err := interference.NewEstimator(scene.Points, scene.Seed)
	if err != nil {
		return err
	}

	ui.PrintHeader("Pairs")
	table := ui.NewTable(30, 12, 12)
	table.Header("pair", "estimate", "surrogate")

	var last [2]int
	for i, a := range scene.Cylinders {
		for j, b := range scene.Cylinders {
			if i == j {
				continue
			}
			ratio, err := estimator.Ratio(cylinders[i], cylinders[j])
			if err != nil {
				return err
			}
			predicted := "-"
			if model != nil {
				p := pose.Canonicalize(cylinders[i], cylinders[j])
				predicted = ui.FormatPercent(surrogate.Predict(model.Scaler, model.Regressor, p))
			}
			table.Row(a.Name+" / "+b.Name, ui.FormatPercent(ratio), predicted)
			last = [2]int{i, j}
		}
	}

	if c.Repeat < 1 {
		return nil
	}

	a, b := cylinders[last[0]], cylinders[last[1]]
	ui.PrintHeader("Performance")

	start := time.Now()
	for n := 0; n < c.Repeat; n++ {
		if _, err := estimator.Ratio(a, b); err != nil {
			return err
		}
	}
	ui.PrintKeyValue("Monte-Carlo per call", ui.FormatDuration(time.Since(start)/time.Duration(c.Repeat)))

	if model != nil {
		start = time.Now()
		for n := 0; n < c.Repeat; n++ {
			surrogate.Predict(model.Scaler, model.Regressor, pose.Canonicalize(a, b))
		}
		ui.PrintKeyValue("Surrogate per call", ui.FormatDuration(time.Since(start)/time.Duration(c.Repeat)))
	}
	return nil
}
