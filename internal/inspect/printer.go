package inspect

import (
	"fmt"
	"strings"

	"github.com/philipparndt/cylinter/internal/ui"
)

// SummaryPrinter handles printing dataset summaries
type SummaryPrinter struct {
	// BarWidth is the width of the longest bucket bar
	BarWidth int
}

// NewSummaryPrinter creates a new SummaryPrinter
func NewSummaryPrinter() *SummaryPrinter {
	return &SummaryPrinter{BarWidth: 30}
}

// Print prints the summary: counts, ratio statistics, buckets and features
func (p *SummaryPrinter) Print(s Summary) {
	ui.PrintKeyValue("Rows", ui.FormatCount(s.Rows))
	ui.PrintKeyValue("Zero ratio", fmt.Sprintf("%s (%s)", ui.FormatCount(s.Zero), ui.FormatPercent(s.ZeroShare)))

	ui.PrintHeader("Ratio")
	table := ui.NewTable(8, 10, 10, 10, 10, 10)
	table.Header("column", "mean", "std", "min", "median", "max")
	table.Row(statsRow(s.Ratio)...)

	ui.PrintHeader("Non-zero ratio distribution")
	for _, line := range p.Buckets(s.Buckets) {
		ui.PrintStep(line)
	}

	ui.PrintHeader("Features")
	table.Header("column", "mean", "std", "min", "median", "max")
	for _, f := range s.Features {
		table.Row(statsRow(f)...)
	}
}

// Buckets renders one bar per ratio bucket scaled to the largest bucket
func (p *SummaryPrinter) Buckets(buckets [Bins]int) []string {
	largest := 0
	for _, n := range buckets {
		largest = max(largest, n)
	}

	lines := make([]string, Bins)
	for i, n := range buckets {
		width := 0
		if largest > 0 {
			width = n * p.BarWidth / largest
		}
		lines[i] = fmt.Sprintf("%.1f-%.1f %s %s",
			float64(i)/Bins, float64(i+1)/Bins,
			strings.Repeat("█", width)+strings.Repeat("░", p.BarWidth-width),
			ui.FormatCount(n))
	}
	return lines
}

func statsRow(c ColumnStats) []string {
	return []string{
		c.Name,
		fmt.Sprintf("%.5f", c.Mean),
		fmt.Sprintf("%.5f", c.Std),
		fmt.Sprintf("%.5f", c.Min),
		fmt.Sprintf("%.5f", c.Median),
		fmt.Sprintf("%.5f", c.Max),
	}
}
