package cmd

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12")).
			MarginTop(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("10"))

	helpCommandStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("14"))

	helpCommentStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("8")).
				Italic(true)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

// helpExample is one titled command line in a help text
type helpExample struct {
	title   string
	command []string
}

// helpFlag is one aligned flag description
type helpFlag struct {
	flag string
	desc string
}

// renderHelp renders examples followed by an optional flag section with lipgloss styling
func renderHelp(examples []helpExample, flagTitle string, flags []helpFlag) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(helpTitleStyle.Render("Examples"))
	b.WriteString("\n\n")

	for _, ex := range examples {
		b.WriteString(helpSectionStyle.Render(ex.title))
		b.WriteString("\n")
		for i, line := range ex.command {
			indent := "  "
			if i > 0 {
				indent = "    "
			}
			b.WriteString(indent + helpCommandStyle.Render(line))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(flags) == 0 {
		return b.String()
	}

	b.WriteString(helpSectionStyle.Render(flagTitle))
	b.WriteString("\n")

	// Calculate max flag width for alignment
	maxWidth := 0
	for _, f := range flags {
		maxWidth = max(maxWidth, len(f.flag))
	}

	for _, f := range flags {
		padding := strings.Repeat(" ", maxWidth-len(f.flag)+2)
		b.WriteString("  " + helpFlagStyle.Render(f.flag) + padding + helpCommentStyle.Render(f.desc))
		b.WriteString("\n")
	}

	return b.String()
}

// renderGenerateHelp renders the help text for the generate command
func renderGenerateHelp() string {
	return renderHelp([]helpExample{
		{"Default run - 10,000 poses with 5,000 points each", []string{"cylinter generate -o data/data_10000_5000.csv"}},
		{"YAML config mode", []string{"cylinter generate example/generate.yaml"}},
		{"Override config values", []string{"cylinter generate example/generate.yaml \\", "-n 2000 --seed 7 --histogram data/hist.png"}},
	}, "Config keys:", []helpFlag{
		{"samples", "Number of poses (SIZE_SAMPLE)"},
		{"points", "Monte-Carlo points per pose"},
		{"gen_coeff", "Radius of the generation ball relative to the reference bounding box"},
		{"cylinder", "radius and length shared by both cylinders"},
		{"histogram", "Optional image of the ratio distribution"},
	})
}

// renderDemoHelp renders the help text for the demo command
func renderDemoHelp() string {
	return renderHelp([]helpExample{
		{"Tilted cylinder crossing the reference", []string{
			"cylinter demo --b-position 0.01,0.05,0.005 --b-axis 1,1,1 \\",
			"--plot demo.png --plane xy --stl demo.stl",
		}},
	}, "Plot colors:", []helpFlag{
		{"red", "Points of A outside B"},
		{"blue", "Points of B outside A"},
		{"green", "Points of A inside B"},
	})
}

// renderVerifyHelp renders the help text for the verify command
func renderVerifyHelp() string {
	return renderHelp([]helpExample{
		{"Monte-Carlo estimates only", []string{"cylinter verify example/scene.yaml"}},
		{"Compare with the surrogate", []string{"cylinter verify example/scene.yaml --data data/data_10000_5000.csv"}},
		{"Export the scene for a mesh viewer", []string{"cylinter verify example/scene.yaml --repeat 0 --stl scene.stl"}},
	}, "", nil)
}
