package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	// Color palette
	primaryColor   = lipgloss.Color("#7D56F4") // Purple
	secondaryColor = lipgloss.Color("#00D9FF") // Cyan
	successColor   = lipgloss.Color("#04B575") // Green
	errorColor     = lipgloss.Color("#FF5F87") // Pink/Red
	warningColor   = lipgloss.Color("#FFAF00") // Orange
	mutedColor     = lipgloss.Color("#626262") // Gray
	accentColor    = lipgloss.Color("#FFD700") // Gold

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor).
			MarginTop(1).
			MarginBottom(1).
			PaddingLeft(1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(secondaryColor).
			MarginTop(1).
			PaddingLeft(1)

	successStyle = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	infoStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	keyStyle = lipgloss.NewStyle().
			Foreground(secondaryColor).
			Bold(true)

	checkmark = lipgloss.NewStyle().
			Foreground(successColor).
			Bold(true).
			SetString("✓")

	cross = lipgloss.NewStyle().
		Foreground(errorColor).
		Bold(true).
		SetString("✗")

	arrow = lipgloss.NewStyle().
		Foreground(secondaryColor).
		SetString("→")

	dot = lipgloss.NewStyle().
		Foreground(mutedColor).
		SetString("•")

	star = lipgloss.NewStyle().
		Foreground(accentColor).
		SetString("★")

	stepStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(lipgloss.Color("#FAFAFA"))

	highlightStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1).
			MarginTop(1).
			MarginBottom(1)
)

// PrintTitle prints a major title (for app name or major sections)
func PrintTitle(title string) {
	fmt.Println(titleStyle.Render("╭─ " + title + " ─╮"))
}

// PrintHeader prints a section header
func PrintHeader(title string) {
	fmt.Println(headerStyle.Render("\n▸ " + title))
}

// PrintStep prints a step with indentation
func PrintStep(step string) {
	fmt.Println(stepStyle.Render(arrow.String() + " " + step))
}

// PrintItem prints an item in a list
func PrintItem(item string) {
	fmt.Println(itemStyle.Render(dot.String() + " " + item))
}

// PrintSuccess prints a success message
func PrintSuccess(message string) {
	fmt.Println(stepStyle.Render(checkmark.String() + " " + successStyle.Render(message)))
}

// PrintError prints an error message to stderr
func PrintError(message string) {
	fmt.Fprintln(os.Stderr, stepStyle.Render(cross.String()+" "+errorStyle.Render(message)))
}

// PrintWarning prints a warning message
func PrintWarning(message string) {
	fmt.Println(stepStyle.Render("⚠ " + warningStyle.Render(message)))
}

// PrintInfo prints an info message
func PrintInfo(message string) {
	fmt.Println(stepStyle.Render(infoStyle.Render(message)))
}

// PrintHighlight prints highlighted text
func PrintHighlight(message string) {
	fmt.Println(stepStyle.Render(star.String() + " " + highlightStyle.Render(message)))
}

// PrintBox prints text in a rounded box
func PrintBox(content string) {
	fmt.Println(boxStyle.Render(content))
}

// PrintSeparator prints a visual separator
func PrintSeparator() {
	separator := lipgloss.NewStyle().
		Foreground(mutedColor).
		Render("─────────────────────────────────────────────")
	fmt.Println(separator)
}

// PrintKeyValue prints a key-value pair with nice formatting
func PrintKeyValue(key, value string) {
	fmt.Println(stepStyle.Render(keyStyle.Render(key+":") + " " + value))
}

// Table prints aligned rows. Columns wider than their width are truncated.
type Table struct {
	Widths []int
}

// NewTable creates a table with the given column widths
func NewTable(widths ...int) *Table {
	return &Table{Widths: widths}
}

func (t *Table) format(columns []string, truncate bool) string {
	var row strings.Builder
	for i, col := range columns {
		if i >= len(t.Widths) {
			break
		}
		w := t.Widths[i]
		if len(col) > w {
			if truncate && w > 3 {
				col = col[:w-3] + "..."
			} else {
				col = col[:w]
			}
		} else {
			col += strings.Repeat(" ", w-len(col))
		}

		row.WriteString(col)
		if i < len(columns)-1 && i < len(t.Widths)-1 {
			row.WriteString(" │ ")
		}
	}
	return row.String()
}

// Header prints the header row followed by a separator line
func (t *Table) Header(headers ...string) {
	fmt.Println(stepStyle.Render(keyStyle.Render(t.format(headers, false))))

	var separator strings.Builder
	for i := range headers {
		if i >= len(t.Widths) {
			break
		}
		separator.WriteString(strings.Repeat("─", t.Widths[i]))
		if i < len(headers)-1 && i < len(t.Widths)-1 {
			separator.WriteString("─┼─")
		}
	}
	fmt.Println(stepStyle.Render(infoStyle.Render(separator.String())))
}

// Row prints one row
func (t *Table) Row(columns ...string) {
	if len(columns) == 0 {
		return
	}
	fmt.Println(stepStyle.Render(t.format(columns, true)))
}

// IsVerbose checks if verbose output is enabled
func IsVerbose() bool {
	// Check for CI environment variable or --progress=plain flag
	if os.Getenv("CI") != "" {
		return true
	}
	for _, arg := range os.Args {
		if arg == "--progress=plain" {
			return true
		}
	}
	return false
}

// Progress renders a single-line progress bar that is redrawn in place
type Progress struct {
	bar     progress.Model
	message string
	start   time.Time
}

// NewProgress creates a progress bar with the given label
func NewProgress(message string) *Progress {
	return &Progress{
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		message: message,
		start:   time.Now(),
	}
}

// Update redraws the bar. In verbose mode only every tenth step is printed
// as a plain line.
func (p *Progress) Update(current, total int) {
	if total <= 0 {
		return
	}
	if IsVerbose() {
		step := total / 10
		if step == 0 || current%step == 0 || current == total {
			PrintInfo(fmt.Sprintf("%s %s/%s", p.message, FormatCount(current), FormatCount(total)))
		}
		return
	}

	pct := float64(current) / float64(total)
	if pct > 1 {
		pct = 1
	}
	fmt.Printf("\r  %s %s/%s %s", p.bar.ViewAs(pct), FormatCount(current), FormatCount(total), p.message)

	if current >= total {
		fmt.Println()
	}
}

// Elapsed returns the time since the bar was created
func (p *Progress) Elapsed() time.Duration {
	return time.Since(p.start)
}

// FormatCount formats an integer with thousands separators
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatPercent formats a fraction in [0, 1] as a percentage
func FormatPercent(f float64) string {
	return humanize.FtoaWithDigits(f*100, 2) + "%"
}

// FormatDuration formats short durations with a unit suited to their size
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Microsecond:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	case d < time.Millisecond:
		return humanize.FtoaWithDigits(float64(d.Nanoseconds())/1e3, 2) + "µs"
	case d < time.Second:
		return humanize.FtoaWithDigits(float64(d.Nanoseconds())/1e6, 2) + "ms"
	default:
		return d.Round(time.Millisecond).String()
	}
}
