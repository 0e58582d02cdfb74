package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/Andre-Pham/FamApp-sub000/pkg/graph"
	"github.com/Andre-Pham/FamApp-sub000/pkg/pipeline"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorBlue   = lipgloss.Color("75")  // Light blue - links
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleHeader  = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	styleUnset   = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// =============================================================================
// Status Output
// =============================================================================

// printSuccess prints a success message.
func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconSuccess.Render(iconSuccess) + " " + msg)
}

// printError prints an error message.
func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconError.Render(iconError) + " " + msg)
}

// printWarning prints a warning message.
func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconWarning.Render(iconWarning) + " " + StyleWarning.Render(msg))
}

// printInfo prints an info/status message.
func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Println(styleIconInfo.Render(iconInfo) + " " + msg)
}

// =============================================================================
// File Output
// =============================================================================

// printFile prints a file output line.
func printFile(path string) {
	fmt.Println("  " + StyleDim.Render(iconArrow) + " " + StyleValue.Render(path))
}

// =============================================================================
// Key-Value Output
// =============================================================================

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Println(keyStyle.Render(key) + " " + StyleValue.Render(value))
}

// =============================================================================
// Stats Display
// =============================================================================

// formatStats renders layout statistics on a single line.
func formatStats(s pipeline.Stats) string {
	parts := []string{
		fmt.Sprintf("%d/%d placed", s.Positioned, s.People),
		fmt.Sprintf("%d couples", s.Couples),
		fmt.Sprintf("%d children", s.Children),
	}
	crossings := fmt.Sprintf("%d crossings", s.ConnectionConflicts)
	overlaps := fmt.Sprintf("%d overlaps", s.PositionConflicts)

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + conflictStyle(s.ConnectionConflicts).Render(crossings)
	line += StyleDim.Render(" · ") + conflictStyle(s.PositionConflicts).Render(overlaps)
	return line
}

// printStats prints layout statistics on a single line.
func printStats(s pipeline.Stats) {
	fmt.Println(formatStats(s))
}

func conflictStyle(n int) lipgloss.Style {
	if n == 0 {
		return StyleSuccess
	}
	return StyleWarning
}

// positionsTable renders placements as a bordered table. Unplaced people are
// listed with dashes.
func positionsTable(people []graph.Placement) string {
	rows := make([][]string, 0, len(people))
	for i, p := range people {
		x, y := "—", "—"
		if p.Positioned {
			x = strconv.FormatFloat(p.X, 'f', -1, 64)
			y = strconv.FormatFloat(p.Y, 'f', -1, 64)
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), p.ID, p.Label(), x, y, p.Direction})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("#", "ID", "Name", "X", "Y", "Facing").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col >= 3 {
				base = base.Align(lipgloss.Right)
			}
			if row < len(people) && !people[row].Positioned {
				return base.Inherit(styleUnset)
			}
			if col == 1 {
				return base.Foreground(colorCyan)
			}
			return base
		})
	return t.Render()
}

// printPositions writes the positions table to w.
func printPositions(w io.Writer, people []graph.Placement) {
	fmt.Fprintln(w, positionsTable(people))
}

// =============================================================================
// Commands & Next Steps
// =============================================================================

// printNextStep prints a suggested next command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}

// printNewline prints an empty line.
func printNewline() {
	fmt.Println()
}
