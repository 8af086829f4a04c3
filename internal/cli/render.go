package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/kat/huegraph/internal/colormath"
	"github.com/kat/huegraph/internal/graph"
)

var (
	headingStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	sufficientStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#22C55E"))

	insufficientStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#EAB308"))

	badStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

// colorOutput reports whether the terminal can render the swatches at
// all; plain pipes get text-only output.
func colorOutput() bool {
	return termenv.ColorProfile() != termenv.Ascii
}

// swatch renders a two-cell block in the given color, or nothing on a
// monochrome terminal.
func swatch(c colormath.Color) string {
	if !colorOutput() {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("  ") + " "
}

// classStyle maps a contrast classification to its report style.
func classStyle(class graph.ContrastClass) lipgloss.Style {
	switch class {
	case graph.ContrastSufficient:
		return sufficientStyle
	case graph.ContrastInsufficient:
		return insufficientStyle
	case graph.ContrastBad:
		return badStyle
	default:
		return dimStyle
	}
}

// contrastLine formats one contrast link for the check report.
func contrastLine(link *graph.ContrastLink) string {
	subject, target := link.Subject(), link.Target()
	line := fmt.Sprintf("%s%s on %s%s",
		variableSwatch(subject), subject.Name(),
		variableSwatch(target), target.Name())
	measure := fmt.Sprintf("%.2f:1 (min %.1f) %s",
		link.Contrast(), link.MinContrast(), link.Class())
	return line + "  " + classStyle(link.Class()).Render(measure)
}

func variableSwatch(v *graph.Variable) string {
	c, ok := v.Color()
	if !ok {
		return ""
	}
	return swatch(c)
}
