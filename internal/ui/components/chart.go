package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/quizbank/internal/ui/theme"
)

// eighths are the partial block glyphs, from empty to full.
var eighths = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// BarChart renders percentages (0-100) as vertical bars, one column per
// value, with a y-axis on the left. When values do not fit in width only
// the most recent ones are drawn.
func BarChart(values []float64, width, height int) string {
	const axisWidth = 5 // "100 ┤"
	if height < 2 {
		height = 2
	}
	cols := width - axisWidth
	if cols < 1 {
		cols = 1
	}
	if len(values) > cols {
		values = values[len(values)-cols:]
	}

	axis := lipgloss.NewStyle().Foreground(theme.TextDim)
	bar := lipgloss.NewStyle().Foreground(theme.Secondary)

	rows := make([]string, 0, height+1)
	for row := height - 1; row >= 0; row-- {
		label := "    "
		switch row {
		case height - 1:
			label = "100"
		case 0:
			label = "  0"
		case (height - 1) / 2:
			label = " 50"
		}

		var line strings.Builder
		for _, v := range values {
			line.WriteRune(cell(v, row, height))
		}
		rows = append(rows, axis.Render(fmt.Sprintf("%-4s┤", label))+bar.Render(line.String()))
	}
	rows = append(rows, axis.Render("    └"+strings.Repeat("─", len(values))))
	return strings.Join(rows, "\n")
}

// cell returns the glyph for one bar at one row: full, partial or empty.
func cell(v float64, row, height int) rune {
	v = max(0, min(v, 100))
	units := int(v/100*float64(height*8) + 0.5)
	filled := units - row*8
	switch {
	case filled >= 8:
		return eighths[8]
	case filled <= 0:
		return eighths[0]
	default:
		return eighths[filled]
	}
}
