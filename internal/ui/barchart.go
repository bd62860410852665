package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

type barRow struct {
	label string
	value float64
	text  string
}

// renderBarChart draws horizontal bars scaled to the widest value.
// Labels are padded to align the bars; rows render as
// "label ███████ text".
func renderBarChart(styles Styles, theme Theme, rows []barRow, maxBarWidth int) string {
	if len(rows) == 0 {
		return styles.Faint.Render("Nenhum dado nesse período.")
	}
	if maxBarWidth < 4 {
		maxBarWidth = 4
	}

	labelWidth := 0
	peak := 0.0
	for _, row := range rows {
		if w := lipgloss.Width(row.label); w > labelWidth {
			labelWidth = w
		}
		if row.value > peak {
			peak = row.value
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	var b strings.Builder
	for i, row := range rows {
		width := 0
		if peak > 0 {
			width = int(row.value / peak * float64(maxBarWidth))
		}
		if width < 1 && row.value > 0 {
			width = 1
		}
		b.WriteString(styles.Label.Render(fmt.Sprintf("%-*s ", labelWidth, row.label)))
		b.WriteString(barStyle.Render(strings.Repeat("█", width)))
		if row.text != "" {
			b.WriteString(" ")
			b.WriteString(styles.Faint.Render(row.text))
		}
		if i < len(rows)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
