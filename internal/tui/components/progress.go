package components

import (
	"fmt"

	"github.com/theirongolddev/atlas/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ShareColor grades how much of income a cost takes: green below half,
// yellow below 70%, orange below 90% and red above.
func ShareColor(pct float64) lipgloss.Color {
	t := theme.Active
	switch {
	case pct >= 0.9:
		return t.Expense
	case pct >= 0.7:
		return t.Warning
	case pct >= 0.5:
		return t.Caution
	default:
		return t.Income
	}
}

// RatioBar renders a labeled bar for a 0-1 ratio followed by its percentage.
// color picks the fill; when empty the fill follows ShareColor.
func RatioBar(label string, pct float64, color lipgloss.Color, labelW, barWidth int) string {
	t := theme.Active

	pct = min(max(pct, 0), 1)
	if color == "" {
		color = ShareColor(pct)
	}

	bar := progress.New(
		progress.WithSolidFill(string(color)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface).Render(" ")

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		space +
		bar.ViewAs(pct) +
		space +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct*100))
}
