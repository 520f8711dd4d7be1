package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/atlas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var blocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders values as a row of unicode blocks.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		peak = max(peak, v)
	}
	if peak <= 0 {
		peak = 1
	}

	var buf strings.Builder
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		buf.WriteRune(blocks[min(max(idx, 0), len(blocks)-1)])
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(buf.String())
}

// Series is one colored set of bars in a grouped chart.
type Series struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
}

// GroupedBarChart draws one group of bars per label, one bar per series,
// with a money-scaled y axis. Narrow or short areas fall back to a
// sparkline of the first series.
func GroupedBarChart(series []Series, labels []string, width, height int) string {
	if len(series) == 0 || len(labels) == 0 {
		return ""
	}
	if width < 20 || height < 3 {
		return Sparkline(series[0].Values, series[0].Color)
	}

	t := theme.Active
	surface := lipgloss.NewStyle().Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	peak := 0.0
	for _, s := range series {
		for _, v := range s.Values {
			peak = max(peak, v)
		}
	}
	if peak <= 0 {
		peak = 1
	}
	step := chartTickStep(peak)
	ceiling := math.Ceil(peak/step) * step

	yLabelW := max(len(formatMoneyTick(ceiling))+1, 5)
	plotW := max(width-yLabelW-1, 5)

	groups := len(labels)
	perGroup := len(series)
	barW := (plotW - (groups - 1)) / (groups * perGroup)
	barW = min(max(barW, 1), 4)
	groupW := barW * perGroup

	value := func(s Series, i int) float64 {
		if i < len(s.Values) {
			return s.Values[i]
		}
		return 0
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		top := ceiling * float64(row) / float64(height)
		bottom := ceiling * float64(row-1) / float64(height)

		label := ""
		switch row {
		case height:
			label = formatMoneyTick(ceiling)
		case (height + 1) / 2:
			label = formatMoneyTick(ceiling / 2)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		b.WriteString(axisStyle.Render("│"))

		for g := 0; g < groups; g++ {
			if g > 0 {
				b.WriteString(surface.Render(" "))
			}
			for _, s := range series {
				v := value(s, g)
				cell := " "
				switch {
				case v >= top:
					cell = "█"
				case v > bottom:
					frac := (v - bottom) / (top - bottom)
					cell = string(blocks[min(max(int(frac*8)-1, 0), len(blocks)-1)])
				}
				style := lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface)
				b.WriteString(style.Render(strings.Repeat(cell, barW)))
			}
		}
		b.WriteString("\n")
	}

	axisLen := groups*groupW + groups - 1
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└" + strings.Repeat("─", axisLen)))
	b.WriteString("\n")

	b.WriteString(surface.Render(strings.Repeat(" ", yLabelW+1)))
	for g, lbl := range labels {
		if g > 0 {
			b.WriteString(surface.Render(" "))
		}
		r := []rune(lbl)
		if len(r) > groupW {
			r = r[:groupW]
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%-*s", groupW, string(r))))
	}

	b.WriteString("\n")
	legend := make([]string, len(series))
	for i, s := range series {
		legend[i] = lipgloss.NewStyle().Foreground(s.Color).Background(t.Surface).Render("■") +
			axisStyle.Render(" "+s.Name)
	}
	b.WriteString(surface.Render(strings.Repeat(" ", yLabelW+1)))
	b.WriteString(strings.Join(legend, surface.Render("  ")))

	return b.String()
}

// HorizontalBar renders a single bar scaled against peak.
func HorizontalBar(value, peak float64, width int, color lipgloss.Color) string {
	t := theme.Active
	filled := 0
	if peak > 0 && value > 0 {
		filled = min(max(int(math.Round(value/peak*float64(width))), 1), width)
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render(strings.Repeat("·", width-filled))
}

// chartTickStep picks a round tick interval targeting about two ticks.
func chartTickStep(peak float64) float64 {
	if peak <= 0 {
		return 1
	}
	rough := peak / 2
	base := math.Pow(10, math.Floor(math.Log10(rough)))
	switch frac := rough / base; {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatMoneyTick(v float64) string {
	switch {
	case v >= 1e6:
		return trimZero(fmt.Sprintf("$%.1f", v/1e6)) + "M"
	case v >= 1e3:
		return trimZero(fmt.Sprintf("$%.1f", v/1e3)) + "k"
	case v >= 1:
		return fmt.Sprintf("$%.0f", v)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}

func trimZero(s string) string {
	return strings.TrimSuffix(s, ".0")
}
