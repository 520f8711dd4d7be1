package components

import (
	"strings"

	"github.com/theirongolddev/atlas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom bar: key hints on the left, the
// selected month and a transient message on the right.
func RenderStatusBar(width int, month, message string) string {
	t := theme.Active

	base := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.SurfaceHover)
	monthStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	msgStyle := lipgloss.NewStyle().Foreground(t.Caution).Background(t.SurfaceHover)

	left := base.Render(" [?]help  [[/]]month  [r]eload  [q]uit")
	right := ""
	if message != "" {
		right += msgStyle.Render(message) + base.Render("  ")
	}
	if month != "" {
		right += monthStyle.Render(month) + base.Render(" ")
	}

	padding := max(width-lipgloss.Width(left)-lipgloss.Width(right), 0)
	return left + base.Render(strings.Repeat(" ", padding)) + right
}
