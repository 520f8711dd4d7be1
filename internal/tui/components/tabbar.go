package components

import (
	"strings"

	"github.com/theirongolddev/atlas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Tab is a single entry in the tab bar.
type Tab struct {
	Name   string
	Key    rune
	KeyPos int // index of the shortcut letter in Name, -1 if absent
}

// Tabs defines the dashboard tabs in display order.
var Tabs = []Tab{
	{Name: "Overview", Key: 'o', KeyPos: 0},
	{Name: "Activity", Key: 'a', KeyPos: 0},
	{Name: "Categories", Key: 'c', KeyPos: 0},
	{Name: "Profile", Key: 'p', KeyPos: 0},
}

// RenderTabBar renders the tab bar with the active tab highlighted and the
// shortcut letter of the others marked.
func RenderTabBar(activeIdx int, width int) string {
	t := theme.Active

	bg := lipgloss.NewStyle().Background(t.Background)
	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.SurfaceHover).
		Bold(true).
		Padding(0, 1)
	inactiveStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Background)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Background).Bold(true)
	dimKeyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Background)

	parts := make([]string, 0, len(Tabs))
	for i, tab := range Tabs {
		if i == activeIdx {
			parts = append(parts, activeStyle.Render(tab.Name))
			continue
		}
		if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			parts = append(parts, " "+inactiveStyle.Render(tab.Name[:tab.KeyPos])+
				dimKeyStyle.Render("[")+keyStyle.Render(string(tab.Name[tab.KeyPos]))+dimKeyStyle.Render("]")+
				inactiveStyle.Render(tab.Name[tab.KeyPos+1:])+" ")
			continue
		}
		parts = append(parts, " "+inactiveStyle.Render(tab.Name)+
			dimKeyStyle.Render("[")+keyStyle.Render(string(tab.Key))+dimKeyStyle.Render("]")+" ")
	}

	row := bg.Render(" ") + strings.Join(parts, bg.Render(" "))
	if gap := width - lipgloss.Width(row); gap > 0 {
		row += bg.Render(strings.Repeat(" ", gap))
	}
	return row
}

// TabIdxByKey returns the index of the tab bound to key, or -1.
func TabIdxByKey(key rune) int {
	for i, tab := range Tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}

// TabVisualWidth returns the rendered width of a tab, matching RenderTabBar.
func TabVisualWidth(tab Tab, active bool) int {
	w := lipgloss.Width(tab.Name)
	switch {
	case active:
		return w + 2
	case tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name):
		return w + 4
	default:
		return w + 5
	}
}
