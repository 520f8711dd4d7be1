package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/money"
	"github.com/theirongolddev/atlas/internal/tui/components"
	"github.com/theirongolddev/atlas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCategoriesTab(cw int) string {
	t := theme.Active
	s := a.snap

	title := "Spending by category · " + cli.FormatMonth(s.YearMonth)
	innerW := components.CardInnerWidth(cw)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	amountStyle := lipgloss.NewStyle().Foreground(t.Expense).Background(t.Surface).Bold(true)
	space := lipgloss.NewStyle().Background(t.Surface)

	if len(s.Categories) == 0 {
		return components.ContentCard(title, mutedStyle.Render("No expenses recorded this month."), cw)
	}

	nameW := 0
	for _, c := range s.Categories {
		nameW = max(nameW, lipgloss.Width(c.Category))
	}
	nameW = min(nameW, 24)
	const amountW, pctW = 12, 5
	barW := max(innerW-nameW-amountW-pctW-6, 10)

	peak := money.Float(s.Categories[0].Total)
	total := money.Float(s.Month.Expense)

	var b strings.Builder
	for i, c := range s.Categories {
		if i > 0 {
			b.WriteString("\n")
		}
		v := money.Float(c.Total)
		share := 0.0
		if total > 0 {
			share = v / total
		}
		b.WriteString(nameStyle.Render(fmt.Sprintf("%-*s", nameW, cli.Truncate(c.Category, nameW))))
		b.WriteString(space.Render("  "))
		b.WriteString(components.HorizontalBar(v, peak, barW, t.Expense))
		b.WriteString(space.Render("  "))
		b.WriteString(amountStyle.Render(fmt.Sprintf("%*s", amountW, cli.FormatMoney(c.Total))))
		b.WriteString(space.Render("  "))
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%*s", pctW, cli.FormatPercent(share))))
	}

	top := make([]string, len(s.Top))
	for i, c := range s.Top {
		top[i] = c.Category
	}
	footer := mutedStyle.Render(fmt.Sprintf("Total %s · top: %s", cli.FormatMoney(s.Month.Expense), strings.Join(top, ", ")))
	b.WriteString("\n\n")
	b.WriteString(footer)

	return components.ContentCard(title, b.String(), cw)
}
