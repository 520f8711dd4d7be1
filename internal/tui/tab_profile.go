package tui

import (
	"strings"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/tui/components"
	"github.com/theirongolddev/atlas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderProfileTab(cw int) string {
	t := theme.Active
	s := a.snap
	p := s.Profile

	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	if p == nil {
		return components.ContentCard("Profile", mutedStyle.Render("No profile yet. Press e to set one up."), cw)
	}

	var left, right string
	var leftW, rightW int
	if a.isCompactLayout() {
		leftW, rightW = cw, cw
	} else {
		halves := components.LayoutRow(cw, 2)
		leftW, rightW = halves[0], halves[1]
	}

	// Starting balances next to today's.
	inner := components.CardInnerWidth(leftW)
	var lb strings.Builder
	lb.WriteString(kv(inner, "Name", valueOr(p.Name, "(not set)")))
	if !p.CreatedAt.IsZero() {
		lb.WriteString("\n")
		lb.WriteString(kv(inner, "Since", p.CreatedAt.Local().Format("Jan 2, 2006")))
	}
	lb.WriteString("\n\n")
	lb.WriteString(mutedStyle.Render("Starting → current"))
	for _, acct := range model.Accounts {
		lb.WriteString("\n")
		lb.WriteString(kv(inner, cli.AccountLabel(acct),
			cli.FormatMoney(p.Balances.Get(acct))+" → "+cli.FormatMoney(s.Balances.Get(acct))))
	}
	left = components.ContentCard("Profile", lb.String(), leftW)

	// Monthly plan.
	inner = components.CardInnerWidth(rightW)
	var rb strings.Builder
	rb.WriteString(kv(inner, "Income", cli.FormatMoney(s.Plan.Income)))
	for _, it := range p.Monthly.FixedItems {
		rb.WriteString("\n")
		rb.WriteString(kv(inner, "  "+it.Name, "-"+cli.FormatMoney(it.Amount)))
	}
	rb.WriteString("\n")
	rb.WriteString(kv(inner, "Fixed expenses", "-"+cli.FormatMoney(s.Plan.FixedExpenses)))
	rb.WriteString("\n")
	rb.WriteString(kv(inner, "Surplus", cli.FormatSignedMoney(s.Plan.Surplus)))
	rb.WriteString("\n\n")
	rb.WriteString(components.RatioBar("Savings rate", s.Plan.SavingsRate, t.Income, 13, max(inner-19, 10)))
	right = components.ContentCard("Monthly plan", rb.String(), rightW)

	hint := mutedStyle.Render("Press e to edit")
	if a.isCompactLayout() {
		return left + "\n" + right + "\n" + hint
	}
	return components.CardRow([]string{left, right}) + "\n" + hint
}

func kv(width int, label, value string) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	gap := max(width-lipgloss.Width(label)-lipgloss.Width(value), 1)
	return labelStyle.Render(label) + labelStyle.Render(strings.Repeat(" ", gap)) + valueStyle.Render(value)
}

func valueOr(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
