package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/money"
	"github.com/theirongolddev/atlas/internal/tui/components"
	"github.com/theirongolddev/atlas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

const (
	tabOverview = iota
	tabActivity
	tabCategories
	tabProfile
)

// signColor picks the income color for non-negative amounts and the
// expense color otherwise.
func signColor(d decimal.Decimal) lipgloss.Color {
	if d.IsNegative() {
		return theme.Active.Expense
	}
	return theme.Active.Income
}

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	s := a.snap
	var b strings.Builder

	// Row 1: metric cards
	monthTxs := 0
	for _, tx := range s.Recent {
		if tx.YearMonth() == s.YearMonth {
			monthTxs++
		}
	}
	cards := []components.Metric{
		{Label: "Net balance", Value: cli.FormatSignedMoney(s.NetBalance), Delta: fmt.Sprintf("%d transactions", s.Count), Color: signColor(s.NetBalance)},
		{Label: "Income", Value: cli.FormatMoney(s.Month.Income), Delta: cli.FormatMonth(s.YearMonth), Color: t.Income},
		{Label: "Expenses", Value: cli.FormatMoney(s.Month.Expense), Delta: fmt.Sprintf("%d this month", monthTxs), Color: t.Expense},
		{Label: "Month net", Value: cli.FormatSignedMoney(s.Month.Net), Color: signColor(s.Month.Net)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: balances + insights
	var balanceCard, insightCard string
	if a.isCompactLayout() {
		balanceCard = components.ContentCard("Accounts", a.balancesBody(components.CardInnerWidth(cw)), cw)
		insightCard = components.ContentCard("Insights", a.insightsBody(components.CardInnerWidth(cw)), cw)
		b.WriteString(balanceCard)
		b.WriteString("\n")
		b.WriteString(insightCard)
	} else {
		halves := components.LayoutRow(cw, 2)
		balanceCard = components.ContentCard("Accounts", a.balancesBody(components.CardInnerWidth(halves[0])), halves[0])
		insightCard = components.ContentCard("Insights", a.insightsBody(components.CardInnerWidth(halves[1])), halves[1])
		b.WriteString(components.CardRow([]string{balanceCard, insightCard}))
	}
	b.WriteString("\n")

	// Row 3: income vs expenses trend
	if len(s.Trend) > 0 {
		income := make([]float64, len(s.Trend))
		expense := make([]float64, len(s.Trend))
		labels := make([]string, len(s.Trend))
		for i, m := range s.Trend {
			income[i] = money.Float(m.Income)
			expense[i] = money.Float(m.Expense)
			labels[i] = cli.ShortMonth(m.YearMonth)
		}
		chartH := 8
		if a.isCompactLayout() {
			chartH = 5
		}
		chart := components.GroupedBarChart([]components.Series{
			{Name: "Income", Values: income, Color: t.Income},
			{Name: "Expenses", Values: expense, Color: t.Expense},
		}, labels, components.CardInnerWidth(cw), chartH)
		b.WriteString(components.ContentCard(fmt.Sprintf("Last %d months", len(s.Trend)), chart, cw))
	}

	return b.String()
}

func (a App) balancesBody(innerW int) string {
	t := theme.Active
	s := a.snap

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	totalStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	line := func(label, value string, valueStyle lipgloss.Style) string {
		gap := max(innerW-lipgloss.Width(label)-lipgloss.Width(value), 1)
		return labelStyle.Render(label) + dimStyle.Render(strings.Repeat(" ", gap)) + valueStyle.Render(value)
	}

	var b strings.Builder
	for _, acct := range model.Accounts {
		v := s.Balances.Get(acct)
		style := lipgloss.NewStyle().Foreground(signColor(v)).Background(t.Surface)
		b.WriteString(line(cli.AccountLabel(acct), cli.FormatMoney(v), style))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(strings.Repeat("─", innerW)))
	b.WriteString("\n")
	b.WriteString(line("Total", cli.FormatMoney(s.TotalBalance), totalStyle))

	if s.Profile == nil {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("No starting balances yet. Press p, then e."))
	}
	return b.String()
}

func (a App) insightsBody(innerW int) string {
	t := theme.Active
	s := a.snap

	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)
	detailStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	goodStyle := lipgloss.NewStyle().Foreground(t.Income).Background(t.Surface)
	warnStyle := lipgloss.NewStyle().Foreground(t.Warning).Background(t.Surface)

	if len(s.Insights) == 0 {
		return detailStyle.Render("Nothing to report for " + cli.FormatMonth(s.YearMonth))
	}

	var b strings.Builder
	for i, in := range s.Insights {
		if i > 0 {
			b.WriteString("\n")
		}
		mark := goodStyle.Render("●")
		if in.Warning() {
			mark = warnStyle.Render("▲")
		}
		b.WriteString(mark + detailStyle.Render(" ") + titleStyle.Render(in.Title))
		b.WriteString("\n")
		if in.Kind == model.InsightFixedShare {
			b.WriteString(components.RatioBar(" ", money.Float(in.Value)/100, "", 1, max(innerW-7, 10)))
		} else {
			b.WriteString(detailStyle.Render("  " + cli.Truncate(in.Detail, innerW-2)))
		}
	}
	return b.String()
}
