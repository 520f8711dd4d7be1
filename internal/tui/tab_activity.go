package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/pipeline"
	"github.com/theirongolddev/atlas/internal/tui/components"
	"github.com/theirongolddev/atlas/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// activityState tracks the Activity tab's list position.
type activityState struct {
	cursor    int
	offset    int
	allMonths bool
	confirmID string // id awaiting a second x to delete
}

func (s *activityState) move(delta, n int) {
	s.cursor += delta
	s.confirmID = ""
	s.clamp(n)
}

func (s *activityState) clamp(n int) {
	s.cursor = min(max(s.cursor, 0), max(n-1, 0))
	if s.offset > s.cursor {
		s.offset = s.cursor
	}
}

// activityRows returns the transactions listed on the Activity tab,
// newest first.
func (a App) activityRows() []model.Transaction {
	if a.activity.allMonths {
		return a.snap.Recent
	}
	return pipeline.FilterByMonth(a.snap.Recent, a.snap.YearMonth)
}

// updateActivity handles the Activity tab's own keys. ok is false when the
// key should fall through to the global bindings.
func (a App) updateActivity(key string) (tea.Model, tea.Cmd, bool) {
	rows := a.activityRows()
	switch key {
	case "j", "down":
		a.activity.move(1, len(rows))
	case "k", "up":
		a.activity.move(-1, len(rows))
	case "g":
		a.activity.move(-len(rows), len(rows))
	case "G":
		a.activity.move(len(rows), len(rows))
	case "f":
		a.activity = activityState{allMonths: !a.activity.allMonths}
	case "x":
		if a.busy || len(rows) == 0 {
			return a, nil, true
		}
		id := rows[a.activity.cursor].ID
		if a.activity.confirmID != id {
			a.activity.confirmID = id
			a.message = "press x again to delete"
			return a, nil, true
		}
		a.activity.confirmID = ""
		a.busy = true
		return a, removeCmd(a.ctx, a.core, id, a.month, a.opts), true
	case "esc":
		a.activity.confirmID = ""
		a.message = ""
	default:
		return a, nil, false
	}
	return a, nil, true
}

func (a App) renderActivityTab(cw, h int) string {
	t := theme.Active
	rows := a.activityRows()

	title := "Activity · " + cli.FormatMonth(a.snap.YearMonth)
	if a.activity.allMonths {
		title = "Activity · all months"
	}
	title = fmt.Sprintf("%s (%d)", title, len(rows))

	innerW := components.CardInnerWidth(cw)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)

	if len(rows) == 0 {
		body := mutedStyle.Render("No transactions. Add one with `atlas add expense 12.50 --category Food`.")
		return components.ContentCard(title, body, cw)
	}

	// Visible window: card border + title + header take four lines.
	visible := max(h-5, 1)
	st := a.activity
	if st.cursor >= st.offset+visible {
		st.offset = st.cursor - visible + 1
	}

	const (
		dateW   = 10
		typeW   = 8
		amountW = 12
	)
	flexW := max(innerW-dateW-typeW-amountW-8, 20)
	catW := flexW * 2 / 5
	acctW := flexW - catW

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	format := fmt.Sprintf("%%-%ds  %%-%ds  %%-%ds  %%-%ds  %%%ds", dateW, typeW, catW, acctW, amountW)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(format, "Date", "Type", "Category", "Account", "Amount")))

	end := min(st.offset+visible, len(rows))
	for i := st.offset; i < end; i++ {
		tx := rows[i]
		amount := cli.FormatMoney(tx.Amount)
		switch tx.Type {
		case model.Expense:
			amount = "-" + amount
		case model.Income:
			amount = "+" + amount
		}
		line := fmt.Sprintf(format,
			tx.Date,
			cli.TypeLabel(tx.Type),
			cli.Truncate(cli.CategoryLabel(tx), catW),
			cli.Truncate(accountWithNote(tx), acctW),
			amount,
		)

		style := rowStyle.Foreground(typeColor(tx.Type))
		if i == st.cursor {
			style = selStyle.Foreground(typeColor(tx.Type))
			if st.confirmID == tx.ID {
				style = style.Foreground(t.Warning)
			}
		}
		b.WriteString("\n")
		b.WriteString(style.Render(line))
	}

	return components.ContentCard(title, b.String(), cw)
}

func accountWithNote(tx model.Transaction) string {
	if tx.Note == "" {
		return cli.AccountCell(tx)
	}
	return cli.AccountCell(tx) + " · " + tx.Note
}

func typeColor(typ model.TxType) lipgloss.Color {
	t := theme.Active
	switch typ {
	case model.Income:
		return t.Income
	case model.Expense:
		return t.Expense
	default:
		return t.Transfer
	}
}
