package cmd

import (
	"fmt"

	"github.com/theirongolddev/atlas/internal/app"
	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/money"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly dashboard: balances, categories, plan and insights",
	Args:  cobra.NoArgs,
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.app.Snapshot(e.month, e.snapshotOptions())
	w := e.out

	fmt.Fprintln(w)
	fmt.Fprintln(w, cli.RenderTitle(fmt.Sprintf("%s  ·  %s", s.Greeting, cli.FormatMonth(s.YearMonth))))
	fmt.Fprintln(w)

	if s.Profile == nil && s.Count == 0 {
		fmt.Fprintln(w, "  Nothing recorded yet.")
		fmt.Fprintln(w, "  Run `atlas setup` to enter your balances, then `atlas add expense 12.50 --category Food`.")
		fmt.Fprintln(w)
		return nil
	}

	fmt.Fprint(w, cli.RenderTable(cli.Table{
		Title:   "This month",
		Headers: []string{"", "Amount"},
		Rows: [][]string{
			{"Income", cli.FormatMoney(s.Month.Income)},
			{"Expenses", cli.FormatMoney(s.Month.Expense)},
			{"Net", cli.FormatSignedMoney(s.Month.Net)},
			{"---"},
			{"Net balance (all time)", cli.FormatSignedMoney(s.NetBalance)},
		},
	}))
	fmt.Fprintln(w)

	if len(s.Trend) > 1 {
		expenses := make([]float64, len(s.Trend))
		for i, m := range s.Trend {
			expenses[i] = money.Float(m.Expense)
		}
		fmt.Fprintf(w, "  Spending, last %d months  %s\n\n", len(s.Trend), cli.RenderSparkline(expenses))
	}

	fmt.Fprint(w, balancesTable(s))
	fmt.Fprintln(w)

	if len(s.Top) > 0 {
		fmt.Fprint(w, categoriesTable("Top categories", s.Top, s.Month))
		fmt.Fprintln(w)
	}

	if s.Profile != nil {
		fmt.Fprint(w, planTable(s))
		fmt.Fprintln(w)
	}

	if len(s.Insights) > 0 {
		fmt.Fprintln(w, "  Insights")
		fmt.Fprint(w, cli.RenderInsights(s.Insights))
		fmt.Fprintln(w)
	}

	if path := e.app.StorePath(); path != "" {
		footer := "  " + path
		if ts, ok := e.app.LastChange(e.ctx); ok {
			footer += " · saved " + humanize.Time(ts)
		}
		fmt.Fprintln(w, cli.Muted(footer))
		fmt.Fprintln(w)
	}
	return nil
}

func balancesTable(s app.Snapshot) string {
	rows := make([][]string, 0, len(model.Accounts)+2)
	for _, acct := range model.Accounts {
		rows = append(rows, []string{cli.AccountLabel(acct), cli.FormatMoney(s.Balances.Get(acct))})
	}
	rows = append(rows, []string{"---"}, []string{"Total", cli.FormatMoney(s.TotalBalance)})
	return cli.RenderTable(cli.Table{
		Title:   "Accounts",
		Headers: []string{"Account", "Balance"},
		Rows:    rows,
	})
}

func categoriesTable(title string, cats []model.CategoryTotal, month model.MonthlySummary) string {
	peak := 0.0
	if len(cats) > 0 {
		peak = money.Float(cats[0].Total)
	}
	total := money.Float(month.Expense)

	rows := make([][]string, 0, len(cats))
	for _, c := range cats {
		v := money.Float(c.Total)
		share := 0.0
		if total > 0 {
			share = v / total
		}
		rows = append(rows, []string{
			c.Category,
			cli.FormatMoney(c.Total),
			cli.FormatPercent(share),
			cli.RenderHorizontalBar(v, peak, 20),
		})
	}
	return cli.RenderTable(cli.Table{
		Title:   title,
		Headers: []string{"Category", "Spent", "Share", ""},
		Rows:    rows,
	})
}

func planTable(s app.Snapshot) string {
	rows := [][]string{{"Monthly income", cli.FormatMoney(s.Plan.Income)}}
	for _, it := range s.Profile.Monthly.FixedItems {
		rows = append(rows, []string{"  " + it.Name, "-" + cli.FormatMoney(it.Amount)})
	}
	rows = append(rows,
		[]string{"Fixed expenses", "-" + cli.FormatMoney(s.Plan.FixedExpenses)},
		[]string{"---"},
		[]string{"Surplus", cli.FormatSignedMoney(s.Plan.Surplus)},
		[]string{"Savings rate", cli.FormatPercent(s.Plan.SavingsRate)},
	)
	return cli.RenderTable(cli.Table{
		Title:   "Monthly plan",
		Headers: []string{"", "Amount"},
		Rows:    rows,
	})
}
