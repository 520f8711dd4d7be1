package cmd

import (
	"fmt"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/pipeline"

	"github.com/spf13/cobra"
)

var (
	flagListLimit int
	flagListAll   bool
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Recent activity, newest first",
	Args:    cobra.NoArgs,
	RunE:    runList,
}

func init() {
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "l", 20, "Maximum rows (0 for all)")
	listCmd.Flags().BoolVar(&flagListAll, "all-months", false, "List every month, not just --month")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	txs := pipeline.SortRecent(e.app.Ledger.List())
	title := "ACTIVITY  " + cli.FormatMonth(e.month)
	if flagListAll {
		title = "ACTIVITY  all months"
	} else {
		txs = pipeline.FilterByMonth(txs, e.month)
	}

	fmt.Fprintln(e.out)
	fmt.Fprintln(e.out, cli.RenderTitle(title))
	fmt.Fprintln(e.out)

	if len(txs) == 0 {
		fmt.Fprintln(e.out, "  No transactions.")
		fmt.Fprintln(e.out)
		return nil
	}

	shown := txs
	if flagListLimit > 0 && len(shown) > flagListLimit {
		shown = shown[:flagListLimit]
	}

	rows := make([][]string, 0, len(shown))
	for _, tx := range shown {
		rows = append(rows, []string{
			tx.Date,
			cli.TypeLabel(tx.Type),
			cli.Truncate(cli.CategoryLabel(tx), 18),
			cli.AccountCell(tx),
			signedAmount(tx),
			cli.Truncate(tx.Note, 28),
			tx.ID,
		})
	}
	fmt.Fprint(e.out, cli.RenderTable(cli.Table{
		Headers: []string{"Date", "Type", "Category", "Account", "Amount", "Note", "ID"},
		Rows:    rows,
	}))
	if len(shown) < len(txs) {
		fmt.Fprintln(e.out, cli.Muted(fmt.Sprintf("  %s of %s shown, use --limit 0 for all", cli.FormatNumber(int64(len(shown))), cli.FormatNumber(int64(len(txs))))))
	}
	fmt.Fprintln(e.out)
	return nil
}

func signedAmount(tx model.Transaction) string {
	switch tx.Type {
	case model.Income:
		return "+" + cli.FormatMoney(tx.Amount)
	case model.Expense:
		return "-" + cli.FormatMoney(tx.Amount)
	default:
		return cli.FormatMoney(tx.Amount)
	}
}
