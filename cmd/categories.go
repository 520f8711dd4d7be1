package cmd

import (
	"fmt"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/pipeline"

	"github.com/spf13/cobra"
)

var flagCategoriesLimit int

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Spending by category for the month",
	Args:  cobra.NoArgs,
	RunE:  runCategories,
}

func init() {
	categoriesCmd.Flags().IntVarP(&flagCategoriesLimit, "limit", "l", 0, "Show only the top N (0 for all)")
	rootCmd.AddCommand(categoriesCmd)
}

func runCategories(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	txs := e.app.Ledger.List()
	cats := pipeline.TopCategories(txs, e.month, flagCategoriesLimit)
	month := pipeline.MonthlySummary(txs, e.month)

	fmt.Fprintln(e.out)
	if len(cats) == 0 {
		fmt.Fprintf(e.out, "  No expenses in %s.\n\n", cli.FormatMonth(e.month))
		return nil
	}
	fmt.Fprint(e.out, categoriesTable("Spending · "+cli.FormatMonth(e.month), cats, month))
	fmt.Fprintf(e.out, "  Total %s\n\n", cli.FormatMoney(month.Expense))
	return nil
}
