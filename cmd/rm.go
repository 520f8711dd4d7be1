package cmd

import (
	"github.com/theirongolddev/atlas/internal/cli"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a transaction by id",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	tx, found := e.app.Ledger.Get(args[0])
	removed, err := e.app.Ledger.Remove(e.ctx, args[0])
	if err != nil {
		return err
	}
	if !removed || !found {
		e.confirm("No transaction with id %s, nothing removed", args[0])
		return nil
	}
	e.confirm("Removed %s %s on %s", cli.CategoryLabel(tx), cli.FormatMoney(tx.Amount), tx.Date)
	return nil
}
