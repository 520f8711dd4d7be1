package cmd

import (
	"fmt"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/model"

	"github.com/spf13/cobra"
)

var balancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Current balance of each account",
	Args:  cobra.NoArgs,
	RunE:  runBalances,
}

func init() {
	rootCmd.AddCommand(balancesCmd)
}

func runBalances(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.app.Snapshot(e.month, e.snapshotOptions())
	fmt.Fprintln(e.out)
	fmt.Fprint(e.out, balancesTable(s))
	for _, acct := range model.Accounts {
		if s.Balances.Get(acct).IsNegative() {
			fmt.Fprintln(e.out, cli.Warn("  "+cli.AccountLabel(acct)+" is overdrawn"))
		}
	}
	if s.Profile == nil {
		fmt.Fprintln(e.out, cli.Muted("  No starting balances set, run `atlas setup`."))
	}
	fmt.Fprintln(e.out)
	return nil
}
