package cmd

import (
	"fmt"

	"github.com/theirongolddev/atlas/internal/cli"

	"github.com/spf13/cobra"
)

var insightsCmd = &cobra.Command{
	Use:   "insights",
	Short: "Status messages for the month",
	Args:  cobra.NoArgs,
	RunE:  runInsights,
}

func init() {
	rootCmd.AddCommand(insightsCmd)
}

func runInsights(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	s := e.app.Snapshot(e.month, e.snapshotOptions())
	fmt.Fprintln(e.out)
	if len(s.Insights) == 0 {
		fmt.Fprintf(e.out, "  Nothing to report for %s.\n\n", cli.FormatMonth(s.YearMonth))
		return nil
	}
	fmt.Fprint(e.out, cli.RenderInsights(s.Insights))
	fmt.Fprintln(e.out)
	return nil
}
