package cmd

import (
	"errors"
	"fmt"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/profile"
	"github.com/theirongolddev/atlas/internal/tui"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactive profile setup",
	Args:  cobra.NoArgs,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	vals := tui.ProfileValuesFrom(e.app.Profiles.Current())
	if err := tui.NewProfileForm(vals).RunWithContext(e.ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			e.confirm("Setup cancelled, nothing saved.")
			return nil
		}
		return fmt.Errorf("setup form: %w", err)
	}

	in, err := vals.Input()
	if err != nil {
		return err
	}
	p, err := e.app.SaveProfile(e.ctx, in)
	if err != nil {
		return err
	}

	plan := profile.PlanFor(&p)
	fmt.Fprintln(e.out)
	fmt.Fprintf(e.out, "  %s! Surplus %s a month.\n", profile.Greeting(&p), cli.FormatSignedMoney(plan.Surplus))
	fmt.Fprintln(e.out, "  Run `atlas` for the dashboard or `atlas tui` for the interactive view.")
	fmt.Fprintln(e.out)
	return nil
}
