package cmd

import (
	"fmt"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/profile"

	"github.com/spf13/cobra"
)

var (
	flagProfileName     string
	flagProfileChecking string
	flagProfileSavings  string
	flagProfileCash     string
	flagProfileIncome   string
	flagProfileFixed    []string
	flagProfileNoFixed  bool
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or change starting balances and the monthly plan",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the profile",
	Args:  cobra.NoArgs,
	RunE:  runProfileShow,
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update profile fields; unspecified fields keep their value",
	Example: `  atlas profile set --name Ana --checking 1200 --income 3000
  atlas profile set --fixed Rent=1200 --fixed Gym=40`,
	Args: cobra.NoArgs,
	RunE: runProfileSet,
}

var profileResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the profile; transactions are kept",
	Args:  cobra.NoArgs,
	RunE:  runProfileReset,
}

func init() {
	f := profileSetCmd.Flags()
	f.StringVar(&flagProfileName, "name", "", "Your name")
	f.StringVar(&flagProfileChecking, "checking", "", "Starting checking balance")
	f.StringVar(&flagProfileSavings, "savings", "", "Starting savings balance")
	f.StringVar(&flagProfileCash, "cash", "", "Starting cash balance")
	f.StringVar(&flagProfileIncome, "income", "", "Monthly income")
	f.StringArrayVar(&flagProfileFixed, "fixed", nil, "Fixed monthly expense as name=amount (repeatable, replaces the list)")
	f.BoolVar(&flagProfileNoFixed, "no-fixed", false, "Remove all fixed expenses")

	profileCmd.AddCommand(profileShowCmd, profileSetCmd, profileResetCmd)
	rootCmd.AddCommand(profileCmd)
}

func runProfileShow(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	p := e.app.Profiles.Current()
	fmt.Fprintln(e.out)
	if p == nil {
		fmt.Fprintln(e.out, "  No profile yet. Run `atlas setup` or `atlas profile set`.")
		fmt.Fprintln(e.out)
		return nil
	}

	fmt.Fprintln(e.out, cli.RenderTitle(profile.Greeting(p)))
	fmt.Fprintln(e.out)

	rows := make([][]string, 0, len(model.Accounts))
	for _, acct := range model.Accounts {
		rows = append(rows, []string{cli.AccountLabel(acct), cli.FormatMoney(p.Balances.Get(acct))})
	}
	fmt.Fprint(e.out, cli.RenderTable(cli.Table{
		Title:   "Starting balances",
		Headers: []string{"Account", "Balance"},
		Rows:    rows,
	}))
	fmt.Fprintln(e.out)

	fmt.Fprint(e.out, planTable(e.app.Snapshot(e.month, e.snapshotOptions())))
	if !p.CreatedAt.IsZero() {
		fmt.Fprintln(e.out, cli.Muted("  Created "+p.CreatedAt.Local().Format("Jan 2, 2006")))
	}
	fmt.Fprintln(e.out)
	return nil
}

// profileInput overlays the changed flags on the current profile.
func profileInput(cmd *cobra.Command, current *model.Profile) (profile.Input, error) {
	in := profile.InputFrom(current)
	f := cmd.Flags()

	if f.Changed("name") {
		in.Name = flagProfileName
	}
	if f.Changed("checking") {
		in.Checking = flagProfileChecking
	}
	if f.Changed("savings") {
		in.Savings = flagProfileSavings
	}
	if f.Changed("cash") {
		in.Cash = flagProfileCash
	}
	if f.Changed("income") {
		in.Income = flagProfileIncome
	}

	switch {
	case flagProfileNoFixed && len(flagProfileFixed) > 0:
		return profile.Input{}, fmt.Errorf("--fixed and --no-fixed can't be combined")
	case flagProfileNoFixed:
		in.Fixed = nil
	case len(flagProfileFixed) > 0:
		in.Fixed = make([]profile.FixedRow, 0, len(flagProfileFixed))
		for _, raw := range flagProfileFixed {
			row, err := profile.ParseFixedFlag(raw)
			if err != nil {
				return profile.Input{}, err
			}
			in.Fixed = append(in.Fixed, row)
		}
	}
	return in, nil
}

func runProfileSet(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	in, err := profileInput(cmd, e.app.Profiles.Current())
	if err != nil {
		return err
	}
	p, err := e.app.SaveProfile(e.ctx, in)
	if err != nil {
		return err
	}

	plan := profile.PlanFor(&p)
	e.confirm("Profile saved. Surplus %s a month, savings rate %s",
		cli.FormatSignedMoney(plan.Surplus), cli.FormatPercent(plan.SavingsRate))
	return nil
}

func runProfileReset(cmd *cobra.Command, _ []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.app.Profiles.Reset(e.ctx); err != nil {
		return err
	}
	e.confirm("Profile removed. Transactions were kept.")
	return nil
}
