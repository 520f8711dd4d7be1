package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/atlas/internal/cli"
	"github.com/theirongolddev/atlas/internal/config"
	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/money"

	"github.com/spf13/cobra"
)

var (
	flagAddCategory string
	flagAddAccount  string
	flagAddDate     string
	flagAddNote     string
	flagAddFrom     string
	flagAddTo       string
)

var addCmd = &cobra.Command{
	Use:   "add income|expense|transfer <amount>",
	Short: "Record a transaction",
	Example: `  atlas add expense 12.50 --category Food --account cash
  atlas add income 2500 --category Salary
  atlas add transfer 300 --from checking --to savings`,
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{string(model.Income), string(model.Expense), string(model.Transfer)},
	RunE:      runAdd,
}

func init() {
	addCmd.Flags().StringVarP(&flagAddCategory, "category", "c", "", "Category (income and expense)")
	addCmd.Flags().StringVarP(&flagAddAccount, "account", "a", "checking", "Account: checking, savings or cash")
	addCmd.Flags().StringVarP(&flagAddDate, "date", "d", "", "Date YYYY-MM-DD (default today)")
	addCmd.Flags().StringVarP(&flagAddNote, "note", "n", "", "Free-form note")
	addCmd.Flags().StringVar(&flagAddFrom, "from", "", "Transfer source account")
	addCmd.Flags().StringVar(&flagAddTo, "to", "", "Transfer destination account")
	_ = addCmd.RegisterFlagCompletionFunc("category", completeCategory)
	_ = addCmd.RegisterFlagCompletionFunc("account", completeAccount)
	_ = addCmd.RegisterFlagCompletionFunc("from", completeAccount)
	_ = addCmd.RegisterFlagCompletionFunc("to", completeAccount)
	rootCmd.AddCommand(addCmd)
}

// completeCategory offers the configured categories for the chosen type.
func completeCategory(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return cfg.Categories.Suggestions(args[0]), cobra.ShellCompDirectiveNoFileComp
}

func completeAccount(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	names := make([]string, len(model.Accounts))
	for i, a := range model.Accounts {
		names[i] = string(a)
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

// buildTransaction turns the add arguments into an unsaved transaction.
func buildTransaction(kind, rawAmount, today string) (model.Transaction, error) {
	typ := model.TxType(strings.ToLower(kind))
	if !typ.Valid() {
		return model.Transaction{}, fmt.Errorf("unknown transaction type %q: expected income, expense or transfer", kind)
	}

	amount, err := money.ParsePositive(rawAmount)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("amount: %w", err)
	}

	tx := model.Transaction{
		Type:   typ,
		Amount: amount,
		Date:   flagAddDate,
		Note:   flagAddNote,
	}
	if tx.Date == "" {
		tx.Date = today
	}

	if typ == model.Transfer {
		if flagAddFrom == "" || flagAddTo == "" {
			return model.Transaction{}, errors.New("transfers need --from and --to")
		}
		if tx.FromAccount, err = parseAccount("from", flagAddFrom); err != nil {
			return model.Transaction{}, err
		}
		if tx.ToAccount, err = parseAccount("to", flagAddTo); err != nil {
			return model.Transaction{}, err
		}
		return tx, nil
	}

	if tx.Account, err = parseAccount("account", flagAddAccount); err != nil {
		return model.Transaction{}, err
	}
	tx.Category = flagAddCategory
	return tx, nil
}

func runAdd(cmd *cobra.Command, args []string) error {
	e, err := openEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	tx, err := buildTransaction(args[0], args[1], e.app.Today())
	if err != nil {
		return err
	}

	saved, err := e.app.Ledger.Append(e.ctx, tx)
	if err != nil {
		return err
	}

	if saved.Type == model.Transfer {
		e.confirm("Moved %s %s on %s  (%s)", cli.FormatMoney(saved.Amount), cli.AccountCell(saved), saved.Date, saved.ID)
		return nil
	}
	e.confirm("Added %s %s · %s · %s on %s  (%s)",
		strings.ToLower(cli.TypeLabel(saved.Type)), cli.FormatMoney(saved.Amount),
		saved.Category, cli.AccountLabel(saved.Account), saved.Date, saved.ID)
	return nil
}
