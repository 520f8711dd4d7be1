package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/money"
	"github.com/theirongolddev/atlas/internal/profile"

	"github.com/charmbracelet/huh"
)

// ProfileValues holds the raw profile form fields. Fixed expenses are
// entered one per line as "name = amount".
type ProfileValues struct {
	Name     string
	Checking string
	Savings  string
	Cash     string
	Income   string
	Fixed    string
}

// ProfileValuesFrom prefills the form from an existing profile.
func ProfileValuesFrom(p *model.Profile) *ProfileValues {
	in := profile.InputFrom(p)
	lines := make([]string, len(in.Fixed))
	for i, r := range in.Fixed {
		lines[i] = r.Name + " = " + r.Amount
	}
	return &ProfileValues{
		Name:     in.Name,
		Checking: in.Checking,
		Savings:  in.Savings,
		Cash:     in.Cash,
		Income:   in.Income,
		Fixed:    strings.Join(lines, "\n"),
	}
}

// Input converts the form into a profile.Input.
func (v *ProfileValues) Input() (profile.Input, error) {
	in := profile.Input{
		Name:     v.Name,
		Checking: v.Checking,
		Savings:  v.Savings,
		Cash:     v.Cash,
		Income:   v.Income,
	}
	rows, err := parseFixedLines(v.Fixed)
	if err != nil {
		return profile.Input{}, err
	}
	in.Fixed = rows
	return in, nil
}

func parseFixedLines(text string) ([]profile.FixedRow, error) {
	var rows []profile.FixedRow
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		row, err := profile.ParseFixedFlag(line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func validateOptionalAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := money.ParseAmount(s); err != nil {
		return fmt.Errorf("please enter a valid number")
	}
	return nil
}

func validateIncome(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := money.ParseNonNegative(s); err != nil {
		return fmt.Errorf("income can't be negative")
	}
	return nil
}

func validateFixed(s string) error {
	rows, err := parseFixedLines(s)
	if err != nil {
		return err
	}
	_, err = profile.FixedItems(rows)
	return err
}

// NewProfileForm builds the onboarding form bound to vals.
func NewProfileForm(vals *ProfileValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to Atlas").
				Description("Tell us where your money starts.\nEvery field is optional and can be changed later."),
			huh.NewInput().
				Title("Your name").
				Value(&vals.Name),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Checking balance").
				Placeholder("0.00").
				Validate(validateOptionalAmount).
				Value(&vals.Checking),
			huh.NewInput().
				Title("Savings balance").
				Placeholder("0.00").
				Validate(validateOptionalAmount).
				Value(&vals.Savings),
			huh.NewInput().
				Title("Cash on hand").
				Placeholder("0.00").
				Validate(validateOptionalAmount).
				Value(&vals.Cash),
		).Title("Starting balances"),
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly income").
				Placeholder("0.00").
				Validate(validateIncome).
				Value(&vals.Income),
			huh.NewText().
				Title("Fixed monthly expenses").
				Description("One per line, e.g. Rent = 1200").
				Validate(validateFixed).
				Value(&vals.Fixed),
		).Title("Monthly plan"),
	).WithTheme(huh.ThemeDracula())
}
