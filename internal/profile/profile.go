// Package profile builds, validates and stores the user's profile.
package profile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/money"

	"github.com/shopspring/decimal"
)

// ErrInvalidProfile is wrapped by every ValidationError.
var ErrInvalidProfile = errors.New("invalid profile")

// ValidationError describes a rejected profile field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidProfile
}

// FixedRow is one raw fixed-expense entry as typed by the user.
type FixedRow struct {
	Name   string
	Amount string
}

// Input holds the raw profile form values.
type Input struct {
	Name     string
	Checking string
	Savings  string
	Cash     string
	Income   string
	Fixed    []FixedRow
}

// InputFrom prefills an Input from an existing profile. A nil profile
// gives an empty form.
func InputFrom(p *model.Profile) Input {
	if p == nil {
		return Input{}
	}
	in := Input{
		Name:     p.Name,
		Checking: p.Balances.Checking.String(),
		Savings:  p.Balances.Savings.String(),
		Cash:     p.Balances.Cash.String(),
		Income:   p.Monthly.Income.String(),
	}
	for _, it := range p.Monthly.FixedItems {
		in.Fixed = append(in.Fixed, FixedRow{Name: it.Name, Amount: it.Amount.String()})
	}
	return in
}

const fixedRowMessage = "fixed expenses: please enter a name and a valid non-negative amount"

// Build validates in and returns the profile it describes. Blank numeric
// fields count as zero. Balances may be negative; income and fixed items
// may not. CreatedAt is carried over from prev when there is one.
func Build(in Input, now time.Time, prev *model.Profile) (model.Profile, error) {
	var p model.Profile
	p.Name = strings.TrimSpace(in.Name)

	var err error
	if p.Balances.Checking, err = optionalAmount("checking", in.Checking); err != nil {
		return model.Profile{}, err
	}
	if p.Balances.Savings, err = optionalAmount("savings", in.Savings); err != nil {
		return model.Profile{}, err
	}
	if p.Balances.Cash, err = optionalAmount("cash", in.Cash); err != nil {
		return model.Profile{}, err
	}
	if p.Monthly.Income, err = optionalAmount("income", in.Income); err != nil {
		return model.Profile{}, err
	}
	if p.Monthly.Income.IsNegative() {
		return model.Profile{}, &ValidationError{Field: "income", Message: "income: can't be negative"}
	}

	items, err := FixedItems(in.Fixed)
	if err != nil {
		return model.Profile{}, err
	}
	p.Monthly.FixedItems = items
	p.Monthly.FixedExpenses = p.Monthly.FixedTotal()

	p.CreatedAt = now.UTC()
	if prev != nil && !prev.CreatedAt.IsZero() {
		p.CreatedAt = prev.CreatedAt
	}
	return p, nil
}

// FixedItems validates the fixed-expense rows. Rows with both fields blank
// are skipped; a row with only one of them filled in is rejected.
func FixedItems(rows []FixedRow) ([]model.FixedItem, error) {
	items := make([]model.FixedItem, 0, len(rows))
	for _, r := range rows {
		name := strings.TrimSpace(r.Name)
		raw := strings.TrimSpace(r.Amount)
		if name == "" && raw == "" {
			continue
		}
		if name == "" {
			return nil, &ValidationError{Field: "fixed", Message: fixedRowMessage}
		}
		amount, err := money.ParseNonNegative(raw)
		if err != nil {
			return nil, &ValidationError{Field: "fixed", Message: fixedRowMessage}
		}
		items = append(items, model.FixedItem{Name: name, Amount: amount})
	}
	return items, nil
}

// ParseFixedFlag parses a "name=amount" pair.
func ParseFixedFlag(s string) (FixedRow, error) {
	name, amount, ok := strings.Cut(s, "=")
	if !ok {
		return FixedRow{}, &ValidationError{Field: "fixed", Message: fmt.Sprintf("fixed expense %q: expected name=amount", s)}
	}
	return FixedRow{Name: name, Amount: amount}, nil
}

func optionalAmount(field, raw string) (decimal.Decimal, error) {
	if strings.TrimSpace(raw) == "" {
		return decimal.Zero, nil
	}
	d, err := money.ParseAmount(raw)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Message: fmt.Sprintf("%s: please enter a valid number", field)}
	}
	return d, nil
}

// Plan is the monthly budget derived from a profile.
type Plan struct {
	Income        decimal.Decimal
	FixedExpenses decimal.Decimal
	Surplus       decimal.Decimal
	SavingsRate   float64
}

// PlanFor derives the monthly plan. Surplus may be negative; the savings
// rate is clamped to [0, 1] and is zero without income.
func PlanFor(p *model.Profile) Plan {
	if p == nil {
		return Plan{}
	}
	income := p.Monthly.Income
	fixed := p.Monthly.FixedExpenses
	plan := Plan{
		Income:        income,
		FixedExpenses: fixed,
		Surplus:       money.RoundCents(income.Sub(fixed)),
	}
	if income.IsPositive() {
		rate := money.Float(plan.Surplus.Div(income))
		plan.SavingsRate = min(max(rate, 0), 1)
	}
	return plan
}

// Greeting returns the dashboard welcome line.
func Greeting(p *model.Profile) string {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return "Welcome to Atlas"
	}
	return "Welcome, " + strings.TrimSpace(p.Name)
}
