package model

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/theirongolddev/atlas/internal/money"

	"github.com/shopspring/decimal"
)

// Balances holds one amount per account. Values may be negative (debt).
type Balances struct {
	Checking decimal.Decimal `json:"checking"`
	Savings  decimal.Decimal `json:"savings"`
	Cash     decimal.Decimal `json:"cash"`
}

// Get returns the balance of a single account.
func (b Balances) Get(a Account) decimal.Decimal {
	switch a {
	case Savings:
		return b.Savings
	case Cash:
		return b.Cash
	default:
		return b.Checking
	}
}

// Add returns b with delta applied to account a.
func (b Balances) Add(a Account, delta decimal.Decimal) Balances {
	switch a {
	case Savings:
		b.Savings = b.Savings.Add(delta)
	case Cash:
		b.Cash = b.Cash.Add(delta)
	default:
		b.Checking = b.Checking.Add(delta)
	}
	return b
}

// FixedItem is a named recurring monthly obligation.
type FixedItem struct {
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// Monthly is the recurring part of a profile.
type Monthly struct {
	Income        decimal.Decimal `json:"income"`
	FixedExpenses decimal.Decimal `json:"fixedExpenses"`
	FixedItems    []FixedItem     `json:"fixedItems"`
}

// Profile is the user's starting snapshot and monthly plan.
type Profile struct {
	Name      string    `json:"name"`
	Balances  Balances  `json:"balances"`
	Monthly   Monthly   `json:"monthly"`
	CreatedAt time.Time `json:"createdAt"`
}

// FixedTotal sums the fixed items, rounded to cents.
func (m Monthly) FixedTotal() decimal.Decimal {
	amounts := make([]decimal.Decimal, len(m.FixedItems))
	for i, it := range m.FixedItems {
		amounts[i] = it.Amount
	}
	return money.Sum(amounts...)
}

// UnmarshalJSON decodes a stored profile. When the record carries an
// itemized list the fixed total is taken from it; older records with a
// bare fixedExpenses value keep that value.
func (p *Profile) UnmarshalJSON(data []byte) error {
	type raw Profile
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*p = Profile(r)
	for _, d := range p.amounts() {
		if err := money.CheckRange(d); err != nil {
			return fmt.Errorf("profile: %w", err)
		}
	}
	if p.Monthly.FixedItems != nil {
		p.Monthly.FixedExpenses = p.Monthly.FixedTotal()
	}
	return nil
}

func (p Profile) amounts() []decimal.Decimal {
	out := []decimal.Decimal{
		p.Balances.Checking, p.Balances.Savings, p.Balances.Cash,
		p.Monthly.Income, p.Monthly.FixedExpenses,
	}
	for _, it := range p.Monthly.FixedItems {
		out = append(out, it.Amount)
	}
	return out
}
