// Package model defines the ledger records and the aggregate values
// derived from them.
package model

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// TxType is the kind of a ledger event.
type TxType string

const (
	Income   TxType = "income"
	Expense  TxType = "expense"
	Transfer TxType = "transfer"
)

// Valid reports whether t is one of the three known types.
func (t TxType) Valid() bool {
	switch t {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// Account names one of the user's money holdings.
type Account string

const (
	Checking Account = "checking"
	Savings  Account = "savings"
	Cash     Account = "cash"
)

// Accounts lists the closed account set in display order.
var Accounts = []Account{Checking, Savings, Cash}

// DefaultCategory is assigned to income and expense records without one.
const DefaultCategory = "Other"

// NormalizeAccount maps raw input onto the closed account set.
// Matching is case-insensitive; anything unrecognized becomes Checking.
func NormalizeAccount(raw string) Account {
	switch a := Account(strings.ToLower(strings.TrimSpace(raw))); a {
	case Checking, Savings, Cash:
		return a
	}
	return Checking
}

// Transaction is a single ledger event.
type Transaction struct {
	ID          string          `json:"id"`
	Type        TxType          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        string          `json:"date"`
	Note        string          `json:"note,omitempty"`
	Category    string          `json:"category,omitempty"`
	Account     Account         `json:"account,omitempty"`
	FromAccount Account         `json:"fromAccount,omitempty"`
	ToAccount   Account         `json:"toAccount,omitempty"`
}

// Normalize applies the account and category defaults. Transfers carry
// endpoints only; income and expense carry a single account and a category.
func (t *Transaction) Normalize() {
	t.Note = strings.TrimSpace(t.Note)
	if t.Type == Transfer {
		t.FromAccount = NormalizeAccount(string(t.FromAccount))
		t.ToAccount = NormalizeAccount(string(t.ToAccount))
		t.Account = ""
		t.Category = ""
		return
	}
	t.Account = NormalizeAccount(string(t.Account))
	t.Category = strings.TrimSpace(t.Category)
	if t.Category == "" {
		t.Category = DefaultCategory
	}
	t.FromAccount = ""
	t.ToAccount = ""
}

// UnmarshalJSON decodes a stored record and normalizes it, so records
// written before account tagging existed read back as checking.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	type raw Transaction
	var r raw
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*t = Transaction(r)
	t.Normalize()
	return nil
}

// YearMonth returns the YYYY-MM bucket of the transaction date.
func (t Transaction) YearMonth() string {
	if len(t.Date) < 7 {
		return t.Date
	}
	return t.Date[:7]
}
