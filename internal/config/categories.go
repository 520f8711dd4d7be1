package config

import "strings"

// CategoryConfig lists the categories offered when recording transactions.
// Any other label is still accepted.
type CategoryConfig struct {
	Expense []string `toml:"expense"`
	Income  []string `toml:"income"`
}

// DefaultCategories returns the built-in suggestion lists.
func DefaultCategories() CategoryConfig {
	return CategoryConfig{
		Expense: []string{"Food", "Housing", "Transport", "Utilities", "Health", "Entertainment", "Shopping", "Other"},
		Income:  []string{"Salary", "Freelance", "Gifts", "Interest", "Other"},
	}
}

// Suggestions returns the list for a transaction type name, or nil.
func (c CategoryConfig) Suggestions(txType string) []string {
	switch strings.ToLower(txType) {
	case "expense":
		return c.Expense
	case "income":
		return c.Income
	}
	return nil
}
