package model

import "github.com/shopspring/decimal"

// MonthlySummary holds income, expense and net for one month.
// Transfers never contribute.
type MonthlySummary struct {
	YearMonth string
	Income    decimal.Decimal
	Expense   decimal.Decimal
	Net       decimal.Decimal
}

// CategoryTotal is the expense total for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// InsightKind identifies an insight rule.
type InsightKind string

const (
	InsightNoIncome    InsightKind = "no_income"
	InsightNetNegative InsightKind = "net_negative"
	InsightNetPositive InsightKind = "net_positive"
	InsightFixedShare  InsightKind = "fixed_share"
	InsightRunway      InsightKind = "runway"
)

// Insight is a derived status message. Value carries the number the
// insight is about (net, percent or months) so renderers can format it.
type Insight struct {
	Kind   InsightKind
	Title  string
	Detail string
	Value  decimal.Decimal
}

// Warning reports whether the insight flags a problem.
func (i Insight) Warning() bool {
	return i.Kind == InsightNoIncome || i.Kind == InsightNetNegative
}
