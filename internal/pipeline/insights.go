package pipeline

import (
	"fmt"

	"github.com/theirongolddev/atlas/internal/model"

	"github.com/shopspring/decimal"
)

// MaxInsights bounds the number of insights returned by DeriveInsights.
const MaxInsights = 4

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// roundHalfUp rounds d to places decimals, half-up.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

// DeriveInsights evaluates the insight rules in priority order.
// Total expenses are the month's logged expenses plus the fixed total.
// Details carry plain numbers; currency formatting is left to renderers.
func DeriveInsights(summary model.MonthlySummary, fixedTotal, totalBalance decimal.Decimal) []model.Insight {
	totalExpenses := summary.Expense.Add(fixedTotal)
	insights := make([]model.Insight, 0, MaxInsights)

	if summary.Income.IsZero() && totalExpenses.IsPositive() {
		insights = append(insights, model.Insight{
			Kind:   model.InsightNoIncome,
			Title:  "No income logged",
			Detail: "Expenses are recorded for this month but no income yet.",
		})
	} else {
		net := summary.Income.Sub(totalExpenses)
		if net.IsNegative() {
			insights = append(insights, model.Insight{
				Kind:   model.InsightNetNegative,
				Title:  "Spending exceeds income",
				Detail: fmt.Sprintf("Net this month is %s after fixed expenses.", net.StringFixed(2)),
				Value:  net,
			})
		} else {
			insights = append(insights, model.Insight{
				Kind:   model.InsightNetPositive,
				Title:  "Income covers spending",
				Detail: fmt.Sprintf("Net this month is %s after fixed expenses.", net.StringFixed(2)),
				Value:  net,
			})
		}
	}

	if !totalExpenses.IsPositive() {
		return insights
	}

	if fixedTotal.IsPositive() {
		share := roundHalfUp(fixedTotal.Div(totalExpenses).Mul(hundred), 0)
		insights = append(insights, model.Insight{
			Kind:   model.InsightFixedShare,
			Title:  "Fixed expense share",
			Detail: fmt.Sprintf("Fixed obligations are %s%% of this month's expenses.", share.String()),
			Value:  share,
		})
	}

	// Decimal division by a positive divisor is always finite, so the
	// runway is emitted whenever there are expenses to divide by.
	runway := roundHalfUp(totalBalance.Div(totalExpenses), 1)
	insights = append(insights, model.Insight{
		Kind:   model.InsightRunway,
		Title:  "Runway",
		Detail: fmt.Sprintf("Current balances cover %s months at this spending rate.", runway.StringFixed(1)),
		Value:  runway,
	})

	return insights
}
