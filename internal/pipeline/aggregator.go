// Package pipeline derives balances, monthly summaries, category breakdowns
// and insights from the ledger and the profile.
//
// Every function here is pure: results are recomputed from the inputs on
// each call and nothing is cached.
package pipeline

import (
	"sort"
	"time"

	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/money"

	"github.com/shopspring/decimal"
)

// DefaultTopCategories is the number of categories shown by default.
const DefaultTopCategories = 5

const yearMonthLayout = "2006-01"

// YearMonth returns the YYYY-MM prefix of a YYYY-MM-DD date.
func YearMonth(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// CurrentYearMonth returns the YYYY-MM bucket containing now.
func CurrentYearMonth(now time.Time) string {
	return now.Format(yearMonthLayout)
}

// FilterByMonth returns the transactions dated within ym, in store order.
func FilterByMonth(txs []model.Transaction, ym string) []model.Transaction {
	var result []model.Transaction
	for _, tx := range txs {
		if YearMonth(tx.Date) == ym {
			result = append(result, tx)
		}
	}
	return result
}

// SumByType sums the amounts of transactions of the given type, rounding
// once at the end.
func SumByType(txs []model.Transaction, typ model.TxType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type == typ {
			total = total.Add(tx.Amount)
		}
	}
	return money.RoundCents(total)
}

// NetBalance is income minus expense. Transfers are excluded.
func NetBalance(txs []model.Transaction) decimal.Decimal {
	return SumByType(txs, model.Income).Sub(SumByType(txs, model.Expense))
}

// MonthlySummary computes income, expense and net for a single month.
func MonthlySummary(txs []model.Transaction, ym string) model.MonthlySummary {
	inMonth := FilterByMonth(txs, ym)
	income := SumByType(inMonth, model.Income)
	expense := SumByType(inMonth, model.Expense)
	return model.MonthlySummary{
		YearMonth: ym,
		Income:    income,
		Expense:   expense,
		Net:       income.Sub(expense),
	}
}

// CategoryTotals sums expenses per category for the month. Entries are
// ordered by first occurrence.
func CategoryTotals(txs []model.Transaction, ym string) []model.CategoryTotal {
	index := make(map[string]int)
	var totals []model.CategoryTotal

	for _, tx := range txs {
		if tx.Type != model.Expense || YearMonth(tx.Date) != ym {
			continue
		}
		cat := tx.Category
		if cat == "" {
			cat = model.DefaultCategory
		}
		i, ok := index[cat]
		if !ok {
			i = len(totals)
			index[cat] = i
			totals = append(totals, model.CategoryTotal{Category: cat})
		}
		totals[i].Total = totals[i].Total.Add(tx.Amount)
	}

	for i := range totals {
		totals[i].Total = money.RoundCents(totals[i].Total)
	}
	return totals
}

// TopCategories returns the month's categories sorted by total descending.
// Ties keep first-occurrence order. A limit of zero or less keeps them all.
func TopCategories(txs []model.Transaction, ym string, limit int) []model.CategoryTotal {
	totals := CategoryTotals(txs, ym)
	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].Total.GreaterThan(totals[j].Total)
	})
	if limit > 0 && len(totals) > limit {
		totals = totals[:limit]
	}
	return totals
}

// AccountBalances replays every transaction, in store order, on top of the
// profile's starting balances. A nil profile starts every account at zero.
func AccountBalances(txs []model.Transaction, profile *model.Profile) model.Balances {
	var b model.Balances
	if profile != nil {
		b = profile.Balances
	}

	for _, tx := range txs {
		amt := tx.Amount
		if amt.IsZero() {
			continue
		}
		switch tx.Type {
		case model.Income:
			b = b.Add(model.NormalizeAccount(string(tx.Account)), amt)
		case model.Expense:
			b = b.Add(model.NormalizeAccount(string(tx.Account)), amt.Neg())
		case model.Transfer:
			from := model.NormalizeAccount(string(tx.FromAccount))
			to := model.NormalizeAccount(string(tx.ToAccount))
			if from == to {
				continue
			}
			b = b.Add(from, amt.Neg()).Add(to, amt)
		}
	}

	return model.Balances{
		Checking: money.RoundCents(b.Checking),
		Savings:  money.RoundCents(b.Savings),
		Cash:     money.RoundCents(b.Cash),
	}
}

// TotalFromAccounts sums the three account balances.
func TotalFromAccounts(b model.Balances) decimal.Decimal {
	return money.Sum(b.Checking, b.Savings, b.Cash)
}

// SortRecent returns a copy of txs ordered by date, newest first.
// Transactions on the same date keep their store order.
func SortRecent(txs []model.Transaction) []model.Transaction {
	sorted := make([]model.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date > sorted[j].Date
	})
	return sorted
}

// MonthlyTrend returns summaries for the n months ending at ym, oldest
// first. Months without activity are included with zero totals.
func MonthlyTrend(txs []model.Transaction, ym string, n int) []model.MonthlySummary {
	end, err := time.Parse(yearMonthLayout, ym)
	if err != nil || n <= 0 {
		return nil
	}

	result := make([]model.MonthlySummary, 0, n)
	for i := n - 1; i >= 0; i-- {
		m := end.AddDate(0, -i, 0).Format(yearMonthLayout)
		result = append(result, MonthlySummary(txs, m))
	}
	return result
}

// MonthsWithActivity lists the distinct months that have transactions,
// newest first.
func MonthsWithActivity(txs []model.Transaction) []string {
	seen := make(map[string]struct{})
	var months []string
	for _, tx := range txs {
		ym := YearMonth(tx.Date)
		if _, ok := seen[ym]; ok {
			continue
		}
		seen[ym] = struct{}{}
		months = append(months, ym)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months
}

// ShiftMonth moves ym by delta months. Invalid input is returned unchanged.
func ShiftMonth(ym string, delta int) string {
	t, err := time.Parse(yearMonthLayout, ym)
	if err != nil {
		return ym
	}
	return t.AddDate(0, delta, 0).Format(yearMonthLayout)
}
