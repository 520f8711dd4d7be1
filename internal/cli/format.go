// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/atlas/internal/model"
	"github.com/theirongolddev/atlas/internal/money"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// FormatMoney formats a USD amount with thousands separators.
// e.g., 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatMoney(d decimal.Decimal) string {
	d = money.RoundCents(d)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}

	whole, frac, _ := strings.Cut(d.StringFixed(2), ".")
	n, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return sign + "$" + d.StringFixed(2)
	}
	return sign + "$" + humanize.Comma(n) + "." + frac
}

// FormatSignedMoney always shows a sign, for nets and deltas.
func FormatSignedMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return FormatMoney(d)
	}
	return "+" + FormatMoney(d)
}

// FormatPercent formats a 0-1 float as a whole percentage string.
func FormatPercent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// FormatMonth renders YYYY-MM as "January 2024". Invalid input is returned as is.
func FormatMonth(ym string) string {
	t, err := time.Parse("2006-01", ym)
	if err != nil {
		return ym
	}
	return t.Format("January 2006")
}

// ShortMonth renders YYYY-MM as "Jan" for chart axes.
func ShortMonth(ym string) string {
	t, err := time.Parse("2006-01", ym)
	if err != nil {
		return ym
	}
	return t.Format("Jan")
}

// AccountLabel returns the display name of an account.
func AccountLabel(a model.Account) string {
	return titleCaser.String(string(model.NormalizeAccount(string(a))))
}

// AccountCell describes where a transaction moved money.
// Transfers show "From → To".
func AccountCell(tx model.Transaction) string {
	if tx.Type == model.Transfer {
		return AccountLabel(tx.FromAccount) + " → " + AccountLabel(tx.ToAccount)
	}
	return AccountLabel(tx.Account)
}

// CategoryLabel returns the category shown for a transaction. Transfers
// have none of their own and show "Transfer".
func CategoryLabel(tx model.Transaction) string {
	if tx.Type == model.Transfer {
		return "Transfer"
	}
	if tx.Category == "" {
		return model.DefaultCategory
	}
	return tx.Category
}

// TypeLabel capitalizes a transaction type.
func TypeLabel(t model.TxType) string {
	return titleCaser.String(string(t))
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// Truncate shortens s to limit runes, marking the cut with an ellipsis.
func Truncate(s string, limit int) string {
	r := []rune(s)
	if limit <= 0 || len(r) <= limit {
		return s
	}
	if limit == 1 {
		return "…"
	}
	return string(r[:limit-1]) + "…"
}
