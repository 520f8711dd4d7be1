package cli

import (
	"strings"
	"testing"

	"github.com/theirongolddev/atlas/internal/model"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12.5", "$12.50"},
		{"1234.567", "$1,234.57"},
		{"1234567", "$1,234,567.00"},
		{"-20", "-$20.00"},
		{"-0.004", "$0.00"},
	}
	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedMoney(t *testing.T) {
	if got := FormatSignedMoney(decimal.NewFromInt(800)); got != "+$800.00" {
		t.Errorf("positive = %q", got)
	}
	if got := FormatSignedMoney(decimal.NewFromInt(-5)); got != "-$5.00" {
		t.Errorf("negative = %q", got)
	}
}

func TestLabels(t *testing.T) {
	transfer := model.Transaction{Type: model.Transfer, FromAccount: model.Checking, ToAccount: model.Savings}
	if got := AccountCell(transfer); got != "Checking → Savings" {
		t.Errorf("AccountCell(transfer) = %q", got)
	}
	if got := CategoryLabel(transfer); got != "Transfer" {
		t.Errorf("CategoryLabel(transfer) = %q", got)
	}

	legacy := model.Transaction{Type: model.Expense}
	if got := AccountCell(legacy); got != "Checking" {
		t.Errorf("AccountCell(legacy) = %q", got)
	}
	if got := CategoryLabel(legacy); got != "Other" {
		t.Errorf("CategoryLabel(legacy) = %q", got)
	}
	if got := TypeLabel(model.Income); got != "Income" {
		t.Errorf("TypeLabel = %q", got)
	}
}

func TestFormatMonth(t *testing.T) {
	if got := FormatMonth("2024-01"); got != "January 2024" {
		t.Errorf("FormatMonth = %q", got)
	}
	if got := ShortMonth("2024-11"); got != "Nov" {
		t.Errorf("ShortMonth = %q", got)
	}
	if got := FormatMonth("soon"); got != "soon" {
		t.Errorf("FormatMonth(invalid) = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("groceries", 5); got != "groc…" {
		t.Errorf("Truncate = %q", got)
	}
	if got := Truncate("ok", 5); got != "ok" {
		t.Errorf("Truncate short = %q", got)
	}
}

func TestRenderTableAlignsWideRunes(t *testing.T) {
	out := RenderTable(Table{
		Headers: []string{"Account", "Amount"},
		Rows: [][]string{
			{"Checking → Savings", "$300.00"},
			{"---"},
			{"Cash", "$5.00"},
		},
	})
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 7 {
		t.Fatalf("lines = %d, want 7:\n%s", len(lines), out)
	}
	w := lipgloss.Width(lines[0])
	for i, l := range lines {
		if lipgloss.Width(l) != w {
			t.Errorf("line %d width %d, want %d", i, lipgloss.Width(l), w)
		}
	}
}

func TestRenderSparkline(t *testing.T) {
	if got := RenderSparkline([]float64{0, 5, 10}); got != "▁▄█" {
		t.Errorf("RenderSparkline = %q", got)
	}
	if RenderSparkline(nil) != "" {
		t.Error("empty sparkline should be empty")
	}
}
