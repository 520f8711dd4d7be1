package pipeline

import (
	"testing"

	"github.com/theirongolddev/atlas/internal/model"
)

func kinds(insights []model.Insight) []model.InsightKind {
	out := make([]model.InsightKind, len(insights))
	for i, in := range insights {
		out[i] = in.Kind
	}
	return out
}

func TestDeriveInsights(t *testing.T) {
	tests := []struct {
		name       string
		income     string
		expense    string
		fixed      string
		balance    string
		wantKinds  []model.InsightKind
		wantValues []string
	}{
		{
			name: "no income", income: "0", expense: "100", fixed: "0", balance: "450",
			wantKinds:  []model.InsightKind{model.InsightNoIncome, model.InsightRunway},
			wantValues: []string{"0", "4.5"},
		},
		{
			name: "net negative with fixed", income: "1000", expense: "400", fixed: "800", balance: "1800",
			wantKinds:  []model.InsightKind{model.InsightNetNegative, model.InsightFixedShare, model.InsightRunway},
			wantValues: []string{"-200", "67", "1.5"},
		},
		{
			name: "net positive", income: "3000", expense: "1000", fixed: "0", balance: "1000",
			wantKinds:  []model.InsightKind{model.InsightNetPositive, model.InsightRunway},
			wantValues: []string{"2000", "1"},
		},
		{
			name: "nothing spent", income: "0", expense: "0", fixed: "0", balance: "100",
			wantKinds:  []model.InsightKind{model.InsightNetPositive},
			wantValues: []string{"0"},
		},
		{
			name: "share rounds half up", income: "10", expense: "1", fixed: "1", balance: "-3",
			wantKinds:  []model.InsightKind{model.InsightNetPositive, model.InsightFixedShare, model.InsightRunway},
			wantValues: []string{"8", "50", "-1.5"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			summary := model.MonthlySummary{Income: d(tt.income), Expense: d(tt.expense)}
			got := DeriveInsights(summary, d(tt.fixed), d(tt.balance))
			if len(got) > MaxInsights {
				t.Fatalf("got %d insights, max %d", len(got), MaxInsights)
			}
			gk := kinds(got)
			if len(gk) != len(tt.wantKinds) {
				t.Fatalf("kinds = %v, want %v", gk, tt.wantKinds)
			}
			for i := range gk {
				if gk[i] != tt.wantKinds[i] {
					t.Fatalf("kinds = %v, want %v", gk, tt.wantKinds)
				}
				assertDec(t, string(gk[i]), got[i].Value, tt.wantValues[i])
			}
		})
	}
}

func TestDeriveInsightsFixedOnly(t *testing.T) {
	// Fixed obligations alone count as expenses.
	got := DeriveInsights(model.MonthlySummary{}, d("300"), d("900"))
	want := []model.InsightKind{model.InsightNoIncome, model.InsightFixedShare, model.InsightRunway}
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("kinds = %v, want %v", gk, want)
	}
	assertDec(t, "share", got[1].Value, "100")
	assertDec(t, "runway", got[2].Value, "3")
}
