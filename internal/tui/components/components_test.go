package components

import (
	"strings"
	"testing"

	"github.com/theirongolddev/atlas/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRow(t *testing.T) {
	tests := []struct {
		total, n int
		want     []int
	}{
		{10, 3, []int{4, 3, 3}},
		{9, 3, []int{3, 3, 3}},
		{5, 0, nil},
	}
	for _, tt := range tests {
		got := LayoutRow(tt.total, tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("LayoutRow(%d, %d) = %v, want %v", tt.total, tt.n, got, tt.want)
				break
			}
		}
	}
}

func TestCardRowPadsShortCards(t *testing.T) {
	theme.SetActive("flexoki-dark")

	short := ContentCard("Short", "Content", 22)
	tall := ContentCard("Tall", "1\n2\n3\n4\n5", 22)

	joined := CardRow([]string{tall, short})
	lines := strings.Split(joined, "\n")
	if len(lines) != lipgloss.Height(tall) {
		t.Fatalf("joined height = %d, want %d", len(lines), lipgloss.Height(tall))
	}

	width := lipgloss.Width(lines[0])
	for i, line := range lines {
		if lipgloss.Width(line) != width {
			t.Errorf("line %d width = %d, want %d", i, lipgloss.Width(line), width)
		}
		if i >= lipgloss.Height(short) && !strings.Contains(line, "\x1b[") {
			t.Errorf("padding line %d has no styling", i)
		}
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	row := MetricCardRow([]Metric{
		{Label: "Income", Value: "$1,000.00"},
		{Label: "Expenses", Value: "$200.00", Delta: "3 categories"},
		{Label: "Net", Value: "+$800.00", Color: theme.Active.Income},
	}, 90)
	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Errorf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	if got := TabIdxByKey('c'); got != 2 {
		t.Errorf("TabIdxByKey('c') = %d, want 2", got)
	}
	if got := TabIdxByKey('z'); got != -1 {
		t.Errorf("TabIdxByKey('z') = %d, want -1", got)
	}
	bar := RenderTabBar(0, 80)
	if lipgloss.Width(bar) != 80 {
		t.Errorf("tab bar width = %d, want 80", lipgloss.Width(bar))
	}
}

func TestGroupedBarChart(t *testing.T) {
	out := GroupedBarChart([]Series{
		{Name: "Income", Values: []float64{1000, 0, 500}, Color: theme.Active.Income},
		{Name: "Expenses", Values: []float64{200, 50, 800}, Color: theme.Active.Expense},
	}, []string{"Jan", "Feb", "Mar"}, 60, 6)

	lines := strings.Split(out, "\n")
	// bars + axis + labels + legend
	if len(lines) != 9 {
		t.Fatalf("lines = %d, want 9:\n%s", len(lines), out)
	}
	plain := stripANSI(out)
	for _, want := range []string{"Jan", "Mar", "Income", "Expenses", "$1k"} {
		if !strings.Contains(plain, want) {
			t.Errorf("chart missing %q:\n%s", want, plain)
		}
	}

	if GroupedBarChart(nil, nil, 60, 6) != "" {
		t.Error("empty chart should render nothing")
	}
}

func TestFormatMoneyTick(t *testing.T) {
	tests := map[float64]string{
		1000:    "$1k",
		2500:    "$2.5k",
		3000000: "$3M",
		40:      "$40",
		0.5:     "$0.50",
	}
	for in, want := range tests {
		if got := formatMoneyTick(in); got != want {
			t.Errorf("formatMoneyTick(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestRatioBarClamps(t *testing.T) {
	out := stripANSI(RatioBar("Savings", 1.7, "", 8, 10))
	if !strings.Contains(out, "100%") {
		t.Errorf("RatioBar = %q, want clamped to 100%%", out)
	}
	if ShareColor(0.95) != theme.Active.Expense || ShareColor(0.1) != theme.Active.Income {
		t.Error("ShareColor thresholds")
	}
}

func stripANSI(s string) string {
	var b strings.Builder
	inEsc := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEsc = true
		case inEsc && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			inEsc = false
		case !inEsc:
			b.WriteRune(r)
		}
	}
	return b.String()
}
