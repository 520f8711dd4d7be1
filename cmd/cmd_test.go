package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/theirongolddev/atlas/internal/model"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// resetFlags restores every flag to its default between runs, since the
// command tree and its flag variables are package globals.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

type harness struct {
	t  *testing.T
	db string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"ATLAS_DB_PATH", "ATLAS_LOG_LEVEL", "ATLAS_LOG_FILE", "ATLAS_THEME", "ATLAS_TOP_CATEGORIES"} {
		t.Setenv(k, "")
	}
	return &harness{t: t, db: filepath.Join(dir, "atlas.db")}
}

// run executes the CLI against the harness database and returns stdout.
func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--db", h.db}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func (h *harness) mustRun(args ...string) string {
	h.t.Helper()
	out, err := h.run(args...)
	if err != nil {
		h.t.Fatalf("atlas %s: %v", strings.Join(args, " "), err)
	}
	return out
}

var idPattern = regexp.MustCompile(`\(([0-9a-f-]{36})\)`)

func TestAddListAndSummary(t *testing.T) {
	h := newHarness(t)

	h.mustRun("add", "income", "2500", "--category", "Salary", "--date", "2024-03-01")
	h.mustRun("add", "expense", "12.50", "--category", "Food", "--account", "cash", "--date", "2024-03-02")
	h.mustRun("add", "transfer", "300", "--from", "checking", "--to", "savings", "--date", "2024-03-03")

	list := h.mustRun("list", "-m", "2024-03")
	for _, want := range []string{"Salary", "Food", "Transfer", "$2,500.00", "$12.50"} {
		if !strings.Contains(list, want) {
			t.Errorf("list output missing %q:\n%s", want, list)
		}
	}

	summary := h.mustRun("-m", "2024-03")
	for _, want := range []string{"March 2024", "This month", "+$2,487.50", "Top categories", "Food", h.db, "saved "} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}

	other := h.mustRun("list", "-m", "2024-04")
	if strings.Contains(other, "Salary") {
		t.Errorf("April list should not include March rows:\n%s", other)
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown type", []string{"add", "refund", "10"}},
		{"bad amount", []string{"add", "expense", "ten"}},
		{"transfer without to", []string{"add", "transfer", "10", "--from", "checking"}},
		{"unknown account", []string{"add", "expense", "10", "--account", "wallet"}},
		{"bad date", []string{"add", "expense", "10", "--date", "2024-3-1"}},
		{"zero amount", []string{"add", "expense", "0"}},
		{"infinite amount", []string{"add", "income", "1e400"}},
		{"huge exponent", []string{"add", "expense", "1e900000000"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := h.run(tt.args...); err == nil {
				t.Errorf("atlas %v: expected an error", tt.args)
			}
		})
	}

	out := h.mustRun("list", "--all-months")
	if strings.Contains(out, "$10.00") {
		t.Errorf("rejected transactions were stored:\n%s", out)
	}
}

func TestRemove(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("add", "expense", "42", "--category", "Books", "--date", "2024-03-05")
	m := idPattern.FindStringSubmatch(out)
	if m == nil {
		t.Fatalf("no id in add output: %q", out)
	}

	out = h.mustRun("rm", m[1])
	if !strings.Contains(out, "Removed Books $42.00") {
		t.Errorf("rm output = %q", out)
	}

	out = h.mustRun("rm", m[1])
	if !strings.Contains(out, "nothing removed") {
		t.Errorf("second rm output = %q", out)
	}
}

func TestProfileSetAndShow(t *testing.T) {
	h := newHarness(t)

	out := h.mustRun("profile")
	if !strings.Contains(out, "No profile yet") {
		t.Errorf("empty profile output = %q", out)
	}

	h.mustRun("profile", "set", "--name", "Ana", "--checking", "1000", "--income", "3000",
		"--fixed", "Rent=1200", "--fixed", "Gym=40")
	h.mustRun("profile", "set", "--savings", "500")

	out = h.mustRun("profile", "show", "-m", "2024-03")
	for _, want := range []string{"Welcome, Ana", "$1,000.00", "$500.00", "Rent", "$1,240.00"} {
		if !strings.Contains(out, want) {
			t.Errorf("profile show missing %q:\n%s", want, out)
		}
	}

	if _, err := h.run("profile", "set", "--income", "-5"); err == nil {
		t.Error("negative income should be rejected")
	}
	if _, err := h.run("profile", "set", "--fixed", "Rent", "--no-fixed"); err == nil {
		t.Error("--fixed with --no-fixed should be rejected")
	}

	h.mustRun("profile", "reset")
	out = h.mustRun("profile")
	if !strings.Contains(out, "No profile yet") {
		t.Errorf("profile after reset = %q", out)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	h := newHarness(t)
	h.mustRun("profile", "set", "--name", "Ana", "--checking", "100")
	h.mustRun("add", "expense", "9.99", "--category", "Food", "--date", "2024-03-02")
	h.mustRun("add", "income", "50", "--category", "Gifts", "--date", "2024-02-10")

	backup := filepath.Join(t.TempDir(), "backup.json")
	h.mustRun("export", "-o", backup)

	csvOut := h.mustRun("export", "--format", "csv", "-m", "2024-03")
	if !strings.Contains(csvOut, "Food") || strings.Contains(csvOut, "Gifts") {
		t.Errorf("csv export for March = %q", csvOut)
	}

	xlsx := filepath.Join(t.TempDir(), "ledger.xlsx")
	h.mustRun("export", "-o", xlsx)
	if info, err := os.Stat(xlsx); err != nil || info.Size() == 0 {
		t.Errorf("xlsx export not written: %v", err)
	}

	restored := &harness{t: t, db: filepath.Join(t.TempDir(), "restored.db")}
	out := restored.mustRun("import", backup)
	if !strings.Contains(out, "Imported 2 transactions") || !strings.Contains(out, "Profile replaced") {
		t.Errorf("import output = %q", out)
	}

	list := restored.mustRun("list", "--all-months")
	if !strings.Contains(list, "Food") || !strings.Contains(list, "Gifts") {
		t.Errorf("restored list = %q", list)
	}
}

func TestInvalidMonth(t *testing.T) {
	h := newHarness(t)
	for _, m := range []string{"2024-13", "March", "2024-3"} {
		if _, err := h.run("-m", m); err == nil {
			t.Errorf("--month %q: expected an error", m)
		}
	}
}

func TestNoPersistLeavesDatabaseUntouched(t *testing.T) {
	h := newHarness(t)
	h.mustRun("add", "expense", "5", "--no-persist", "--date", "2024-03-01")

	out := h.mustRun("list", "--all-months")
	if strings.Contains(out, "$5.00") {
		t.Errorf("--no-persist wrote to the database:\n%s", out)
	}
}

func TestExportFormat(t *testing.T) {
	tests := []struct {
		format, output, want string
		wantErr              bool
	}{
		{"", "", "json", false},
		{"", "out.CSV", "csv", false},
		{"", "out.xlsx", "xlsx", false},
		{"JSON", "out.csv", "json", false},
		{"", "backup", "json", false},
		{"pdf", "", "", true},
		{"", "out.txt", "", true},
	}
	for _, tt := range tests {
		got, err := exportFormat(tt.format, tt.output)
		if (err != nil) != tt.wantErr {
			t.Errorf("exportFormat(%q, %q) err = %v, wantErr %v", tt.format, tt.output, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("exportFormat(%q, %q) = %q, want %q", tt.format, tt.output, got, tt.want)
		}
	}
}

func TestBuildTransactionTransfer(t *testing.T) {
	resetFlags(rootCmd)
	t.Cleanup(func() { resetFlags(rootCmd) })
	flagAddFrom, flagAddTo = "Savings", "CASH"

	tx, err := buildTransaction("Transfer", "20", "2024-03-10")
	if err != nil {
		t.Fatal(err)
	}
	if tx.Type != model.Transfer || tx.FromAccount != model.Savings || tx.ToAccount != model.Cash {
		t.Errorf("transfer = %+v", tx)
	}
	if tx.Date != "2024-03-10" {
		t.Errorf("date = %q, want today", tx.Date)
	}
}
