package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	for _, k := range []string{"ATLAS_DB_PATH", "ATLAS_LOG_LEVEL", "ATLAS_LOG_FILE", "ATLAS_THEME", "ATLAS_TOP_CATEGORIES"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.TopCategories != 5 || cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if want := filepath.Join(dir, "data", "atlas", "atlas.db"); cfg.DBPath() != want {
		t.Errorf("DBPath = %s, want %s", cfg.DBPath(), want)
	}
	if Exists() {
		t.Error("Exists reported a config that was never written")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	isolate(t)

	cfg := DefaultConfig()
	cfg.General.TopCategories = 3
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Categories.Expense = []string{"Rent", "Food"}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.TopCategories != 3 || got.Appearance.Theme != "tokyo-night" {
		t.Errorf("round trip = %+v", got)
	}
	if strings.Join(got.Categories.Suggestions("expense"), ",") != "Rent,Food" {
		t.Errorf("expense categories = %v", got.Categories.Expense)
	}
}

func TestEnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("ATLAS_DB_PATH", "/tmp/other.db")
	t.Setenv("ATLAS_THEME", "terminal")
	t.Setenv("ATLAS_TOP_CATEGORIES", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DBPath() != "/tmp/other.db" || cfg.Appearance.Theme != "terminal" || cfg.General.TopCategories != 8 {
		t.Errorf("env overrides not applied: %+v", cfg)
	}

	t.Setenv("ATLAS_TOP_CATEGORIES", "many")
	if _, err := Load(); err == nil {
		t.Error("expected error for non-numeric ATLAS_TOP_CATEGORIES")
	}
}

func TestLoadRejectsBadTOML(t *testing.T) {
	isolate(t)
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[general\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(); err == nil || !strings.Contains(err.Error(), "parsing config") {
		t.Fatalf("err = %v, want parsing error", err)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	cfg := DefaultConfig()
	cfg.General.TopCategories = -1
	cfg.General.TrendMonths = 0
	cfg.Log.Level = "loud"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"top_categories", "trend_months", "log level"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}
