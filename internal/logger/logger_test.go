package logger

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want zerolog.Level
	}{
		{"debug", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"", zerolog.InfoLevel},
		{"loud", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewRespectsLevel(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(buf, "warn")

	log.Info().Msg("hidden")
	log.Warn().Msg("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %s", out)
	}
}

func TestComponentField(t *testing.T) {
	buf := &bytes.Buffer{}
	log := Component(New(buf, "debug"), "ledger")
	log.Debug().Msg("appended")

	if !strings.Contains(buf.String(), `"component":"ledger"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}

func TestFromContext(t *testing.T) {
	buf := &bytes.Buffer{}
	ctx := WithContext(context.Background(), New(buf, "info"))

	FromContext(ctx).Info().Msg("test")
	if buf.Len() == 0 {
		t.Error("expected log output from retrieved logger")
	}

	if FromContext(context.Background()).GetLevel() != zerolog.Disabled {
		t.Error("expected a disabled logger when none is in context")
	}
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "atlas.log")
	f, err := OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile: %v", err)
	}
	defer f.Close()

	New(f, "info").Info().Msg("written")
}
