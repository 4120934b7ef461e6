package logger

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
		"bogus": slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestColorTextHandlerColorsLevel(t *testing.T) {
	var buf bytes.Buffer
	h := NewColorTextHandler(&buf, nil)
	rec := slog.NewRecord(time.Now(), slog.LevelError, "daemon gone", 0)
	if err := h.Handle(context.Background(), rec); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "31m") {
		t.Fatalf("missing red escape in %q", out)
	}
	if !strings.Contains(out, "daemon gone") {
		t.Fatalf("message lost: %q", out)
	}
}

func TestNewWritesRotatingFile(t *testing.T) {
	dir := t.TempDir()
	lg := New(Config{Dir: dir}, "p_dhcp")
	lg.Info("started", "pid", 123)
	b, err := os.ReadFile(filepath.Join(dir, "p_dhcp.log"))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(b), "started") {
		t.Fatalf("log line missing: %q", string(b))
	}
}
