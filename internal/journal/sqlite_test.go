package journal

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func TestOpenSQLiteEmptyDSN(t *testing.T) {
	if _, err := OpenSQLite("  "); err == nil {
		t.Fatalf("expected error for empty DSN")
	}
}

func TestRecordAndQuery(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := OpenSQLite("sqlite://" + path)
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = s.Close() }()

	ctx := context.Background()
	entries := []Entry{
		{Action: "start", PID: 100, Outcome: "success"},
		{Action: "stop", PID: 100, Outcome: "success", Detail: "escalated to SIGKILL", OccurredAt: time.Now()},
	}
	for _, e := range entries {
		if err := s.Record(ctx, e); err != nil {
			t.Fatalf("Record(%s): %v", e.Action, err)
		}
	}

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM agent_history`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 2 {
		t.Fatalf("want 2 rows, got %d", n)
	}
	var outcome, detail string
	err = s.db.QueryRowContext(ctx,
		`SELECT outcome, COALESCE(detail, '') FROM agent_history WHERE action = 'stop'`).
		Scan(&outcome, &detail)
	if err != nil {
		t.Fatalf("select stop row: %v", err)
	}
	if outcome != "success" || detail != "escalated to SIGKILL" {
		t.Fatalf("got outcome=%q detail=%q", outcome, detail)
	}
}

func TestRecordInMemory(t *testing.T) {
	s, err := OpenSQLite(":memory:")
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer func() { _ = s.Close() }()
	if err := s.Record(context.Background(), Entry{Action: "monitor", PID: 1, Outcome: "not running"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
}
