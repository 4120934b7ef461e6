package journal

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	_ "modernc.org/sqlite"
)

// SQLite writes entries to a local SQLite database.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and if needed creates) the journal database.
// DSN format:
//   - "sqlite:///path/to/file.db"
//   - "/path/to/file.db" (without prefix)
//   - ":memory:" (in-memory database)
func OpenSQLite(dsn string) (*SQLite, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, errors.New("empty SQLite DSN")
	}
	if strings.HasPrefix(strings.ToLower(dsn), "sqlite://") {
		dsn = strings.TrimPrefix(dsn, "sqlite://")
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	s := &SQLite{db: db}
	if err := s.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLite) ensureSchema(ctx context.Context) error {
	// Append-only audit table; timestamp defaults to CURRENT_TIMESTAMP.
	stmt := `CREATE TABLE IF NOT EXISTS agent_history(
		timestamp TIMESTAMP NOT NULL DEFAULT (CURRENT_TIMESTAMP),
		action TEXT NOT NULL,
		pid INTEGER NOT NULL,
		outcome TEXT NOT NULL,
		detail TEXT
	);`
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

func (s *SQLite) Record(ctx context.Context, e Entry) error {
	occur := e.OccurredAt
	if occur.IsZero() {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO agent_history(action, pid, outcome, detail)
			VALUES(?, ?, ?, ?);`,
			e.Action, e.PID, e.Outcome, e.Detail)
		return err
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO agent_history(timestamp, action, pid, outcome, detail)
		VALUES(?, ?, ?, ?, ?);`,
		occur.UTC(), e.Action, e.PID, e.Outcome, e.Detail)
	return err
}

func (s *SQLite) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
