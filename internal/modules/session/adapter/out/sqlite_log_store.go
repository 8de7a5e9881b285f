package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"libtrack/internal/modules/session/domain"
	sessionout "libtrack/internal/modules/session/port/out"
	"libtrack/internal/platform/duration"

	_ "modernc.org/sqlite"
)

// timeLayout keeps sub-second precision and the original zone offset so
// rehydrated sessions compare equal to what was mirrored.
const timeLayout = time.RFC3339Nano

// SQLiteLogStore mirrors both session collections into a local database
// file. Rows carry a seq column because the collections are ordered and
// SQLite does not guarantee insertion order on read-back.
type SQLiteLogStore struct {
	db *sql.DB
}

func NewSQLiteLogStore(dbPath string) (sessionout.LogStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	store := &SQLiteLogStore{db: db}
	if err := store.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *SQLiteLogStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS active_sessions (
  seq INTEGER NOT NULL,
  id TEXT PRIMARY KEY,
  student_name TEXT NOT NULL,
  level INTEGER NOT NULL,
  time_in TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS completed_sessions (
  seq INTEGER NOT NULL,
  id TEXT PRIMARY KEY,
  student_name TEXT NOT NULL,
  level INTEGER NOT NULL,
  time_in TEXT NOT NULL,
  time_out TEXT NOT NULL,
  seconds INTEGER NOT NULL,
  notes TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create session tables: %w", err)
	}
	return nil
}

func (s *SQLiteLogStore) LoadActive(ctx context.Context) ([]domain.ActiveSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_name, level, time_in FROM active_sessions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load active sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.ActiveSession
	for rows.Next() {
		var session domain.ActiveSession
		var timeIn string
		if err := rows.Scan(&session.ID, &session.StudentName, &session.Level, &timeIn); err != nil {
			return nil, fmt.Errorf("scan active session: %w", err)
		}
		if session.TimeIn, err = time.Parse(timeLayout, timeIn); err != nil {
			return nil, fmt.Errorf("parse time in: %w", err)
		}
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *SQLiteLogStore) LoadCompleted(ctx context.Context) ([]domain.CompletedSession, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, student_name, level, time_in, time_out, seconds, notes FROM completed_sessions ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("load completed sessions: %w", err)
	}
	defer rows.Close()

	var sessions []domain.CompletedSession
	for rows.Next() {
		var session domain.CompletedSession
		var timeIn, timeOut string
		var seconds int
		if err := rows.Scan(&session.ID, &session.StudentName, &session.Level, &timeIn, &timeOut, &seconds, &session.Notes); err != nil {
			return nil, fmt.Errorf("scan completed session: %w", err)
		}
		if session.TimeIn, err = time.Parse(timeLayout, timeIn); err != nil {
			return nil, fmt.Errorf("parse time in: %w", err)
		}
		if session.TimeOut, err = time.Parse(timeLayout, timeOut); err != nil {
			return nil, fmt.Errorf("parse time out: %w", err)
		}
		session.Duration = duration.Decompose(seconds)
		sessions = append(sessions, session)
	}
	return sessions, rows.Err()
}

func (s *SQLiteLogStore) ReplaceActive(ctx context.Context, sessions []domain.ActiveSession) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace active: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM active_sessions`); err != nil {
		return fmt.Errorf("clear active sessions: %w", err)
	}
	for i, session := range sessions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO active_sessions (seq, id, student_name, level, time_in) VALUES (?, ?, ?, ?, ?)`,
			i, session.ID, session.StudentName, session.Level, session.TimeIn.Format(timeLayout),
		); err != nil {
			return fmt.Errorf("insert active session: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteLogStore) ReplaceCompleted(ctx context.Context, sessions []domain.CompletedSession) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin replace completed: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM completed_sessions`); err != nil {
		return fmt.Errorf("clear completed sessions: %w", err)
	}
	for i, session := range sessions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO completed_sessions (seq, id, student_name, level, time_in, time_out, seconds, notes) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			i, session.ID, session.StudentName, session.Level,
			session.TimeIn.Format(timeLayout), session.TimeOut.Format(timeLayout),
			session.Duration.TotalSeconds(), session.Notes,
		); err != nil {
			return fmt.Errorf("insert completed session: %w", err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteLogStore) Close() error {
	return s.db.Close()
}
