package repository

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"slices"

	"github.com/vaultpass/passcheck-go/internal/history"
	"github.com/vaultpass/passcheck-go/internal/model"
)

const schemaQuery = `
	CREATE TABLE IF NOT EXISTS password_history (
		id          BIGINT AUTO_INCREMENT PRIMARY KEY,
		recorded_at DATETIME(6) NOT NULL,
		action      VARCHAR(16) NOT NULL,
		password    TEXT NOT NULL,
		strength    VARCHAR(32) NOT NULL
	)`

// HistoryRepository stores the password history in MySQL. Rows are only ever
// inserted, and the auto-increment id gives the recording order.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

var _ history.Store = (*HistoryRepository)(nil)

// EnsureSchema creates the history table if it does not exist.
func (r *HistoryRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schemaQuery); err != nil {
		return fmt.Errorf("db error: create password_history: %w", err)
	}
	return nil
}

// Record inserts e. Entries that cannot be written as a canonical history
// line are rejected so that Export always succeeds.
func (r *HistoryRepository) Record(ctx context.Context, e model.HistoryEntry) error {
	if _, err := history.FormatEntry(e); err != nil {
		return &history.PersistenceError{Op: "record", Err: err}
	}

	query := `INSERT INTO password_history (recorded_at, action, password, strength) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, e.Time.UTC(), string(e.Action), e.Password, e.Strength); err != nil {
		return &history.PersistenceError{Op: "record", Err: fmt.Errorf("db error: %w", err)}
	}
	return nil
}

// Recent returns the newest limit entries, most recent last.
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if limit > 0 {
		rows, err = r.db.QueryContext(ctx,
			`SELECT recorded_at, action, password, strength FROM password_history ORDER BY id DESC LIMIT ?`, limit)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT recorded_at, action, password, strength FROM password_history ORDER BY id ASC`)
	}
	if err != nil {
		return nil, &history.PersistenceError{Op: "read", Err: fmt.Errorf("db error: %w", err)}
	}

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, &history.PersistenceError{Op: "read", Err: fmt.Errorf("db error: %w", err)}
	}
	if limit > 0 {
		slices.Reverse(entries)
	}
	return entries, nil
}

// Export writes every entry to dst in the canonical line format, oldest first.
func (r *HistoryRepository) Export(ctx context.Context, dst string) error {
	entries, err := r.Recent(ctx, 0)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		return history.ErrNothingToExport
	}

	f, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o600)
	if err != nil {
		return &history.PersistenceError{Op: "export", Path: dst, Err: err}
	}
	for _, e := range entries {
		line, err := history.FormatEntry(e)
		if err != nil {
			f.Close()
			return &history.PersistenceError{Op: "export", Path: dst, Err: err}
		}
		if _, err := f.WriteString(line + "\n"); err != nil {
			f.Close()
			return &history.PersistenceError{Op: "export", Path: dst, Err: err}
		}
	}
	if err := f.Close(); err != nil {
		return &history.PersistenceError{Op: "export", Path: dst, Err: err}
	}
	return nil
}

func scanEntries(rows *sql.Rows) ([]model.HistoryEntry, error) {
	defer rows.Close()

	entries := []model.HistoryEntry{}
	for rows.Next() {
		var (
			e      model.HistoryEntry
			action string
		)
		if err := rows.Scan(&e.Time, &action, &e.Password, &e.Strength); err != nil {
			return nil, err
		}
		e.Action = model.Action(action)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
