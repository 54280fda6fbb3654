// Package history persists checked and generated passwords.
//
// The log is append-only and unbounded: entries are written oldest first and
// never rewritten. Each entry is one line in the canonical format
//
//	[2026-10-19T17:57:00+02:00] Generated: 'p4$$w0rd' (Strength: Strong)
//
// with an RFC 3339 timestamp. No other line format is read or written.
package history

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/vaultpass/passcheck-go/internal/model"
)

const (
	// DefaultExportName is the export file used when none is given.
	DefaultExportName = "exported_passwords.txt"

	// MaxLineBytes bounds one formatted history line. Longer lines are
	// refused on write and skipped on read.
	MaxLineBytes = 64 * 1024
)

var (
	ErrNothingToExport = errors.New("nothing to export")
	ErrUnrepresentable = errors.New("entry cannot be represented on a single history line")
	ErrMalformedEntry  = errors.New("malformed history line")
)

// Store records and reads history entries.
type Store interface {
	// Record appends e to the history.
	Record(ctx context.Context, e model.HistoryEntry) error
	// Recent returns the newest limit entries, most recent last. A limit of
	// zero or less returns every entry.
	Recent(ctx context.Context, limit int) ([]model.HistoryEntry, error)
	// Export writes the full history to dst. It returns ErrNothingToExport,
	// without creating dst, when the history is empty.
	Export(ctx context.Context, dst string) error
}

// PersistenceError reports a failed history read or write.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("history %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("history %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

var lineRe = regexp.MustCompile(`^\[([^\]]+)\] (Checked|Generated): '(.*)' \(Strength: ([^)]*)\)$`)

// FormatEntry renders e in the canonical line format, without a trailing newline.
func FormatEntry(e model.HistoryEntry) (string, error) {
	if !e.Action.Valid() {
		return "", fmt.Errorf("%w: unknown action %q", ErrUnrepresentable, e.Action)
	}
	if strings.ContainsAny(e.Password, "\r\n") {
		return "", fmt.Errorf("%w: password contains a line break", ErrUnrepresentable)
	}
	if strings.ContainsAny(e.Strength, "\r\n)") {
		return "", fmt.Errorf("%w: invalid strength label %q", ErrUnrepresentable, e.Strength)
	}
	line := fmt.Sprintf("[%s] %s: '%s' (Strength: %s)",
		e.Time.Format(time.RFC3339), e.Action, e.Password, e.Strength)
	if len(line) > MaxLineBytes {
		return "", fmt.Errorf("%w: line exceeds %d bytes", ErrUnrepresentable, MaxLineBytes)
	}
	return line, nil
}

// ParseEntry parses one canonical history line.
func ParseEntry(line string) (model.HistoryEntry, error) {
	m := lineRe.FindStringSubmatch(strings.TrimRight(line, "\r\n"))
	if m == nil {
		return model.HistoryEntry{}, ErrMalformedEntry
	}
	ts, err := time.Parse(time.RFC3339, m[1])
	if err != nil {
		return model.HistoryEntry{}, fmt.Errorf("%w: %v", ErrMalformedEntry, err)
	}
	return model.HistoryEntry{
		Time:     ts,
		Action:   model.Action(m[2]),
		Password: m[3],
		Strength: m[4],
	}, nil
}

// ExportName returns a timestamp-suffixed export file name.
func ExportName(now time.Time) string {
	return "password_history_" + now.Format("20060102-150405") + ".txt"
}

// Discard is a Store that keeps nothing.
type Discard struct{}

func (Discard) Record(context.Context, model.HistoryEntry) error { return nil }

func (Discard) Recent(context.Context, int) ([]model.HistoryEntry, error) {
	return []model.HistoryEntry{}, nil
}

func (Discard) Export(context.Context, string) error { return ErrNothingToExport }
