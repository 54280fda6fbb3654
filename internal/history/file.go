package history

import (
	"bufio"
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vaultpass/passcheck-go/internal/model"
)

const filePerm = 0o600

// FileStore keeps the history in a text file, one entry per line.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore returns a store backed by the file at path. The file is
// created on the first Record.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the history file location.
func (s *FileStore) Path() string {
	return s.path
}

// Record appends e as one line.
func (s *FileStore) Record(ctx context.Context, e model.HistoryEntry) error {
	line, err := FormatEntry(e)
	if err != nil {
		return &PersistenceError{Op: "record", Path: s.path, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "record", Path: s.path, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return &PersistenceError{Op: "record", Path: s.path, Err: err}
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return &PersistenceError{Op: "record", Path: s.path, Err: err}
	}
	if _, err := f.WriteString(line + "\n"); err != nil {
		f.Close()
		return &PersistenceError{Op: "record", Path: s.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &PersistenceError{Op: "record", Path: s.path, Err: err}
	}
	return nil
}

// Recent returns the newest limit entries, most recent last. Lines that are
// not in the canonical format are skipped. A missing file is an empty history.
func (s *FileStore) Recent(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []model.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, &PersistenceError{Op: "read", Path: s.path, Err: err}
	}
	defer f.Close()

	entries := []model.HistoryEntry{}
	r := bufio.NewReader(f)
	for {
		if err := ctx.Err(); err != nil {
			return nil, &PersistenceError{Op: "read", Path: s.path, Err: err}
		}
		line, ok, err := readLine(r, MaxLineBytes)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &PersistenceError{Op: "read", Path: s.path, Err: err}
		}
		if !ok {
			continue
		}
		e, err := ParseEntry(string(line))
		if err != nil {
			continue
		}
		entries = append(entries, e)
		if limit > 0 && len(entries) > limit {
			entries = entries[1:]
		}
	}

	return entries, nil
}

// Export copies the history file verbatim to dst.
func (s *FileStore) Export(ctx context.Context, dst string) error {
	if err := ctx.Err(); err != nil {
		return &PersistenceError{Op: "export", Path: dst, Err: err}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	src, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return ErrNothingToExport
	}
	if err != nil {
		return &PersistenceError{Op: "export", Path: s.path, Err: err}
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return &PersistenceError{Op: "export", Path: s.path, Err: err}
	}
	if info.Size() == 0 {
		return ErrNothingToExport
	}

	if same, _ := sameFile(s.path, dst); same {
		return &PersistenceError{Op: "export", Path: dst, Err: errors.New("destination is the history file")}
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, filePerm)
	if err != nil {
		return &PersistenceError{Op: "export", Path: dst, Err: err}
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return &PersistenceError{Op: "export", Path: dst, Err: err}
	}
	if err := out.Close(); err != nil {
		return &PersistenceError{Op: "export", Path: dst, Err: err}
	}
	return nil
}

// readLine returns the next line without its terminator. A line longer than
// maxLen is consumed and reported with ok set to false.
func readLine(r *bufio.Reader, maxLen int) (line []byte, ok bool, err error) {
	ok = true
	for {
		frag, isPrefix, err := r.ReadLine()
		if err != nil {
			return nil, false, err
		}
		if ok && len(line)+len(frag) <= maxLen {
			line = append(line, frag...)
		} else {
			ok, line = false, nil
		}
		if !isPrefix {
			return line, ok, nil
		}
	}
}

func sameFile(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
