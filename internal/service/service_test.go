package service

import (
	"context"
	"sync"

	"github.com/vaultpass/passcheck-go/internal/history"
	"github.com/vaultpass/passcheck-go/internal/model"
)

// fakeStore is an in-memory history.Store.
type fakeStore struct {
	mu        sync.Mutex
	entries   []model.HistoryEntry
	recordErr error
	exported  string
}

var _ history.Store = (*fakeStore)(nil)

func (f *fakeStore) Record(_ context.Context, e model.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.recordErr != nil {
		return f.recordErr
	}
	f.entries = append(f.entries, e)
	return nil
}

func (f *fakeStore) Recent(_ context.Context, limit int) ([]model.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if limit <= 0 || limit > len(f.entries) {
		limit = len(f.entries)
	}
	out := make([]model.HistoryEntry, limit)
	copy(out, f.entries[len(f.entries)-limit:])
	return out, nil
}

func (f *fakeStore) Export(_ context.Context, dst string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.entries) == 0 {
		return history.ErrNothingToExport
	}
	f.exported = dst
	return nil
}

func (f *fakeStore) recorded() []model.HistoryEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.HistoryEntry(nil), f.entries...)
}
