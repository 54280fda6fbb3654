package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/vaultpass/passcheck-go/internal/history"
	"github.com/vaultpass/passcheck-go/internal/model"
)

// MaxHistoryLimit caps how many entries one history request returns.
const MaxHistoryLimit = 1000

var ErrInvalidExportPath = errors.New("export file must be a plain file name")

// HistoryService reads and exports the password history.
type HistoryService struct {
	store     history.Store
	exportDir string
	now       func() time.Time
}

// NewHistoryService creates a new HistoryService. When exportDir is set,
// exports are confined to plain file names inside it; otherwise the requested
// path is used as given.
func NewHistoryService(store history.Store, exportDir string) *HistoryService {
	if store == nil {
		store = history.Discard{}
	}
	return &HistoryService{store: store, exportDir: exportDir, now: time.Now}
}

// Recent returns the newest limit entries, most recent last. Zero or less
// returns every entry; larger limits are clamped to MaxHistoryLimit.
func (s *HistoryService) Recent(ctx context.Context, limit int) (model.HistoryResponse, error) {
	if limit > MaxHistoryLimit {
		limit = MaxHistoryLimit
	}

	entries, err := s.store.Recent(ctx, limit)
	if err != nil {
		return model.HistoryResponse{}, err
	}

	resp := model.HistoryResponse{Entries: make([]model.HistoryEntryResponse, 0, len(entries))}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, model.HistoryEntryResponse{
			Time:     e.Time,
			Action:   e.Action,
			Password: e.Password,
			Strength: e.Strength,
		})
	}
	return resp, nil
}

// Export writes the whole history to the requested file inside the export
// directory and returns its path.
func (s *HistoryService) Export(ctx context.Context, req model.ExportRequest) (model.ExportResponse, error) {
	name, err := s.exportName(req)
	if err != nil {
		return model.ExportResponse{}, err
	}

	dst := name
	if s.exportDir != "" {
		dst = filepath.Join(s.exportDir, name)
	}
	if err := s.store.Export(ctx, dst); err != nil {
		return model.ExportResponse{}, err
	}
	return model.ExportResponse{File: dst}, nil
}

func (s *HistoryService) exportName(req model.ExportRequest) (string, error) {
	name := strings.TrimSpace(req.File)
	switch {
	case name == "" && req.Timestamp:
		return history.ExportName(s.now()), nil
	case name == "":
		return history.DefaultExportName, nil
	}
	if s.exportDir != "" && (name != filepath.Base(name) || name == "." || name == "..") {
		return "", fmt.Errorf("%w: %q", ErrInvalidExportPath, req.File)
	}
	return name, nil
}
