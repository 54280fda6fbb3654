package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/vaultpass/passcheck-go/internal/history"
	"github.com/vaultpass/passcheck-go/internal/middleware"
	"github.com/vaultpass/passcheck-go/internal/model"
	"github.com/vaultpass/passcheck-go/internal/service"
)

const defaultHistoryLimit = 50

// HistoryHandler handles HTTP requests for the password history.
type HistoryHandler struct {
	service *service.HistoryService
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(svc *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{service: svc}
}

// HandleRecent handles GET /api/v1/history requests. The optional limit
// query parameter defaults to 50.
func (h *HistoryHandler) HandleRecent(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 {
			writeJSON(w, http.StatusBadRequest, errorResponse("limit must be a positive integer"))
			return
		}
		limit = n
	}

	resp, err := h.service.Recent(r.Context(), limit)
	if err != nil {
		slog.Error("history read failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	logAccess(r, "history read", "entries", len(resp.Entries))
	writeJSON(w, http.StatusOK, resp)
}

// HandleExport handles POST /api/v1/history/export requests.
func (h *HistoryHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var req model.ExportRequest
	if !decodeJSON(w, r, &req, true) {
		return
	}

	resp, err := h.service.Export(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, history.ErrNothingToExport):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrInvalidExportPath):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			slog.Error("history export failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	logAccess(r, "history exported", "file", resp.File)
	writeJSON(w, http.StatusCreated, resp)
}

// logAccess records which token read the history. Passwords are never logged.
func logAccess(r *http.Request, msg string, args ...any) {
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		args = append(args, "subject", claims.Subject, "token_id", claims.ID)
	}
	slog.InfoContext(r.Context(), msg, args...)
}
