package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/vaultpass/passcheck-go/internal/model"
	"github.com/vaultpass/passcheck-go/internal/service"
	"github.com/vaultpass/passcheck-go/internal/strength"
)

// CheckHandler handles HTTP requests for password strength checks.
type CheckHandler struct {
	service *service.CheckService
}

// NewCheckHandler creates a new CheckHandler.
func NewCheckHandler(svc *service.CheckService) *CheckHandler {
	return &CheckHandler{service: svc}
}

// HandleCheck handles POST /api/v1/check requests.
func (h *CheckHandler) HandleCheck(w http.ResponseWriter, r *http.Request) {
	var req model.CheckRequest
	if !decodeJSON(w, r, &req, false) {
		return
	}

	resp, err := h.service.Check(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, strength.ErrEmptyInput), errors.Is(err, strength.ErrInvalidGuessRate):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			slog.Error("check failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
