package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	domainerrors "github.com/casefusion/casefusion-backend/internal/domain/errors"
	"github.com/casefusion/casefusion-backend/internal/infrastructure/repository"
	"github.com/casefusion/casefusion-backend/internal/service/intel"
)

// AnalysisService is the service surface the handlers call.
type AnalysisService interface {
	Analyze(ctx context.Context, caseID, language string, refresh bool) (*intel.AnalysisRun, error)
}

// Handler holds the wired dependencies for all HTTP endpoints.
type Handler struct {
	service AnalysisService
	cases   repository.CaseRepository
	ready   func() bool
	logger  *slog.Logger
}

// NewHandler creates the endpoint handler. cases may be nil to skip
// existence checks (tests); ready may be nil, meaning always ready.
func NewHandler(service AnalysisService, cases repository.CaseRepository, ready func() bool, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{service: service, cases: cases, ready: ready, logger: logger}
}

// handleGetIntelligence serves the fused analysis for a case, from cache
// when a fresh run exists. ?lang=th selects the Thai narrative.
func (h *Handler) handleGetIntelligence(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("caseID")
	if !h.caseExists(w, r, caseID) {
		return
	}

	run, err := h.service.Analyze(r.Context(), caseID, r.URL.Query().Get("lang"), false)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, run)
}

// handleRefreshIntelligence discards any cached runs for the case and
// rebuilds the analysis from a fresh snapshot.
func (h *Handler) handleRefreshIntelligence(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("caseID")
	if !h.caseExists(w, r, caseID) {
		return
	}

	run, err := h.service.Analyze(r.Context(), caseID, r.URL.Query().Get("lang"), true)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, run)
}

// handleGetStats serves only the headline graph statistics for a case.
func (h *Handler) handleGetStats(w http.ResponseWriter, r *http.Request) {
	caseID := r.PathValue("caseID")
	if !h.caseExists(w, r, caseID) {
		return
	}

	run, err := h.service.Analyze(r.Context(), caseID, r.URL.Query().Get("lang"), false)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, run.Stats)
}

func (h *Handler) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if h.ready != nil && !h.ready() {
		h.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// caseExists answers false and writes the error response when the case is
// unknown or the lookup failed.
func (h *Handler) caseExists(w http.ResponseWriter, r *http.Request, caseID string) bool {
	if caseID == "" {
		h.writeError(w, r, domainerrors.NewValidationError("MISSING_CASE_ID", "case id is required"))
		return false
	}
	if h.cases == nil {
		return true
	}
	exists, err := h.cases.CaseExists(r.Context(), caseID)
	if err != nil {
		h.writeError(w, r, domainerrors.NewInternalError("case lookup failed").WithCause(err))
		return false
	}
	if !exists {
		h.writeError(w, r, domainerrors.ErrCaseNotFound)
		return false
	}
	return true
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := domainerrors.GetStatusCode(err)
	body := errorResponse{Error: errorBody{Code: "INTERNAL_ERROR", Message: "internal error"}}

	var appErr *domainerrors.AppError
	if errors.As(err, &appErr) {
		body.Error.Code = appErr.Code
		body.Error.Message = appErr.Message
	}
	if status >= 500 {
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
	}
	h.writeJSON(w, status, body)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
