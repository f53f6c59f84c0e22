package handlers

import (
	"errors"
	"net/http"
	"strings"

	"hrpilot/internal/benchmark"
	"hrpilot/internal/contextutil"
	"hrpilot/internal/storage"
)

// BenchmarkHandler handles salary benchmark analysis requests.
type BenchmarkHandler struct {
	engine *benchmark.Engine
}

// NewBenchmarkHandler creates a new BenchmarkHandler.
func NewBenchmarkHandler(engine *benchmark.Engine) *BenchmarkHandler {
	return &BenchmarkHandler{engine: engine}
}

// BenchmarkRequest represents the HTTP request payload for a benchmark run.
type BenchmarkRequest struct {
	Email      string               `json:"email"`
	SalaryBand benchmark.SalaryBand `json:"salaryBand"`
}

// BenchmarkResponse wraps the analysis.
type BenchmarkResponse struct {
	Success        bool                     `json:"success"`
	Candidate      benchmark.Candidate      `json:"candidate"`
	Comparisons    benchmark.Comparisons    `json:"comparisons"`
	Recommendation benchmark.Recommendation `json:"recommendation"`
	Equity         benchmark.EquityReport   `json:"equity"`
}

// ServeHTTP benchmarks one employee's salary against internal peers.
func (h *BenchmarkHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req BenchmarkRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(ctx, w, http.StatusBadRequest, "Email is required")
		return
	}

	analysis, err := h.engine.Analyze(ctx, req.Email, req.SalaryBand)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Employee not found")
			return
		}
		logger.ErrorContext(ctx, "benchmark analysis failed", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to analyze salary benchmark")
		return
	}

	writeJSON(ctx, w, http.StatusOK, BenchmarkResponse{
		Success:        true,
		Candidate:      analysis.Candidate,
		Comparisons:    analysis.Comparisons,
		Recommendation: analysis.Recommendation,
		Equity:         analysis.Equity,
	})
}
