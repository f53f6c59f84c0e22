package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"hrpilot/internal/compliance"
	"hrpilot/internal/contextutil"
	"hrpilot/internal/storage"
)

// ComplianceHandler handles visa compliance scans.
type ComplianceHandler struct {
	checker *compliance.Checker
}

// NewComplianceHandler creates a new ComplianceHandler.
func NewComplianceHandler(checker *compliance.Checker) *ComplianceHandler {
	return &ComplianceHandler{checker: checker}
}

// Check runs the 90-day visa expiry scan.
func (h *ComplianceHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	report, err := h.checker.Check(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "compliance check failed", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to check expirations")
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success":   true,
		"summary":   report.Summary,
		"alerts":    report.Alerts,
		"checkedAt": report.CheckedAt,
	})
}

// Employee reports compliance status for a single employee.
func (h *ComplianceHandler) Employee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid employee id")
		return
	}

	status, err := h.checker.EmployeeStatus(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Employee not found")
			return
		}
		writeError(ctx, w, http.StatusInternalServerError, "Failed to get employee compliance")
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success":    true,
		"compliance": status,
	})
}
