package handlers

import (
	"errors"
	"net/http"

	"hrpilot/internal/contextutil"
	"hrpilot/internal/llm"
	"hrpilot/internal/resume"
)

// ResumeHandler handles resume parsing requests.
type ResumeHandler struct {
	extractor *resume.Extractor
}

// NewResumeHandler creates a new ResumeHandler.
func NewResumeHandler(extractor *resume.Extractor) *ResumeHandler {
	return &ResumeHandler{extractor: extractor}
}

// ResumeRequest represents the HTTP request payload for resume extraction.
type ResumeRequest struct {
	ResumeText string `json:"resumeText"`
}

// ServeHTTP extracts structured data from free-form resume text.
func (h *ResumeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ResumeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	data, err := h.extractor.Extract(ctx, req.ResumeText)
	if err != nil {
		if errors.Is(err, resume.ErrEmptyResume) {
			writeError(ctx, w, http.StatusBadRequest, "Resume text is required")
			return
		}
		logger.ErrorContext(ctx, "resume extraction failed", "error", err)
		if errors.Is(err, llm.ErrChatProvider) {
			writeError(ctx, w, http.StatusBadGateway, "Failed to extract resume data")
			return
		}
		writeError(ctx, w, http.StatusInternalServerError, "Failed to extract resume data")
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}
