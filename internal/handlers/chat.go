package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"hrpilot/internal/contextutil"
	"hrpilot/internal/llm"
	"hrpilot/internal/rag"
	"hrpilot/internal/storage"
)

// chatFallbackMessage is returned to the user when the chat provider fails.
// The underlying error is logged, never exposed.
const chatFallbackMessage = "Sorry, I encountered an error while answering. Please try again."

// ChatHandler handles HTTP requests for the HR assistant chat.
type ChatHandler struct {
	engine    rag.Engine
	employees storage.EmployeeStore
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(engine rag.Engine, employees storage.EmployeeStore) *ChatHandler {
	return &ChatHandler{engine: engine, employees: employees}
}

// ChatRequest represents the HTTP request payload for chat.
type ChatRequest struct {
	Message string `json:"message"`
	Email   string `json:"email"`
}

// ChatResponse represents the HTTP response payload for chat.
type ChatResponse struct {
	Success   bool         `json:"success"`
	Response  string       `json:"response"`
	Sources   []rag.Source `json:"sources,omitempty"`
	Timestamp string       `json:"timestamp"`
}

// ServeHTTP answers one chat turn for an identified employee.
func (h *ChatHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeError(ctx, w, http.StatusBadRequest, "Message is required")
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		writeError(ctx, w, http.StatusBadRequest, "Email is required")
		return
	}

	employee, err := h.employees.GetByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Employee not found")
			return
		}
		logger.ErrorContext(ctx, "failed to load employee", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "Failed to process chat")
		return
	}

	answer, err := h.engine.Answer(ctx, rag.AnswerRequest{
		Message: req.Message,
		Employee: rag.EmployeeContext{
			ID:           employee.ID,
			Name:         employee.Name,
			Email:        employee.Email,
			Role:         employee.Role,
			Country:      employee.Country,
			LeaveBalance: employee.LeaveBalance,
		},
	})
	if err != nil {
		logger.ErrorContext(ctx, "chat failed", "error", err)
		if errors.Is(err, llm.ErrChatProvider) || errors.Is(err, llm.ErrEmbeddingProvider) {
			writeError(ctx, w, http.StatusBadGateway, chatFallbackMessage)
			return
		}
		writeError(ctx, w, statusForError(err), "Failed to process chat")
		return
	}

	writeJSON(ctx, w, http.StatusOK, ChatResponse{
		Success:   true,
		Response:  answer.Text,
		Sources:   answer.Sources,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
