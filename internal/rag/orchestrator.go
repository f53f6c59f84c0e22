// Package rag answers employee questions grounded in retrieved policy and
// document chunks, with optional tool calls for live data.
package rag

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"hrpilot/internal/contextutil"
	"hrpilot/internal/llm"
	"hrpilot/internal/storage"
	"hrpilot/internal/vectorstore"
)

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_engine.go -package=mocks hrpilot/internal/rag Engine

// chunkSeparator joins retrieved chunk texts inside the system prompt.
const chunkSeparator = "\n\n---\n\n"

// noContextMarker is injected instead of chunks when retrieval finds nothing,
// so the model acknowledges the gap instead of fabricating context.
const noContextMarker = "No relevant company context was found for this question."

// Tool names the model may request.
const (
	toolGetLeaveBalance = "get_leave_balance"
	toolReadPolicy      = "read_policy"
)

// phase tracks the tool-calling round trip. Each transition is a point where
// cancellation applies: the context is checked before every provider call.
type phase int

const (
	phaseAwaitingModel phase = iota
	phaseToolRequested
	phaseToolExecuted
	phaseAwaitingFinalModel
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseAwaitingModel:
		return "awaiting_model"
	case phaseToolRequested:
		return "tool_requested"
	case phaseToolExecuted:
		return "tool_executed"
	case phaseAwaitingFinalModel:
		return "awaiting_final_model"
	case phaseDone:
		return "done"
	}
	return "unknown"
}

// Engine answers a chat turn with retrieval-augmented generation.
type Engine interface {
	Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error)
}

type engine struct {
	embedder   llm.Embedder
	store      vectorstore.VectorStore
	chat       llm.ChatClient
	employees  storage.EmployeeStore
	collection string
	topK       int
}

// NewEngine creates a RAG engine over the given providers and stores.
func NewEngine(
	embedder llm.Embedder,
	store vectorstore.VectorStore,
	chat llm.ChatClient,
	employees storage.EmployeeStore,
	collection string,
	topK int,
) Engine {
	if topK <= 0 {
		topK = 3
	}
	return &engine{
		embedder:   embedder,
		store:      store,
		chat:       chat,
		employees:  employees,
		collection: collection,
		topK:       topK,
	}
}

func (e *engine) Answer(ctx context.Context, req AnswerRequest) (AnswerResponse, error) {
	logger := contextutil.LoggerFromContext(ctx)

	matches, err := e.retrieve(ctx, req.Message)
	if err != nil {
		return AnswerResponse{}, err
	}

	contextBlock := noContextMarker
	sources := make([]Source, 0, len(matches))
	if len(matches) > 0 {
		texts := make([]string, 0, len(matches))
		for _, m := range matches {
			texts = append(texts, m.Text)
			sources = append(sources, Source{
				DocumentID: metaString(m.Meta, "source"),
				Filename:   metaString(m.Meta, "filename"),
				Score:      m.Score,
			})
		}
		contextBlock = strings.Join(texts, chunkSeparator)
	}

	messages := []llm.Message{
		{Role: "system", Content: e.systemPrompt(req.Employee, contextBlock)},
		{Role: "user", Content: req.Message},
	}

	state := phaseAwaitingModel
	logger.DebugContext(ctx, "chat phase", "phase", state.String())
	completion, err := e.chat.Complete(ctx, messages, llm.ChatOptions{Tools: e.tools()})
	if err != nil {
		return AnswerResponse{}, fmt.Errorf("failed to generate answer: %w", err)
	}

	if len(completion.ToolCalls) > 0 {
		state = phaseToolRequested
		logger.InfoContext(ctx, "model requested tools", "phase", state.String(), "count", len(completion.ToolCalls))

		messages = append(messages, llm.Message{
			Role:      "assistant",
			Content:   completion.Content,
			ToolCalls: completion.ToolCalls,
		})
		for _, call := range completion.ToolCalls {
			if err := ctx.Err(); err != nil {
				return AnswerResponse{}, err
			}
			result := e.executeTool(ctx, call, req.Employee)
			messages = append(messages, llm.Message{
				Role:       "tool",
				ToolCallID: call.ID,
				Name:       call.Name,
				Content:    result,
			})
		}
		state = phaseToolExecuted
		logger.DebugContext(ctx, "chat phase", "phase", state.String())

		if err := ctx.Err(); err != nil {
			return AnswerResponse{}, err
		}
		state = phaseAwaitingFinalModel
		logger.DebugContext(ctx, "chat phase", "phase", state.String())
		completion, err = e.chat.Complete(ctx, messages, llm.ChatOptions{})
		if err != nil {
			return AnswerResponse{}, fmt.Errorf("failed to generate final answer: %w", err)
		}
	}
	state = phaseDone
	logger.DebugContext(ctx, "chat phase", "phase", state.String())

	return AnswerResponse{Text: completion.Content, Sources: sources}, nil
}

// retrieve embeds the question and fetches the top matching chunks. An empty
// index yields an empty slice, not an error.
func (e *engine) retrieve(ctx context.Context, question string) ([]vectorstore.Match, error) {
	vector, err := e.embedder.Embed(ctx, question)
	if err != nil {
		return nil, fmt.Errorf("failed to embed question: %w", err)
	}
	matches, err := e.store.Query(ctx, e.collection, vector, e.topK)
	if err != nil {
		return nil, fmt.Errorf("failed to search knowledge base: %w", err)
	}
	return matches, nil
}

func (e *engine) systemPrompt(emp EmployeeContext, contextBlock string) string {
	var sb strings.Builder
	sb.WriteString("You are a helpful HR assistant.\n\n")
	sb.WriteString("User Context:\n")
	fmt.Fprintf(&sb, "- Name: %s\n", emp.Name)
	fmt.Fprintf(&sb, "- Role: %s\n", emp.Role)
	fmt.Fprintf(&sb, "- Country: %s\n", emp.Country)
	fmt.Fprintf(&sb, "- Leave balance: %d days\n", emp.LeaveBalance)
	fmt.Fprintf(&sb, "- Email: %s\n\n", emp.Email)
	sb.WriteString("IMPORTANT: You already know who the user is. DO NOT ask for their name, employee ID, or email. ")
	sb.WriteString("If they ask about their own data, call the relevant tool without asking for identification.\n\n")
	sb.WriteString("Company context:\n")
	sb.WriteString(contextBlock)
	sb.WriteString("\n\nAnswer only from the company context and tool results above. ")
	sb.WriteString("If the context does not contain the answer, say you are not sure instead of guessing. ")
	sb.WriteString("Be friendly and professional.")
	return sb.String()
}

func (e *engine) tools() []llm.Tool {
	return []llm.Tool{
		{
			Name:        toolGetLeaveBalance,
			Description: "Get the leave balance (remaining leave days) for the current employee.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"employee_id": map[string]any{
						"type":        "string",
						"description": "Optional: ID or email is already known from context. Only provide if asking for SOMEONE ELSE.",
					},
				},
			},
		},
		{
			Name:        toolReadPolicy,
			Description: "Read company policies. Can search for specific policy content by keyword.",
			Parameters: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"query": map[string]any{
						"type":        "string",
						"description": "Optional: keyword to search for in policies (e.g., \"lunch\", \"leave\", \"remote\")",
					},
				},
			},
		},
	}
}

// executeTool runs one requested tool and returns its JSON-serialized result.
// Tool failures and unknown tool names become result payloads, never errors:
// the model should explain the problem to the user in its final answer.
func (e *engine) executeTool(ctx context.Context, call llm.ToolCall, emp EmployeeContext) string {
	logger := contextutil.LoggerFromContext(ctx)
	logger.InfoContext(ctx, "executing tool", "tool", call.Name)

	var result any
	switch call.Name {
	case toolGetLeaveBalance:
		var args struct {
			EmployeeID string `json:"employee_id"`
		}
		_ = json.Unmarshal(call.Arguments, &args)
		result = e.leaveBalance(ctx, args.EmployeeID, emp)
	case toolReadPolicy:
		var args struct {
			Query string `json:"query"`
		}
		_ = json.Unmarshal(call.Arguments, &args)
		result = e.readPolicy(ctx, args.Query)
	default:
		logger.WarnContext(ctx, "model requested unknown tool", "tool", call.Name)
		result = map[string]any{}
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return "{}"
	}
	return string(payload)
}

// leaveBalance resolves the employee the model asked about, falling back to
// the requester, and reports their remaining leave days.
func (e *engine) leaveBalance(ctx context.Context, identifier string, emp EmployeeContext) any {
	var (
		employee *storage.Employee
		err      error
	)
	switch {
	case identifier == "":
		employee, err = e.employees.GetByEmail(ctx, strings.ToLower(emp.Email))
	default:
		if id, convErr := strconv.Atoi(identifier); convErr == nil {
			employee, err = e.employees.GetByID(ctx, id)
		} else {
			employee, err = e.employees.GetByEmail(ctx, strings.ToLower(identifier))
		}
	}
	if err != nil {
		return map[string]any{"error": "Employee not found"}
	}
	return map[string]any{
		"employeeName": employee.Name,
		"leaveBalance": employee.LeaveBalance,
		"message":      fmt.Sprintf("%s has %d days of leave remaining.", employee.Name, employee.LeaveBalance),
	}
}

// readPolicy runs a second retrieval pass scoped to the model's own query.
func (e *engine) readPolicy(ctx context.Context, query string) any {
	if strings.TrimSpace(query) == "" {
		return map[string]any{"message": "Please specify what policy you are looking for."}
	}

	matches, err := e.retrieve(ctx, query)
	if err != nil {
		return map[string]any{"error": "Failed to retrieve policy information."}
	}
	if len(matches) == 0 {
		return map[string]any{"message": "No relevant policies found."}
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, fmt.Sprintf("[Relevance: %.0f%%] %s", m.Score*100, m.Text))
	}
	return map[string]any{
		"policiesFound": len(matches),
		"content":       strings.Join(parts, "\n\n"),
	}
}

func metaString(meta map[string]any, key string) string {
	if v, ok := meta[key].(string); ok {
		return v
	}
	return ""
}
