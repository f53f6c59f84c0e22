package llm

import "encoding/json"

// Message represents a single message in a chat conversation.
type Message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
	Name       string     `json:"name,omitempty"`
}

// ToolCall is a request by the model to execute a declared tool.
type ToolCall struct {
	ID        string
	Name      string
	Arguments json.RawMessage
}

// Tool declares a function the model may request during a completion.
type Tool struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ChatOptions holds parameters for chat completion requests.
type ChatOptions struct {
	// Tools the model may call. Empty means plain text completion.
	Tools []Tool
	// Temperature controls the randomness of the output. Zero means the
	// provider default.
	Temperature float32
	// JSONMode asks the provider to constrain the output to valid JSON.
	JSONMode bool
}

// Completion is the model's reply: either text or one or more tool calls.
type Completion struct {
	Content   string
	ToolCalls []ToolCall
}
