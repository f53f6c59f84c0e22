package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOpenAIEmbedder_Embed(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		serverResp func(t *testing.T, w http.ResponseWriter, r *http.Request)
		wantErr    bool
	}{
		{
			name: "successful embedding",
			size: 1536,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/v1/embeddings" {
					t.Errorf("expected /v1/embeddings, got %s", r.URL.Path)
				}
				if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
					t.Errorf("Authorization = %q", auth)
				}
				var req openAIEmbeddingsRequest
				_ = json.NewDecoder(r.Body).Decode(&req)
				if len(req.Input) != 1 {
					t.Errorf("input count = %d, want 1", len(req.Input))
				}
				resp := openAIEmbeddingsResponse{}
				resp.Data = append(resp.Data, struct {
					Embedding []float64 `json:"embedding"`
				}{Embedding: make([]float64, 1536)})
				_ = json.NewEncoder(w).Encode(resp)
			},
		},
		{
			name: "wrong vector size",
			size: 1536,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				resp := openAIEmbeddingsResponse{}
				resp.Data = append(resp.Data, struct {
					Embedding []float64 `json:"embedding"`
				}{Embedding: make([]float64, 768)})
				_ = json.NewEncoder(w).Encode(resp)
			},
			wantErr: true,
		},
		{
			name: "no data",
			size: 1536,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(openAIEmbeddingsResponse{})
			},
			wantErr: true,
		},
		{
			name: "rate limited",
			size: 1536,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusTooManyRequests)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.serverResp(t, w, r)
			}))
			defer server.Close()

			embedder := NewOpenAIEmbedder(server.URL, "test-key", "text-embedding-3-small", tt.size)
			vec, err := embedder.Embed(context.Background(), "Hello")

			if tt.wantErr {
				if !errors.Is(err, ErrEmbeddingProvider) {
					t.Errorf("Embed() error = %v, want wrapped ErrEmbeddingProvider", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Embed() error = %v", err)
			}
			if len(vec) != tt.size {
				t.Errorf("Embed() returned %d dims, want %d", len(vec), tt.size)
			}
		})
	}
}

func TestOpenAIChatClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("expected /v1/chat/completions, got %s", r.URL.Path)
		}
		var req openAIChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Tools) != 2 {
			t.Errorf("got %d tools, want 2", len(req.Tools))
		}
		if req.ToolChoice != "auto" {
			t.Errorf("tool_choice = %q, want auto", req.ToolChoice)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"Lunch allowance is RM20 per day."},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := NewOpenAIChatClient(server.URL, "test-key", "gpt-4o")
	completion, err := client.Complete(context.Background(), []Message{
		{Role: "system", Content: "You are an HR assistant."},
		{Role: "user", Content: "What is the lunch allowance?"},
	}, ChatOptions{Tools: []Tool{{Name: "get_leave_balance"}, {Name: "read_policy"}}})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if completion.Content != "Lunch allowance is RM20 per day." {
		t.Errorf("Complete() content = %q", completion.Content)
	}
}

func TestOpenAIChatClient_ToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"","tool_calls":[{"id":"call_abc","type":"function","function":{"name":"read_policy","arguments":"{\"query\":\"lunch\"}"}}]},"finish_reason":"tool_calls"}]}`))
	}))
	defer server.Close()

	client := NewOpenAIChatClient(server.URL, "test-key", "gpt-4o")
	completion, err := client.Complete(context.Background(), []Message{
		{Role: "user", Content: "lunch?"},
	}, ChatOptions{Tools: []Tool{{Name: "read_policy"}}})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(completion.ToolCalls) != 1 {
		t.Fatalf("got %d tool calls, want 1", len(completion.ToolCalls))
	}
	call := completion.ToolCalls[0]
	if call.ID != "call_abc" || call.Name != "read_policy" {
		t.Errorf("tool call = %+v", call)
	}
	var args struct {
		Query string `json:"query"`
	}
	if err := json.Unmarshal(call.Arguments, &args); err != nil {
		t.Fatalf("arguments are not valid JSON: %v", err)
	}
	if args.Query != "lunch" {
		t.Errorf("query = %q, want lunch", args.Query)
	}
}

func TestOpenAIChatClient_ToolResultRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req openAIChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		// Second-phase payload: assistant tool_calls message then tool result.
		if len(req.Messages) != 4 {
			t.Fatalf("got %d messages, want 4", len(req.Messages))
		}
		if len(req.Messages[2].ToolCalls) != 1 {
			t.Errorf("assistant message lost its tool calls")
		}
		toolMsg := req.Messages[3]
		if toolMsg.Role != "tool" || toolMsg.ToolCallID != "call_abc" || toolMsg.Name != "get_leave_balance" {
			t.Errorf("tool message = %+v", toolMsg)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"You have 12 days left."},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := NewOpenAIChatClient(server.URL, "test-key", "gpt-4o")
	completion, err := client.Complete(context.Background(), []Message{
		{Role: "system", Content: "system"},
		{Role: "user", Content: "leave?"},
		{Role: "assistant", ToolCalls: []ToolCall{{ID: "call_abc", Name: "get_leave_balance", Arguments: json.RawMessage(`{}`)}}},
		{Role: "tool", ToolCallID: "call_abc", Name: "get_leave_balance", Content: `{"leaveBalance":12}`},
	}, ChatOptions{})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if completion.Content != "You have 12 days left." {
		t.Errorf("Complete() content = %q", completion.Content)
	}
}

func TestOpenAIChatClient_JSONMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		_ = json.NewDecoder(r.Body).Decode(&raw)
		format, ok := raw["response_format"].(map[string]any)
		if !ok || format["type"] != "json_object" {
			t.Errorf("response_format = %v, want json_object", raw["response_format"])
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{}"},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	client := NewOpenAIChatClient(server.URL, "test-key", "gpt-4o")
	if _, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, ChatOptions{JSONMode: true}); err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
}

func TestOpenAIChatClient_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	client := NewOpenAIChatClient(server.URL, "test-key", "gpt-4o")
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, ChatOptions{})
	if !errors.Is(err, ErrChatProvider) {
		t.Errorf("Complete() error = %v, want wrapped ErrChatProvider", err)
	}
}
