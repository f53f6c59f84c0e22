package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestOllamaEmbedder_Embed(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		size       int
		serverResp func(t *testing.T, w http.ResponseWriter, r *http.Request)
		wantErr    bool
	}{
		{
			name: "successful embedding",
			text: "Hello world",
			size: 768,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/embeddings" {
					t.Errorf("expected /api/embeddings, got %s", r.URL.Path)
				}
				var req ollamaEmbeddingsRequest
				if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
					t.Fatalf("failed to decode request: %v", err)
				}
				if req.Prompt != "Hello world" {
					t.Errorf("prompt = %q, want %q", req.Prompt, "Hello world")
				}
				_ = json.NewEncoder(w).Encode(ollamaEmbeddingsResponse{Embedding: make([]float64, 768)})
			},
		},
		{
			name: "newlines collapsed before embedding",
			text: "Hello\nworld\n\n  spaced",
			size: 768,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				var req ollamaEmbeddingsRequest
				_ = json.NewDecoder(r.Body).Decode(&req)
				if strings.ContainsAny(req.Prompt, "\n") {
					t.Errorf("prompt still contains newlines: %q", req.Prompt)
				}
				if req.Prompt != "Hello world spaced" {
					t.Errorf("prompt = %q, want %q", req.Prompt, "Hello world spaced")
				}
				_ = json.NewEncoder(w).Encode(ollamaEmbeddingsResponse{Embedding: make([]float64, 768)})
			},
		},
		{
			name: "wrong vector size",
			text: "Hello",
			size: 768,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(ollamaEmbeddingsResponse{Embedding: make([]float64, 512)})
			},
			wantErr: true,
		},
		{
			name: "server error",
			text: "Hello",
			size: 768,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: true,
		},
		{
			name: "empty embedding",
			text: "Hello",
			size: 768,
			serverResp: func(t *testing.T, w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(ollamaEmbeddingsResponse{})
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

			embedder := NewOllamaEmbedder(server.URL, "nomic-embed-text", tt.size)
			vec, err := embedder.Embed(context.Background(), tt.text)

			if tt.wantErr {
				if err == nil {
					t.Fatal("Embed() expected error, got nil")
				}
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

func TestOllamaEmbedder_Dimensions(t *testing.T) {
	embedder := NewOllamaEmbedder("http://localhost:11434", "nomic-embed-text", 768)
	if embedder.Dimensions() != 768 {
		t.Errorf("Dimensions() = %d, want 768", embedder.Dimensions())
	}
}

func TestOllamaChatClient_Complete(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("expected /api/chat, got %s", r.URL.Path)
		}
		var req ollamaChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if req.Stream {
			t.Error("stream should be false")
		}
		if len(req.Messages) != 2 {
			t.Errorf("got %d messages, want 2", len(req.Messages))
		}
		resp := ollamaChatResponse{}
		resp.Message.Role = "assistant"
		resp.Message.Content = "You have 12 days of leave."
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	client := NewOllamaChatClient(server.URL, "llama3.2")
	completion, err := client.Complete(context.Background(), []Message{
		{Role: "system", Content: "You are an HR assistant."},
		{Role: "user", Content: "How much leave do I have?"},
	}, ChatOptions{})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if completion.Content != "You have 12 days of leave." {
		t.Errorf("Complete() content = %q", completion.Content)
	}
	if len(completion.ToolCalls) != 0 {
		t.Errorf("expected no tool calls, got %d", len(completion.ToolCalls))
	}
}

func TestOllamaChatClient_ToolCalls(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if len(req.Tools) != 1 || req.Tools[0].Function.Name != "get_leave_balance" {
			t.Errorf("tools not forwarded: %+v", req.Tools)
		}
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"","tool_calls":[{"function":{"name":"get_leave_balance","arguments":{"employee_id":"7"}}}]}}`))
	}))
	defer server.Close()

	client := NewOllamaChatClient(server.URL, "llama3.2")
	completion, err := client.Complete(context.Background(), []Message{
		{Role: "user", Content: "leave?"},
	}, ChatOptions{Tools: []Tool{{Name: "get_leave_balance"}}})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if len(completion.ToolCalls) != 1 {
		t.Fatalf("got %d tool calls, want 1", len(completion.ToolCalls))
	}
	call := completion.ToolCalls[0]
	if call.Name != "get_leave_balance" {
		t.Errorf("tool name = %q", call.Name)
	}
	if call.ID == "" {
		t.Error("tool call id should be synthesized")
	}
	var args struct {
		EmployeeID string `json:"employee_id"`
	}
	if err := json.Unmarshal(call.Arguments, &args); err != nil {
		t.Fatalf("arguments are not valid JSON: %v", err)
	}
	if args.EmployeeID != "7" {
		t.Errorf("employee_id = %q, want 7", args.EmployeeID)
	}
}

func TestOllamaChatClient_JSONMode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req ollamaChatRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Format != "json" {
			t.Errorf("format = %q, want json", req.Format)
		}
		if req.Options["temperature"] == nil {
			t.Error("temperature option not set")
		}
		_, _ = w.Write([]byte(`{"message":{"role":"assistant","content":"{}"}}`))
	}))
	defer server.Close()

	client := NewOllamaChatClient(server.URL, "llama3.2")
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}},
		ChatOptions{JSONMode: true, Temperature: 0.1})
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
}

func TestOllamaChatClient_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewOllamaChatClient(server.URL, "llama3.2")
	_, err := client.Complete(context.Background(), []Message{{Role: "user", Content: "x"}}, ChatOptions{})
	if !errors.Is(err, ErrChatProvider) {
		t.Errorf("Complete() error = %v, want wrapped ErrChatProvider", err)
	}
}
