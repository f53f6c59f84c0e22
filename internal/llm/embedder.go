package llm

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_embedder.go -package=mocks hrpilot/internal/llm Embedder

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// Embedder converts text into a fixed-length vector.
type Embedder interface {
	// Embed returns the embedding vector for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)
	// Dimensions returns the vector size this embedder is configured for.
	Dimensions() int
}

// ChatClient sends a conversation to a chat completion model.
type ChatClient interface {
	// Complete runs one completion over the given messages.
	Complete(ctx context.Context, messages []Message, opts ChatOptions) (*Completion, error)
}

// normalizeText collapses newlines into spaces before embedding. Embedding
// models are sensitive to formatting noise, so the same normalization must be
// applied to document chunks and to queries.
func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// newHTTPClient returns an HTTP client with a bounded timeout for provider
// calls. Embedding and completion requests can be slow but must not hang a
// request handler forever.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: 120 * time.Second}
}
