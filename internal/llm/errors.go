package llm

import "errors"

var (
	// ErrEmbeddingProvider is returned when the embedding provider fails or
	// returns a malformed payload. Callers must not swallow it: persisting a
	// zero or truncated vector would corrupt similarity search for good.
	ErrEmbeddingProvider = errors.New("embedding provider error")

	// ErrChatProvider is returned when the chat completion provider fails.
	ErrChatProvider = errors.New("chat provider error")
)
