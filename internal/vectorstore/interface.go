package vectorstore

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_vector_store.go -package=mocks hrpilot/internal/vectorstore VectorStore

import (
	"context"
	"errors"
)

// ErrUnavailable is returned when the vector store backend cannot be reached
// or rejects a request. Query failures must surface as this error rather than
// an empty result: an empty slice means "no matches", not "store is down".
var ErrUnavailable = errors.New("vector store unavailable")

// Record is a vector with its source text and metadata, stored in the index.
type Record struct {
	ID     string
	Vector []float32
	// Text is the chunk text the vector was computed from. Stored alongside
	// the vector so retrieval does not need a second lookup.
	Text string
	// Meta carries at least "source" (the owning document id) so that all of
	// a document's records can be purged without knowing individual ids.
	Meta map[string]any
}

// Match is a query result, ranked by descending similarity.
type Match struct {
	ID    string
	Score float32
	Text  string
	Meta  map[string]any
}

// VectorStore is the uniform interface over the supported vector backends.
type VectorStore interface {
	// EnsureCollection creates the collection if missing and validates that
	// an existing one has the expected vector size.
	EnsureCollection(ctx context.Context, collection string, vectorSize int) error

	// CollectionExists reports whether the collection is present and reachable.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// Upsert inserts or replaces records by id.
	Upsert(ctx context.Context, collection string, records []Record) error

	// Query returns up to topK records ranked by descending similarity to the
	// query vector. An empty index yields an empty slice, not an error.
	Query(ctx context.Context, collection string, vector []float32, topK int) ([]Match, error)

	// DeleteBySource removes every record whose "source" metadata equals the
	// given value and returns how many were removed. Backends that cannot
	// report a count return 0.
	DeleteBySource(ctx context.Context, collection string, source string) (int, error)
}
