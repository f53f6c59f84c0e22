package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"hrpilot/internal/contextutil"
)

// PineconeStore implements VectorStore against a managed Pinecone index over
// its REST data-plane API. The collection name maps to a Pinecone namespace;
// the index itself is provisioned out of band, so EnsureCollection only
// validates dimensionality.
type PineconeStore struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewPineconeStore creates a Pinecone-backed store. host is the index host
// returned by Pinecone at index creation (e.g. "my-index-abc123.svc.us-east-1.pinecone.io");
// a scheme prefix is accepted and defaults to https.
func NewPineconeStore(host, apiKey string) *PineconeStore {
	baseURL := host
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}
	return &PineconeStore{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type pineconeVector struct {
	ID       string         `json:"id"`
	Values   []float32      `json:"values"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type pineconeUpsertRequest struct {
	Vectors   []pineconeVector `json:"vectors"`
	Namespace string           `json:"namespace,omitempty"`
}

type pineconeQueryRequest struct {
	Vector          []float32 `json:"vector"`
	TopK            int       `json:"topK"`
	IncludeMetadata bool      `json:"includeMetadata"`
	Namespace       string    `json:"namespace,omitempty"`
}

type pineconeQueryResponse struct {
	Matches []struct {
		ID       string         `json:"id"`
		Score    float32        `json:"score"`
		Metadata map[string]any `json:"metadata"`
	} `json:"matches"`
}

type pineconeDeleteRequest struct {
	Filter    map[string]any `json:"filter,omitempty"`
	Namespace string         `json:"namespace,omitempty"`
}

type pineconeStatsResponse struct {
	Dimension int `json:"dimension"`
}

// EnsureCollection validates that the index dimension matches vectorSize.
// Pinecone indexes are created through the control plane, not here.
func (s *PineconeStore) EnsureCollection(ctx context.Context, collection string, vectorSize int) error {
	var stats pineconeStatsResponse
	if err := s.post(ctx, "/describe_index_stats", struct{}{}, &stats); err != nil {
		return err
	}
	if stats.Dimension != vectorSize {
		return fmt.Errorf("index dimension mismatch: expected %d, got %d", vectorSize, stats.Dimension)
	}
	return nil
}

// CollectionExists reports whether the index is reachable.
func (s *PineconeStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	var stats pineconeStatsResponse
	if err := s.post(ctx, "/describe_index_stats", struct{}{}, &stats); err != nil {
		return false, err
	}
	return true, nil
}

// Upsert inserts or replaces records by id.
func (s *PineconeStore) Upsert(ctx context.Context, collection string, records []Record) error {
	logger := contextutil.LoggerFromContext(ctx)

	if len(records) == 0 {
		return nil
	}

	req := pineconeUpsertRequest{Namespace: collection}
	for _, rec := range records {
		meta := make(map[string]any, len(rec.Meta)+1)
		for k, v := range rec.Meta {
			meta[k] = v
		}
		meta["text"] = rec.Text
		req.Vectors = append(req.Vectors, pineconeVector{
			ID:       rec.ID,
			Values:   rec.Vector,
			Metadata: meta,
		})
	}

	if err := s.post(ctx, "/vectors/upsert", req, nil); err != nil {
		logger.ErrorContext(ctx, "failed to upsert records", "namespace", collection, "count", len(records), "error", err)
		return err
	}

	logger.InfoContext(ctx, "upserted records", "namespace", collection, "count", len(records))
	return nil
}

// Query returns up to topK records ranked by descending similarity.
func (s *PineconeStore) Query(ctx context.Context, collection string, vector []float32, topK int) ([]Match, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if topK <= 0 {
		return nil, fmt.Errorf("topK must be greater than 0")
	}

	req := pineconeQueryRequest{
		Vector:          vector,
		TopK:            topK,
		IncludeMetadata: true,
		Namespace:       collection,
	}
	var resp pineconeQueryResponse
	if err := s.post(ctx, "/query", req, &resp); err != nil {
		logger.ErrorContext(ctx, "failed to query records", "namespace", collection, "top_k", topK, "error", err)
		return nil, err
	}

	matches := make([]Match, 0, len(resp.Matches))
	for _, m := range resp.Matches {
		text, _ := m.Metadata["text"].(string)
		delete(m.Metadata, "text")
		matches = append(matches, Match{
			ID:    m.ID,
			Score: m.Score,
			Text:  text,
			Meta:  m.Metadata,
		})
	}

	logger.DebugContext(ctx, "query completed", "namespace", collection, "top_k", topK, "results", len(matches))
	return matches, nil
}

// DeleteBySource removes all records whose "source" metadata equals source.
// Pinecone's delete API does not report how many vectors matched, so the
// returned count is always 0; callers that need an exact figure track it in
// the document catalog.
func (s *PineconeStore) DeleteBySource(ctx context.Context, collection string, source string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	req := pineconeDeleteRequest{
		Filter:    map[string]any{"source": map[string]any{"$eq": source}},
		Namespace: collection,
	}
	if err := s.post(ctx, "/vectors/delete", req, nil); err != nil {
		logger.ErrorContext(ctx, "failed to delete records", "namespace", collection, "source", source, "error", err)
		return 0, err
	}

	logger.InfoContext(ctx, "deleted records", "namespace", collection, "source", source)
	return 0, nil
}

// post sends a JSON request to the index data plane and decodes the response
// into out when out is non-nil.
func (s *PineconeStore) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Api-Key", s.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: bad status %d: %s", ErrUnavailable, resp.StatusCode, string(raw))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: failed to decode response: %v", ErrUnavailable, err)
		}
	}
	return nil
}
