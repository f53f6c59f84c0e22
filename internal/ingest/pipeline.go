package ingest

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"hrpilot/internal/contextutil"
	"hrpilot/internal/llm"
	"hrpilot/internal/vectorstore"
)

// chunkNamespace seeds the deterministic point ids derived from
// "<documentID>-chunk-<i>" keys. Qdrant only accepts UUID or integer point
// ids, so the readable key is hashed into a UUID and kept in the metadata.
var chunkNamespace = uuid.MustParse("8f9d3a61-5cfb-4b7e-9e41-2f6d0c1b8a37")

// Pipeline turns uploaded files into vector records: extract, chunk, embed,
// upsert. It writes to the vector store only; the document catalog is owned
// by the storage layer.
type Pipeline struct {
	embedder   llm.Embedder
	store      vectorstore.VectorStore
	collection string
	chunkSize  int
	overlap    int
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(embedder llm.Embedder, store vectorstore.VectorStore, collection string, chunkSize, overlap int) *Pipeline {
	return &Pipeline{
		embedder:   embedder,
		store:      store,
		collection: collection,
		chunkSize:  chunkSize,
		overlap:    overlap,
	}
}

// Ingest extracts text from the file, chunks it, embeds each chunk and
// upserts the records in one batch. It returns the number of chunks embedded.
// Embedding failures abort the whole ingestion: a partial or zeroed vector in
// the index would poison similarity search.
func (p *Pipeline) Ingest(ctx context.Context, fileBytes []byte, filename, documentID string) (int, error) {
	logger := contextutil.LoggerFromContext(ctx)

	text, err := ExtractText(fileBytes, filename)
	if err != nil {
		return 0, err
	}
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	chunks := Chunk(text, p.chunkSize, p.overlap)
	if len(chunks) == 0 {
		return 0, fmt.Errorf("%w: %s", ErrEmptyDocument, filename)
	}

	records := make([]vectorstore.Record, 0, len(chunks))
	for i, chunk := range chunks {
		vec, err := p.embedder.Embed(ctx, chunk)
		if err != nil {
			return 0, fmt.Errorf("failed to embed chunk %d of %s: %w", i, filename, err)
		}

		key := fmt.Sprintf("%s-chunk-%d", documentID, i)
		records = append(records, vectorstore.Record{
			ID:     uuid.NewSHA1(chunkNamespace, []byte(key)).String(),
			Vector: vec,
			Text:   chunk,
			Meta: map[string]any{
				"source":      documentID,
				"filename":    filename,
				"chunk_index": i,
				"chunk_key":   key,
			},
		})
	}

	if err := p.store.Upsert(ctx, p.collection, records); err != nil {
		return 0, fmt.Errorf("failed to store %d chunks for %s: %w", len(records), filename, err)
	}

	logger.InfoContext(ctx, "document ingested", "document_id", documentID, "filename", filename, "chunks", len(records))
	return len(records), nil
}

// Purge removes every vector belonging to the given document and returns how
// many were removed (0 when the backend cannot report a count).
func (p *Pipeline) Purge(ctx context.Context, documentID string) (int, error) {
	removed, err := p.store.DeleteBySource(ctx, p.collection, documentID)
	if err != nil {
		return 0, fmt.Errorf("failed to purge vectors for %s: %w", documentID, err)
	}
	return removed, nil
}
