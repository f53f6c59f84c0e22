package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"hrpilot/internal/contextutil"
	"hrpilot/internal/storage"
)

// Upload limits.
const (
	maxUploadBytes    = 5 << 20
	maxNameLength     = 100
	maxDescriptionLen = 500
)

// DocumentPipeline is the ingestion surface the handler needs. Satisfied by
// *ingest.Pipeline; an interface so tests can substitute it.
type DocumentPipeline interface {
	Ingest(ctx context.Context, fileBytes []byte, filename, documentID string) (int, error)
	Purge(ctx context.Context, documentID string) (int, error)
}

// KBHandler handles knowledge-base document CRUD plus (re)indexing.
type KBHandler struct {
	documents storage.DocumentStore
	pipeline  DocumentPipeline
}

// NewKBHandler creates a new KBHandler.
func NewKBHandler(documents storage.DocumentStore, pipeline DocumentPipeline) *KBHandler {
	return &KBHandler{documents: documents, pipeline: pipeline}
}

// DocumentResponse is the catalog view of one document (content omitted).
type DocumentResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Category    string     `json:"category"`
	Filename    string     `json:"filename"`
	Description string     `json:"description"`
	Uploader    string     `json:"uploader"`
	ChunkCount  int        `json:"chunkCount"`
	UploadedAt  time.Time  `json:"uploadedAt"`
	DeletedAt   *time.Time `json:"deletedAt,omitempty"`
}

func toDocumentResponse(d *storage.Document) DocumentResponse {
	return DocumentResponse{
		ID:          d.ID,
		Name:        d.Name,
		Category:    d.Category,
		Filename:    d.Filename,
		Description: d.Description,
		Uploader:    d.Uploader,
		ChunkCount:  d.ChunkCount,
		UploadedAt:  d.UploadedAt,
		DeletedAt:   d.DeletedAt,
	}
}

// Upload accepts a multipart file plus metadata, stores the document and
// indexes its chunks.
func (h *KBHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "file exceeds the 5 MB limit or the form is malformed")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		name = header.Filename
	}
	if len(name) > maxNameLength {
		writeError(ctx, w, http.StatusBadRequest, "name must be 100 characters or fewer")
		return
	}
	description := strings.TrimSpace(r.FormValue("description"))
	if len(description) > maxDescriptionLen {
		writeError(ctx, w, http.StatusBadRequest, "description must be 500 characters or fewer")
		return
	}
	category := storage.ValidCategory(r.FormValue("category"))
	uploader := strings.TrimSpace(r.FormValue("uploader"))
	if uploader == "" {
		uploader = "admin"
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(ctx, w, http.StatusBadRequest, "failed to read uploaded file")
		return
	}

	doc := &storage.Document{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    category,
		Filename:    header.Filename,
		Description: description,
		Uploader:    uploader,
		Content:     data,
	}

	chunks, err := h.pipeline.Ingest(ctx, data, header.Filename, doc.ID)
	if err != nil {
		logger.ErrorContext(ctx, "ingestion failed", "filename", header.Filename, "error", err)
		writeError(ctx, w, statusForError(err), err.Error())
		return
	}
	doc.ChunkCount = chunks

	if err := h.documents.Insert(ctx, doc); err != nil {
		logger.ErrorContext(ctx, "failed to catalog document", "error", err)
		writeError(ctx, w, http.StatusInternalServerError, "failed to store document")
		return
	}
	doc.UploadedAt = time.Now().UTC()

	writeJSON(ctx, w, http.StatusCreated, map[string]any{
		"success":  true,
		"document": toDocumentResponse(doc),
	})
}

// List returns catalog entries, optionally filtered by q and category.
// Soft-deleted documents are excluded unless includeDeleted=true.
func (h *KBHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter := storage.DocumentFilter{
		Query:          strings.TrimSpace(r.URL.Query().Get("q")),
		Category:       strings.TrimSpace(r.URL.Query().Get("category")),
		IncludeDeleted: r.URL.Query().Get("includeDeleted") == "true",
	}

	docs, err := h.documents.ListAll(ctx, filter)
	if err != nil {
		writeError(ctx, w, http.StatusInternalServerError, "failed to list documents")
		return
	}

	out := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, toDocumentResponse(&docs[i]))
	}
	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success":   true,
		"documents": out,
	})
}

// UpdateRequest is the PATCH payload; empty fields are left unchanged.
type UpdateRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// Update renames, recategorizes or redescribes a document.
func (h *KBHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	var req UpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(ctx, w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Name) > maxNameLength {
		writeError(ctx, w, http.StatusBadRequest, "name must be 100 characters or fewer")
		return
	}
	if len(req.Description) > maxDescriptionLen {
		writeError(ctx, w, http.StatusBadRequest, "description must be 500 characters or fewer")
		return
	}

	doc, err := h.documents.Update(ctx, id, strings.TrimSpace(req.Name), req.Category, strings.TrimSpace(req.Description))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Document not found")
			return
		}
		writeError(ctx, w, http.StatusInternalServerError, "failed to update document")
		return
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success":  true,
		"document": toDocumentResponse(doc),
	})
}

// Delete soft-deletes the catalog entry and purges the document's vectors.
// A purge failure is logged but does not undo the delete; the catalog row is
// the source of truth and a re-purge can be retried later.
func (h *KBHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)
	id := chi.URLParam(r, "id")

	if err := h.documents.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			writeError(ctx, w, http.StatusNotFound, "Document not found")
			return
		}
		writeError(ctx, w, http.StatusInternalServerError, "failed to delete document")
		return
	}

	removed, err := h.pipeline.Purge(ctx, id)
	if err != nil {
		logger.WarnContext(ctx, "vector purge failed after soft delete", "document_id", id, "error", err)
	}

	writeJSON(ctx, w, http.StatusOK, map[string]any{
		"success":        true,
		"vectorsRemoved": removed,
	})
}
