package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"hrpilot/internal/benchmark"
	"hrpilot/internal/compliance"
	rag_mocks "hrpilot/internal/rag/mocks"
	"hrpilot/internal/resume"
	storage_mocks "hrpilot/internal/storage/mocks"
	vectorstore_mocks "hrpilot/internal/vectorstore/mocks"
)

func newTestRouter(t *testing.T) (http.Handler, *vectorstore_mocks.MockVectorStore) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	employees := storage_mocks.NewMockEmployeeStore(ctrl)
	store := vectorstore_mocks.NewMockVectorStore(ctrl)

	router := NewRouter(&Deps{
		Engine:      rag_mocks.NewMockEngine(ctrl),
		Pipeline:    nil,
		Benchmark:   benchmark.NewEngine(employees),
		Compliance:  compliance.NewChecker(employees),
		Resume:      resume.NewExtractor(nil),
		Employees:   employees,
		Documents:   storage_mocks.NewMockDocumentStore(ctrl),
		VectorStore: store,
		Collection:  "hr-knowledge",
	})
	return router, store
}

func TestRouter_HealthRoute(t *testing.T) {
	router, store := newTestRouter(t)
	store.EXPECT().CollectionExists(gomock.Any(), "hr-knowledge").Return(true, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("GET /api/health = %d, want 200", rec.Code)
	}
}

func TestRouter_UnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("GET /api/nope = %d, want 404", rec.Code)
	}
}

func TestRouter_MethodRouting(t *testing.T) {
	router, _ := newTestRouter(t)

	// Chat only accepts POST.
	req := httptest.NewRequest(http.MethodGet, "/api/chat", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET /api/chat = %d, want 405", rec.Code)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/chat", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight = %d, want 204", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("missing Access-Control-Allow-Origin header")
	}
}
