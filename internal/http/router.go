package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"hrpilot/internal/benchmark"
	"hrpilot/internal/compliance"
	"hrpilot/internal/handlers"
	"hrpilot/internal/rag"
	"hrpilot/internal/resume"
	"hrpilot/internal/storage"
	"hrpilot/internal/vectorstore"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Engine      rag.Engine
	Pipeline    handlers.DocumentPipeline
	Benchmark   *benchmark.Engine
	Compliance  *compliance.Checker
	Resume      *resume.Extractor
	Employees   storage.EmployeeStore
	Documents   storage.DocumentStore
	VectorStore vectorstore.VectorStore
	Collection  string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(CORS)

	chatHandler := handlers.NewChatHandler(deps.Engine, deps.Employees)
	kbHandler := handlers.NewKBHandler(deps.Documents, deps.Pipeline)
	benchmarkHandler := handlers.NewBenchmarkHandler(deps.Benchmark)
	complianceHandler := handlers.NewComplianceHandler(deps.Compliance)
	resumeHandler := handlers.NewResumeHandler(deps.Resume)
	employeesHandler := handlers.NewEmployeesHandler(deps.Employees)
	healthHandler := handlers.NewHealthHandler(deps.VectorStore, deps.Collection)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/chat", chatHandler)

		r.Route("/kb/files", func(r chi.Router) {
			r.Post("/", kbHandler.Upload)
			r.Get("/", kbHandler.List)
			r.Patch("/{id}", kbHandler.Update)
			r.Delete("/{id}", kbHandler.Delete)
		})

		r.Method(http.MethodPost, "/benchmark", benchmarkHandler)

		r.Route("/compliance", func(r chi.Router) {
			r.Get("/check", complianceHandler.Check)
			r.Get("/employee/{id}", complianceHandler.Employee)
		})

		r.Method(http.MethodPost, "/resume/extract", resumeHandler)
		r.Method(http.MethodGet, "/employees", employeesHandler)
		r.Method(http.MethodGet, "/health", healthHandler)
	})

	return r
}
