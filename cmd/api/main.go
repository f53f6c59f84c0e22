package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"hrpilot/internal/benchmark"
	"hrpilot/internal/compliance"
	"hrpilot/internal/config"
	"hrpilot/internal/http"
	"hrpilot/internal/ingest"
	"hrpilot/internal/llm"
	"hrpilot/internal/rag"
	"hrpilot/internal/resume"
	"hrpilot/internal/storage"
	"hrpilot/internal/vectorstore"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	employeeRepo := storage.NewEmployeeRepository(db)
	policyRepo := storage.NewPolicyRepository(db)
	documentRepo := storage.NewDocumentRepository(db)

	ctx := context.Background()

	if err := storage.Seed(ctx, employeeRepo, policyRepo); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	slog.Info("Database seeded")

	// Initialize the configured vector store backend
	var vectorStore vectorstore.VectorStore
	switch cfg.VectorBackend {
	case config.BackendPinecone:
		vectorStore = vectorstore.NewPineconeStore(cfg.PineconeHost, cfg.PineconeAPIKey)
	default:
		qdrantStore, err := vectorstore.NewQdrantStore(cfg.QdrantURL)
		if err != nil {
			log.Fatalf("Failed to create Qdrant client: %v", err)
		}
		vectorStore = qdrantStore
	}

	// Ensure collection exists with correct vector size
	if err := vectorStore.EnsureCollection(ctx, cfg.Collection, cfg.VectorSize); err != nil {
		log.Fatalf("Failed to ensure vector collection: %v", err)
	}
	slog.Info("Vector collection ready", "backend", cfg.VectorBackend, "collection", cfg.Collection, "vector_size", cfg.VectorSize)

	// Validate embedder vector size (fail-fast)
	var embedder llm.Embedder
	switch cfg.EmbeddingProvider {
	case config.ProviderOpenAI:
		embedder = llm.NewOpenAIEmbedder(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.EmbeddingModel, cfg.VectorSize)
	default:
		embedder = llm.NewOllamaEmbedder(cfg.OllamaBaseURL, cfg.EmbeddingModel, cfg.VectorSize)
	}
	testVector, err := embedder.Embed(ctx, "test")
	if err != nil {
		log.Fatalf("Failed to validate embedding client: %v", err)
	}
	if len(testVector) != cfg.VectorSize {
		log.Fatalf("Embedding vector size mismatch: expected %d, got %d", cfg.VectorSize, len(testVector))
	}
	slog.Info("Embedding client validated", "provider", cfg.EmbeddingProvider, "model", cfg.EmbeddingModel)

	var chatClient llm.ChatClient
	switch cfg.ChatProvider {
	case config.ProviderOllama:
		chatClient = llm.NewOllamaChatClient(cfg.OllamaBaseURL, cfg.ChatModel)
	default:
		chatClient = llm.NewOpenAIChatClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.ChatModel)
	}

	pipeline := ingest.NewPipeline(embedder, vectorStore, cfg.Collection, cfg.ChunkSize, cfg.ChunkOverlap)
	engine := rag.NewEngine(embedder, vectorStore, chatClient, employeeRepo, cfg.Collection, cfg.RetrievalTopK)
	slog.Info("RAG engine initialized", "chat_provider", cfg.ChatProvider, "chat_model", cfg.ChatModel, "top_k", cfg.RetrievalTopK)

	deps := &http.Deps{
		Engine:      engine,
		Pipeline:    pipeline,
		Benchmark:   benchmark.NewEngine(employeeRepo),
		Compliance:  compliance.NewChecker(employeeRepo),
		Resume:      resume.NewExtractor(chatClient),
		Employees:   employeeRepo,
		Documents:   documentRepo,
		VectorStore: vectorStore,
		Collection:  cfg.Collection,
	}
	router := http.NewRouter(deps)

	// Index seeded policies in the background after the router is ready, so a
	// slow embedding provider never blocks startup.
	go func() {
		indexCtx := context.Background()
		policies, err := policyRepo.ListAll(indexCtx)
		if err != nil {
			slog.Error("Failed to list policies for indexing", "error", err)
			return
		}
		slog.Info("Starting background indexing of policies", "count", len(policies))
		for _, p := range policies {
			docID := fmt.Sprintf("policy-%d", p.ID)
			text := fmt.Sprintf("%s\n\n%s", p.Title, p.Content)
			if _, err := pipeline.Ingest(indexCtx, []byte(text), docID+".txt", docID); err != nil {
				slog.Error("Failed to index policy", "policy_id", p.ID, "error", err)
				continue
			}
		}
		slog.Info("Policy indexing completed")
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
