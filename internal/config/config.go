package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Vector store backends selectable via VECTOR_BACKEND.
const (
	BackendQdrant   = "qdrant"
	BackendPinecone = "pinecone"
)

// Embedding and chat providers selectable via EMBEDDING_PROVIDER / CHAT_PROVIDER.
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	DBPath    string
	LogLevel  slog.Level
	LogFormat string

	VectorBackend  string
	QdrantURL      string
	PineconeHost   string
	PineconeAPIKey string
	Collection     string
	// VectorSize must match the output dimensionality of the embedding model.
	// nomic-embed-text produces 768, OpenAI text-embedding-3-small produces 1536.
	// Changing the embedding model requires re-ingesting every document: the
	// index cannot hold vectors of mixed dimensionality.
	VectorSize int

	EmbeddingProvider string
	EmbeddingModel    string
	OllamaBaseURL     string
	OpenAIBaseURL     string
	OpenAIAPIKey      string

	ChatProvider string
	ChatModel    string

	ChunkSize     int
	ChunkOverlap  int
	RetrievalTopK int
}

// Load reads configuration from environment variables and returns a Config.
// It applies defaults for optional fields and validates required fields.
// If a .env file exists in the current directory or a parent directory, it is
// loaded automatically; variables already set take precedence over .env values.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory

	// Walk up a few levels so the binary can be started from a subdirectory.
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:           getEnv("API_PORT", "9000"),
		DBPath:            getEnv("DB_PATH", "./data/hrpilot.db"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		VectorBackend:     strings.ToLower(getEnv("VECTOR_BACKEND", BackendQdrant)),
		QdrantURL:         getEnv("QDRANT_URL", "http://localhost:6333"),
		PineconeHost:      getEnv("PINECONE_INDEX_HOST", ""),
		PineconeAPIKey:    getEnv("PINECONE_API_KEY", ""),
		Collection:        getEnv("VECTOR_COLLECTION", "hr-knowledge"),
		EmbeddingProvider: strings.ToLower(getEnv("EMBEDDING_PROVIDER", ProviderOllama)),
		EmbeddingModel:    getEnv("EMBEDDING_MODEL", "nomic-embed-text"),
		OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com"),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		ChatProvider:      strings.ToLower(getEnv("CHAT_PROVIDER", ProviderOpenAI)),
		ChatModel:         getEnv("CHAT_MODEL", "gpt-4o"),
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	vectorSizeStr := getEnv("VECTOR_SIZE", "")
	if vectorSizeStr == "" {
		return nil, fmt.Errorf("VECTOR_SIZE is required")
	}
	vectorSize, err := strconv.Atoi(vectorSizeStr)
	if err != nil {
		return nil, fmt.Errorf("VECTOR_SIZE must be a valid integer: %w", err)
	}
	if vectorSize <= 0 {
		return nil, fmt.Errorf("VECTOR_SIZE must be greater than 0")
	}
	cfg.VectorSize = vectorSize

	cfg.ChunkSize, err = getEnvInt("CHUNK_SIZE", 800)
	if err != nil {
		return nil, err
	}
	cfg.ChunkOverlap, err = getEnvInt("CHUNK_OVERLAP", 200)
	if err != nil {
		return nil, err
	}
	cfg.RetrievalTopK, err = getEnvInt("RETRIEVAL_TOP_K", 3)
	if err != nil {
		return nil, err
	}
	if cfg.ChunkSize <= 0 {
		return nil, fmt.Errorf("CHUNK_SIZE must be greater than 0")
	}
	if cfg.ChunkOverlap < 0 || cfg.ChunkOverlap >= cfg.ChunkSize {
		return nil, fmt.Errorf("CHUNK_OVERLAP must be in [0, CHUNK_SIZE)")
	}
	if cfg.RetrievalTopK <= 0 {
		return nil, fmt.Errorf("RETRIEVAL_TOP_K must be greater than 0")
	}

	switch cfg.VectorBackend {
	case BackendQdrant:
	case BackendPinecone:
		if cfg.PineconeAPIKey == "" {
			return nil, fmt.Errorf("PINECONE_API_KEY is required when VECTOR_BACKEND=pinecone")
		}
		if cfg.PineconeHost == "" {
			return nil, fmt.Errorf("PINECONE_INDEX_HOST is required when VECTOR_BACKEND=pinecone")
		}
	default:
		return nil, fmt.Errorf("unknown VECTOR_BACKEND %q (want qdrant or pinecone)", cfg.VectorBackend)
	}

	switch cfg.EmbeddingProvider {
	case ProviderOllama:
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when EMBEDDING_PROVIDER=openai")
		}
	default:
		return nil, fmt.Errorf("unknown EMBEDDING_PROVIDER %q (want ollama or openai)", cfg.EmbeddingProvider)
	}

	switch cfg.ChatProvider {
	case ProviderOllama:
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required when CHAT_PROVIDER=openai")
		}
	default:
		return nil, fmt.Errorf("unknown CHAT_PROVIDER %q (want openai or ollama)", cfg.ChatProvider)
	}

	// Create the data directory for the SQLite file if needed.
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable or returns a default value.
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown LOG_LEVEL %q", s)
	}
}
