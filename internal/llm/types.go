package llm

import "context"

// generates embeddings from text
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// holds configuration for the OpenAI embedder
type OpenAIConfig struct {
	APIKey string
	Model  string // e.g., "text-embedding-3-small"
}
