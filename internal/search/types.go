package search

import (
	"context"
	"errors"
	"time"

	"codeberg.org/hadithsearch/server/internal/store"
)

// fixed number of results per page
const PageSize = 5

// upper bound on one request's external calls (embedding + store)
const defaultTimeout = 8 * time.Second

var (
	// caller input errors, surfaced as 400s
	ErrEmptyQuery  = errors.New("query parameter is required and must be a non-empty string")
	ErrInvalidPage = errors.New("page parameter must be a positive integer")

	// provider or store failure, surfaced as a generic 500
	ErrRetrieval = errors.New("failed to fetch search results")
)

// embeds a single query string
type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// read path of the vector store
type VectorSearcher interface {
	SimilaritySearch(ctx context.Context, queryVector []float32, limit, offset int) ([]store.SearchResult, error)
}

// Service runs query-time retrieval: validate, embed, similarity search.
// Stateless; safe for concurrent use by multiple requests.
type Service struct {
	embedder Embedder
	searcher VectorSearcher
	pageSize int
	timeout  time.Duration
}
