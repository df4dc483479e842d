package search

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/hadithsearch/server/internal/store"
)

// creates a search service with explicit dependencies
func NewService(embedder Embedder, searcher VectorSearcher) *Service {
	return &Service{
		embedder: embedder,
		searcher: searcher,
		pageSize: PageSize,
		timeout:  defaultTimeout,
	}
}

// Search returns one page of hadiths ranked by similarity to the query.
// The query is re-embedded on every call; results are returned verbatim
// with no re-ranking. Provider and store failures both surface as
// ErrRetrieval with no partial results.
func (s *Service) Search(ctx context.Context, query string, page int) ([]store.SearchResult, error) {
	query = strings.TrimSpace(query)

	if query == "" {
		return nil, ErrEmptyQuery
	}

	if page < 1 {
		return nil, ErrInvalidPage
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	queryVector, err := s.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: embedding failed: %v", ErrRetrieval, err)
	}

	offset := (page - 1) * s.pageSize

	results, err := s.searcher.SimilaritySearch(ctx, queryVector, s.pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: similarity search failed: %v", ErrRetrieval, err)
	}

	return results, nil
}
