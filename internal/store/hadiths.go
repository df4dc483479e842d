package store

import (
	"context"
	"errors"
	"fmt"

	"codeberg.org/hadithsearch/server/internal/logger"
	"github.com/jackc/pgx/v5"
	"github.com/pgvector/pgvector-go"
)

// deletes all stored hadiths
func (c *Client) ClearAllHadiths(ctx context.Context) error {
	_, err := c.pool.Exec(ctx, deleteAllHadithsQuery)
	if err != nil {
		return fmt.Errorf("failed to clear hadiths: %w", err)
	}

	return nil
}

// inserts a batch of hadiths with their embeddings in a single transaction
func (c *Client) InsertHadithBatch(ctx context.Context, rows []Hadith) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := c.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	// defer rollback - will be a no-op if commit succeeds
	defer func() {
		if err := tx.Rollback(ctx); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			logger.Warn("failed to rollback transaction", "error", err)
		}
	}()

	batch := &pgx.Batch{}

	for _, h := range rows {
		batch.Queue(insertHadithQuery,
			h.HadithID,
			h.Source,
			h.ChapterNo,
			h.HadithNo,
			h.Chapter,
			h.ChainIndx,
			h.TextAr,
			h.TextEn,
			pgvector.NewVector(h.Embedding),
		)
	}

	br := tx.SendBatch(ctx, batch)

	for i := range len(rows) {
		_, err := br.Exec()
		if err != nil {
			br.Close() //nolint:errcheck,gosec // G104: error path cleanup
			return fmt.Errorf("failed to insert hadith %d (hadith_no %d-%d): %w",
				i, rows[0].HadithNo, rows[len(rows)-1].HadithNo, err)
		}
	}

	// must close batch results before committing, otherwise the connection is still busy
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// returns up to limit hadiths ranked by descending similarity to the query
// vector, skipping the first offset matches in that ordering
func (c *Client) SimilaritySearch(ctx context.Context, queryVector []float32, limit, offset int) ([]SearchResult, error) {
	rows, err := c.pool.Query(ctx, similaritySearchQuery, pgvector.NewVector(queryVector), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search query: %w", err)
	}
	defer rows.Close()

	var results []SearchResult

	for rows.Next() {
		var result SearchResult
		err := rows.Scan(
			&result.HadithID,
			&result.Source,
			&result.ChapterNo,
			&result.HadithNo,
			&result.Chapter,
			&result.ChainIndx,
			&result.TextAr,
			&result.TextEn,
			&result.Similarity,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return results, nil
}

// returns the subset of the given hadith ids that already exist in the store
func (c *Client) ExistingIDs(ctx context.Context, hadithIDs []string) (map[string]bool, error) {
	if len(hadithIDs) == 0 {
		return map[string]bool{}, nil
	}

	rows, err := c.pool.Query(ctx, existingIDsQuery, hadithIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing ids: %w", err)
	}
	defer rows.Close()

	existing := make(map[string]bool)

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan id: %w", err)
		}

		existing[id] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return existing, nil
}

// returns the total number of stored hadiths
func (c *Client) GetHadithCount(ctx context.Context) (int, error) {
	var count int

	err := c.pool.QueryRow(ctx, getHadithCountQuery).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get hadith count: %w", err)
	}

	return count, nil
}
