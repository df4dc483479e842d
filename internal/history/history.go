package history

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates a new search history repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Save appends a query to the user's history unless it matches the user's
// most recent entry. Returns true when a row was inserted.
func (r *Repository) Save(ctx context.Context, userID, queryText string) (bool, error) {
	var lastQuery string

	err := r.db.QueryRow(ctx, queryMostRecent, userID).Scan(&lastQuery)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return false, fmt.Errorf("failed to check recent history: %w", err)
	}

	// suppress immediate duplicate consecutive entries
	if err == nil && lastQuery == queryText {
		return false, nil
	}

	if _, err := r.db.Exec(ctx, queryInsert, userID, queryText); err != nil {
		return false, fmt.Errorf("failed to save search history: %w", err)
	}

	return true, nil
}

// returns the user's most recent history items, newest first
func (r *Repository) ListRecent(ctx context.Context, userID string, limit int) ([]Item, error) {
	rows, err := r.db.Query(ctx, queryListRecent, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve search history: %w", err)
	}
	defer rows.Close()

	items := []Item{}

	for rows.Next() {
		var item Item
		if err := rows.Scan(&item.ID, &item.QueryText, &item.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}

		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return items, nil
}
