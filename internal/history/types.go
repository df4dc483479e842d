package history

import (
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// handles search history database operations
type Repository struct {
	db *pgxpool.Pool
}

// Item is one saved search query. Rows are append-only; this system never
// mutates or deletes them.
type Item struct {
	ID        string    `json:"id"`
	QueryText string    `json:"query_text"`
	Timestamp time.Time `json:"timestamp"`
}
