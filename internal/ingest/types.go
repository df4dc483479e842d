package ingest

import (
	"context"

	"codeberg.org/hadithsearch/server/internal/store"
)

// generates one embedding per input text, order preserving
type Embedder interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// write path into the vector store
type HadithStore interface {
	InsertHadithBatch(ctx context.Context, rows []store.Hadith) error
	ExistingIDs(ctx context.Context, hadithIDs []string) (map[string]bool, error)
}

// Options controls a single ingestion run
type Options struct {
	// 1-based data row to resume from; rows before it are discarded.
	// The operator must pick this to match the last fully processed batch.
	StartLine int

	// number of records embedded and inserted per provider call
	BatchSize int

	// when true, rows whose hadith_id is already stored are filtered out
	// before embedding. When false, re-runs insert duplicate rows.
	SkipExisting bool

	// optional hook invoked after every attempted batch with the number of
	// rows it carried (used for progress display)
	Progress func(rows int)
}

// Report summarizes a completed ingestion run
type Report struct {
	RowsRead        int // data rows seen in the stream
	RowsSkipped     int // discarded by the resume offset
	RowsQuarantined int // rejected for malformed numeric fields
	RowsFiltered    int // already present (skip-existing)
	RowsInserted    int
	BatchesFailed   int
}

// Pipeline streams the record source into the vector store in fixed-size
// batches. Batches are processed strictly sequentially; a failed batch is
// logged and skipped, never retried.
type Pipeline struct {
	embedder Embedder
	store    HadithStore
	opts     Options
}
