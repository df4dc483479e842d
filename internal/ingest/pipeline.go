package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"codeberg.org/hadithsearch/server/internal/logger"
	"codeberg.org/hadithsearch/server/internal/store"
)

const defaultBatchSize = 50

// creates a pipeline with explicit dependencies
func NewPipeline(embedder Embedder, hadithStore HadithStore, opts Options) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = defaultBatchSize
	}

	if opts.StartLine < 1 {
		opts.StartLine = 1
	}

	return &Pipeline{
		embedder: embedder,
		store:    hadithStore,
		opts:     opts,
	}
}

// Run consumes the CSV source until exhaustion. Rows below the resume
// offset are discarded, rows with malformed numeric fields are quarantined,
// and everything else is embedded and inserted in sequential batches.
// Only a broken stream aborts the run; batch failures are logged and skipped.
func (p *Pipeline) Run(ctx context.Context, source io.Reader) (*Report, error) {
	reader := newCSVReader(csv.NewReader(source))

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	if err := validateHeader(header); err != nil {
		return nil, fmt.Errorf("invalid header row: %w", err)
	}

	report := &Report{}
	batch := make([]store.Hadith, 0, p.opts.BatchSize)
	line := 0 // 1-based counter over data rows

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return report, fmt.Errorf("failed to read row %d: %w", line+1, err)
		}

		line++
		report.RowsRead++

		// resume support: discard rows already processed by a previous run
		if line < p.opts.StartLine {
			report.RowsSkipped++
			continue
		}

		hadith, err := parseRecord(record)
		if err != nil {
			report.RowsQuarantined++
			logger.Warn("quarantined malformed row", "line", line, "error", err)
			continue
		}

		batch = append(batch, hadith)

		if len(batch) == p.opts.BatchSize {
			p.processBatch(ctx, batch, report)
			// rows were handed to the store, start a fresh batch
			batch = make([]store.Hadith, 0, p.opts.BatchSize)
		}
	}

	// flush the trailing partial batch
	if len(batch) > 0 {
		p.processBatch(ctx, batch, report)
	}

	logger.Info("ingestion complete",
		"rows_read", report.RowsRead,
		"rows_skipped", report.RowsSkipped,
		"rows_quarantined", report.RowsQuarantined,
		"rows_filtered", report.RowsFiltered,
		"rows_inserted", report.RowsInserted,
		"batches_failed", report.BatchesFailed,
	)

	return report, nil
}

// embeds and inserts one batch. Failures are isolated: the batch range is
// logged and the caller moves on to the next batch.
func (p *Pipeline) processBatch(ctx context.Context, batch []store.Hadith, report *Report) {
	defer func() {
		if p.opts.Progress != nil {
			p.opts.Progress(len(batch))
		}
	}()

	rows := batch

	if p.opts.SkipExisting {
		filtered, err := p.filterExisting(ctx, batch)
		if err != nil {
			report.BatchesFailed++
			logger.ErrorErr(err, "failed to check existing ids, skipping batch",
				"first_hadith_no", batch[0].HadithNo,
				"last_hadith_no", batch[len(batch)-1].HadithNo,
			)
			return
		}

		report.RowsFiltered += len(batch) - len(filtered)
		rows = filtered
	}

	if len(rows) == 0 {
		return
	}

	texts := make([]string, len(rows))
	for i, h := range rows {
		texts[i] = h.TextEn
	}

	// one provider call per batch, not one per record
	embeddings, err := p.embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		report.BatchesFailed++
		logger.ErrorErr(err, "failed to embed batch, skipping",
			"first_hadith_no", rows[0].HadithNo,
			"last_hadith_no", rows[len(rows)-1].HadithNo,
		)
		return
	}

	if len(embeddings) != len(rows) {
		report.BatchesFailed++
		logger.Error("embedding count mismatch, skipping batch",
			"expected", len(rows),
			"got", len(embeddings),
			"first_hadith_no", rows[0].HadithNo,
			"last_hadith_no", rows[len(rows)-1].HadithNo,
		)
		return
	}

	for i := range rows {
		rows[i].Embedding = embeddings[i]
	}

	if err := p.store.InsertHadithBatch(ctx, rows); err != nil {
		report.BatchesFailed++
		logger.ErrorErr(err, "failed to insert batch, skipping",
			"first_hadith_no", rows[0].HadithNo,
			"last_hadith_no", rows[len(rows)-1].HadithNo,
		)
		return
	}

	report.RowsInserted += len(rows)
}

// drops rows whose hadith_id is already stored
func (p *Pipeline) filterExisting(ctx context.Context, batch []store.Hadith) ([]store.Hadith, error) {
	ids := make([]string, len(batch))
	for i, h := range batch {
		ids[i] = h.HadithID
	}

	existing, err := p.store.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	filtered := make([]store.Hadith, 0, len(batch))

	for _, h := range batch {
		if !existing[h.HadithID] {
			filtered = append(filtered, h)
		}
	}

	return filtered, nil
}
