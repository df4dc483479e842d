package main

import (
	"context"
	"os"

	"codeberg.org/hadithsearch/server/internal/config"
	"codeberg.org/hadithsearch/server/internal/ingest"
	"codeberg.org/hadithsearch/server/internal/llm"
	"codeberg.org/hadithsearch/server/internal/logger"
	"codeberg.org/hadithsearch/server/internal/store"
	"github.com/schollz/progressbar/v3"
)

func main() {
	flags := config.ParseIngestFlags()

	// load environment variables
	cfg, err := config.LoadEnvironmentVariables()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}

	ctx := context.Background()

	storeClient, err := store.NewClient(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}

	defer storeClient.Close()

	logger.Info("connected to database")

	if flags.Clear {
		logger.Info("clearing existing hadiths")

		if err := storeClient.ClearAllHadiths(ctx); err != nil {
			logger.Fatal("failed to clear hadiths", "error", err)
		}
	}

	file, err := os.Open(flags.File)
	if err != nil {
		logger.Fatal("failed to open record source", "file", flags.File, "error", err)
	}

	defer file.Close() //nolint:errcheck,gosec // read-only file

	embedder := llm.NewOpenAIEmbedder(llm.OpenAIConfig{
		APIKey: cfg.OpenAIKey,
	})

	bar := progressbar.Default(-1, "ingesting hadiths")

	pipeline := ingest.NewPipeline(embedder, storeClient, ingest.Options{
		StartLine:    flags.StartLine,
		BatchSize:    flags.BatchSize,
		SkipExisting: flags.SkipExisting,
		Progress: func(rows int) {
			bar.Add(rows) //nolint:errcheck,gosec // progress display only
		},
	})

	logger.Info("starting ingestion",
		"file", flags.File,
		"start_line", flags.StartLine,
		"batch_size", flags.BatchSize,
		"embedding_dimension", embedder.Dimension(),
		"skip_existing", flags.SkipExisting,
	)

	report, err := pipeline.Run(ctx, file)
	if err != nil {
		logger.Fatal("ingestion aborted", "error", err)
	}

	bar.Finish() //nolint:errcheck,gosec // progress display only

	// verify insertion
	count, err := storeClient.GetHadithCount(ctx)
	if err != nil {
		logger.Fatal("failed to verify hadith count", "error", err)
	}

	logger.Info("successfully ingested hadiths",
		"rows_inserted", report.RowsInserted,
		"rows_quarantined", report.RowsQuarantined,
		"batches_failed", report.BatchesFailed,
		"total_stored", count,
	)

	if report.BatchesFailed > 0 {
		logger.Warn("some batches failed; reconcile counts and re-run with an adjusted -start-line",
			"batches_failed", report.BatchesFailed,
		)
	}
}
