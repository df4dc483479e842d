package config

import (
	"flag"
	"os"
)

const (
	defaultHadithFile = "./resources/all_hadiths_clean.csv"
	defaultBatchSize  = 50
)

// parses CLI flags for the ingester
func ParseIngestFlags() IngestFlags {
	args := os.Args[1:]

	fs := flag.NewFlagSet("ingester", flag.ExitOnError)
	file := fs.String("file", defaultHadithFile, "path to the hadith CSV file")
	startLine := fs.Int("start-line", 1, "1-based data row to resume from; earlier rows are skipped")
	batchSize := fs.Int("batch-size", defaultBatchSize, "number of records embedded and inserted per batch")
	skipExisting := fs.Bool("skip-existing", false, "skip rows whose hadith_id is already stored")
	clearFlag := fs.Bool("clear", false, "clear existing hadiths before ingesting")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return IngestFlags{
		File:         *file,
		StartLine:    *startLine,
		BatchSize:    *batchSize,
		SkipExisting: *skipExisting,
		Clear:        *clearFlag,
	}
}

// returns default flags for ingestion
func DefaultIngestFlags() IngestFlags {
	return IngestFlags{
		File:      defaultHadithFile,
		StartLine: 1,
		BatchSize: defaultBatchSize,
	}
}
