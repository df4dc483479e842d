package ingest

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"codeberg.org/hadithsearch/server/internal/store"
)

// fixed column layout of the hadith CSV source
var expectedHeader = []string{
	"id", "hadith_id", "source", "chapter_no", "hadith_no", "chapter", "chain_indx", "text_ar", "text_en",
}

const (
	colHadithID  = 1
	colSource    = 2
	colChapterNo = 3
	colHadithNo  = 4
	colChapter   = 5
	colChainIndx = 6
	colTextAr    = 7
	colTextEn    = 8
)

// validates the header row against the fixed column layout
func validateHeader(header []string) error {
	if len(header) != len(expectedHeader) {
		return fmt.Errorf("expected %d columns, got %d", len(expectedHeader), len(header))
	}

	for i, name := range expectedHeader {
		if strings.TrimSpace(strings.ToLower(header[i])) != name {
			return fmt.Errorf("unexpected column %d: got %q, want %q", i, header[i], name)
		}
	}

	return nil
}

// converts one CSV record into a Hadith. Malformed chapter_no/hadith_no
// values are rejected here so they can be quarantined instead of stored.
func parseRecord(record []string) (store.Hadith, error) {
	chapterNo, err := strconv.Atoi(strings.TrimSpace(record[colChapterNo]))
	if err != nil {
		return store.Hadith{}, fmt.Errorf("non-numeric chapter_no %q: %w", record[colChapterNo], err)
	}

	hadithNo, err := strconv.Atoi(strings.TrimSpace(record[colHadithNo]))
	if err != nil {
		return store.Hadith{}, fmt.Errorf("non-numeric hadith_no %q: %w", record[colHadithNo], err)
	}

	return store.Hadith{
		HadithID:  strings.TrimSpace(record[colHadithID]),
		Source:    strings.TrimSpace(record[colSource]),
		ChapterNo: chapterNo,
		HadithNo:  hadithNo,
		Chapter:   strings.TrimSpace(record[colChapter]),
		ChainIndx: strings.TrimSpace(record[colChainIndx]),
		TextAr:    strings.TrimSpace(record[colTextAr]),
		TextEn:    strings.TrimSpace(record[colTextEn]),
	}, nil
}

// configures a CSV reader for the hadith source file
func newCSVReader(r *csv.Reader) *csv.Reader {
	r.FieldsPerRecord = len(expectedHeader)
	r.LazyQuotes = true
	return r
}
