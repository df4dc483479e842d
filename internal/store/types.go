package store

import "github.com/jackc/pgx/v5/pgxpool"

// Client wraps the pgvector-backed hadith store
type Client struct {
	pool     *pgxpool.Pool
	ownsPool bool
}

// Hadith is one corpus record as stored in the hadiths table.
// Embedding is computed from TextEn at ingestion time and never mutated.
type Hadith struct {
	HadithID  string    `json:"hadith_id"`
	Source    string    `json:"source"`
	ChapterNo int       `json:"chapter_no"`
	HadithNo  int       `json:"hadith_no"`
	Chapter   string    `json:"chapter"`
	ChainIndx string    `json:"chain_indx"`
	TextAr    string    `json:"text_ar"`
	TextEn    string    `json:"text_en"`
	Embedding []float32 `json:"-"`
}

// SearchResult is a hadith row ranked by similarity to a query vector
type SearchResult struct {
	HadithID   string  `json:"hadith_id"`
	Source     string  `json:"source"`
	ChapterNo  int     `json:"chapter_no"`
	HadithNo   int     `json:"hadith_no"`
	Chapter    string  `json:"chapter"`
	ChainIndx  string  `json:"chain_indx"`
	TextAr     string  `json:"text_ar"`
	TextEn     string  `json:"text_en"`
	Similarity float32 `json:"similarity"`
}
