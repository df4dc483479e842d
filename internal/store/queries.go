package store

const (
	insertHadithQuery = `
		INSERT INTO hadiths (hadith_id, source, chapter_no, hadith_no, chapter, chain_indx, text_ar, text_en, embedding)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	// match_hadiths orders by descending similarity with the row id as a
	// stable tiebreak, so offset pagination never skips or repeats rows
	similaritySearchQuery = `
		SELECT
			hadith_id,
			source,
			chapter_no,
			hadith_no,
			chapter,
			chain_indx,
			text_ar,
			text_en,
			similarity
		FROM match_hadiths($1, $2, $3)
	`

	existingIDsQuery = `
		SELECT DISTINCT hadith_id
		FROM hadiths
		WHERE hadith_id = ANY($1)
	`

	getHadithCountQuery = `SELECT COUNT(*) FROM hadiths`

	deleteAllHadithsQuery = `DELETE FROM hadiths`
)
