package history

const (
	queryMostRecent = `
		SELECT query_text
		FROM search_history
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	queryInsert = `
		INSERT INTO search_history (user_id, query_text)
		VALUES ($1, $2)
	`

	queryListRecent = `
		SELECT id, query_text, timestamp
		FROM search_history
		WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`
)
