package history

// request body for POST /history
type SaveRequest struct {
	QueryText string `json:"queryText"`
}
