package search

// request body for POST /search. Page is a pointer so an omitted page can
// default to 1 while an explicit zero is still rejected.
type SearchRequest struct {
	Query string `json:"query"`
	Page  *int   `json:"page"`
}
