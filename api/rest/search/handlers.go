package search

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"codeberg.org/hadithsearch/server/internal/auth"
	"codeberg.org/hadithsearch/server/internal/logger"
	"codeberg.org/hadithsearch/server/internal/search"
	"codeberg.org/hadithsearch/server/internal/store"
	"github.com/gin-gonic/gin"
)

const historySaveTimeout = 5 * time.Second

// runs query-time retrieval
type Searcher interface {
	Search(ctx context.Context, query string, page int) ([]store.SearchResult, error)
}

// appends a query to a user's search history
type HistorySaver interface {
	Save(ctx context.Context, userID, queryText string) (bool, error)
}

// SearchHandler embeds the query and returns one page of similar hadiths.
// For logged-in users the query is also saved to history as a best-effort
// side effect that never blocks or fails the response.
func SearchHandler(searcher Searcher, saver HistorySaver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SearchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}

		page := 1
		if req.Page != nil {
			page = *req.Page
		}

		results, err := searcher.Search(c.Request.Context(), req.Query, page)
		if err != nil {
			switch {
			case errors.Is(err, search.ErrEmptyQuery), errors.Is(err, search.ErrInvalidPage):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				logger.ErrorErr(err, "search failed", "page", page)
				c.JSON(http.StatusInternalServerError, gin.H{"error": search.ErrRetrieval.Error()})
			}

			return
		}

		if results == nil {
			results = []store.SearchResult{}
		}

		c.JSON(http.StatusOK, results)

		// fire-and-forget history save for logged-in users; failures are
		// logged and never surfaced to the search response
		if userID, ok := auth.GetUserID(c); ok {
			queryText := strings.TrimSpace(req.Query)

			go func() {
				ctx, cancel := context.WithTimeout(context.Background(), historySaveTimeout)
				defer cancel()

				if _, err := saver.Save(ctx, userID, queryText); err != nil {
					logger.ErrorErr(err, "failed to save search history", "user_id", userID)
				}
			}()
		}
	}
}
