package history

import (
	"context"
	"net/http"

	"codeberg.org/hadithsearch/server/internal/auth"
	"codeberg.org/hadithsearch/server/internal/history"
	"github.com/gin-gonic/gin"
)

// maximum history items returned per request
const listLimit = 50

// search history storage
type Repo interface {
	Save(ctx context.Context, userID, queryText string) (bool, error)
	ListRecent(ctx context.Context, userID string, limit int) ([]history.Item, error)
}

// ListHistoryHandler returns the authenticated user's most recent
// searches, newest first
func ListHistoryHandler(repo Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := auth.GetUserID(c)
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "user not logged in"})
			return
		}

		items, err := repo.ListRecent(c.Request.Context(), userID, listLimit)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to retrieve search history"})
			return
		}

		c.JSON(http.StatusOK, items)
	}
}

// SaveHistoryHandler appends a query to the user's history. Saving for an
// anonymous user is a no-op success, and an exact repeat of the user's most
// recent query is suppressed.
func SaveHistoryHandler(repo Repo) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SaveRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.QueryText == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "query text is required"})
			return
		}

		userID, exists := auth.GetUserID(c)
		if !exists {
			c.JSON(http.StatusOK, gin.H{"message": "user not logged in, history not saved"})
			return
		}

		saved, err := repo.Save(c.Request.Context(), userID, req.QueryText)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save search history"})
			return
		}

		if !saved {
			c.JSON(http.StatusOK, gin.H{"message": "duplicate search query, not saved"})
			return
		}

		c.JSON(http.StatusCreated, gin.H{"message": "search history saved successfully"})
	}
}
