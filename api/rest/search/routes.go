package search

import (
	"codeberg.org/hadithsearch/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers the search endpoint. Auth is optional: anonymous users can
// search, logged-in users additionally get their queries logged to history.
func RegisterRoutes(router *gin.RouterGroup, searcher Searcher, saver HistorySaver) {
	router.POST("/search", auth.OptionalAuthMiddleware(), SearchHandler(searcher, saver))
}
