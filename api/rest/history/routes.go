package history

import (
	"codeberg.org/hadithsearch/server/internal/auth"
	"github.com/gin-gonic/gin"
)

// registers history endpoints. Reading requires auth; saving tolerates
// anonymous callers as a no-op.
func RegisterRoutes(router *gin.RouterGroup, repo Repo) {
	router.GET("/history", auth.AuthMiddleware(), ListHistoryHandler(repo))
	router.POST("/history", auth.OptionalAuthMiddleware(), SaveHistoryHandler(repo))
}
