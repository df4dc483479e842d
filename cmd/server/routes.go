package main

import (
	"os"
	"strings"
	"time"

	"codeberg.org/hadithsearch/server/api/rest/auth"
	"codeberg.org/hadithsearch/server/api/rest/health"
	"codeberg.org/hadithsearch/server/api/rest/history"
	"codeberg.org/hadithsearch/server/api/rest/search"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// sets up all API routes and middleware
func RegisterRoutes(router *gin.Engine, server *Server) {
	router.Use(corsMiddleware())
	router.GET("/health", health.Handler)

	v1 := router.Group("/api/v1")

	{
		v1.GET("/ping", health.PingHandler)

		auth.RegisterRoutes(v1, server.userRepo)
		search.RegisterRoutes(v1, server.searchSvc, server.historyRepo)
		history.RegisterRoutes(v1, server.historyRepo)
	}
}

func corsMiddleware() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}

	if env := os.Getenv("ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
