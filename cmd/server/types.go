package main

import (
	"codeberg.org/hadithsearch/server/internal/config"
	"codeberg.org/hadithsearch/server/internal/history"
	"codeberg.org/hadithsearch/server/internal/llm"
	"codeberg.org/hadithsearch/server/internal/search"
	"codeberg.org/hadithsearch/server/internal/store"
	"codeberg.org/hadithsearch/server/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// holds all dependencies and state for the API server
type Server struct {
	db          *pgxpool.Pool
	config      *config.Config
	userRepo    *users.Repository
	historyRepo *history.Repository
	storeClient *store.Client
	embedder    *llm.OpenAIEmbedder
	searchSvc   *search.Service
	router      *gin.Engine
}
