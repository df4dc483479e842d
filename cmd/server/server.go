package main

import (
	"context"
	"fmt"
	"time"

	"codeberg.org/hadithsearch/server/internal/config"
	"codeberg.org/hadithsearch/server/internal/history"
	"codeberg.org/hadithsearch/server/internal/llm"
	"codeberg.org/hadithsearch/server/internal/search"
	"codeberg.org/hadithsearch/server/internal/store"
	"codeberg.org/hadithsearch/server/internal/users"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// creates and configures a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	ctx := context.Background()

	poolConfig, err := pgxpool.ParseConfig(cfg.DBConnString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	// managed Postgres poolers allow few connections, keep our pool small
	poolConfig.MaxConns = 5
	poolConfig.MinConns = 1
	poolConfig.MaxConnLifetime = 30 * time.Minute
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	poolConfig.HealthCheckPeriod = 1 * time.Minute

	// PgBouncer in transaction mode doesn't support prepared statements,
	// so stick with the simple protocol
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	db, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database pool: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	userRepo := users.NewRepository(db)
	historyRepo := history.NewRepository(db)
	storeClient := store.NewClientFromPool(db)

	embedder := llm.NewOpenAIEmbedder(llm.OpenAIConfig{
		APIKey: cfg.OpenAIKey,
	})

	searchSvc := search.NewService(embedder, storeClient)

	router := gin.Default()

	server := &Server{
		db:          db,
		config:      cfg,
		userRepo:    userRepo,
		historyRepo: historyRepo,
		storeClient: storeClient,
		embedder:    embedder,
		searchSvc:   searchSvc,
		router:      router,
	}

	RegisterRoutes(router, server)

	return server, nil
}
