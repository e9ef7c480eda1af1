package main

import (
	"context"
	"os"

	"utm-som/internal/bootstrap"
	"utm-som/internal/config"
	"utm-som/internal/observability"
	"utm-som/internal/server"

	"github.com/gin-gonic/gin"
)

func main() {
	logger := observability.NewLogger()
	defer logger.Sync()
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal(ctx, "failed to load configuration", err)
	}

	if os.Getenv("GO_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, err := bootstrap.Initialize(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "failed to initialize dependencies", err)
	}

	srv := server.New(cfg, deps, logger)
	srv.Setup()

	if err := srv.Start(ctx); err != nil {
		logger.Fatal(ctx, "failed to start server", err)
	}

	if err := srv.WaitForShutdown(ctx); err != nil {
		logger.Error(ctx, "shutdown failed", err)
		os.Exit(1)
	}
}
