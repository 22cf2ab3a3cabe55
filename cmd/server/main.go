package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/transferhub/transferhub-go/internal/api"
	"github.com/transferhub/transferhub-go/internal/factory"
	"github.com/transferhub/transferhub-go/internal/services/auth"
	"github.com/transferhub/transferhub-go/internal/storage/postgres"
	redisstorage "github.com/transferhub/transferhub-go/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Token secret is loaded once at startup and never rotated
	secret := os.Getenv("TOKEN_SECRET")
	if secret == "" {
		logger.Error("TOKEN_SECRET is required")
		os.Exit(1)
	}

	authCfg := auth.Config{TokenSecret: []byte(secret)}
	if ttl := os.Getenv("TOKEN_TTL"); ttl != "" {
		parsed, err := time.ParseDuration(ttl)
		if err != nil {
			logger.Error("invalid TOKEN_TTL", slog.String("error", err.Error()))
			os.Exit(1)
		}
		authCfg.TokenTTL = parsed
	}

	// Build factory config from environment
	cfg := factory.Config{
		AuthConfig:  authCfg,
		StorageType: os.Getenv("STORAGE_TYPE"),
	}

	switch cfg.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	case factory.StorageTypePostgres:
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			logger.Error("DATABASE_URL required when STORAGE_TYPE=postgres")
			os.Exit(1)
		}
		cfg.PostgresConfig = &postgres.Config{DSN: dsn}
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Apply schema migrations for the postgres backend
	if pgStore, ok := app.Storage.(*postgres.Storage); ok {
		if err := pgStore.RunMigrations(context.Background()); err != nil {
			logger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:          logger,
		AuthService:     app.AuthService,
		TransferService: app.TransferService,
	})

	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)

	// Create server
	serverConfig := api.DefaultServerConfig()
	server := api.NewServer(mux, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}
