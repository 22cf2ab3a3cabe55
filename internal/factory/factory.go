package factory

import (
	"errors"

	"github.com/transferhub/transferhub-go/internal/dependencies/clock"
	"github.com/transferhub/transferhub-go/internal/services/auth"
	"github.com/transferhub/transferhub-go/internal/services/transfer"
	"github.com/transferhub/transferhub-go/internal/storage"
	"github.com/transferhub/transferhub-go/internal/storage/memory"
	"github.com/transferhub/transferhub-go/internal/storage/postgres"
	redisstorage "github.com/transferhub/transferhub-go/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory   = "memory"
	StorageTypeRedis    = "redis"
	StorageTypePostgres = "postgres"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock clock.Clock

	// Services
	AuthService     *auth.Service
	TransferService *transfer.Service
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service.
	// TokenSecret is required for a production deployment.
	AuthConfig auth.Config
	// StorageType selects the storage backend ("memory", "redis" or "postgres")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// PostgresConfig holds Postgres connection settings (required if StorageType is "postgres")
	PostgresConfig *postgres.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Create storage based on type
	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	case StorageTypePostgres:
		if cfg.PostgresConfig == nil {
			return nil, errors.New("PostgresConfig required when StorageType is postgres")
		}
		pgStore, err := postgres.New(*cfg.PostgresConfig)
		if err != nil {
			return nil, err
		}
		store = pgStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory', 'redis' or 'postgres'")
	}

	clk := clock.New()

	return newWithDependencies(store, clk, cfg.AuthConfig), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, authCfg auth.Config) *App {
	authService := auth.New(store, clk, authCfg)
	transferService := transfer.New(store)

	return &App{
		Storage:         store,
		Clock:           clk,
		AuthService:     authService,
		TransferService: transferService,
	}
}
