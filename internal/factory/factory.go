package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/partyroom/partyroom/internal/dependencies/clock"
	"github.com/partyroom/partyroom/internal/dependencies/random"
	"github.com/partyroom/partyroom/internal/events"
	"github.com/partyroom/partyroom/internal/services/registry"
	"github.com/partyroom/partyroom/internal/services/room"
	"github.com/partyroom/partyroom/internal/storage"
	"github.com/partyroom/partyroom/internal/storage/memory"
	redisstorage "github.com/partyroom/partyroom/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	Storage storage.Storage

	Clock  clock.Clock
	Random random.Random

	Events         *events.Manager
	Registry       *registry.Service
	RoomController *room.Controller
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// RegistryConfig holds registry policy (max rooms, name uniqueness)
	RegistryConfig registry.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

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
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	return newWithDependencies(store, clock.New(), random.New(), cfg.RegistryConfig, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, regCfg registry.Config, logger *slog.Logger) *App {
	eventManager := events.NewManager(logger)
	registryService := registry.New(store, clk, rnd, regCfg, logger)
	roomController := room.NewController(store, eventManager, clk, logger)

	return &App{
		Storage:        store,
		Clock:          clk,
		Random:         rnd,
		Events:         eventManager,
		Registry:       registryService,
		RoomController: roomController,
	}
}
