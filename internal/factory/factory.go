package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/faircommit/factiondraft/internal/catalog"
	"github.com/faircommit/factiondraft/internal/dependencies/clock"
	"github.com/faircommit/factiondraft/internal/dependencies/random"
	"github.com/faircommit/factiondraft/internal/services/assignment"
	"github.com/faircommit/factiondraft/internal/services/auth"
	"github.com/faircommit/factiondraft/internal/services/game"
	"github.com/faircommit/factiondraft/internal/storage"
	"github.com/faircommit/factiondraft/internal/storage/memory"
	redisstorage "github.com/faircommit/factiondraft/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.GameStore

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Domain
	Catalog *catalog.Catalog

	// Services
	AssignmentService *assignment.Service
	GameController    *game.Controller
	AuthService       *auth.Service
}

// Config holds configuration for the application factory
type Config struct {
	// CatalogPath overrides the embedded faction catalog (optional)
	CatalogPath string
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// GameConfig holds configuration for the game controller (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig game.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// Create storage based on type
	var store storage.GameStore
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

	// Load the faction catalog
	var cat *catalog.Catalog
	var err error
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFromFile(cfg.CatalogPath)
	} else {
		cat, err = catalog.Load()
	}
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	// Default only the zero fields so a caller-supplied secret survives
	authCfg := cfg.AuthConfig
	if authCfg.TokenDuration == 0 {
		authCfg.TokenDuration = auth.DefaultConfig().TokenDuration
	}
	gameCfg := cfg.GameConfig
	if gameCfg.GameLimit == 0 {
		gameCfg.GameLimit = game.DefaultConfig().GameLimit
	}

	return newWithDependencies(store, cat, clk, rnd, authCfg, gameCfg, logger), nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(
	store storage.GameStore,
	cat *catalog.Catalog,
	clk clock.Clock,
	rnd random.Random,
	authCfg auth.Config,
	gameCfg game.Config,
	logger *slog.Logger,
) *App {
	assignmentService := assignment.New(rnd, logger)
	gameController := game.NewController(store, assignmentService, cat, clk, rnd, gameCfg, logger)
	authService := auth.New(store, clk, authCfg, logger)

	return &App{
		Storage:           store,
		Clock:             clk,
		Random:            rnd,
		Catalog:           cat,
		AssignmentService: assignmentService,
		GameController:    gameController,
		AuthService:       authService,
	}
}
