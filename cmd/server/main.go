package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/faircommit/factiondraft/internal/api"
	"github.com/faircommit/factiondraft/internal/config"
	"github.com/faircommit/factiondraft/internal/factory"
	"github.com/faircommit/factiondraft/internal/services/auth"
	"github.com/faircommit/factiondraft/internal/services/game"
	redisstorage "github.com/faircommit/factiondraft/internal/storage/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Build factory config from environment
	factoryCfg := factory.Config{
		CatalogPath: cfg.CatalogPath,
		Logger:      logger,
		StorageType: cfg.StorageType,
		AuthConfig: auth.Config{
			TokenDuration: cfg.TokenDuration,
			Secret:        []byte(cfg.TokenSecret),
		},
		GameConfig: game.Config{
			GameLimit: cfg.GameLimit,
		},
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		if cfg.RedisURL == "" {
			logger.Error("FDRAFT_REDIS_URL required when FDRAFT_STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = cfg.RedisURL
		factoryCfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(factoryCfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("faction catalog loaded", slog.Int("factions", app.Catalog.Size()))

	// Create API router
	apiRouter := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		GameController: app.GameController,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	// Combine with static frontend if one is available
	mux := http.NewServeMux()
	mux.Handle("/api/", apiRouter)
	if staticDir := findStaticDir(cfg.StaticDir); staticDir != "" {
		logger.Info("serving static files", slog.String("dir", staticDir))
		mux.Handle("/", http.FileServer(http.Dir(staticDir)))
	}

	// Create server
	serverConfig := api.DefaultServerConfig()
	serverConfig.Host = cfg.Host
	serverConfig.Port = cfg.Port
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

// findStaticDir looks for the static files directory
func findStaticDir(configured string) string {
	candidates := []string{"public", "./public"}
	if configured != "" {
		candidates = []string{configured}
	}

	for _, dir := range candidates {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}

	return ""
}
