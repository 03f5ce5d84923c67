package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/faircommit/factiondraft/internal/api/handler"
	"github.com/faircommit/factiondraft/internal/api/middleware"
	"github.com/faircommit/factiondraft/internal/services/auth"
	"github.com/faircommit/factiondraft/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	GameController *game.Controller
	AllowedOrigins []string
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	gameHandler := handler.NewGameHandler(cfg.GameController)
	playerHandler := handler.NewPlayerHandler(cfg.AuthService, cfg.GameController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)
	corsMiddleware := middleware.CORS(cfg.AllowedOrigins)
	fingerprintMiddleware := middleware.Fingerprint()

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)
	api.Use(corsMiddleware)
	api.Use(fingerprintMiddleware)

	// Game lifecycle routes (no auth, fingerprint-gated where needed)
	api.HandleFunc("/game", gameHandler.Create).Methods(http.MethodPost, http.MethodOptions)
	api.HandleFunc("/game/{id}", gameHandler.Status).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/game/{id}", gameHandler.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/game/{id}/reveal", gameHandler.Reveal).Methods(http.MethodGet, http.MethodOptions)
	api.HandleFunc("/games/mine", gameHandler.Mine).Methods(http.MethodGet, http.MethodOptions)

	// Player auth route (exchanges a password for a scoped token)
	api.HandleFunc("/game/{id}/player/{name}/auth", playerHandler.Auth).Methods(http.MethodPost, http.MethodOptions)

	// Protected player routes (require a token scoped to this game and player)
	protected := api.PathPrefix("/game/{id}/player/{name}").Subrouter()
	protected.Use(authMiddleware)
	// OPTIONS is listed so preflight requests reach the CORS middleware,
	// which answers them before auth runs
	protected.HandleFunc("/options", playerHandler.Options).Methods(http.MethodGet, http.MethodOptions)
	protected.HandleFunc("/select", playerHandler.Select).Methods(http.MethodPost, http.MethodOptions)

	// Health check endpoint
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
