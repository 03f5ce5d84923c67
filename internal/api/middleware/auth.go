package middleware

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/faircommit/factiondraft/internal/api/apierr"
	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/services/auth"
)

// Auth creates authentication middleware for player-scoped routes. The route
// must carry {id} and {name} vars; the bearer token has to be scoped to
// exactly that game and player.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			vars := mux.Vars(r)
			gameID := model.GameID(vars["id"])
			playerName := vars["name"]

			if err := authService.CheckToken(token, gameID, playerName); err != nil {
				apierr.WriteError(w, err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the bearer token from the Authorization header
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
