package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/faircommit/factiondraft/internal/api/request"
	"github.com/faircommit/factiondraft/internal/api/response"
	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/services/auth"
	"github.com/faircommit/factiondraft/internal/services/game"
)

// PlayerHandler handles player-scoped endpoints
type PlayerHandler struct {
	authService    *auth.Service
	gameController *game.Controller
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service, gameController *game.Controller) *PlayerHandler {
	return &PlayerHandler{
		authService:    authService,
		gameController: gameController,
	}
}

// Auth handles POST /api/game/{id}/player/{name}/auth
func (h *PlayerHandler) Auth(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.GameID(vars["id"])
	name := vars["name"]

	var req request.AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, err := h.authService.Authenticate(r.Context(), id, name, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromResult(result))
}

// Options handles GET /api/game/{id}/player/{name}/options
func (h *PlayerHandler) Options(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.GameID(vars["id"])
	name := vars["name"]

	g, player, err := h.gameController.PlayerOptions(r.Context(), id, name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.OptionsFromModel(g, player))
}

// Select handles POST /api/game/{id}/player/{name}/select
func (h *PlayerHandler) Select(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := model.GameID(vars["id"])
	name := vars["name"]

	var req request.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.FactionID == "" {
		WriteError(w, NewInvalidRequestError("faction_id is required"))
		return
	}

	result, err := h.gameController.Select(r.Context(), id, name, model.FactionID(req.FactionID))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SelectFromResult(result))
}
