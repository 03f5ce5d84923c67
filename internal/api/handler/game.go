package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/faircommit/factiondraft/internal/api/middleware"
	"github.com/faircommit/factiondraft/internal/api/request"
	"github.com/faircommit/factiondraft/internal/api/response"
	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/services/game"
)

// GameHandler handles game lifecycle endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{
		gameController: gameController,
	}
}

// Create handles POST /api/game
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	g, err := h.gameController.CreateGame(r.Context(), game.CreateParams{
		PlayerNames:        req.Players,
		FactionsPerPlayer:  req.FactionsPerPlayer,
		CustomID:           req.GameID,
		CreatorFingerprint: middleware.GetFingerprint(r.Context()),
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateGameFromModel(g))
}

// Status handles GET /api/game/{id}
func (h *GameHandler) Status(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGame(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.StatusFromModel(g))
}

// Reveal handles GET /api/game/{id}/reveal
func (h *GameHandler) Reveal(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.Reveal(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.RevealFromModel(g))
}

// Delete handles DELETE /api/game/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := model.GameID(mux.Vars(r)["id"])

	err := h.gameController.DeleteGame(r.Context(), id, middleware.GetFingerprint(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Mine handles GET /api/games/mine
func (h *GameHandler) Mine(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.gameController.ListByCreator(r.Context(), middleware.GetFingerprint(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	games := make([]response.GameSummary, len(summaries))
	for i, s := range summaries {
		games[i] = response.GameSummaryFromModel(s)
	}

	response.JSON(w, http.StatusOK, games)
}
