package response

import (
	"fmt"
	"net/url"
	"time"

	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/services/auth"
	"github.com/faircommit/factiondraft/internal/services/game"
	"github.com/faircommit/factiondraft/internal/verify"
)

// Faction represents a faction in API responses
type Faction struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Set  string `json:"set"`
}

// FactionFromModel converts a model.Faction to a response Faction
func FactionFromModel(f model.Faction) Faction {
	return Faction{
		ID:   string(f.ID),
		Name: f.Name,
		Set:  f.Set,
	}
}

// CreatedPlayer is one player's entry in a game creation response
type CreatedPlayer struct {
	Name                 string `json:"name"`
	Link                 string `json:"link"`
	AssignmentCommitment string `json:"assignment_commitment"`
}

// CreateGameResponse is the response for creating a game
type CreateGameResponse struct {
	GameID            string          `json:"game_id"`
	FactionsPerPlayer int             `json:"factions_per_player"`
	Players           []CreatedPlayer `json:"players"`
}

// CreateGameFromModel converts a freshly created game, including per-player
// join links for the creator to hand out
func CreateGameFromModel(g *model.Game) CreateGameResponse {
	players := make([]CreatedPlayer, len(g.Players))
	for i, p := range g.Players {
		players[i] = CreatedPlayer{
			Name: p.Name,
			Link: fmt.Sprintf("/player.html?game=%s&player=%s",
				url.QueryEscape(string(g.ID)), url.QueryEscape(p.Name)),
			AssignmentCommitment: p.AssignmentCommitment,
		}
	}
	return CreateGameResponse{
		GameID:            string(g.ID),
		FactionsPerPlayer: g.FactionsPerPlayer,
		Players:           players,
	}
}

// PlayerStatus is the public view of one player
type PlayerStatus struct {
	Name                 string `json:"name"`
	HasSetCredential     bool   `json:"has_set_credential"`
	HasSelected          bool   `json:"has_selected"`
	AssignmentCommitment string `json:"assignment_commitment"`
	SelectionCommitment  string `json:"selection_commitment,omitempty"`
}

// StatusResponse is the public view of a game. Hands, selections and salts
// stay hidden until the game reveals.
type StatusResponse struct {
	GameID            string         `json:"game_id"`
	CreatedAt         time.Time      `json:"created_at"`
	FactionsPerPlayer int            `json:"factions_per_player"`
	AllSelected       bool           `json:"all_selected"`
	Revealed          bool           `json:"revealed"`
	Players           []PlayerStatus `json:"players"`
}

// StatusFromModel converts model.Game to its public projection
func StatusFromModel(g *model.Game) StatusResponse {
	players := make([]PlayerStatus, len(g.Players))
	for i, p := range g.Players {
		players[i] = PlayerStatus{
			Name:                 p.Name,
			HasSetCredential:     p.HasSetCredential,
			HasSelected:          p.HasSelected(),
			AssignmentCommitment: p.AssignmentCommitment,
			SelectionCommitment:  p.SelectionCommitment,
		}
	}
	return StatusResponse{
		GameID:            string(g.ID),
		CreatedAt:         g.CreatedAt,
		FactionsPerPlayer: g.FactionsPerPlayer,
		AllSelected:       g.AllSelected,
		Revealed:          g.Revealed,
		Players:           players,
	}
}

// AuthResponse is the response for player authentication
type AuthResponse struct {
	Token  string `json:"token"`
	Action string `json:"action"`
}

// AuthResponseFromResult converts an auth.Result
func AuthResponseFromResult(r *auth.Result) AuthResponse {
	return AuthResponse{
		Token:  r.Token,
		Action: string(r.Action),
	}
}

// OptionsResponse is a player's private view of their own hand. Salts never
// appear here; they leave the system only through the reveal projection.
type OptionsResponse struct {
	GameID               string    `json:"game_id"`
	Player               string    `json:"player"`
	Factions             []Faction `json:"factions"`
	AssignmentCommitment string    `json:"assignment_commitment"`
	HasSelected          bool      `json:"has_selected"`
	SelectedFaction      *Faction  `json:"selected_faction,omitempty"`
}

// OptionsFromModel converts a player's hand to their private view
func OptionsFromModel(g *model.Game, p *model.Player) OptionsResponse {
	factions := make([]Faction, len(p.Factions))
	for i, f := range p.Factions {
		factions[i] = FactionFromModel(f)
	}
	resp := OptionsResponse{
		GameID:               string(g.ID),
		Player:               p.Name,
		Factions:             factions,
		AssignmentCommitment: p.AssignmentCommitment,
		HasSelected:          p.HasSelected(),
	}
	if p.SelectedFaction != nil {
		f := FactionFromModel(*p.SelectedFaction)
		resp.SelectedFaction = &f
	}
	return resp
}

// SelectResponse is the response for a faction selection
type SelectResponse struct {
	SelectionCommitment string `json:"selection_commitment"`
	AllSelected         bool   `json:"all_selected"`
	Revealed            bool   `json:"revealed"`
}

// SelectFromResult converts a game.SelectResult
func SelectFromResult(r *game.SelectResult) SelectResponse {
	return SelectResponse{
		SelectionCommitment: r.SelectionCommitment,
		AllSelected:         r.AllSelected,
		Revealed:            r.Revealed,
	}
}

// RevealFromModel converts a revealed game into the transcript format the
// verify package checks. Must only be called once the game has revealed.
func RevealFromModel(g *model.Game) verify.Reveal {
	players := make([]verify.RevealedPlayer, len(g.Players))
	for i, p := range g.Players {
		factions := make([]verify.RevealedFaction, len(p.Factions))
		for j, f := range p.Factions {
			factions[j] = revealedFaction(f)
		}
		rp := verify.RevealedPlayer{
			Name:                 p.Name,
			Factions:             factions,
			AssignmentSalt:       p.AssignmentSalt,
			AssignmentCommitment: p.AssignmentCommitment,
			SelectionSalt:        p.SelectionSalt,
			SelectionCommitment:  p.SelectionCommitment,
		}
		if p.SelectedFaction != nil {
			f := revealedFaction(*p.SelectedFaction)
			rp.SelectedFaction = &f
		}
		players[i] = rp
	}
	return verify.Reveal{
		GameID:   string(g.ID),
		Players:  players,
		Revealed: g.Revealed,
	}
}

func revealedFaction(f model.Faction) verify.RevealedFaction {
	return verify.RevealedFaction{
		ID:   string(f.ID),
		Name: f.Name,
		Set:  f.Set,
	}
}

// GameSummary represents a game in list responses
type GameSummary struct {
	ID          string    `json:"id"`
	CreatedAt   time.Time `json:"created_at"`
	PlayerCount int       `json:"player_count"`
	Revealed    bool      `json:"revealed"`
}

// GameSummaryFromModel converts model.GameSummary
func GameSummaryFromModel(s model.GameSummary) GameSummary {
	return GameSummary{
		ID:          string(s.ID),
		CreatedAt:   s.CreatedAt,
		PlayerCount: s.PlayerCount,
		Revealed:    s.Revealed,
	}
}
