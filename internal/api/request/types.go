package request

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	Players           []string `json:"players"`
	FactionsPerPlayer int      `json:"factions_per_player"`
	GameID            string   `json:"game_id,omitempty"`
}

// AuthRequest is the request body for player authentication
type AuthRequest struct {
	Password string `json:"password"`
}

// SelectRequest is the request body for selecting a faction
type SelectRequest struct {
	FactionID string `json:"faction_id"`
}
