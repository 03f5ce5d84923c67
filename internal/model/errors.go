package model

import "errors"

// Common errors used across the application
var (
	// Game lookup / lifecycle errors
	ErrGameNotFound      = errors.New("game not found")
	ErrGameExists        = errors.New("game id already in use")
	ErrGameLimitExceeded = errors.New("game limit reached for this creator")
	ErrNotRevealed       = errors.New("not all players have selected yet")

	// Game creation validation errors
	ErrTooFewPlayers            = errors.New("need at least 2 players")
	ErrTooManyPlayers           = errors.New("too many players")
	ErrDuplicatePlayerName      = errors.New("player names must be unique")
	ErrInvalidFactionsPerPlayer = errors.New("factions per player must be 3 or 4")
	ErrInvalidGameID            = errors.New("game id can only contain letters, numbers, hyphens, and underscores")
	ErrCatalogTooSmall          = errors.New("not enough factions in the catalog")

	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrAlreadySelected = errors.New("player has already selected a faction")
	ErrInvalidFaction  = errors.New("faction is not in this player's options")
)
