package storage

import (
	"context"

	"github.com/faircommit/factiondraft/internal/model"
)

// GameStore defines the interface for game persistence.
//
// The game record is the unit of mutation: UpdateGame must apply the mutation
// function to a consistent snapshot and persist the result only if the record
// was not concurrently modified, so single-shot invariants (one selection,
// one credential per player) hold under concurrent access.
type GameStore interface {
	// CreateGame stores a new game, failing with model.ErrGameExists if the
	// id is already in use.
	CreateGame(ctx context.Context, game *model.Game) error

	// GetGame retrieves a game by id, failing with model.ErrGameNotFound if
	// absent. The returned record is a private copy.
	GetGame(ctx context.Context, id model.GameID) (*model.Game, error)

	// UpdateGame applies fn to the current game record and persists the
	// result atomically. If fn returns an error nothing is written and the
	// error is returned unchanged. Returns the updated record on success.
	//
	// fn may be invoked more than once if the record changes underneath an
	// optimistic implementation; it must not carry state across invocations.
	UpdateGame(ctx context.Context, id model.GameID, fn func(*model.Game) error) (*model.Game, error)

	// DeleteGame removes a game, reporting whether it existed
	DeleteGame(ctx context.Context, id model.GameID) (bool, error)

	// GameExists reports whether a game id is in use
	GameExists(ctx context.Context, id model.GameID) (bool, error)

	// ListGamesByCreator returns summaries of the games created by the
	// given caller fingerprint, oldest first.
	ListGamesByCreator(ctx context.Context, fingerprint string) ([]model.GameSummary, error)
}
