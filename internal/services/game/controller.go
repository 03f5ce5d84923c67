// Package game implements the per-game state machine: creation (which runs
// the assignment engine exactly once), single-shot selection, the phase
// flags derived from it, and the projections served to callers.
package game

import (
	"context"
	"errors"
	"log/slog"
	"regexp"

	"github.com/faircommit/factiondraft/internal/catalog"
	"github.com/faircommit/factiondraft/internal/commit"
	"github.com/faircommit/factiondraft/internal/dependencies/clock"
	"github.com/faircommit/factiondraft/internal/dependencies/random"
	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/services/assignment"
	"github.com/faircommit/factiondraft/internal/storage"
)

// gameIDPattern constrains caller-supplied game ids
var gameIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

const (
	// generatedIDLength is the length of generated game ids (4 random
	// bytes, hex encoded)
	generatedIDLength = 8
	hexAlphabet       = "0123456789abcdef"

	// generateIDAttempts bounds retries when a generated id collides
	generateIDAttempts = 5
)

// Config holds configuration for the game controller
type Config struct {
	// GameLimit caps concurrently open games per creator fingerprint.
	// Zero disables the limit.
	GameLimit int
}

// DefaultConfig returns default game controller configuration
func DefaultConfig() Config {
	return Config{
		GameLimit: 2,
	}
}

// Controller manages game lifecycle and the selection state machine
type Controller struct {
	store    storage.GameStore
	assigner *assignment.Service
	catalog  *catalog.Catalog
	clock    clock.Clock
	random   random.Random
	cfg      Config
	logger   *slog.Logger
}

// NewController creates a new game controller
func NewController(
	store storage.GameStore,
	assigner *assignment.Service,
	cat *catalog.Catalog,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:    store,
		assigner: assigner,
		catalog:  cat,
		clock:    clk,
		random:   rnd,
		cfg:      cfg,
		logger:   logger,
	}
}

// CreateParams are the inputs to CreateGame
type CreateParams struct {
	PlayerNames       []string
	FactionsPerPlayer int
	// CustomID is an optional caller-supplied game id. If empty, an id is
	// generated.
	CustomID string
	// CreatorFingerprint identifies the creating caller for the game
	// limit and deletion authorization. May be empty, in which case the
	// limit is not applied.
	CreatorFingerprint string
}

// CreateGame validates the request, deals all hands with their assignment
// commitments, and stores the new game. The assignment engine runs exactly
// here, before any player can authenticate.
func (c *Controller) CreateGame(ctx context.Context, params CreateParams) (*model.Game, error) {
	if err := c.validate(params); err != nil {
		return nil, err
	}

	if params.CreatorFingerprint != "" && c.cfg.GameLimit > 0 {
		open, err := c.store.ListGamesByCreator(ctx, params.CreatorFingerprint)
		if err != nil {
			return nil, err
		}
		if len(open) >= c.cfg.GameLimit {
			return nil, model.ErrGameLimitExceeded
		}
	}

	// Reject a taken custom id before dealing anything
	if params.CustomID != "" {
		exists, err := c.store.GameExists(ctx, model.GameID(params.CustomID))
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, model.ErrGameExists
		}
	}

	players, err := c.assigner.Assign(params.PlayerNames, params.FactionsPerPlayer, c.catalog)
	if err != nil {
		return nil, err
	}

	game := &model.Game{
		Players:            players,
		FactionsPerPlayer:  params.FactionsPerPlayer,
		CreatedAt:          c.clock.Now(),
		CreatorFingerprint: params.CreatorFingerprint,
	}

	if params.CustomID != "" {
		game.ID = model.GameID(params.CustomID)
		if err := c.store.CreateGame(ctx, game); err != nil {
			return nil, err
		}
	} else if err := c.createWithGeneratedID(ctx, game); err != nil {
		return nil, err
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.Int("player_count", len(game.Players)),
		slog.Int("factions_per_player", game.FactionsPerPlayer),
	)

	return game, nil
}

// createWithGeneratedID retries id generation on the unlikely collision
func (c *Controller) createWithGeneratedID(ctx context.Context, game *model.Game) error {
	var err error
	for i := 0; i < generateIDAttempts; i++ {
		game.ID = model.GameID(c.random.String(generatedIDLength, hexAlphabet))
		err = c.store.CreateGame(ctx, game)
		if !errors.Is(err, model.ErrGameExists) {
			return err
		}
	}
	return err
}

func (c *Controller) validate(params CreateParams) error {
	if len(params.PlayerNames) < model.MinPlayers {
		return model.ErrTooFewPlayers
	}
	if len(params.PlayerNames) > model.MaxPlayers {
		return model.ErrTooManyPlayers
	}

	seen := make(map[string]bool, len(params.PlayerNames))
	for _, name := range params.PlayerNames {
		if name == "" || seen[name] {
			return model.ErrDuplicatePlayerName
		}
		seen[name] = true
	}

	if params.FactionsPerPlayer < model.MinFactionsPerPlayer ||
		params.FactionsPerPlayer > model.MaxFactionsPerPlayer {
		return model.ErrInvalidFactionsPerPlayer
	}

	if params.CustomID != "" && !gameIDPattern.MatchString(params.CustomID) {
		return model.ErrInvalidGameID
	}

	return nil
}

// GetGame retrieves a game by id
func (c *Controller) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	return c.store.GetGame(ctx, id)
}

// PlayerOptions returns the game together with the named player, for the
// private per-player projection. The caller must already have passed the
// credential gate for this (game, player) pair.
func (c *Controller) PlayerOptions(ctx context.Context, id model.GameID, playerName string) (*model.Game, *model.Player, error) {
	game, err := c.store.GetGame(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	player := game.Player(playerName)
	if player == nil {
		return nil, nil, model.ErrPlayerNotFound
	}
	return game, player, nil
}

// SelectResult is the outcome of a successful selection
type SelectResult struct {
	SelectionCommitment string
	AllSelected         bool
	Revealed            bool
}

// Select records a player's one-time faction choice. The faction must come
// from the player's own dealt hand, a second attempt fails without touching
// the stored selection, and the commitment is stored atomically with the
// choice and salt. When the last selection lands, the game flips to
// all-selected and revealed in the same write.
func (c *Controller) Select(ctx context.Context, id model.GameID, playerName string, factionID model.FactionID) (*SelectResult, error) {
	updated, err := c.store.UpdateGame(ctx, id, func(g *model.Game) error {
		player := g.Player(playerName)
		if player == nil {
			return model.ErrPlayerNotFound
		}
		if player.HasSelected() {
			return model.ErrAlreadySelected
		}

		faction, ok := player.FactionByID(factionID)
		if !ok {
			return model.ErrInvalidFaction
		}

		salt := commit.NewSalt()
		player.SelectedFaction = &faction
		player.SelectionSalt = salt
		player.SelectionCommitment = commit.Commit(
			commit.SelectionSubject(playerName, faction.Name),
			salt,
		)

		// Reveal is automatic and monotonic: the instant the last
		// selection lands, both flags flip and never revert.
		g.AllSelected = g.EveryPlayerSelected()
		if g.AllSelected {
			g.Revealed = true
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("player selected",
		slog.String("game_id", string(id)),
		slog.String("player", playerName),
		slog.Bool("all_selected", updated.AllSelected),
	)

	return &SelectResult{
		SelectionCommitment: updated.Player(playerName).SelectionCommitment,
		AllSelected:         updated.AllSelected,
		Revealed:            updated.Revealed,
	}, nil
}

// Reveal returns the game for the reveal projection, servable only once all
// selections are in. This is the only path that exposes salts.
func (c *Controller) Reveal(ctx context.Context, id model.GameID) (*model.Game, error) {
	game, err := c.store.GetGame(ctx, id)
	if err != nil {
		return nil, err
	}
	if !game.Revealed {
		return nil, model.ErrNotRevealed
	}
	return game, nil
}

// ListByCreator returns summaries of a creator's games, oldest first
func (c *Controller) ListByCreator(ctx context.Context, fingerprint string) ([]model.GameSummary, error) {
	return c.store.ListGamesByCreator(ctx, fingerprint)
}

// DeleteGame removes a game at its creator's discretion. Callers whose
// fingerprint does not match the creator get not-found semantics, so
// non-creators cannot probe for game ids. A deleted id is simply absent;
// nothing ever resurrects it.
func (c *Controller) DeleteGame(ctx context.Context, id model.GameID, fingerprint string) error {
	game, err := c.store.GetGame(ctx, id)
	if err != nil {
		return err
	}

	if game.CreatorFingerprint == "" || game.CreatorFingerprint != fingerprint {
		return model.ErrGameNotFound
	}

	deleted, err := c.store.DeleteGame(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return model.ErrGameNotFound
	}

	c.logger.Info("game deleted",
		slog.String("game_id", string(id)),
	)
	return nil
}
