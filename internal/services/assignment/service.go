// Package assignment implements the faction assignment engine: dealing
// random, disjoint hands from the catalog and pre-registering each hand
// behind an assignment commitment before any player can look.
package assignment

import (
	"log/slog"

	"github.com/faircommit/factiondraft/internal/catalog"
	"github.com/faircommit/factiondraft/internal/commit"
	"github.com/faircommit/factiondraft/internal/dependencies/random"
	"github.com/faircommit/factiondraft/internal/model"
)

// Service deals faction hands at game creation
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new assignment service
func New(random random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: random,
		logger: logger,
	}
}

// Assign shuffles the full catalog and slices it into contiguous,
// non-overlapping hands of factionsPerPlayer in player order. Each player's
// assignment commitment is computed immediately, so the deal is bound before
// anyone observes their hand. Catalog entries beyond the last hand are
// unused for this game.
//
// Fails with model.ErrCatalogTooSmall, before shuffling, if the catalog
// cannot supply enough distinct factions.
func (s *Service) Assign(playerNames []string, factionsPerPlayer int, cat *catalog.Catalog) ([]model.Player, error) {
	need := len(playerNames) * factionsPerPlayer
	if need > cat.Size() {
		s.logger.Warn("catalog too small for requested deal",
			slog.Int("needed", need),
			slog.Int("catalog_size", cat.Size()),
		)
		return nil, model.ErrCatalogTooSmall
	}

	shuffled := cat.Factions()
	random.Shuffle(s.random, len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	players := make([]model.Player, len(playerNames))
	for i, name := range playerNames {
		hand := make([]model.Faction, factionsPerPlayer)
		copy(hand, shuffled[i*factionsPerPlayer:(i+1)*factionsPerPlayer])

		player := model.Player{
			Name:     name,
			Factions: hand,
		}

		player.AssignmentSalt = commit.NewSalt()
		player.AssignmentCommitment = commit.Commit(
			commit.AssignmentSubject(name, player.FactionNames()),
			player.AssignmentSalt,
		)

		players[i] = player
	}

	return players, nil
}
