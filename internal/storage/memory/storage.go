package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/storage"
)

// Storage is an in-memory implementation of the game store. All writes run
// under a single mutex, which serializes concurrent read-modify-write cycles
// for the same game record.
type Storage struct {
	mu    sync.RWMutex
	games map[model.GameID]*model.Game
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		games: make(map[model.GameID]*model.Game),
	}
}

// Ensure Storage implements the interface
var _ storage.GameStore = (*Storage)(nil)

func (s *Storage) CreateGame(ctx context.Context, game *model.Game) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[game.ID]; ok {
		return model.ErrGameExists
	}
	s.games[game.ID] = game.Clone()
	return nil
}

func (s *Storage) GetGame(ctx context.Context, id model.GameID) (*model.Game, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return game.Clone(), nil
}

func (s *Storage) UpdateGame(ctx context.Context, id model.GameID, fn func(*model.Game) error) (*model.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	game, ok := s.games[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}

	// Mutate a copy so a failing fn leaves the stored record untouched
	updated := game.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}

	s.games[id] = updated
	return updated.Clone(), nil
}

func (s *Storage) DeleteGame(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.games[id]; !ok {
		return false, nil
	}
	delete(s.games, id)
	return true, nil
}

func (s *Storage) GameExists(ctx context.Context, id model.GameID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.games[id]
	return ok, nil
}

func (s *Storage) ListGamesByCreator(ctx context.Context, fingerprint string) ([]model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var summaries []model.GameSummary
	for _, game := range s.games {
		if game.CreatorFingerprint == fingerprint {
			summaries = append(summaries, game.Summary())
		}
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.Before(summaries[j].CreatedAt)
	})
	return summaries, nil
}
