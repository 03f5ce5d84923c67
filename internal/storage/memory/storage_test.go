package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/faircommit/factiondraft/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) newGame(id string, fingerprint string) *model.Game {
	return &model.Game{
		ID:                model.GameID(id),
		FactionsPerPlayer: 3,
		Players: []model.Player{
			{Name: "Alice", Factions: []model.Faction{{ID: "arborec", Name: "The Arborec", Set: "base"}}},
			{Name: "Bob", Factions: []model.Faction{{ID: "sol", Name: "The Federation of Sol", Set: "base"}}},
		},
		CreatedAt:          time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		CreatorFingerprint: fingerprint,
	}
}

func (s *StorageSuite) TestCreateAndGetGame() {
	game := s.newGame("abc123", "1.2.3.4")
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))

	got, err := s.storage.GetGame(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal(game.ID, got.ID)
	s.Len(got.Players, 2)
}

func (s *StorageSuite) TestCreateGameRejectsDuplicateID() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("abc123", "1.2.3.4")))

	err := s.storage.CreateGame(s.ctx, s.newGame("abc123", "5.6.7.8"))
	s.ErrorIs(err, model.ErrGameExists)
}

func (s *StorageSuite) TestGetGameNotFound() {
	_, err := s.storage.GetGame(s.ctx, "missing")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestGetGameReturnsACopy() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("abc123", "")))

	got, err := s.storage.GetGame(s.ctx, "abc123")
	s.Require().NoError(err)
	got.Players[0].Name = "Mallory"

	again, err := s.storage.GetGame(s.ctx, "abc123")
	s.Require().NoError(err)
	s.Equal("Alice", again.Players[0].Name)
}

func (s *StorageSuite) TestUpdateGameAppliesMutation() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("abc123", "")))

	updated, err := s.storage.UpdateGame(s.ctx, "abc123", func(g *model.Game) error {
		g.Player("Alice").HasSetCredential = true
		return nil
	})
	s.Require().NoError(err)
	s.True(updated.Player("Alice").HasSetCredential)

	got, err := s.storage.GetGame(s.ctx, "abc123")
	s.Require().NoError(err)
	s.True(got.Player("Alice").HasSetCredential)
}

func (s *StorageSuite) TestUpdateGameErrorLeavesRecordUntouched() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("abc123", "")))

	boom := errors.New("boom")
	_, err := s.storage.UpdateGame(s.ctx, "abc123", func(g *model.Game) error {
		g.Player("Alice").HasSetCredential = true
		return boom
	})
	s.ErrorIs(err, boom)

	got, err := s.storage.GetGame(s.ctx, "abc123")
	s.Require().NoError(err)
	s.False(got.Player("Alice").HasSetCredential)
}

func (s *StorageSuite) TestUpdateGameNotFound() {
	_, err := s.storage.UpdateGame(s.ctx, "missing", func(g *model.Game) error {
		return nil
	})
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *StorageSuite) TestUpdateGameSerializesConcurrentWriters() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("abc123", "")))

	// Each writer marks one selection; both must land
	var wg sync.WaitGroup
	for _, name := range []string{"Alice", "Bob"} {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			_, err := s.storage.UpdateGame(s.ctx, "abc123", func(g *model.Game) error {
				p := g.Player(name)
				f := p.Factions[0]
				p.SelectedFaction = &f
				return nil
			})
			s.NoError(err)
		}(name)
	}
	wg.Wait()

	got, err := s.storage.GetGame(s.ctx, "abc123")
	s.Require().NoError(err)
	s.True(got.EveryPlayerSelected())
}

func (s *StorageSuite) TestDeleteGame() {
	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("abc123", "")))

	deleted, err := s.storage.DeleteGame(s.ctx, "abc123")
	s.Require().NoError(err)
	s.True(deleted)

	_, err = s.storage.GetGame(s.ctx, "abc123")
	s.ErrorIs(err, model.ErrGameNotFound)

	deleted, err = s.storage.DeleteGame(s.ctx, "abc123")
	s.Require().NoError(err)
	s.False(deleted)
}

func (s *StorageSuite) TestGameExists() {
	exists, err := s.storage.GameExists(s.ctx, "abc123")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.storage.CreateGame(s.ctx, s.newGame("abc123", "")))

	exists, err = s.storage.GameExists(s.ctx, "abc123")
	s.Require().NoError(err)
	s.True(exists)
}

func (s *StorageSuite) TestListGamesByCreator() {
	g1 := s.newGame("first", "1.2.3.4")
	g2 := s.newGame("second", "1.2.3.4")
	g2.CreatedAt = g1.CreatedAt.Add(time.Hour)
	g3 := s.newGame("other", "9.9.9.9")

	s.Require().NoError(s.storage.CreateGame(s.ctx, g1))
	s.Require().NoError(s.storage.CreateGame(s.ctx, g2))
	s.Require().NoError(s.storage.CreateGame(s.ctx, g3))

	summaries, err := s.storage.ListGamesByCreator(s.ctx, "1.2.3.4")
	s.Require().NoError(err)
	s.Require().Len(summaries, 2)
	s.Equal(model.GameID("first"), summaries[0].ID)
	s.Equal(model.GameID("second"), summaries[1].ID)
	s.Equal(2, summaries[0].PlayerCount)
}
