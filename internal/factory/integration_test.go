package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/faircommit/factiondraft/internal/commit"
	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/services/auth"
	"github.com/faircommit/factiondraft/internal/services/game"
	"github.com/faircommit/factiondraft/internal/verify"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.ctx = context.Background()
}

// Test: complete draft flow from creation through reveal and audit
func (s *IntegrationSuite) TestCompleteDraftFlow() {
	// Step 1: Create a game for Alice and Bob
	g, err := s.app.GameController.CreateGame(s.ctx, game.CreateParams{
		PlayerNames:        []string{"Alice", "Bob"},
		FactionsPerPlayer:  3,
		CreatorFingerprint: "10.0.0.1",
	})
	s.Require().NoError(err)
	s.Require().Len(g.Players, 2)
	s.False(g.AllSelected)
	s.False(g.Revealed)

	// Step 2: Both players set their credentials on first visit
	aliceAuth, err := s.app.AuthService.Authenticate(s.ctx, g.ID, "Alice", "abcd")
	s.Require().NoError(err)
	s.Equal(auth.ActionCredentialSet, aliceAuth.Action)

	bobAuth, err := s.app.AuthService.Authenticate(s.ctx, g.ID, "Bob", "hunter2")
	s.Require().NoError(err)
	s.Equal(auth.ActionCredentialSet, bobAuth.Action)

	// Step 3: Tokens check out for their own scope only
	s.NoError(s.app.AuthService.CheckToken(aliceAuth.Token, g.ID, "Alice"))
	s.ErrorIs(s.app.AuthService.CheckToken(aliceAuth.Token, g.ID, "Bob"), auth.ErrTokenScope)

	// Step 4: Alice views her hand and picks from it
	stored, alice, err := s.app.GameController.PlayerOptions(s.ctx, g.ID, "Alice")
	s.Require().NoError(err)
	s.Require().Len(alice.Factions, 3)
	s.True(commit.Verify(
		alice.AssignmentCommitment,
		commit.AssignmentSubject("Alice", alice.FactionNames()),
		alice.AssignmentSalt,
	))

	result, err := s.app.GameController.Select(s.ctx, g.ID, "Alice", alice.Factions[0].ID)
	s.Require().NoError(err)
	s.False(result.AllSelected)

	// Reveal stays closed while Bob is still choosing
	_, err = s.app.GameController.Reveal(s.ctx, g.ID)
	s.ErrorIs(err, model.ErrNotRevealed)

	// Step 5: Bob picks; the game flips to revealed in the same write
	_, bob, err := s.app.GameController.PlayerOptions(s.ctx, g.ID, "Bob")
	s.Require().NoError(err)
	result, err = s.app.GameController.Select(s.ctx, g.ID, "Bob", bob.Factions[1].ID)
	s.Require().NoError(err)
	s.True(result.AllSelected)
	s.True(result.Revealed)

	// Step 6: Anyone can fetch the reveal and audit the transcript
	revealed, err := s.app.GameController.Reveal(s.ctx, g.ID)
	s.Require().NoError(err)

	transcript := verify.Reveal{GameID: string(revealed.ID), Revealed: true}
	for _, p := range revealed.Players {
		rp := verify.RevealedPlayer{
			Name:                 p.Name,
			AssignmentSalt:       p.AssignmentSalt,
			AssignmentCommitment: p.AssignmentCommitment,
			SelectionSalt:        p.SelectionSalt,
			SelectionCommitment:  p.SelectionCommitment,
		}
		for _, f := range p.Factions {
			rp.Factions = append(rp.Factions, verify.RevealedFaction{ID: string(f.ID), Name: f.Name, Set: f.Set})
		}
		s.Require().NotNil(p.SelectedFaction)
		sf := verify.RevealedFaction{ID: string(p.SelectedFaction.ID), Name: p.SelectedFaction.Name, Set: p.SelectedFaction.Set}
		rp.SelectedFaction = &sf
		transcript.Players = append(transcript.Players, rp)
	}
	report := verify.Check(transcript)
	s.True(report.Valid)

	// The two hands never overlapped
	s.NotEqual(stored.Players[0].Factions, stored.Players[1].Factions)
}

func (s *IntegrationSuite) TestReturningPlayerMustPresentPassword() {
	g, err := s.app.GameController.CreateGame(s.ctx, game.CreateParams{
		PlayerNames:       []string{"Alice", "Bob"},
		FactionsPerPlayer: 3,
	})
	s.Require().NoError(err)

	_, err = s.app.AuthService.Authenticate(s.ctx, g.ID, "Alice", "abcd")
	s.Require().NoError(err)

	_, err = s.app.AuthService.Authenticate(s.ctx, g.ID, "Alice", "wrong")
	s.ErrorIs(err, auth.ErrWrongPassword)

	result, err := s.app.AuthService.Authenticate(s.ctx, g.ID, "Alice", "abcd")
	s.Require().NoError(err)
	s.Equal(auth.ActionAuthenticated, result.Action)
}

func (s *IntegrationSuite) TestExpiredTokenRejectedAfterClockAdvance() {
	g, err := s.app.GameController.CreateGame(s.ctx, game.CreateParams{
		PlayerNames:       []string{"Alice", "Bob"},
		FactionsPerPlayer: 3,
	})
	s.Require().NoError(err)

	result, err := s.app.AuthService.Authenticate(s.ctx, g.ID, "Alice", "abcd")
	s.Require().NoError(err)

	s.app.MockClock.Advance(25 * time.Hour)
	s.ErrorIs(s.app.AuthService.CheckToken(result.Token, g.ID, "Alice"), auth.ErrTokenExpired)
}

func (s *IntegrationSuite) TestSelectionSticksAcrossServices() {
	g, err := s.app.GameController.CreateGame(s.ctx, game.CreateParams{
		PlayerNames:       []string{"Alice", "Bob"},
		FactionsPerPlayer: 4,
	})
	s.Require().NoError(err)

	_, alice, err := s.app.GameController.PlayerOptions(s.ctx, g.ID, "Alice")
	s.Require().NoError(err)

	_, err = s.app.GameController.Select(s.ctx, g.ID, "Alice", alice.Factions[3].ID)
	s.Require().NoError(err)

	_, err = s.app.GameController.Select(s.ctx, g.ID, "Alice", alice.Factions[0].ID)
	s.ErrorIs(err, model.ErrAlreadySelected)

	_, alice, err = s.app.GameController.PlayerOptions(s.ctx, g.ID, "Alice")
	s.Require().NoError(err)
	s.Require().True(alice.HasSelected())
	s.Equal(alice.Factions[3].ID, alice.SelectedFaction.ID)
}
