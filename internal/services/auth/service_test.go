package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/faircommit/factiondraft/internal/dependencies/mocks"
	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/storage/memory"
	"github.com/faircommit/factiondraft/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	storage *memory.Storage
	clock   *mocks.MockClock
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.service = New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())
	s.ctx = context.Background()

	game := &model.Game{
		ID:                "game1",
		FactionsPerPlayer: 3,
		Players: []model.Player{
			{Name: "Alice"},
			{Name: "Bob"},
		},
		CreatedAt: s.clock.Now(),
	}
	s.Require().NoError(s.storage.CreateGame(s.ctx, game))
}

// First-visit path

func (s *ServiceSuite) TestFirstAuthenticateSetsCredential() {
	result, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abcd")
	s.Require().NoError(err)

	s.NotEmpty(result.Token)
	s.Equal(ActionCredentialSet, result.Action)

	game, err := s.storage.GetGame(s.ctx, "game1")
	s.Require().NoError(err)
	player := game.Player("Alice")
	s.True(player.HasSetCredential)
	s.NotEmpty(player.CredentialHash)
	s.NotEqual("abcd", player.CredentialHash)
}

func (s *ServiceSuite) TestFirstAuthenticateRejectsShortPassword() {
	_, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abc")
	s.ErrorIs(err, ErrPasswordTooShort)

	game, err := s.storage.GetGame(s.ctx, "game1")
	s.Require().NoError(err)
	s.False(game.Player("Alice").HasSetCredential)
}

func (s *ServiceSuite) TestAuthenticateUnknownGame() {
	_, err := s.service.Authenticate(s.ctx, "missing", "Alice", "abcd")
	s.ErrorIs(err, model.ErrGameNotFound)
}

func (s *ServiceSuite) TestAuthenticateUnknownPlayer() {
	_, err := s.service.Authenticate(s.ctx, "game1", "Mallory", "abcd")
	s.ErrorIs(err, model.ErrPlayerNotFound)
}

// Credentialed path

func (s *ServiceSuite) TestSecondAuthenticateVerifiesPassword() {
	_, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abcd")
	s.Require().NoError(err)

	result, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abcd")
	s.Require().NoError(err)
	s.Equal(ActionAuthenticated, result.Action)
	s.NotEmpty(result.Token)
}

func (s *ServiceSuite) TestSecondAuthenticateRejectsWrongPassword() {
	_, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abcd")
	s.Require().NoError(err)

	_, err = s.service.Authenticate(s.ctx, "game1", "Alice", "wxyz")
	s.ErrorIs(err, ErrWrongPassword)
}

func (s *ServiceSuite) TestCredentialIsNeverOverwritten() {
	_, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abcd")
	s.Require().NoError(err)

	game, _ := s.storage.GetGame(s.ctx, "game1")
	originalHash := game.Player("Alice").CredentialHash

	// A short password is fine on the credentialed path as long as it
	// matches; a non-matching one must not re-register.
	_, err = s.service.Authenticate(s.ctx, "game1", "Alice", "efgh")
	s.ErrorIs(err, ErrWrongPassword)

	game, _ = s.storage.GetGame(s.ctx, "game1")
	s.Equal(originalHash, game.Player("Alice").CredentialHash)
}

func (s *ServiceSuite) TestConcurrentFirstAuthenticateCommitsOneCredential() {
	// Two racers with different passwords: exactly one credential may be
	// committed, and afterwards exactly one of the passwords verifies.
	var wg sync.WaitGroup
	results := make(map[string]error, 2)
	var mu sync.Mutex

	for _, password := range []string{"aaaa", "bbbb"} {
		wg.Add(1)
		go func(password string) {
			defer wg.Done()
			_, err := s.service.Authenticate(s.ctx, "game1", "Bob", password)
			mu.Lock()
			results[password] = err
			mu.Unlock()
		}(password)
	}
	wg.Wait()

	game, err := s.storage.GetGame(s.ctx, "game1")
	s.Require().NoError(err)
	s.True(game.Player("Bob").HasSetCredential)

	var matches int
	for _, password := range []string{"aaaa", "bbbb"} {
		if _, err := s.service.Authenticate(s.ctx, "game1", "Bob", password); err == nil {
			matches++
			// The racer holding the winning password must have gotten
			// a token, not an error.
			s.NoError(results[password])
		}
	}
	s.Equal(1, matches)
}

// Token validation

func (s *ServiceSuite) TestCheckTokenAcceptsMatchingScope() {
	result, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abcd")
	s.Require().NoError(err)

	s.NoError(s.service.CheckToken(result.Token, "game1", "Alice"))
}

func (s *ServiceSuite) TestCheckTokenRejectsScopeMismatch() {
	result, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abcd")
	s.Require().NoError(err)

	s.ErrorIs(s.service.CheckToken(result.Token, "game1", "Bob"), ErrTokenScope)
	s.ErrorIs(s.service.CheckToken(result.Token, "game2", "Alice"), ErrTokenScope)
}

func (s *ServiceSuite) TestCheckTokenRejectsExpiredToken() {
	result, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abcd")
	s.Require().NoError(err)

	s.clock.Advance(25 * time.Hour)

	s.ErrorIs(s.service.CheckToken(result.Token, "game1", "Alice"), ErrTokenExpired)
}

func (s *ServiceSuite) TestCheckTokenRejectsGarbage() {
	s.ErrorIs(s.service.CheckToken("not-a-token", "game1", "Alice"), ErrTokenInvalid)
	s.ErrorIs(s.service.CheckToken("", "game1", "Alice"), ErrTokenInvalid)
}

func (s *ServiceSuite) TestCheckTokenRejectsForeignSignature() {
	other := New(s.storage, s.clock, DefaultConfig(), testutil.NopLogger())

	result, err := other.Authenticate(s.ctx, "game1", "Bob", "abcd")
	s.Require().NoError(err)

	// Signed with a different ephemeral secret
	s.ErrorIs(s.service.CheckToken(result.Token, "game1", "Bob"), ErrTokenInvalid)
}

func (s *ServiceSuite) TestTokensAreFreshPerIssue() {
	r1, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abcd")
	s.Require().NoError(err)
	r2, err := s.service.Authenticate(s.ctx, "game1", "Alice", "abcd")
	s.Require().NoError(err)

	s.NotEqual(r1.Token, r2.Token)
}
