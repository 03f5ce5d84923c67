// Package auth implements the player credential gate: first-visit password
// capture, later-visit password verification, and the scoped bearer tokens
// that protect a player's private option set.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/faircommit/factiondraft/internal/dependencies/clock"
	"github.com/faircommit/factiondraft/internal/model"
	"github.com/faircommit/factiondraft/internal/storage"
)

// Errors
var (
	ErrPasswordTooShort = errors.New("password must be at least 4 characters")
	ErrWrongPassword    = errors.New("incorrect password")
	ErrTokenExpired     = errors.New("token expired, please log in again")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrTokenScope       = errors.New("token does not match requested resource")
)

// MinPasswordLength is the shortest password accepted on first authentication
const MinPasswordLength = 4

// Action reports which credential-gate path a successful Authenticate took
type Action string

const (
	// ActionCredentialSet means the first-visit path ran: the supplied
	// password became the player's credential.
	ActionCredentialSet Action = "credential_set"
	// ActionAuthenticated means the supplied password matched the
	// existing credential.
	ActionAuthenticated Action = "authenticated"
)

// Result is a successful authentication: a fresh scoped bearer token and
// which path issued it
type Result struct {
	Token  string
	Action Action
}

// Claims are the JWT claims of a scoped access token. The token is valid
// only for the (game, player) pair embedded in it.
type Claims struct {
	jwt.RegisteredClaims
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
}

// Config holds configuration for the auth service
type Config struct {
	// TokenDuration bounds the lifetime of issued tokens
	TokenDuration time.Duration
	// Secret signs tokens. If empty, an ephemeral per-process secret is
	// generated; tokens then do not survive a restart.
	Secret []byte
}

// DefaultConfig returns default auth configuration
func DefaultConfig() Config {
	return Config{
		TokenDuration: 24 * time.Hour,
	}
}

// Service handles player credentials and scoped tokens
type Service struct {
	store         storage.GameStore
	clock         clock.Clock
	secret        []byte
	tokenDuration time.Duration
	logger        *slog.Logger
}

// New creates a new auth service
func New(store storage.GameStore, clk clock.Clock, cfg Config, logger *slog.Logger) *Service {
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = DefaultConfig().TokenDuration
	}

	secret := cfg.Secret
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			panic(err)
		}
		logger.Warn("no token secret configured, using an ephemeral one; tokens will not survive a restart")
	}

	return &Service{
		store:         store,
		clock:         clk,
		secret:        secret,
		tokenDuration: cfg.TokenDuration,
		logger:        logger,
	}
}

// Authenticate runs the credential gate for one player of one game.
//
// If the player has no credential yet, the supplied password (minimum 4
// characters) becomes their credential; the transition is one-way and at
// most one credential is ever committed, even under concurrent first visits.
// Otherwise the password is checked against the stored hash. Either path
// issues a fresh token scoped to (gameID, playerName).
func (s *Service) Authenticate(ctx context.Context, gameID model.GameID, playerName, password string) (*Result, error) {
	game, err := s.store.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	player := game.Player(playerName)
	if player == nil {
		return nil, model.ErrPlayerNotFound
	}

	if player.HasSetCredential {
		return s.verify(gameID, playerName, password, player.CredentialHash)
	}

	if len(password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// First writer wins. The update function re-checks the credential
	// state against the stored record; losing a race demotes this call to
	// the verification path against the winner's hash.
	var racedHash string
	_, err = s.store.UpdateGame(ctx, gameID, func(g *model.Game) error {
		racedHash = ""
		p := g.Player(playerName)
		if p == nil {
			return model.ErrPlayerNotFound
		}
		if p.HasSetCredential {
			racedHash = p.CredentialHash
			return nil
		}
		p.CredentialHash = string(hash)
		p.HasSetCredential = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if racedHash != "" {
		return s.verify(gameID, playerName, password, racedHash)
	}

	s.logger.Info("player credential set",
		slog.String("game_id", string(gameID)),
		slog.String("player", playerName),
	)

	token, err := s.issueToken(gameID, playerName)
	if err != nil {
		return nil, err
	}
	return &Result{Token: token, Action: ActionCredentialSet}, nil
}

// verify runs the credentialed path: compare and issue
func (s *Service) verify(gameID model.GameID, playerName, password, hash string) (*Result, error) {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return nil, ErrWrongPassword
	}

	token, err := s.issueToken(gameID, playerName)
	if err != nil {
		return nil, err
	}
	return &Result{Token: token, Action: ActionAuthenticated}, nil
}

// CheckToken validates a bearer token against the requested (game, player)
// resource. It fails closed: expired, malformed, and scope-mismatched tokens
// are all rejected, with the reason distinguishable via the returned error.
func (s *Service) CheckToken(token string, gameID model.GameID, playerName string) error {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenInvalid
			}
			return s.secret, nil
		},
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return ErrTokenExpired
		}
		return ErrTokenInvalid
	}

	if claims.GameID != string(gameID) || claims.PlayerName != playerName {
		return ErrTokenScope
	}
	return nil
}

// issueToken signs a fresh token scoped to one (game, player) pair
func (s *Service) issueToken(gameID model.GameID, playerName string) (string, error) {
	now := s.clock.Now()

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenDuration)),
		},
		GameID:     string(gameID),
		PlayerName: playerName,
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
