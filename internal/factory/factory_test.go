package factory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/faircommit/factiondraft/internal/services/auth"
	"github.com/faircommit/factiondraft/internal/services/game"
)

// Test: a configured token secret survives duration defaulting, so tokens
// issued by one process validate in another process sharing the secret
func TestNewKeepsConfiguredSecret(t *testing.T) {
	authCfg := auth.Config{Secret: []byte("shared-signing-secret")}

	first, err := New(Config{AuthConfig: authCfg})
	require.NoError(t, err)
	second, err := New(Config{AuthConfig: authCfg})
	require.NoError(t, err)

	ctx := context.Background()
	g, err := first.GameController.CreateGame(ctx, game.CreateParams{
		PlayerNames:        []string{"Alice", "Bob"},
		FactionsPerPlayer:  3,
		CreatorFingerprint: "10.0.0.1",
	})
	require.NoError(t, err)

	result, err := first.AuthService.Authenticate(ctx, g.ID, "Alice", "abcd")
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	// Token checks only inspect the signature and claims, so the second
	// app accepts the first app's token exactly when the secret survived
	require.NoError(t, second.AuthService.CheckToken(result.Token, g.ID, "Alice"))
}
