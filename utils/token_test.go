package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/phillip/venturelink/config"
	models "github.com/phillip/venturelink/models"
)

func TestDemoTokens(t *testing.T) {
	tokens := NewTokens(config.Default())
	user := models.User{ID: "0192f0c4-7c1e-7b4a-9d35-1f2e3a4b5c6d", Role: models.RoleFounder}

	tok, err := tokens.Issue(user)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(tok, "token_"+user.ID+"_"))

	id, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, user.ID, id)

	// ids containing underscores survive
	id, err = tokens.Parse("token_demo_founder_1_1700000000000")
	require.NoError(t, err)
	assert.Equal(t, "demo_founder_1", id)

	for _, bad := range []string{"", "token_", "token_abc", "token_abc_notanumber", "bearer_abc_123", "token__123"} {
		_, err := tokens.Parse(bad)
		assert.ErrorIs(t, err, ErrInvalidToken, bad)
	}
}

func TestJWTTokens(t *testing.T) {
	cfg := config.Default()
	cfg.TokenMode = "jwt"
	cfg.JWTSecret = "test-secret"
	cfg.TokenTTL = time.Hour

	tokens := NewTokens(cfg)
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tokens.now = func() time.Time { return now }

	tok, err := tokens.Issue(models.User{ID: "u1", Role: models.RoleInvestor})
	require.NoError(t, err)

	id, err := tokens.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", id)

	t.Run("expired", func(t *testing.T) {
		tokens.now = func() time.Time { return now.Add(2 * time.Hour) }
		defer func() { tokens.now = func() time.Time { return now } }()
		_, err := tokens.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokens(&config.Config{TokenMode: "jwt", JWTSecret: "other", TokenTTL: time.Hour})
		other.now = tokens.now
		_, err := other.Parse(tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("demo token rejected", func(t *testing.T) {
		_, err := tokens.Parse("token_u1_1700000000000")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
