package utils

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SirTebz/CommunityNoticeboard/config"
)

func TestGenerateAndParseToken(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "unit-secret"})

	token, issued, err := GenerateToken("user-1", "alice", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, issued.ID)

	claims, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, issued.ID, claims.ID)

	_, again, err := GenerateToken("user-1", "alice", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, issued.ID, again.ID)
}

func TestParseToken_Rejects(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "unit-secret"})

	expired, _, err := GenerateToken("user-1", "alice", -time.Minute)
	require.NoError(t, err)
	_, err = ParseToken(expired)
	assert.Error(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{Username: "x"}).SignedString([]byte("unit-secret"))
	require.NoError(t, err)
	_, err = ParseToken(noSubject)
	assert.Error(t, err)

	config.Set(config.AppConfig{JWTSecret: "other-secret"})
	valid, _, err := GenerateToken("user-1", "alice", time.Hour)
	require.NoError(t, err)
	config.Set(config.AppConfig{JWTSecret: "unit-secret"})
	_, err = ParseToken(valid)
	assert.Error(t, err)
}

func TestRevokeToken_InMemory(t *testing.T) {
	config.Set(config.AppConfig{JWTSecret: "unit-secret"})
	ctx := context.Background()

	assert.False(t, IsTokenRevoked(ctx, "jti-1"))
	require.NoError(t, RevokeToken(ctx, "jti-1", time.Now().Add(time.Hour)))
	assert.True(t, IsTokenRevoked(ctx, "jti-1"))

	require.NoError(t, RevokeToken(ctx, "jti-2", time.Now().Add(-time.Hour)))
	assert.False(t, IsTokenRevoked(ctx, "jti-2"), "already expired tokens need no entry")
}
