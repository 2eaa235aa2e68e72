package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePair_RoundTrip(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	id := uuid.New()

	pair, err := svc.GeneratePair(id, "dev@joinup.test")
	require.NoError(t, err)
	assert.True(t, pair.RefreshExpiresAt.After(pair.AccessExpiresAt))

	c, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, c.UserID)
	assert.Equal(t, TokenTypeAccess, c.TokenType)
	assert.False(t, svc.IsRefreshToken(c))

	c, err = svc.ValidateToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, svc.IsRefreshToken(c))
	assert.Empty(t, c.Email)
}

func TestValidateToken_Expired(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	svc := NewHMACService("a", "r", time.Minute, time.Minute).WithClock(func() time.Time { return issued })

	tok, err := svc.GenerateAccessToken(uuid.New(), "x@y.z")
	require.NoError(t, err)

	svc.WithClock(time.Now)
	_, err = svc.ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	tok, err := NewHMACService("a", "r", time.Minute, time.Minute).GenerateAccessToken(uuid.New(), "")
	require.NoError(t, err)

	_, err = NewHMACService("other", "other-r", time.Minute, time.Minute).ValidateToken(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestGenerate_MissingSecret(t *testing.T) {
	_, err := NewHMACService("", "r", time.Minute, time.Minute).GenerateAccessToken(uuid.New(), "")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}
