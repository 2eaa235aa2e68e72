package usecase

import (
	"context"
	"testing"
	"time"

	"joinup/internal/infrastructure/cache"
	"joinup/internal/pkg/jwt"
	ucauth "joinup/internal/usecase/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthUC() (*Auth, *fakeUsers, *memCache, *jwt.HMACService) {
	users := newFakeUsers()
	c := newMemCache()
	jwtSvc := jwt.NewHMACService("access-secret", "refresh-secret", 15*time.Minute, 24*time.Hour)
	svc := ucauth.NewService(users).WithCost(bcrypt.MinCost)
	return NewAuthUsecase(svc, users, jwtSvc, c, testLogger), users, c, jwtSvc
}

func TestAuth_RegisterLoginRefresh(t *testing.T) {
	uc, _, c, jwtSvc := newAuthUC()
	c.data[cache.KeyStudentsList] = []byte(`[]`)
	ctx := context.Background()

	usr, pair, err := uc.Register(ctx, ucauth.RegisterInput{
		Email:    " Ana@Example.com ",
		Password: "password123",
		FullName: " Ana   Lopez ",
	})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", usr.Email)
	require.NotNil(t, usr.FullName)
	assert.Equal(t, "Ana Lopez", *usr.FullName)
	assert.Empty(t, usr.PasswordHash)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotContains(t, c.data, cache.KeyStudentsList)

	_, _, err = uc.Register(ctx, ucauth.RegisterInput{Email: "ana@example.com", Password: "password123", FullName: "Ana"})
	assert.ErrorIs(t, err, ucauth.ErrEmailAlreadyRegistered)

	_, _, err = uc.Login(ctx, ucauth.LoginInput{Email: "ana@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, ucauth.ErrInvalidCredentials)

	_, loginPair, err := uc.Login(ctx, ucauth.LoginInput{Email: "ANA@example.com", Password: "password123"})
	require.NoError(t, err)

	refreshed, err := uc.Refresh(ctx, loginPair.RefreshToken)
	require.NoError(t, err)
	claims, err := jwtSvc.ValidateToken(refreshed.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, usr.ID, claims.UserID)

	_, err = uc.Refresh(ctx, loginPair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, err = uc.Refresh(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidRefreshToken)
	_, err = uc.Refresh(ctx, "")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAuth_RegisterValidation(t *testing.T) {
	uc, users, _, _ := newAuthUC()

	cases := []ucauth.RegisterInput{
		{Email: "not-an-email", Password: "password123", FullName: "A"},
		{Email: "a@b.co", Password: "short", FullName: "A"},
		{Email: "a@b.co", Password: "password123", FullName: "  "},
	}
	for _, in := range cases {
		_, _, err := uc.Register(context.Background(), in)
		assert.ErrorIs(t, err, ucauth.ErrInvalidInput)
	}
	assert.Zero(t, users.count())
}
