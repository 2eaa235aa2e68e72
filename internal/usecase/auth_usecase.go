package usecase

import (
	"context"
	"errors"

	"joinup/internal/domain/user"
	"joinup/internal/infrastructure/cache"
	"joinup/internal/pkg/jwt"
	ucauth "joinup/internal/usecase/auth"

	"github.com/rs/zerolog"
)

type AuthUsecase interface {
	Register(ctx context.Context, in ucauth.RegisterInput) (user.User, jwt.TokenPair, error)
	Login(ctx context.Context, in ucauth.LoginInput) (user.User, jwt.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (jwt.TokenPair, error)
}

type Auth struct {
	authSvc *ucauth.Service
	users   user.Repository
	jwt     jwt.Service
	cache   ListCache
	log     zerolog.Logger
}

func NewAuthUsecase(authSvc *ucauth.Service, users user.Repository, jwtSvc jwt.Service, c ListCache, logger zerolog.Logger) *Auth {
	return &Auth{
		authSvc: authSvc,
		users:   users,
		jwt:     jwtSvc,
		cache:   cacheOrNoop(c),
		log:     logger.With().Str("component", "auth").Logger(),
	}
}

func (u *Auth) Register(ctx context.Context, in ucauth.RegisterInput) (user.User, jwt.TokenPair, error) {
	usr, err := u.authSvc.Register(ctx, in)
	if err != nil {
		return user.User{}, jwt.TokenPair{}, err
	}

	// a new account is a new student card
	if err := u.cache.Delete(ctx, cache.KeyStudentsList); err != nil {
		u.log.Warn().Err(err).Msg("students cache invalidation failed")
	}

	pair, err := u.jwt.GeneratePair(usr.ID, usr.Email)
	if err != nil {
		return user.User{}, jwt.TokenPair{}, ErrInternal
	}
	u.log.Info().Str("user_id", usr.ID.String()).Msg("user registered")
	return usr, pair, nil
}

func (u *Auth) Login(ctx context.Context, in ucauth.LoginInput) (user.User, jwt.TokenPair, error) {
	usr, err := u.authSvc.Login(ctx, in)
	if err != nil {
		return user.User{}, jwt.TokenPair{}, err
	}

	pair, err := u.jwt.GeneratePair(usr.ID, usr.Email)
	if err != nil {
		return user.User{}, jwt.TokenPair{}, ErrInternal
	}
	return usr, pair, nil
}

func (u *Auth) Refresh(ctx context.Context, refreshToken string) (jwt.TokenPair, error) {
	if refreshToken == "" {
		return jwt.TokenPair{}, ErrUnauthorized
	}

	claims, err := u.jwt.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return jwt.TokenPair{}, ErrRefreshTokenExpired
		}
		return jwt.TokenPair{}, ErrInvalidRefreshToken
	}
	if !u.jwt.IsRefreshToken(claims) {
		return jwt.TokenPair{}, ErrInvalidRefreshToken
	}

	usr, err := u.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return jwt.TokenPair{}, ErrInvalidRefreshToken
		}
		return jwt.TokenPair{}, ErrInternal
	}

	pair, err := u.jwt.GeneratePair(usr.ID, usr.Email)
	if err != nil {
		return jwt.TokenPair{}, ErrInternal
	}
	return pair, nil
}
