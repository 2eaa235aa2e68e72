package dto

import (
	"time"

	"joinup/internal/domain/user"
	"joinup/internal/pkg/jwt"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

type TokenResponse struct {
	AccessToken      string    `json:"access_token"`
	RefreshToken     string    `json:"refresh_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

type AuthResponse struct {
	User UserResponse `json:"user"`
	TokenResponse
}

type ImageUploadResponse struct {
	URL string `json:"url"`
}

func NewTokenResponse(pair jwt.TokenPair) TokenResponse {
	return TokenResponse{
		AccessToken:      pair.AccessToken,
		RefreshToken:     pair.RefreshToken,
		AccessExpiresAt:  pair.AccessExpiresAt,
		RefreshExpiresAt: pair.RefreshExpiresAt,
	}
}

func NewAuthResponse(u user.User, pair jwt.TokenPair) AuthResponse {
	return AuthResponse{
		User: UserResponse{
			ID:        u.ID,
			Email:     u.Email,
			FullName:  u.FullName,
			CreatedAt: u.CreatedAt,
		},
		TokenResponse: NewTokenResponse(pair),
	}
}
