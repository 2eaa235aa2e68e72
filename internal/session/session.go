// Package session resolves the caller of a request into an explicit Session
// value that is handed to every usecase call.
package session

import (
	"errors"
	"strings"

	"joinup/internal/pkg/jwt"

	"github.com/google/uuid"
)

var (
	ErrNoToken      = errors.New("missing bearer token")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

type Session struct {
	UserID uuid.UUID
	Email  string
}

func (s Session) Authenticated() bool {
	return s.UserID != uuid.Nil
}

// Anonymous is the session of an unauthenticated caller.
var Anonymous = Session{}

type Provider struct {
	jwt jwt.Service
}

func NewProvider(jwtSvc jwt.Service) *Provider {
	return &Provider{jwt: jwtSvc}
}

// FromAuthorization resolves an "Authorization: Bearer <access token>"
// header value.
func (p *Provider) FromAuthorization(header string) (Session, error) {
	tok, ok := BearerToken(header)
	if !ok {
		return Anonymous, ErrNoToken
	}
	return p.FromToken(tok)
}

func (p *Provider) FromToken(token string) (Session, error) {
	claims, err := p.jwt.ValidateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Anonymous, ErrTokenExpired
		}
		return Anonymous, ErrInvalidToken
	}
	if claims.TokenType != jwt.TokenTypeAccess || claims.UserID == uuid.Nil {
		return Anonymous, ErrInvalidToken
	}
	return Session{UserID: claims.UserID, Email: claims.Email}, nil
}

func BearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", false
	}

	scheme, tok, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	tok = strings.TrimSpace(tok)
	if tok == "" {
		return "", false
	}
	return tok, true
}
