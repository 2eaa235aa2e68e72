// Package auth holds credential handling: account creation with a bcrypt
// hash and password checks on login. Token issuing lives one layer up.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"joinup/internal/domain/user"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidInput           = errors.New("invalid input")
	ErrInternal               = errors.New("internal error")
)

const MinPasswordLen = 8

// FieldError names the registration field that failed validation. It
// matches ErrInvalidInput under errors.Is.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return strings.ReplaceAll(e.Field, "_", " ") + " " + e.Reason
}

func (e *FieldError) Is(target error) bool { return target == ErrInvalidInput }

type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

type LoginInput struct {
	Email    string
	Password string
}

type Service struct {
	users user.Repository
	cost  int
}

func NewService(users user.Repository) *Service {
	return &Service{users: users, cost: bcrypt.DefaultCost}
}

// WithCost sets the bcrypt cost; tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

// Validate normalizes in and reports the first invalid field.
func (in RegisterInput) Validate() (RegisterInput, error) {
	out := RegisterInput{
		Email:    normalizeEmail(in.Email),
		Password: in.Password,
		FullName: strings.Join(strings.Fields(in.FullName), " "),
	}
	if out.Email == "" {
		return out, &FieldError{Field: "email", Reason: "is required"}
	}
	if addr, err := mail.ParseAddress(out.Email); err != nil || addr.Address != out.Email {
		return out, &FieldError{Field: "email", Reason: "is not a valid address"}
	}
	if len(strings.TrimSpace(out.Password)) < MinPasswordLen {
		return out, &FieldError{Field: "password", Reason: fmt.Sprintf("must be at least %d characters", MinPasswordLen)}
	}
	if out.FullName == "" {
		return out, &FieldError{Field: "full_name", Reason: "is required"}
	}
	return out, nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (user.User, error) {
	in, err := in.Validate()
	if err != nil {
		return user.User{}, err
	}

	exists, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return user.User{}, internal("check email", err)
	}
	if exists {
		return user.User{}, ErrEmailAlreadyRegistered
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return user.User{}, internal("hash password", err)
	}

	u := user.User{
		ID:           uuid.New(),
		Email:        in.Email,
		PasswordHash: string(hash),
		FullName:     &in.FullName,
	}
	if err := s.users.CreateUser(ctx, u); err != nil {
		// lost a race with a concurrent register for the same email
		if exists, exErr := s.users.ExistsByEmail(ctx, in.Email); exErr == nil && exists {
			return user.User{}, ErrEmailAlreadyRegistered
		}
		return user.User{}, internal("create user", err)
	}

	created, err := s.users.GetUserByID(ctx, u.ID)
	if err != nil {
		return user.User{}, internal("reload user", err)
	}
	created.PasswordHash = ""
	return created, nil
}

func (s *Service) Login(ctx context.Context, in LoginInput) (user.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return user.User{}, ErrInvalidCredentials
	}

	u, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case errors.Is(err, user.ErrNotFound):
		return user.User{}, ErrInvalidCredentials
	case err != nil:
		return user.User{}, internal("load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return user.User{}, ErrInvalidCredentials
	}

	u.PasswordHash = ""
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func internal(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrInternal, op, err)
}
