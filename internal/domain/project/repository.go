package project

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("project not found")
	ErrForbidden = errors.New("project not owned by caller")
	ErrNotActive = errors.New("project not active")
)

type Repository interface {
	Create(ctx context.Context, in NewProject) (Project, error)
	GetByID(ctx context.Context, id uuid.UUID) (Project, error)
	ListActive(ctx context.Context) ([]Project, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Project, error)
	Close(ctx context.Context, id, ownerID uuid.UUID) (Project, error)
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
}
