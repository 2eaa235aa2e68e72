package saved

import (
	"context"
	"errors"
	"time"

	"joinup/internal/domain/project"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("saved project not found")

type SavedProject struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	ProjectID uuid.UUID
	CreatedAt time.Time

	Project *project.Summary
}

type Repository interface {
	Save(ctx context.Context, userID, projectID uuid.UUID) (SavedProject, error)
	Remove(ctx context.Context, userID, projectID uuid.UUID) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]SavedProject, error)
}
