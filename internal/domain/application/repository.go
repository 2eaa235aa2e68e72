package application

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrNotFound          = errors.New("application not found")
	ErrForbidden         = errors.New("application belongs to another owner's project")
	ErrInvalidTransition = errors.New("application is not pending")
)

type Repository interface {
	Create(ctx context.Context, in NewApplication) (Application, error)
	Exists(ctx context.Context, projectID, applicantID uuid.UUID) (bool, error)
	GetByID(ctx context.Context, id uuid.UUID) (Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID) ([]Application, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]Application, error)
	// Hire marks a pending application hired and increments its project's
	// current_hires in one transaction. ownerID must own the project.
	Hire(ctx context.Context, id, ownerID uuid.UUID, role string) (HireResult, error)
}
