package usecase

import (
	"context"
	"errors"
	"time"

	"joinup/internal/domain/project"
	"joinup/internal/domain/saved"
	"joinup/internal/fetch"
	"joinup/internal/session"
	"joinup/internal/viewmodel"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var savedProjectsResource = fetch.Resource{Name: "saved_projects", Optional: true}

type SavedUsecase interface {
	Save(ctx context.Context, sess session.Session, projectID uuid.UUID) (viewmodel.SavedProject, error)
	Unsave(ctx context.Context, sess session.Session, projectID uuid.UUID) error
	List(ctx context.Context, sess session.Session) ([]viewmodel.SavedProject, error)
}

// Saved manages bookmarks. The saved_projects table is optional: reads
// degrade to an empty list and writes report ErrUnavailable when it is
// missing.
type Saved struct {
	saved saved.Repository
	log   zerolog.Logger
	now   func() time.Time
}

func NewSavedUsecase(repo saved.Repository, logger zerolog.Logger) *Saved {
	return &Saved{
		saved: repo,
		log:   logger.With().Str("component", "saved").Logger(),
		now:   time.Now,
	}
}

func (u *Saved) Save(ctx context.Context, sess session.Session, projectID uuid.UUID) (viewmodel.SavedProject, error) {
	if !sess.Authenticated() {
		return viewmodel.SavedProject{}, ErrUnauthorized
	}
	if projectID == uuid.Nil {
		return viewmodel.SavedProject{}, invalid("project id is required")
	}

	s, err := u.saved.Save(ctx, sess.UserID, projectID)
	if err != nil {
		return viewmodel.SavedProject{}, mapSavedErr("save project", err)
	}
	return viewmodel.NewSavedProject(s, u.now()), nil
}

func (u *Saved) Unsave(ctx context.Context, sess session.Session, projectID uuid.UUID) error {
	if !sess.Authenticated() {
		return ErrUnauthorized
	}
	if projectID == uuid.Nil {
		return invalid("project id is required")
	}
	if err := u.saved.Remove(ctx, sess.UserID, projectID); err != nil {
		return mapSavedErr("unsave project", err)
	}
	return nil
}

func (u *Saved) List(ctx context.Context, sess session.Session) ([]viewmodel.SavedProject, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthorized
	}
	ss, err := fetch.Fetch(ctx, u.log, savedProjectsResource, func(ctx context.Context) ([]saved.SavedProject, error) {
		return u.saved.ListByUser(ctx, sess.UserID)
	})
	if err != nil {
		return nil, err
	}
	return viewmodel.NewSavedProjects(ss, u.now()), nil
}

func mapSavedErr(op string, err error) error {
	switch {
	case errors.Is(err, saved.ErrNotFound), errors.Is(err, project.ErrNotFound):
		return ErrNotFound
	case fetch.IsMissingResource(err):
		return ErrUnavailable
	default:
		return opFailed(op, err)
	}
}
