package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"joinup/internal/domain/project"
	"joinup/internal/infrastructure/cache"
	"joinup/internal/session"
	"joinup/internal/viewmodel"
	"joinup/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type PostProjectInput struct {
	Title           string
	Description     string
	Company         *string
	Skills          []string
	Location        string
	Budget          *string
	Duration        *string
	Category        *string
	ExperienceLevel *string
	AcademicYear    *string
	Availability    *string
	IsUrgent        bool
	MaxHires        int
}

type ProjectUsecase interface {
	Post(ctx context.Context, sess session.Session, in PostProjectInput) (viewmodel.Project, error)
	Get(ctx context.Context, id uuid.UUID) (viewmodel.Project, error)
	ListMine(ctx context.Context, sess session.Session) ([]viewmodel.Project, error)
	Close(ctx context.Context, sess session.Session, id uuid.UUID) (viewmodel.Project, error)
	Delete(ctx context.Context, sess session.Session, id uuid.UUID) error
}

type Projects struct {
	projects project.Repository
	cache    ListCache
	events   EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

func NewProjectUsecase(projects project.Repository, c ListCache, events EventPublisher, logger zerolog.Logger) *Projects {
	return &Projects{
		projects: projects,
		cache:    cacheOrNoop(c),
		events:   publisherOrNoop(events),
		log:      logger.With().Str("component", "projects").Logger(),
		now:      time.Now,
	}
}

func (u *Projects) Post(ctx context.Context, sess session.Session, in PostProjectInput) (viewmodel.Project, error) {
	if !sess.Authenticated() {
		return viewmodel.Project{}, ErrUnauthorized
	}
	np, err := newProjectFromInput(sess.UserID, in)
	if err != nil {
		return viewmodel.Project{}, err
	}

	p, err := u.projects.Create(ctx, np)
	if err != nil {
		return viewmodel.Project{}, opFailed("post project", err)
	}

	u.invalidate(ctx)
	u.events.Publish(ws.Event{Type: ws.EventProjectPosted, ProjectID: p.ID, Title: p.Title})
	u.log.Info().Str("project_id", p.ID.String()).Str("owner_id", sess.UserID.String()).Msg("project posted")
	return viewmodel.NewProject(p, u.now()), nil
}

func newProjectFromInput(ownerID uuid.UUID, in PostProjectInput) (project.NewProject, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return project.NewProject{}, invalid("title is required")
	}
	desc := strings.TrimSpace(in.Description)
	if desc == "" {
		return project.NewProject{}, invalid("description is required")
	}
	skills := make([]string, 0, len(in.Skills))
	for _, s := range in.Skills {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	if len(skills) == 0 {
		return project.NewProject{}, invalid("at least one skill is required")
	}
	if in.MaxHires < 0 {
		return project.NewProject{}, invalid("max hires cannot be negative")
	}
	location := strings.TrimSpace(in.Location)
	if location == "" {
		location = viewmodel.DefaultLocation
	}

	return project.NewProject{
		OwnerID:         ownerID,
		Title:           title,
		Description:     desc,
		Company:         trimmedOrNil(in.Company),
		Skills:          skills,
		Location:        location,
		Budget:          trimmedOrNil(in.Budget),
		Duration:        trimmedOrNil(in.Duration),
		Category:        trimmedOrNil(in.Category),
		ExperienceLevel: trimmedOrNil(in.ExperienceLevel),
		AcademicYear:    trimmedOrNil(in.AcademicYear),
		Availability:    trimmedOrNil(in.Availability),
		IsUrgent:        in.IsUrgent,
		MaxHires:        in.MaxHires,
	}, nil
}

func (u *Projects) Get(ctx context.Context, id uuid.UUID) (viewmodel.Project, error) {
	if id == uuid.Nil {
		return viewmodel.Project{}, invalid("project id is required")
	}
	p, err := u.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return viewmodel.Project{}, ErrNotFound
		}
		return viewmodel.Project{}, opFailed("get project", err)
	}
	return viewmodel.NewProject(p, u.now()), nil
}

func (u *Projects) ListMine(ctx context.Context, sess session.Session) ([]viewmodel.Project, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthorized
	}
	ps, err := u.projects.ListByOwner(ctx, sess.UserID)
	if err != nil {
		return nil, opFailed("list my projects", err)
	}
	return viewmodel.NewProjects(ps, u.now()), nil
}

// Close moves an active project to closed. Closing is one-way.
func (u *Projects) Close(ctx context.Context, sess session.Session, id uuid.UUID) (viewmodel.Project, error) {
	if !sess.Authenticated() {
		return viewmodel.Project{}, ErrUnauthorized
	}
	if id == uuid.Nil {
		return viewmodel.Project{}, invalid("project id is required")
	}

	p, err := u.projects.Close(ctx, id, sess.UserID)
	if err != nil {
		return viewmodel.Project{}, mapProjectErr("close project", err)
	}

	u.invalidate(ctx)
	u.events.Publish(ws.Event{Type: ws.EventProjectClosed, ProjectID: p.ID, Title: p.Title})
	u.log.Info().Str("project_id", p.ID.String()).Msg("project closed")
	return viewmodel.NewProject(p, u.now()), nil
}

func (u *Projects) Delete(ctx context.Context, sess session.Session, id uuid.UUID) error {
	if !sess.Authenticated() {
		return ErrUnauthorized
	}
	if id == uuid.Nil {
		return invalid("project id is required")
	}
	if err := u.projects.Delete(ctx, id, sess.UserID); err != nil {
		return mapProjectErr("delete project", err)
	}
	u.invalidate(ctx)
	u.log.Info().Str("project_id", id.String()).Msg("project deleted")
	return nil
}

func (u *Projects) invalidate(ctx context.Context) {
	if err := u.cache.Delete(ctx, cache.KeyProjectsList); err != nil {
		u.log.Warn().Err(err).Msg("projects cache invalidation failed")
	}
}

func mapProjectErr(op string, err error) error {
	switch {
	case errors.Is(err, project.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, project.ErrForbidden):
		return ErrForbidden
	case errors.Is(err, project.ErrNotActive):
		return ErrInvalidTransition
	default:
		return opFailed(op, err)
	}
}

func trimmedOrNil(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}
