package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"joinup/internal/domain/application"
	"joinup/internal/domain/project"
	"joinup/internal/domain/user"
	"joinup/internal/fetch"
	"joinup/internal/infrastructure/cache"
	"joinup/internal/session"
	"joinup/internal/viewmodel"
	"joinup/internal/ws"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ApplyInput struct {
	CoverLetter        string
	Message            *string
	ResumeLink         *string
	PortfolioLink      *string
	Availability       *string
	RelevantExperience *string
	WhyInterested      *string
}

type HireOutcome struct {
	Application  viewmodel.Application `json:"application"`
	ProjectID    uuid.UUID             `json:"project_id"`
	CurrentHires int                   `json:"current_hires"`
}

type ApplicationUsecase interface {
	Apply(ctx context.Context, sess session.Session, projectID uuid.UUID, in ApplyInput) (viewmodel.Application, error)
	Hire(ctx context.Context, sess session.Session, applicationID uuid.UUID, role string) (HireOutcome, error)
	ListMine(ctx context.Context, sess session.Session) ([]viewmodel.Application, error)
	ListForProject(ctx context.Context, sess session.Session, projectID uuid.UUID) ([]viewmodel.Application, error)
}

type Applications struct {
	apps     application.Repository
	projects project.Repository
	users    user.Repository
	cache    ListCache
	events   EventPublisher
	log      zerolog.Logger
	now      func() time.Time
}

func NewApplicationUsecase(
	apps application.Repository,
	projects project.Repository,
	users user.Repository,
	c ListCache,
	events EventPublisher,
	logger zerolog.Logger,
) *Applications {
	return &Applications{
		apps:     apps,
		projects: projects,
		users:    users,
		cache:    cacheOrNoop(c),
		events:   publisherOrNoop(events),
		log:      logger.With().Str("component", "applications").Logger(),
		now:      time.Now,
	}
}

// Apply submits a pending application. The duplicate check is a read before
// the insert; two concurrent submissions can both pass it.
func (u *Applications) Apply(ctx context.Context, sess session.Session, projectID uuid.UUID, in ApplyInput) (viewmodel.Application, error) {
	if !sess.Authenticated() {
		return viewmodel.Application{}, ErrUnauthorized
	}
	if projectID == uuid.Nil {
		return viewmodel.Application{}, invalid("project id is required")
	}
	cover := strings.TrimSpace(in.CoverLetter)
	if cover == "" {
		return viewmodel.Application{}, invalid("cover letter is required")
	}

	p, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return viewmodel.Application{}, ErrNotFound
		}
		return viewmodel.Application{}, opFailed("load project", err)
	}
	if p.Status != project.StatusActive {
		return viewmodel.Application{}, ErrProjectClosed
	}

	exists, err := u.apps.Exists(ctx, projectID, sess.UserID)
	if err != nil {
		return viewmodel.Application{}, opFailed("check existing application", err)
	}
	if exists {
		return viewmodel.Application{}, ErrAlreadyApplied
	}

	a, err := u.apps.Create(ctx, application.NewApplication{
		ProjectID:          projectID,
		ApplicantID:        sess.UserID,
		CoverLetter:        cover,
		Message:            trimmedOrNil(in.Message),
		ResumeLink:         trimmedOrNil(in.ResumeLink),
		PortfolioLink:      trimmedOrNil(in.PortfolioLink),
		Availability:       trimmedOrNil(in.Availability),
		RelevantExperience: trimmedOrNil(in.RelevantExperience),
		WhyInterested:      trimmedOrNil(in.WhyInterested),
	})
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return viewmodel.Application{}, ErrNotFound
		}
		return viewmodel.Application{}, opFailed("submit application", err)
	}
	a.Project = &project.Summary{
		ID:           p.ID,
		Title:        p.Title,
		Description:  p.Description,
		Company:      p.Company,
		Expectations: p.Expectations,
		Location:     p.Location,
		Compensation: p.Compensation,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}

	appID := a.ID
	u.events.Publish(ws.Event{
		Type:          ws.EventApplicationSubmitted,
		ProjectID:     projectID,
		ApplicationID: &appID,
		Title:         p.Title,
	})
	u.log.Info().
		Str("application_id", a.ID.String()).
		Str("project_id", projectID.String()).
		Msg("application submitted")
	return viewmodel.NewApplication(a, nil, u.now()), nil
}

// Hire marks a pending application hired and bumps the project's hire
// count in one transaction. max_hires is not checked.
func (u *Applications) Hire(ctx context.Context, sess session.Session, applicationID uuid.UUID, role string) (HireOutcome, error) {
	if !sess.Authenticated() {
		return HireOutcome{}, ErrUnauthorized
	}
	if applicationID == uuid.Nil {
		return HireOutcome{}, invalid("application id is required")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		return HireOutcome{}, invalid("role is required")
	}

	res, err := u.apps.Hire(ctx, applicationID, sess.UserID, role)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrNotFound):
			return HireOutcome{}, ErrNotFound
		case errors.Is(err, application.ErrForbidden):
			return HireOutcome{}, ErrForbidden
		case errors.Is(err, application.ErrInvalidTransition):
			return HireOutcome{}, ErrInvalidTransition
		default:
			return HireOutcome{}, opFailed("hire applicant", err)
		}
	}

	if err := u.cache.Delete(ctx, cache.KeyProjectsList); err != nil {
		u.log.Warn().Err(err).Msg("projects cache invalidation failed")
	}

	appID := res.Application.ID
	hires := res.CurrentHires
	u.events.Publish(ws.Event{
		Type:          ws.EventApplicationHired,
		ProjectID:     res.ProjectID,
		ApplicationID: &appID,
		CurrentHires:  &hires,
	})
	u.log.Info().
		Str("application_id", appID.String()).
		Str("project_id", res.ProjectID.String()).
		Int("current_hires", hires).
		Msg("applicant hired")

	return HireOutcome{
		Application:  viewmodel.NewApplication(res.Application, nil, u.now()),
		ProjectID:    res.ProjectID,
		CurrentHires: hires,
	}, nil
}

func (u *Applications) ListMine(ctx context.Context, sess session.Session) ([]viewmodel.Application, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthorized
	}
	as, err := u.apps.ListByApplicant(ctx, sess.UserID)
	if err != nil {
		return nil, opFailed("list my applications", err)
	}
	return viewmodel.NewApplications(as, u.now()), nil
}

// ListForProject is the owner's view of a project's applicants. Applicant
// profiles are loaded concurrently; a profile that cannot be loaded leaves
// the card without an applicant.
func (u *Applications) ListForProject(ctx context.Context, sess session.Session, projectID uuid.UUID) ([]viewmodel.Application, error) {
	if !sess.Authenticated() {
		return nil, ErrUnauthorized
	}
	if projectID == uuid.Nil {
		return nil, invalid("project id is required")
	}

	p, err := u.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, project.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, opFailed("load project", err)
	}
	if p.OwnerID != sess.UserID {
		return nil, ErrForbidden
	}

	as, err := u.apps.ListByProject(ctx, projectID)
	if err != nil {
		return nil, opFailed("list applications", err)
	}

	applicants, err := u.loadApplicants(ctx, as)
	if err != nil {
		return nil, err
	}

	now := u.now()
	out := make([]viewmodel.Application, 0, len(as))
	for _, a := range as {
		var applicant *user.User
		if usr, ok := applicants[a.ApplicantID]; ok {
			applicant = &usr
		}
		out = append(out, viewmodel.NewApplication(a, applicant, now))
	}
	return out, nil
}

func (u *Applications) loadApplicants(ctx context.Context, as []application.Application) (map[uuid.UUID]user.User, error) {
	var mu sync.Mutex
	found := make(map[uuid.UUID]user.User, len(as))
	seen := make(map[uuid.UUID]bool, len(as))

	tasks := make([]func(ctx context.Context) error, 0, len(as))
	for _, a := range as {
		id := a.ApplicantID
		if seen[id] {
			continue
		}
		seen[id] = true

		tasks = append(tasks, func(ctx context.Context) error {
			usr, err := fetch.Fetch(ctx, u.log, fetch.Resource{Name: "users", Optional: true},
				func(ctx context.Context) (*user.User, error) {
					usr, err := u.users.GetUserByID(ctx, id)
					if err != nil {
						return nil, err
					}
					usr.PasswordHash = ""
					return &usr, nil
				})
			if err != nil {
				return err
			}
			if usr != nil {
				mu.Lock()
				found[id] = *usr
				mu.Unlock()
			}
			return nil
		})
	}

	if err := fetch.Settle(ctx, tasks...); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, opFailed("load applicants", err)
	}
	return found, nil
}
