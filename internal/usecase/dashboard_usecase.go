package usecase

import (
	"context"
	"errors"
	"time"

	"joinup/internal/domain/application"
	"joinup/internal/domain/project"
	"joinup/internal/domain/saved"
	"joinup/internal/domain/user"
	"joinup/internal/fetch"
	"joinup/internal/session"
	"joinup/internal/viewmodel"

	"github.com/rs/zerolog"
)

var (
	profileResource      = fetch.Resource{Name: "users", Optional: true}
	postedResource       = fetch.Resource{Name: "projects"}
	applicationsResource = fetch.Resource{Name: "applications", Optional: true}
)

type DashboardUsecase interface {
	Load(ctx context.Context, sess session.Session) (viewmodel.Dashboard, error)
}

type Dashboard struct {
	users    user.Repository
	projects project.Repository
	apps     application.Repository
	saved    saved.Repository
	log      zerolog.Logger
	now      func() time.Time
}

func NewDashboardUsecase(
	users user.Repository,
	projects project.Repository,
	apps application.Repository,
	savedRepo saved.Repository,
	logger zerolog.Logger,
) *Dashboard {
	return &Dashboard{
		users:    users,
		projects: projects,
		apps:     apps,
		saved:    savedRepo,
		log:      logger.With().Str("component", "dashboard").Logger(),
		now:      time.Now,
	}
}

// Load fetches the profile, posted projects, applications and bookmarks
// concurrently and waits for all four. Only the posted projects are
// required; the others fall back to empty.
func (u *Dashboard) Load(ctx context.Context, sess session.Session) (viewmodel.Dashboard, error) {
	if !sess.Authenticated() {
		return viewmodel.Dashboard{}, ErrUnauthorized
	}

	in := viewmodel.DashboardInput{Email: sess.Email}

	err := fetch.Settle(ctx,
		func(ctx context.Context) error {
			var err error
			in.Profile, err = fetch.Fetch(ctx, u.log, profileResource, func(ctx context.Context) (*user.User, error) {
				usr, err := u.users.GetUserByID(ctx, sess.UserID)
				if err != nil {
					return nil, err
				}
				return &usr, nil
			})
			return err
		},
		func(ctx context.Context) error {
			var err error
			in.Posted, err = fetch.Fetch(ctx, u.log, postedResource, func(ctx context.Context) ([]project.Project, error) {
				return u.projects.ListByOwner(ctx, sess.UserID)
			})
			return err
		},
		func(ctx context.Context) error {
			var err error
			in.Applied, err = fetch.Fetch(ctx, u.log, applicationsResource, func(ctx context.Context) ([]application.Application, error) {
				return u.apps.ListByApplicant(ctx, sess.UserID)
			})
			return err
		},
		func(ctx context.Context) error {
			var err error
			in.Saved, err = fetch.Fetch(ctx, u.log, savedProjectsResource, func(ctx context.Context) ([]saved.SavedProject, error) {
				return u.saved.ListByUser(ctx, sess.UserID)
			})
			return err
		},
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return viewmodel.Dashboard{}, ctxErr
		}
		var re *fetch.ResourceError
		if errors.As(err, &re) {
			return viewmodel.Dashboard{}, opFailed("load dashboard "+re.Resource, re.Err)
		}
		return viewmodel.Dashboard{}, opFailed("load dashboard", err)
	}

	return viewmodel.NewDashboard(in, u.now()), nil
}
