package usecase

import (
	"context"
	"time"

	"joinup/internal/domain/project"
	"joinup/internal/domain/user"
	"joinup/internal/filter"
	"joinup/internal/infrastructure/cache"
	"joinup/internal/viewmodel"

	"github.com/rs/zerolog"
)

type BrowseResult[T any] struct {
	Items  []T      `json:"items"`
	Total  int      `json:"total"`
	Active []string `json:"active_filters"`
}

type BrowseUsecase interface {
	Projects(ctx context.Context, f *filter.Engine) (BrowseResult[viewmodel.Project], error)
	Students(ctx context.Context, f *filter.Engine) (BrowseResult[viewmodel.Student], error)
}

// Browse serves the public search pages. The unfiltered, normalized lists
// are cached; filters always run in memory.
type Browse struct {
	projects project.Repository
	users    user.Repository
	cache    ListCache
	log      zerolog.Logger
	now      func() time.Time
}

func NewBrowseUsecase(projects project.Repository, users user.Repository, c ListCache, logger zerolog.Logger) *Browse {
	return &Browse{
		projects: projects,
		users:    users,
		cache:    cacheOrNoop(c),
		log:      logger.With().Str("component", "browse").Logger(),
		now:      time.Now,
	}
}

func (u *Browse) Projects(ctx context.Context, f *filter.Engine) (BrowseResult[viewmodel.Project], error) {
	now := u.now()

	var all []viewmodel.Project
	hit, err := u.cache.GetJSON(ctx, cache.KeyProjectsList, &all)
	if err != nil {
		u.log.Warn().Err(err).Str("key", cache.KeyProjectsList).Msg("cache read failed")
	}
	if hit {
		// labels are relative to now, not to when the list was cached
		for i := range all {
			all[i].PostedDate = viewmodel.PostedLabel(all[i].CreatedAt, now)
		}
	} else {
		ps, err := u.projects.ListActive(ctx)
		if err != nil {
			return BrowseResult[viewmodel.Project]{}, opFailed("list projects", err)
		}
		all = viewmodel.NewProjects(ps, now)
		if err := u.cache.SetJSON(ctx, cache.KeyProjectsList, all); err != nil {
			u.log.Warn().Err(err).Str("key", cache.KeyProjectsList).Msg("cache write failed")
		}
	}

	return newBrowseResult(f, all), nil
}

func (u *Browse) Students(ctx context.Context, f *filter.Engine) (BrowseResult[viewmodel.Student], error) {
	var all []viewmodel.Student
	hit, err := u.cache.GetJSON(ctx, cache.KeyStudentsList, &all)
	if err != nil {
		u.log.Warn().Err(err).Str("key", cache.KeyStudentsList).Msg("cache read failed")
	}
	if !hit {
		users, err := u.users.ListStudents(ctx)
		if err != nil {
			return BrowseResult[viewmodel.Student]{}, opFailed("list students", err)
		}
		all = viewmodel.NewStudents(users)
		if err := u.cache.SetJSON(ctx, cache.KeyStudentsList, all); err != nil {
			u.log.Warn().Err(err).Str("key", cache.KeyStudentsList).Msg("cache write failed")
		}
	}

	return newBrowseResult(f, all), nil
}

func newBrowseResult[T filter.Record](f *filter.Engine, all []T) BrowseResult[T] {
	items := filter.Apply(f, all)
	active := []string{}
	if f != nil {
		active = f.Active()
	}
	return BrowseResult[T]{Items: items, Total: len(items), Active: active}
}
