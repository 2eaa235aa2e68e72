package app

import (
	"context"
	"errors"
	"time"

	"joinup/internal/config"
	"joinup/internal/database"
	dbpostgres "joinup/internal/database/postgres"
	"joinup/internal/infrastructure/cache"
	"joinup/internal/infrastructure/storage"
	"joinup/internal/pkg/jwt"
	"joinup/internal/repository"
	"joinup/internal/session"
	"joinup/internal/usecase"
	ucauth "joinup/internal/usecase/auth"
	"joinup/internal/ws"

	"github.com/rs/zerolog"
)

// Container owns the process-wide dependencies.
type Container struct {
	Config config.Config
	Logger zerolog.Logger
	DB     database.DB
	Cache  *cache.Redis
	Images usecase.ImageStore
	Hub    *ws.Hub

	Sessions *session.Provider

	Auth         *usecase.Auth
	Profile      *usecase.Profile
	Projects     *usecase.Projects
	Applications *usecase.Applications
	Saved        *usecase.Saved
	Browse       *usecase.Browse
	Dashboard    *usecase.Dashboard
}

func NewContainer(cfg config.Config, logger zerolog.Logger) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}

	c.Cache = cache.NewRedis(cfg.Redis, logger)

	s3, err := storage.NewS3(ctx, cfg.Storage, logger)
	switch {
	case err == nil:
		c.Images = s3
	case errors.Is(err, storage.ErrDisabled):
		logger.Warn().Msg("object storage not configured, profile image uploads disabled")
	default:
		_ = db.Close()
		return nil, err
	}

	c.Hub = ws.NewHub(logger)
	notifier := ws.NewNotifier(c.Hub)

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)
	c.Sessions = session.NewProvider(jwtSvc)

	users := repository.NewPostgresUserRepository(db)
	projects := repository.NewPostgresProjectRepository(db)
	apps := repository.NewPostgresApplicationRepository(db)
	savedRepo := repository.NewPostgresSavedProjectRepository(db)

	c.Auth = usecase.NewAuthUsecase(ucauth.NewService(users), users, jwtSvc, c.Cache, logger)
	c.Profile = usecase.NewProfileUsecase(users, c.Images, c.Cache, logger)
	c.Projects = usecase.NewProjectUsecase(projects, c.Cache, notifier, logger)
	c.Applications = usecase.NewApplicationUsecase(apps, projects, users, c.Cache, notifier, logger)
	c.Saved = usecase.NewSavedUsecase(savedRepo, logger)
	c.Browse = usecase.NewBrowseUsecase(projects, users, c.Cache, logger)
	c.Dashboard = usecase.NewDashboardUsecase(users, projects, apps, savedRepo, logger)

	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
