package app

import (
	"context"
	"fmt"
	"strings"

	"joinup/internal/config"
	"joinup/internal/delivery/http/handler"
	"joinup/internal/delivery/http/middleware"
	"joinup/internal/delivery/http/routes"
	v1 "joinup/internal/delivery/http/routes/v1"
	"joinup/internal/ws"

	"github.com/gofiber/fiber/v3"
	"github.com/rs/zerolog"
)

// bodyLimit leaves room for a 10 MiB image plus multipart overhead.
const bodyLimit = 12 << 20

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName:   c.Config.App.AppName,
		BodyLimit: bodyLimit,
	})

	registerGlobalMiddleware(f, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

// Bootstrap builds the container and the HTTP app and starts the event hub.
// The returned cleanup stops the hub and closes every connection.
func Bootstrap(cfg config.Config, logger zerolog.Logger) (*App, func() error, error) {
	c, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, logger zerolog.Logger) {
	if app == nil {
		return
	}

	accessMw := middleware.NewAccessLogMiddleware(logger)
	errMw := middleware.NewErrorMiddleware(logger)
	app.Use(accessMw.Middleware())
	app.Use(errMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil || c == nil {
		return
	}

	authMw := middleware.NewAuthMiddleware(c.Sessions)

	others := map[string]handler.Pinger{"cache": c.Cache}
	h := v1.Handlers{
		Auth:        handler.NewAuthHandler(c.Auth),
		User:        handler.NewUserHandler(c.Profile),
		Student:     handler.NewStudentHandler(c.Browse, c.Profile),
		Project:     handler.NewProjectHandler(c.Projects, c.Browse),
		Application: handler.NewApplicationHandler(c.Applications),
		Saved:       handler.NewSavedHandler(c.Saved),
		Dashboard:   handler.NewDashboardHandler(c.Dashboard),
		Health:      handler.NewHealthHandler(c.DB, others),
		RequireAuth: authMw.Middleware(),
	}

	routes.NewRegistry(h, ws.NewHandler(c.Hub, c.Logger)).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
