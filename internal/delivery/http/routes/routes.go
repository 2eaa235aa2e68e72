package routes

import (
	v1 "joinup/internal/delivery/http/routes/v1"
	"joinup/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	v1 v1.Handlers
	ws *ws.Handler
}

func NewRegistry(h v1.Handlers, wsHandler *ws.Handler) *Registry {
	return &Registry{v1: h, ws: wsHandler}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	r.registerHealth(app)
	r.registerAPI(app)
	r.registerWS(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	if r.v1.Health != nil {
		r.v1.Health.RegisterRoutes(app)
	}
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), r.v1)
}

func (r *Registry) registerWS(app *fiber.App) {
	if r.ws != nil {
		r.ws.RegisterRoutes(app.Group("/ws"))
	}
}
