package v1

import (
	"joinup/internal/delivery/http/handler"

	"github.com/gofiber/fiber/v3"
)

func RegisterProjects(r fiber.Router, projectHandler *handler.ProjectHandler, applicationHandler *handler.ApplicationHandler, auth fiber.Handler) {
	if r == nil {
		return
	}
	if projectHandler == nil {
		return
	}

	projectHandler.RegisterRoutes(r, auth)
	if applicationHandler != nil {
		applicationHandler.RegisterProjectRoutes(r, auth)
	}
}
