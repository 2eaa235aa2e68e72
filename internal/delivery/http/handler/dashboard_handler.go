package handler

import (
	"joinup/internal/delivery/http/middleware"
	"joinup/internal/pkg/response"
	"joinup/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type DashboardHandler struct {
	uc usecase.DashboardUsecase
}

func NewDashboardHandler(uc usecase.DashboardUsecase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

func (h *DashboardHandler) Get(c fiber.Ctx) error {
	d, err := h.uc.Load(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, d)
}

func (h *DashboardHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}
	r.Get("/dashboard", auth, h.Get)
}
