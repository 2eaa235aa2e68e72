package handler

import (
	"joinup/internal/delivery/http/middleware"
	"joinup/internal/pkg/response"
	"joinup/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type SavedHandler struct {
	uc usecase.SavedUsecase
}

func NewSavedHandler(uc usecase.SavedUsecase) *SavedHandler {
	return &SavedHandler{uc: uc}
}

func (h *SavedHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", auth, h.List)
	r.Post("/:projectId", auth, h.Save)
	r.Delete("/:projectId", auth, h.Unsave)
}

func (h *SavedHandler) List(c fiber.Ctx) error {
	ss, err := h.uc.List(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ss)
}

func (h *SavedHandler) Save(c fiber.Ctx) error {
	projectID, err := uuidParam(c, "projectId")
	if err != nil {
		return err
	}
	s, err := h.uc.Save(c.Context(), middleware.SessionFrom(c), projectID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "project saved", s)
}

func (h *SavedHandler) Unsave(c fiber.Ctx) error {
	projectID, err := uuidParam(c, "projectId")
	if err != nil {
		return err
	}
	if err := h.uc.Unsave(c.Context(), middleware.SessionFrom(c), projectID); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "project removed from saved", nil)
}
