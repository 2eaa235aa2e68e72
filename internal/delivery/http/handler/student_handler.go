package handler

import (
	"joinup/internal/filter"
	"joinup/internal/pkg/response"
	"joinup/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

// StudentHandler serves the public student directory.
type StudentHandler struct {
	browse  usecase.BrowseUsecase
	profile usecase.ProfileUsecase
}

func NewStudentHandler(browse usecase.BrowseUsecase, profile usecase.ProfileUsecase) *StudentHandler {
	return &StudentHandler{browse: browse, profile: profile}
}

func (h *StudentHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Get("/:id", h.Get)
}

func (h *StudentHandler) List(c fiber.Ctx) error {
	f := filter.FromQuery(filter.StudentFacets, queryLookup(c))
	res, err := h.browse.Students(c.Context(), f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *StudentHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	st, err := h.profile.GetStudent(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, st)
}
