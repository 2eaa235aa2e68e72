package handler

import (
	"encoding/json"

	"joinup/internal/delivery/http/middleware"
	"joinup/internal/filter"
	"joinup/internal/pkg/response"
	"joinup/internal/usecase"
	"joinup/internal/viewmodel"

	"github.com/gofiber/fiber/v3"
)

type ProjectHandler struct {
	projects usecase.ProjectUsecase
	browse   usecase.BrowseUsecase
}

type postProjectRequest struct {
	Title           string          `json:"title"`
	Description     string          `json:"description"`
	Company         *string         `json:"company"`
	Skills          json.RawMessage `json:"skills"`
	Location        string          `json:"location"`
	Budget          *string         `json:"budget"`
	Duration        *string         `json:"duration"`
	Category        *string         `json:"category"`
	ExperienceLevel *string         `json:"experience_level"`
	AcademicYear    *string         `json:"academic_year"`
	Availability    *string         `json:"availability"`
	IsUrgent        bool            `json:"is_urgent"`
	MaxHires        int             `json:"max_hires"`
}

func NewProjectHandler(projects usecase.ProjectUsecase, browse usecase.BrowseUsecase) *ProjectHandler {
	return &ProjectHandler{projects: projects, browse: browse}
}

// RegisterRoutes mounts /projects. /mine is registered ahead of /:id.
func (h *ProjectHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", auth, h.Post)
	r.Get("/mine", auth, h.ListMine)
	r.Get("/:id", h.Get)
	r.Post("/:id/close", auth, h.Close)
	r.Delete("/:id", auth, h.Delete)
}

func (h *ProjectHandler) List(c fiber.Ctx) error {
	f := filter.FromQuery(filter.ProjectFacets, queryLookup(c))
	res, err := h.browse.Projects(c.Context(), f)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}

func (h *ProjectHandler) Get(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.projects.Get(c.Context(), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *ProjectHandler) Post(c fiber.Ctx) error {
	var req postProjectRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	p, err := h.projects.Post(c.Context(), middleware.SessionFrom(c), usecase.PostProjectInput{
		Title:           req.Title,
		Description:     req.Description,
		Company:         req.Company,
		Skills:          viewmodel.ParseSkills(req.Skills),
		Location:        req.Location,
		Budget:          req.Budget,
		Duration:        req.Duration,
		Category:        req.Category,
		ExperienceLevel: req.ExperienceLevel,
		AcademicYear:    req.AcademicYear,
		Availability:    req.Availability,
		IsUrgent:        req.IsUrgent,
		MaxHires:        req.MaxHires,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "project posted", p)
}

func (h *ProjectHandler) ListMine(c fiber.Ctx) error {
	ps, err := h.projects.ListMine(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, ps)
}

func (h *ProjectHandler) Close(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	p, err := h.projects.Close(c.Context(), middleware.SessionFrom(c), id)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "project closed", p)
}

func (h *ProjectHandler) Delete(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	if err := h.projects.Delete(c.Context(), middleware.SessionFrom(c), id); err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "project deleted", nil)
}
