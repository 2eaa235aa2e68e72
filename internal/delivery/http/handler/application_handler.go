package handler

import (
	"joinup/internal/delivery/http/middleware"
	"joinup/internal/pkg/response"
	"joinup/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type ApplicationHandler struct {
	uc usecase.ApplicationUsecase
}

type applyRequest struct {
	CoverLetter        string  `json:"cover_letter"`
	Message            *string `json:"message"`
	ResumeLink         *string `json:"resume_link"`
	PortfolioLink      *string `json:"portfolio_link"`
	Availability       *string `json:"availability"`
	RelevantExperience *string `json:"relevant_experience"`
	WhyInterested      *string `json:"why_interested"`
}

type hireRequest struct {
	Role string `json:"role"`
}

func NewApplicationHandler(uc usecase.ApplicationUsecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

// RegisterProjectRoutes mounts the per-project routes under /projects.
func (h *ApplicationHandler) RegisterProjectRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Post("/:id/applications", auth, h.Apply)
	r.Get("/:id/applications", auth, h.ListForProject)
}

// RegisterRoutes mounts /applications.
func (h *ApplicationHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/mine", auth, h.ListMine)
	r.Post("/:id/hire", auth, h.Hire)
}

func (h *ApplicationHandler) Apply(c fiber.Ctx) error {
	projectID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req applyRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	a, err := h.uc.Apply(c.Context(), middleware.SessionFrom(c), projectID, usecase.ApplyInput{
		CoverLetter:        req.CoverLetter,
		Message:            req.Message,
		ResumeLink:         req.ResumeLink,
		PortfolioLink:      req.PortfolioLink,
		Availability:       req.Availability,
		RelevantExperience: req.RelevantExperience,
		WhyInterested:      req.WhyInterested,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusCreated, "application submitted", a)
}

func (h *ApplicationHandler) ListForProject(c fiber.Ctx) error {
	projectID, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	as, err := h.uc.ListForProject(c.Context(), middleware.SessionFrom(c), projectID)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, as)
}

func (h *ApplicationHandler) ListMine(c fiber.Ctx) error {
	as, err := h.uc.ListMine(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, as)
}

func (h *ApplicationHandler) Hire(c fiber.Ctx) error {
	id, err := uuidParam(c, "id")
	if err != nil {
		return err
	}
	var req hireRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	out, err := h.uc.Hire(c.Context(), middleware.SessionFrom(c), id, req.Role)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "applicant hired", out)
}
