package handler

import (
	"encoding/json"
	"io"

	"joinup/internal/delivery/http/dto"
	"joinup/internal/delivery/http/middleware"
	"joinup/internal/domain/user"
	"joinup/internal/pkg/response"
	"joinup/internal/usecase"
	ucuser "joinup/internal/usecase/user"
	"joinup/internal/viewmodel"

	"github.com/gofiber/fiber/v3"
)

type UserHandler struct {
	uc usecase.ProfileUsecase
}

// Skills accepts a JSON array or a comma-separated string.
type updateProfileRequest struct {
	FullName     *string         `json:"full_name"`
	University   *string         `json:"university"`
	Major        *string         `json:"major"`
	AcademicYear *string         `json:"academic_year"`
	Bio          *string         `json:"bio"`
	Skills       json.RawMessage `json:"skills"`
	Availability *string         `json:"availability"`
	Location     *string         `json:"location"`
}

func NewUserHandler(uc usecase.ProfileUsecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// RegisterRoutes mounts /users/me; every route requires auth.
func (h *UserHandler) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	if r == nil {
		return
	}

	r.Get("/me", auth, h.GetMe)
	r.Put("/me", auth, h.UpdateMe)
	r.Post("/me/image", auth, h.UploadImage)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	prof, err := h.uc.GetMe(c.Context(), middleware.SessionFrom(c))
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, prof)
}

func (h *UserHandler) UpdateMe(c fiber.Ctx) error {
	var req updateProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return badBody(err)
	}

	in := user.ProfileUpdate{
		FullName:     req.FullName,
		University:   req.University,
		Major:        req.Major,
		AcademicYear: req.AcademicYear,
		Bio:          req.Bio,
		Availability: req.Availability,
		Location:     req.Location,
	}
	if len(req.Skills) > 0 && string(req.Skills) != "null" {
		in.Skills = viewmodel.ParseSkills(req.Skills)
	}

	prof, err := h.uc.UpdateMe(c.Context(), middleware.SessionFrom(c), in)
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "profile updated", prof)
}

// UploadImage reads the multipart field "image".
func (h *UserHandler) UploadImage(c fiber.Ctx) error {
	fh, err := c.FormFile("image")
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Image file is required", nil, err)
	}
	if fh.Size > ucuser.MaxImageBytes {
		return middleware.NewAppError(fiber.StatusBadRequest, "Image must be 10 MiB or smaller", nil, nil)
	}

	f, err := fh.Open()
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Image file is unreadable", nil, err)
	}
	defer f.Close()

	body, err := io.ReadAll(io.LimitReader(f, ucuser.MaxImageBytes+1))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Image file is unreadable", nil, err)
	}

	url, err := h.uc.UploadImage(c.Context(), middleware.SessionFrom(c), ucuser.Image{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Body:        body,
	})
	if err != nil {
		return mapUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, "profile image updated", dto.ImageUploadResponse{URL: url})
}
