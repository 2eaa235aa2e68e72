package handler

import (
	"context"
	"errors"
	"strings"

	"joinup/internal/delivery/http/middleware"
	"joinup/internal/pkg/response"
	"joinup/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// mapUsecaseError turns a usecase error into the AppError the error
// middleware renders.
func mapUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	var opErr *usecase.OperationError
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, validationMessage(err), nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Not found", nil, err)
	case errors.Is(err, usecase.ErrAlreadyApplied):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied to this project", nil, err)
	case errors.Is(err, usecase.ErrProjectClosed):
		return middleware.NewAppError(fiber.StatusConflict, "Project is not accepting applications", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Invalid status transition", nil, err)
	case errors.Is(err, usecase.ErrUnavailable):
		return middleware.NewExposedError(fiber.StatusServiceUnavailable, "Service unavailable", err)
	case errors.Is(err, context.DeadlineExceeded):
		return middleware.NewExposedError(fiber.StatusGatewayTimeout, "Request timed out", err)
	case errors.As(err, &opErr):
		return middleware.NewExposedError(fiber.StatusInternalServerError, opErr.Error(), err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}

func validationMessage(err error) string {
	msg := strings.TrimPrefix(err.Error(), usecase.ErrInvalidInput.Error()+": ")
	if msg == "" {
		return "Bad request"
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func uuidParam(c fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params(name)))
	if err != nil || id == uuid.Nil {
		return uuid.Nil, middleware.NewAppError(fiber.StatusBadRequest, "Invalid "+name, nil, err)
	}
	return id, nil
}

func badBody(err error) error {
	return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request payload", nil, err)
}

// queryLookup reads repeated query parameters; each value may also be a
// comma-separated list.
func queryLookup(c fiber.Ctx) func(key string) []string {
	args := c.Request().URI().QueryArgs()
	return func(key string) []string {
		var out []string
		for _, raw := range args.PeekMulti(key) {
			for _, v := range strings.Split(string(raw), ",") {
				if v = strings.TrimSpace(v); v != "" {
					out = append(out, v)
				}
			}
		}
		return out
	}
}
