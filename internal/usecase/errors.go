package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrForbidden           = errors.New("forbidden")
	ErrUnauthorized        = errors.New("unauthorized")
	ErrAlreadyApplied      = errors.New("already applied to this project")
	ErrProjectClosed       = errors.New("project is not accepting applications")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrUnavailable         = errors.New("service unavailable")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrRefreshTokenExpired = errors.New("refresh token expired")
	ErrInternal            = errors.New("internal error")
)

// OperationError is a failed call to the database or another backing
// service. Its message is shown to the caller as is.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	if e.Err == nil {
		return "operation failed"
	}
	return "operation failed: " + e.Err.Error()
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func opFailed(op string, err error) error {
	return &OperationError{Op: op, Err: err}
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
