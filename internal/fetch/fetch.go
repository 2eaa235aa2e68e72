// Package fetch wraps reads against named resources so that optional ones
// degrade to empty results, and runs independent reads side by side.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	codeUndefinedTable    = "42P01"
	codeUndefinedColumn   = "42703"
	codePostgRESTNotFound = "PGRST205"
)

// IsMissingResource reports whether err says the table or column being read
// is not provisioned.
func IsMissingResource(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == codeUndefinedTable || pgErr.Code == codeUndefinedColumn {
			return true
		}
	}

	var coded interface{ SQLState() string }
	if errors.As(err, &coded) {
		switch coded.SQLState() {
		case codeUndefinedTable, codeUndefinedColumn, codePostgRESTNotFound:
			return true
		}
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "could not find the table") ||
		strings.Contains(msg, strings.ToLower(codePostgRESTNotFound))
}

type Resource struct {
	Name     string
	Optional bool
}

// ResourceError is a failed read of a required resource.
type ResourceError struct {
	Resource string
	Missing  bool
	Err      error
}

func (e *ResourceError) Error() string {
	if e.Missing {
		return fmt.Sprintf("resource %s is not available: %v", e.Resource, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}

// Fetch runs fn. For an optional resource any failure becomes the zero value
// and a warning; for a required one it comes back as *ResourceError, whatever
// its shape. Context cancellation is always returned as ctx.Err().
func Fetch[T any](ctx context.Context, logger zerolog.Logger, res Resource, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	v, err := fn(ctx)
	if err == nil {
		return v, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, ctxErr
	}

	missing := IsMissingResource(err)
	if res.Optional {
		logger.Warn().
			Err(err).
			Str("resource", res.Name).
			Bool("missing", missing).
			Msg("optional resource unavailable, using empty result")
		return zero, nil
	}
	return zero, &ResourceError{Resource: res.Name, Missing: missing, Err: err}
}

// Settle runs every task concurrently and waits for all of them. A failing
// task never cancels its siblings; the failures are joined.
func Settle(ctx context.Context, tasks ...func(ctx context.Context) error) error {
	errs := make([]error, len(tasks))

	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			errs[i] = task(ctx)
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
