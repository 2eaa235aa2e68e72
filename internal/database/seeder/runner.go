// Package seeder fills a migrated database with demo accounts and projects.
package seeder

import (
	"context"
	"fmt"

	"joinup/internal/database"

	"github.com/rs/zerolog"
)

// Seeder writes one group of rows. Runs must be idempotent.
type Seeder interface {
	Name() string
	Run(ctx context.Context, db database.DB) error
}

// Runner applies seeders in order and stops at the first failure.
type Runner struct {
	Seeders []Seeder
	Logger  zerolog.Logger
}

func (r Runner) Run(ctx context.Context, db database.DB) error {
	if db == nil {
		return database.ErrNilDB
	}
	for _, s := range r.Seeders {
		if s == nil {
			continue
		}
		if err := s.Run(ctx, db); err != nil {
			return fmt.Errorf("seed %s: %w", s.Name(), err)
		}
		r.Logger.Info().Str("seeder", s.Name()).Msg("seed applied")
	}
	return nil
}
