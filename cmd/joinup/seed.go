package main

import (
	"context"

	"joinup/internal/database"
	"joinup/internal/database/seeder"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert demo students and projects",
	Long: `seed inserts demo accounts and projects. It is idempotent: existing
emails and owner/title pairs are skipped. Every demo account uses the same password.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db database.DB) error {
			r := seeder.Runner{Seeders: seeder.Defaults(), Logger: logger}
			if err := r.Run(ctx, db); err != nil {
				return err
			}
			ui.Success("demo data ready, password %q", seeder.DemoPassword)
			return nil
		})
	},
}
