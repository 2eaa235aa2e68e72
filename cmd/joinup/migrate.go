package main

import (
	"context"
	"strconv"

	"joinup/internal/database"
	"joinup/internal/database/migration"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db database.DB) error {
			r := migration.Runner{Dir: cfg.MigrationsDir, Logger: logger}
			applied, err := r.Run(ctx, db.SQLDB())
			if err != nil {
				return err
			}
			if len(applied) == 0 {
				ui.Info("schema is up to date")
				return nil
			}
			ui.Success("applied %d migration(s)", len(applied))
			return nil
		})
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "List migrations and whether each is applied",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withDB(cmd, func(ctx context.Context, db database.DB) error {
			r := migration.Runner{Dir: cfg.MigrationsDir, Logger: logger}
			statuses, err := r.Status(ctx, db.SQLDB())
			if err != nil {
				return err
			}
			table := ui.Table([]string{"Version", "Name", "State"})
			for _, s := range statuses {
				state := "pending"
				if s.Applied {
					state = "applied"
				}
				_ = table.Append([]string{
					strconv.FormatInt(s.Migration.Version, 10),
					s.Migration.Name,
					statusColor(state),
				})
			}
			return table.Render()
		})
	},
}

func init() {
	migrateCmd.AddCommand(migrateStatusCmd)
}
