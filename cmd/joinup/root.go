package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"joinup/internal/app"
	"joinup/internal/cli/output"
	"joinup/internal/config"
	"joinup/internal/database"
	dbpostgres "joinup/internal/database/postgres"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Shared dependencies, set up in PersistentPreRunE.
var (
	ui     *output.UI
	cfg    config.Config
	logger zerolog.Logger

	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "joinup",
	Short: "JoinUp admin tool",
	Long: `joinup manages the JoinUp database and lets operators browse
projects and students with the same filters the API uses.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		logger = app.NewLogger(cfg.App)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	ui = output.New()
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Overall deadline for the command")

	rootCmd.AddCommand(migrateCmd, seedCmd, projectsCmd, studentsCmd, cacheCmd)
}

// withDB connects to Postgres for the duration of fn.
func withDB(cmd *cobra.Command, fn func(ctx context.Context, db database.DB) error) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()
	return fn(ctx, db)
}
