package main

import (
	"context"

	"joinup/internal/infrastructure/cache"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the listing cache",
}

var cacheFlushCmd = &cobra.Command{
	Use:   "flush",
	Short: "Drop the cached project and student lists",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		r := cache.NewRedis(cfg.Redis, logger)
		defer func() {
			_ = r.Close()
		}()
		if err := r.Ping(ctx); err != nil {
			return err
		}
		if err := r.Delete(ctx, cache.KeyProjectsList, cache.KeyStudentsList); err != nil {
			return err
		}
		ui.Success("listing cache flushed")
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheFlushCmd)
}
