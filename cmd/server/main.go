package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"joinup/internal/app"
	"joinup/internal/config"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger := app.NewLogger(cfg.App)

	bootstrap, cleanup, err := app.Bootstrap(cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to bootstrap app")
	}
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error().Err(err).Msg("cleanup error")
		}
	}()

	addr, err := app.ListenAddr(cfg.App.HTTPPort)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid HTTP port")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- bootstrap.Fiber.Listen(addr)
	}()
	logger.Info().Str("addr", addr).Msg("http server listening")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("server error")
		}
	case <-sigCh:
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := bootstrap.Fiber.ShutdownWithContext(ctx); err != nil {
			logger.Error().Err(err).Msg("shutdown error")
		}
	}
}
