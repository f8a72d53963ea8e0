package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/afero"

	"codeberg.org/snonux/gospeltts/internal/api"
	"codeberg.org/snonux/gospeltts/internal/cli"
)

func runServe(ctx context.Context, cfg *cli.Config) error {
	logger := cli.NewLogger(cfg.Logging, "json", os.Stderr)

	logger.Info().
		Str("listen", cfg.Server.Listen).
		Str("output_dir", cfg.OutputDir).
		Str("translation", cfg.Translation.Provider).
		Str("audio", cfg.Audio.Provider).
		Msg("Starting gospeltts server")

	a, err := newApp(ctx, cfg, afero.NewOsFs(), os.Stdout, logger)
	if err != nil {
		return err
	}

	if cfg.Recognition.APIKey == "" {
		logger.Warn().Msg("OpenAI API key not set - voice recordings will be rejected")
	}

	router := api.NewRouter(a.processor, a.verses, logger)

	srv := &http.Server{
		Addr:         cfg.Server.Listen,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Listen).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("Shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	logger.Info().Msg("Server stopped")
	return nil
}
