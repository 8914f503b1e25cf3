package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"

	"github.com/yigit/studyhub/internal/client"
	"github.com/yigit/studyhub/internal/pkg/logger"
	"github.com/yigit/studyhub/internal/tui"
)

const logPathEnv = "STUDYHUB_TUI_LOG"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "studyhub:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg client.Config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	log, closeLog, err := setupLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("api", cfg.BaseURL).Msg("Starting terminal client")
	return tui.Run(ctx, client.New(cfg), log)
}

// setupLogger logs to the file named by STUDYHUB_TUI_LOG; without it logging
// is disabled so nothing draws over the screen.
func setupLogger() (zerolog.Logger, func(), error) {
	path := os.Getenv(logPathEnv)
	if path == "" {
		return logger.Configure(logger.Config{Level: logger.DisabledLevel, Output: io.Discard}), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return zerolog.Logger{}, nil, fmt.Errorf("open log file: %w", err)
	}
	log := logger.Configure(logger.Config{Level: logger.DebugLevel, Output: f})
	return log.With().Str("component", "tui").Logger(), func() { _ = f.Close() }, nil
}
