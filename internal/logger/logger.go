package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alkime/podcasts/internal/config"
)

// SetupLogger configures structured logging based on environment.
func SetupLogger(cfg *config.Config) *slog.Logger {
	// Create JSON handler for structured logging
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: Level(cfg.Env, cfg.LogLevel),
	})

	logger := slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}

// SetupCLILogger configures a text logger for terminal commands.
// Output goes to w so stdout stays free for results.
func SetupCLILogger(w io.Writer, level string) *slog.Logger {
	//nolint:exhaustruct // Using default values for other HandlerOptions fields
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: Level("", level),
	})

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return logger
}

// Level maps the environment and LOG_LEVEL values to a slog level.
func Level(env, level string) slog.Level {
	logLevel := slog.LevelInfo
	if env == config.EnvDevelopment {
		logLevel = slog.LevelDebug
	}

	switch strings.ToLower(level) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn", "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	return logLevel
}
