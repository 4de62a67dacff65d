package logger

import (
	"io"
	"log/slog"

	"github.com/jwebster45206/animus-mundi/internal/config"
)

// SetupWriter configures the global slog logger based on environment,
// writing to w. The console UI owns stdout, so it passes a file.
func SetupWriter(cfg *config.Config, w io.Writer) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	if cfg.Environment == "production" {
		// JSON format for production
		handler = slog.NewJSONHandler(w, opts)
	} else {
		// Text format for development
		handler = slog.NewTextHandler(w, opts)
	}

	logger := slog.New(handler)

	// Set as default logger
	slog.SetDefault(logger)

	return logger
}

// WithSaveKey adds the save slot key to logger context
func WithSaveKey(logger *slog.Logger, key string) *slog.Logger {
	return logger.With("save_key", key)
}

// WithError adds error to logger context
func WithError(logger *slog.Logger, err error) *slog.Logger {
	return logger.With("error", err.Error())
}
