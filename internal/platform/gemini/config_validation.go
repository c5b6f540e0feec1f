package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/scry-cards/internal/generation"
)

// validateConfig checks that the Gemini backend can be constructed from cfg.
func validateConfig(ctx context.Context, logger *slog.Logger, cfg Config) error {
	if cfg.APIKey == "" {
		logger.ErrorContext(ctx, "Missing Gemini API key",
			"error", "APIKey is empty")
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.Model == "" {
		logger.ErrorContext(ctx, "Missing Gemini model name",
			"error", "Model is empty")
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}

	if cfg.Timeout < 0 {
		logger.WarnContext(ctx, "Invalid Gemini timeout value",
			"value", cfg.Timeout,
			"action", "no client-level timeout")
		// The generation client still bounds every call
	}

	return nil
}
