package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Init configures the global slog logger.
// In production (ENVIRONMENT=production) it uses JSON output for log aggregation.
// Otherwise it uses the human-readable text handler.
func Init() {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))

	var handler slog.Handler
	if env == "production" {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	} else {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})
	}

	slog.SetDefault(slog.New(handler))
}

// WithChat returns a logger with chat request context fields attached.
// Use this for all logging within a single Arthur conversation request.
func WithChat(organizationID, userID string) *slog.Logger {
	return slog.With(
		"organization_id", organizationID,
		"user_id", userID,
	)
}

// WithTool returns a logger scoped to one tool execution within a chat round.
func WithTool(logger *slog.Logger, toolUseID, toolName string) *slog.Logger {
	return logger.With(
		"tool_use_id", toolUseID,
		"tool", toolName,
	)
}
