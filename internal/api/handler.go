package api

import (
	"log/slog"

	"activity-suggestion-bff/internal/upstream"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	client upstream.Client
	logger *slog.Logger
}

// NewHandler creates a new API handler.
func NewHandler(client upstream.Client, logger *slog.Logger) *Handler {
	return &Handler{
		client: client,
		logger: logger.With("component", "activity_handler"),
	}
}
