// Package upstream talks to the third-party activity API.
package upstream

import (
	"context"
	"errors"
	"log/slog"

	"activity-suggestion-bff/config"
)

var (
	// ErrUpstreamUnavailable wraps transport failures reaching the upstream.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	// ErrMalformedResponse wraps a success response whose body is not an Activity.
	ErrMalformedResponse = errors.New("malformed upstream response")

	ErrInvalidBaseAddress  = errors.New("invalid upstream base_address configuration")
	ErrInvalidActivityPath = errors.New("invalid upstream activity_path configuration")
)

// Client fetches activity suggestions.
//
// FetchActivity returns (nil, nil) when the upstream has no suggestion.
// participants <= 0 means no participant constraint.
type Client interface {
	FetchActivity(ctx context.Context, participants int) (*Activity, error)
}

// New returns the client selected by cfg.UseMock. The choice is fixed for
// the lifetime of the returned value.
func New(cfg config.UpstreamConfig, logger *slog.Logger) (Client, error) {
	if cfg.UseMock {
		logger.Info("using mock activity client")
		return NewMockClient(), nil
	}

	live, err := NewLiveClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("using live activity client", "endpoint", live.endpoint.String())
	return live, nil
}
