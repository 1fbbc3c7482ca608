package upstream

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"activity-suggestion-bff/config"
)

const (
	defaultTimeout                  = 10 * time.Second
	defaultPooledConnectionLifetime = 15 * time.Minute

	maxResponseBytes = 1 << 20
)

// LiveClient fetches activities from the upstream API over HTTP.
// It is safe for concurrent use; all calls share one connection pool.
type LiveClient struct {
	endpoint  *url.URL
	client    *http.Client
	transport *recyclingTransport
	logger    *slog.Logger
}

var _ Client = (*LiveClient)(nil)

// NewLiveClient validates cfg and builds a LiveClient. A base address that is
// not an absolute URI, or an empty activity path, is rejected.
func NewLiveClient(cfg config.UpstreamConfig, logger *slog.Logger) (*LiveClient, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseAddress))
	if err != nil || !base.IsAbs() || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseAddress, cfg.BaseAddress)
	}

	path := strings.TrimSpace(cfg.ActivityPath)
	if path == "" {
		return nil, fmt.Errorf("%w: activity_path is required", ErrInvalidActivityPath)
	}
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidActivityPath, err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	lifetime := cfg.PooledConnectionLifetime
	if lifetime <= 0 {
		lifetime = defaultPooledConnectionLifetime
	}

	logger = logger.With("component", "upstream")
	transport := newRecyclingTransport(lifetime, transportFactory(cfg.HTTPProxy, logger))

	return &LiveClient{
		endpoint: base.ResolveReference(ref),
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		transport: transport,
		logger:    logger,
	}, nil
}

// FetchActivity performs a single GET against the activity endpoint.
// A non-success status is reported as not found; a success status with an
// unparsable body is an ErrMalformedResponse.
func (c *LiveClient) FetchActivity(ctx context.Context, participants int) (*Activity, error) {
	start := time.Now()
	act, err := c.fetch(ctx, participants)
	observeLiveFetch(act, err, time.Since(start))
	return act, err
}

func (c *LiveClient) fetch(ctx context.Context, participants int) (*Activity, error) {
	target := c.activityURL(participants)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.WarnContext(ctx, "upstream returned non-success status",
			"status", resp.StatusCode, "url", target)
		// Drain so the connection can go back to the pool.
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	if len(body) > maxResponseBytes {
		return nil, fmt.Errorf("%w: body exceeds %d bytes", ErrMalformedResponse, maxResponseBytes)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: empty body", ErrMalformedResponse)
	}

	// Unmarshal rejects anything after the first JSON value.
	var act Activity
	if err := json.Unmarshal(body, &act); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}
	return &act, nil
}

// activityURL appends the participants query when participants > 0.
func (c *LiveClient) activityURL(participants int) string {
	u := *c.endpoint
	if participants > 0 {
		q := u.Query()
		q.Set("participants", strconv.Itoa(participants))
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// Close releases idle pooled connections.
func (c *LiveClient) Close() {
	c.client.CloseIdleConnections()
}
