package upstream

import (
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// recyclingTransport is an http.RoundTripper shared by every outbound call.
// Once the current *http.Transport is older than lifetime it is replaced, so
// pooled connections are re-dialled and pick up DNS changes. The retired
// transport keeps serving in-flight requests; its idle connections are closed.
type recyclingTransport struct {
	newTransport func() *http.Transport
	lifetime     time.Duration
	now          func() time.Time

	mu        sync.Mutex
	current   *http.Transport
	createdAt time.Time
}

func newRecyclingTransport(lifetime time.Duration, newTransport func() *http.Transport) *recyclingTransport {
	return &recyclingTransport{
		newTransport: newTransport,
		lifetime:     lifetime,
		now:          time.Now,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *recyclingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	return t.transport().RoundTrip(req)
}

// CloseIdleConnections lets http.Client.CloseIdleConnections reach the pool.
func (t *recyclingTransport) CloseIdleConnections() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current != nil {
		t.current.CloseIdleConnections()
	}
}

func (t *recyclingTransport) transport() *http.Transport {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if t.current != nil && now.Sub(t.createdAt) < t.lifetime {
		return t.current
	}

	retired := t.current
	t.current = t.newTransport()
	t.createdAt = now
	if retired != nil {
		transportRecycles.Inc()
		retired.CloseIdleConnections()
	}
	return t.current
}

// transportFactory builds the pooled transports used by the live client.
// An invalid proxy URL is logged and ignored.
func transportFactory(httpProxy string, logger *slog.Logger) func() *http.Transport {
	var proxy func(*http.Request) (*url.URL, error)
	if httpProxy != "" {
		proxyURL, err := url.Parse(httpProxy)
		if err != nil {
			logger.Warn("invalid proxy URL, upstream client will not use a proxy", "proxy", httpProxy, "error", err)
		} else {
			proxy = http.ProxyURL(proxyURL)
		}
	}

	return func() *http.Transport {
		return &http.Transport{
			Proxy:               proxy,
			ForceAttemptHTTP2:   true,
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 16,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		}
	}
}
