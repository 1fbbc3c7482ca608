package mw

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"activity-suggestion-bff/config"
)

var corsMethods = []string{
	http.MethodGet,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodHead,
	http.MethodOptions,
}

// CORS builds the cross-origin middleware for cfg. It returns a nil handler
// when neither allow_any_origin nor allowed_origins is configured, in which
// case no CORS headers are emitted.
//
// Allowed origins may use a wildcard subdomain, e.g. https://*.example.com.
// A request from an origin that is not allowed is still served, just without
// CORS headers; enforcement is left to the browser.
func CORS(cfg config.CORSConfig) (gin.HandlerFunc, error) {
	corsCfg := cors.Config{
		AllowMethods: corsMethods,
		AllowHeaders: []string{"*"},
		MaxAge:       12 * time.Hour,
	}

	if cfg.AllowAnyOrigin {
		corsCfg.AllowAllOrigins = true
		if err := corsCfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid cors configuration: %w", err)
		}
		return cors.New(corsCfg), nil
	}
	if len(cfg.AllowedOrigins) == 0 {
		return nil, nil
	}

	corsCfg.AllowOrigins = cfg.AllowedOrigins
	corsCfg.AllowWildcard = true
	if err := corsCfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cors configuration: %w", err)
	}

	allowed, err := newOriginMatcher(cfg.AllowedOrigins)
	if err != nil {
		return nil, fmt.Errorf("invalid cors configuration: %w", err)
	}

	handler := cors.New(corsCfg)
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" && !allowed.match(origin) {
			c.Next()
			return
		}
		handler(c)
	}, nil
}

type wildcardOrigin struct {
	prefix string
	suffix string
}

// originMatcher mirrors the allow-list rules applied by gin-contrib/cors so
// the two agree on which origins get CORS headers.
type originMatcher struct {
	exact     map[string]struct{}
	wildcards []wildcardOrigin
}

func newOriginMatcher(origins []string) (*originMatcher, error) {
	m := &originMatcher{exact: make(map[string]struct{}, len(origins))}
	for _, origin := range origins {
		origin = strings.ToLower(origin)
		switch strings.Count(origin, "*") {
		case 0:
			m.exact[origin] = struct{}{}
		case 1:
			prefix, suffix, _ := strings.Cut(origin, "*")
			m.wildcards = append(m.wildcards, wildcardOrigin{prefix: prefix, suffix: suffix})
		default:
			return nil, fmt.Errorf("origin %q: only one * is allowed", origin)
		}
	}
	return m, nil
}

func (m *originMatcher) match(origin string) bool {
	if _, ok := m.exact[origin]; ok {
		return true
	}
	for _, w := range m.wildcards {
		if len(origin) >= len(w.prefix)+len(w.suffix) &&
			strings.HasPrefix(origin, w.prefix) && strings.HasSuffix(origin, w.suffix) {
			return true
		}
	}
	return false
}
