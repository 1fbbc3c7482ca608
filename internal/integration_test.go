package internal

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"activity-suggestion-bff/config"
	"activity-suggestion-bff/internal/api"
	"activity-suggestion-bff/internal/logging"
	"activity-suggestion-bff/internal/upstream"
)

// TestActivityRelay_LiveUpstream runs the full request path against a fake
// upstream: routing, the live client, the mapper and error translation.
func TestActivityRelay_LiveUpstream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var calls atomic.Int32
	var lastQuery atomic.Value
	fakeUpstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		lastQuery.Store(r.URL.RawQuery)
		if r.URL.Path != "/api/random" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Query().Get("participants") {
		case "7":
			_, _ = w.Write([]byte(`{"error":"No activity found with the specified parameters"}`))
		case "8":
			w.WriteHeader(http.StatusTooManyRequests)
		case "9":
			_, _ = w.Write([]byte(`{"activity":`))
		case "10":
			_, _ = w.Write([]byte(`{"activity":"x","key":"1","accessibility":0.1}<html>garbage`))
		default:
			_, _ = w.Write([]byte(`{
				"activity": "Learn how to play a new sport",
				"type": "recreational",
				"participants": 2,
				"price": 0.125,
				"link": "",
				"key": "5808228",
				"accessibility": 0.75
			}`))
		}
	}))
	defer fakeUpstream.Close()

	cfg := &config.Config{
		Server: config.ServerConfig{Environment: "production"},
		Upstream: config.UpstreamConfig{
			BaseAddress:  fakeUpstream.URL + "/api/",
			ActivityPath: "random",
		},
	}
	client, err := upstream.New(cfg.Upstream, logging.Discard())
	require.NoError(t, err)
	router, err := api.NewRouter(cfg, client, logging.Discard())
	require.NoError(t, err)

	serve := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("Suggestion is relayed and reshaped", func(t *testing.T) {
		w := serve("/api/activity/2")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "participants=2", lastQuery.Load())
		assert.JSONEq(t, `{
			"id": "5808228",
			"description": "Learn how to play a new sport",
			"category": "recreational",
			"participantCount": 2,
			"cost": 0.125,
			"uri": "",
			"accessibilityScore": 0.75,
			"accessibilityRating": "Hard"
		}`, w.Body.String())
	})

	t.Run("Omitted count sends no query", func(t *testing.T) {
		w := serve("/api/activity")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "", lastQuery.Load())
	})

	t.Run("Upstream error payload is not found", func(t *testing.T) {
		w := serve("/api/activity/7")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Upstream error status is not found", func(t *testing.T) {
		w := serve("/api/activity/8")
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("Malformed upstream body is a bad gateway", func(t *testing.T) {
		w := serve("/api/activity/9")
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.JSONEq(t, `{"error":"activity service returned an invalid response"}`, w.Body.String())
	})

	t.Run("Trailing data after the payload is a bad gateway", func(t *testing.T) {
		w := serve("/api/activity/10")
		assert.Equal(t, http.StatusBadGateway, w.Code)
		assert.JSONEq(t, `{"error":"activity service returned an invalid response"}`, w.Body.String())
	})

	t.Run("Negative count never reaches upstream", func(t *testing.T) {
		before := calls.Load()
		w := serve("/api/activity/-1")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, before, calls.Load())
	})
}

// TestActivityRelay_UnreachableUpstream checks that a dead upstream surfaces
// as a bad gateway rather than a server error.
func TestActivityRelay_UnreachableUpstream(t *testing.T) {
	gin.SetMode(gin.TestMode)

	dead := httptest.NewServer(http.NotFoundHandler())
	address := dead.URL + "/"
	dead.Close()

	cfg := &config.Config{
		Server:   config.ServerConfig{Environment: "production"},
		Upstream: config.UpstreamConfig{BaseAddress: address, ActivityPath: "random"},
	}
	client, err := upstream.New(cfg.Upstream, logging.Discard())
	require.NoError(t, err)
	router, err := api.NewRouter(cfg, client, logging.Discard())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/activity/1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.JSONEq(t, `{"error":"activity service unavailable"}`, w.Body.String())
}
