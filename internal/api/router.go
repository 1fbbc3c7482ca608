package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"activity-suggestion-bff/config"
	"activity-suggestion-bff/internal/mw"
	"activity-suggestion-bff/internal/upstream"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, client upstream.Client, logger *slog.Logger) (*gin.Engine, error) {
	r := gin.New()

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		mw.LoggerFrom(c, logger).Error("panic recovered", "panic", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	r.Use(mw.RequestID(), mw.Logger(logger), mw.Metrics())

	cors, err := mw.CORS(cfg.CORS)
	if err != nil {
		return nil, err
	}
	if cors != nil {
		r.Use(cors)
	}

	handler := NewHandler(client, logger)

	r.GET("/health", handler.GetHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// OpenAPI document, development only.
	if cfg.Server.IsDevelopment() {
		doc, err := loadOpenAPIDocument()
		if err != nil {
			return nil, err
		}
		r.GET("/swagger/v1/swagger.json", serveOpenAPI(doc))
	}

	// API group
	api := r.Group("/api")
	{
		// GET /api/activity
		api.GET("/activity", handler.GetActivitySuggestion)

		// GET /api/activity/{participants}
		api.GET("/activity/:participants", handler.GetActivitySuggestion)
	}

	return r, nil
}
