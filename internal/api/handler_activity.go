package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"activity-suggestion-bff/internal/model"
	"activity-suggestion-bff/internal/mw"
)

// GetActivitySuggestion handles GET /api/activity/{participants}.
//
// participants is optional; when omitted the upstream is asked for an
// unconstrained suggestion. A negative count is rejected before any upstream
// call is made.
func (h *Handler) GetActivitySuggestion(c *gin.Context) {
	log := mw.LoggerFrom(c, h.logger)

	participants, ok := parseParticipants(c.Param("participants"))
	if !ok {
		// Mirrors an integer route constraint: a non-integer segment matches no route.
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if participants < 0 {
		log.Warn("participants must be >= 0", "participants", participants)
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	log.Info("received request for an activity suggestion", "participants", participants)

	activity, err := h.client.FetchActivity(c.Request.Context(), participants)
	if err != nil {
		status, message := upstreamErrorResponse(err)
		log.Error("upstream activity request failed", "participants", participants, "status", status, "error", err)
		c.AbortWithStatusJSON(status, gin.H{"error": message})
		return
	}

	if !activity.Found() {
		attrs := []any{"participants", participants}
		if activity != nil && activity.Error != "" {
			attrs = append(attrs, "upstream_error", activity.Error)
		}
		log.Warn("unable to find an activity", attrs...)
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	log.Debug("received activity from upstream", slog.Any("activity", activity))

	suggestion := model.NewSuggestedActivity(*activity)

	log.Debug("converted upstream activity", slog.Any("suggestion", suggestion))

	c.JSON(http.StatusOK, suggestion)
}

// parseParticipants reads the optional path segment. An empty segment means 0;
// anything that is not a 32-bit integer is rejected.
func parseParticipants(raw string) (int, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
