package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHealth reports that the process is up. It does not probe the upstream.
func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
