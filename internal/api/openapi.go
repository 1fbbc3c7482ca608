package api

import (
	_ "embed"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gopkg.in/yaml.v3"
)

//go:embed openapi.yaml
var openAPISpec []byte

// loadOpenAPIDocument decodes the embedded OpenAPI document so it can be
// served as JSON. Status-code keys must be quoted in the YAML source.
func loadOpenAPIDocument() (map[string]any, error) {
	var doc map[string]any
	if err := yaml.Unmarshal(openAPISpec, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode openapi document: %w", err)
	}
	return doc, nil
}

func serveOpenAPI(doc map[string]any) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, doc)
	}
}
