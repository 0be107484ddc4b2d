package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// SetupMeta registers the root and health endpoints, outside the API prefix.
func (h *HttpAPIHandler) SetupMeta() {
	h.echo.GET("/", h.root)
	h.echo.GET("/health", h.health)
}

func (h *HttpAPIHandler) root(c echo.Context) error {
	prefix := h.cfg.API.Prefix
	return c.JSON(http.StatusOK, map[string]interface{}{
		"name":        h.cfg.App.Name,
		"version":     h.cfg.App.Version,
		"description": "Personal stock portfolio insights with sentiment analysis",
		"endpoints": map[string]string{
			"portfolio": prefix + "/portfolio",
			"news":      prefix + "/news",
			"sentiment": prefix + "/sentiment/analyze",
			"summary":   prefix + "/summary",
		},
	})
}

func (h *HttpAPIHandler) health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": h.cfg.App.Version,
	})
}
