package http

import (
	"net/http"

	"portfolio-insight/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupSummary(base *echo.Group) {
	base.GET("/summary", h.getSummary)
}

func (h *HttpAPIHandler) getSummary(c echo.Context) error {
	ctx := c.Request().Context()

	summary, err := h.service.SummaryService.GetSummary(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to build portfolio summary", nil))
	}

	return c.JSON(http.StatusOK, summary)
}
