package http

import (
	"net/http"

	"portfolio-insight/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupPortfolio(base *echo.Group) {
	portfolioGroup := base.Group("/portfolio")
	portfolioGroup.GET("", h.getPortfolio)
	portfolioGroup.GET("/symbols", h.getPortfolioSymbols)
}

func (h *HttpAPIHandler) getPortfolio(c echo.Context) error {
	ctx := c.Request().Context()

	portfolio, err := h.service.PortfolioService.GetPortfolio(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to fetch portfolio data", nil))
	}

	return c.JSON(http.StatusOK, portfolio)
}

// getPortfolioSymbols never fails: a broken portfolio fetch yields an empty
// list.
func (h *HttpAPIHandler) getPortfolioSymbols(c echo.Context) error {
	ctx := c.Request().Context()
	return c.JSON(http.StatusOK, h.service.PortfolioService.GetPortfolioSymbols(ctx))
}
