package http

import (
	"net/http"
	"strings"

	"portfolio-insight/internal/dto"
	"portfolio-insight/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupNews(base *echo.Group) {
	newsGroup := base.Group("/news")
	newsGroup.GET("", h.getNews)
	newsGroup.GET("/general", h.getGeneralNews)
}

func (h *HttpAPIHandler) getNews(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.GetNewsRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid query parameters"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	symbols := splitSymbols(req.Symbols)
	if len(symbols) == 0 {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("symbols must not be empty"))
	}

	news := h.service.NewsService.GetCompanyNews(ctx, symbols, req.FromDate, req.ToDate)
	return c.JSON(http.StatusOK, news)
}

func (h *HttpAPIHandler) getGeneralNews(c echo.Context) error {
	ctx := c.Request().Context()

	category := c.QueryParam("category")
	if category == "" {
		category = "general"
	}

	news, err := h.service.NewsService.GetGeneralNews(ctx, category)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to fetch news", nil))
	}

	return c.JSON(http.StatusOK, news)
}

func splitSymbols(raw string) []string {
	parts := strings.Split(raw, ",")
	symbols := make([]string, 0, len(parts))
	for _, part := range parts {
		symbol := utils.NormalizeSymbol(part)
		if symbol == "" {
			continue
		}
		symbols = append(symbols, symbol)
	}
	return symbols
}
