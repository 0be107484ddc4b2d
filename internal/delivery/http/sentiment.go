package http

import (
	"net/http"

	"portfolio-insight/internal/dto"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupSentiment(base *echo.Group) {
	sentimentGroup := base.Group("/sentiment")
	sentimentGroup.POST("/analyze", h.analyzeSentiment)
}

func (h *HttpAPIHandler) analyzeSentiment(c echo.Context) error {
	ctx := c.Request().Context()

	req := new(dto.AnalyzeSentimentRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	// Only a model-load failure surfaces here; per-call classification
	// failures come back as the neutral default.
	result, err := h.service.SentimentService.Analyze(ctx, req.Text)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "sentiment model unavailable", nil))
	}

	return c.JSON(http.StatusOK, dto.AnalyzeSentimentResponse{
		Text:   req.Text,
		Result: result,
	})
}
