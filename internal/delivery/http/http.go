package http

import (
	"context"
	"net/http"

	"portfolio-insight/config"
	"portfolio-insight/internal/service"
	appmiddleware "portfolio-insight/pkg/middleware"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type HttpAPIHandler struct {
	cfg       *config.Config
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
}

func NewHttpAPIHandler(ctx context.Context, cfg *config.Config, echo *echo.Echo, validator *goValidator.Validate, service *service.Service) *HttpAPIHandler {
	return &HttpAPIHandler{
		cfg:       cfg,
		echo:      echo,
		validator: validator,
		service:   service,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: h.cfg.API.AllowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))
	h.echo.Use(appmiddleware.NewRateLimiterMiddleware(h.cfg.API.RateLimitPerSecond, h.cfg.API.RateLimitBurst))

	h.SetupMeta()

	base := h.echo.Group(h.cfg.API.Prefix)
	h.SetupPortfolio(base)
	h.SetupNews(base)
	h.SetupSentiment(base)
	h.SetupSummary(base)
}
