package repository

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"portfolio-insight/config"
	"portfolio-insight/internal/apperr"
	"portfolio-insight/internal/dto"
	"portfolio-insight/pkg/httpclient"
	"portfolio-insight/pkg/logger"

	"golang.org/x/time/rate"
)

type FinnhubRepository interface {
	CompanyNews(ctx context.Context, symbol, fromDate, toDate string) ([]dto.FinnhubArticle, error)
	GeneralNews(ctx context.Context, category string) ([]dto.FinnhubArticle, error)
}

// finnhubRepository fetches news from the Finnhub API. Outbound calls share
// a limiter sized to the provider's per-minute quota.
type finnhubRepository struct {
	httpClient     httpclient.HTTPClient
	cfg            *config.Config
	logger         *logger.Logger
	requestLimiter *rate.Limiter
}

// NewFinnhubRepository creates a new instance of finnhubRepository.
func NewFinnhubRepository(cfg *config.Config, log *logger.Logger) FinnhubRepository {
	secondsPerRequest := time.Minute / time.Duration(cfg.Finnhub.MaxRequestPerMinute)
	requestLimiter := rate.NewLimiter(rate.Every(secondsPerRequest), 1)

	return &finnhubRepository{
		httpClient:     httpclient.New(log, cfg.Finnhub.BaseURL, cfg.Finnhub.Timeout, ""),
		cfg:            cfg,
		logger:         log,
		requestLimiter: requestLimiter,
	}
}

func (r *finnhubRepository) CompanyNews(ctx context.Context, symbol, fromDate, toDate string) ([]dto.FinnhubArticle, error) {
	queryParams := map[string]string{
		"symbol": symbol,
		"from":   fromDate,
		"to":     toDate,
		"token":  r.cfg.Finnhub.APIKey,
	}
	return r.fetchNews(ctx, "/company-news", queryParams)
}

func (r *finnhubRepository) GeneralNews(ctx context.Context, category string) ([]dto.FinnhubArticle, error) {
	queryParams := map[string]string{
		"category": category,
		"token":    r.cfg.Finnhub.APIKey,
	}
	return r.fetchNews(ctx, "/news", queryParams)
}

func (r *finnhubRepository) fetchNews(ctx context.Context, endpoint string, queryParams map[string]string) ([]dto.FinnhubArticle, error) {
	if err := r.requestLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: wait for finnhub request limit: %v", apperr.ErrUpstreamFetch, err)
	}

	var articles []dto.FinnhubArticle
	resp, err := r.httpClient.Get(ctx, endpoint, queryParams, nil, &articles)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch %s: %v", apperr.ErrUpstreamFetch, endpoint, err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Finnhub API returned non-OK status",
			logger.StringField("endpoint", endpoint),
			logger.IntField("status_code", resp.StatusCode),
			logger.StringField("body", string(resp.Body)))
		return nil, fmt.Errorf("%w: finnhub returned status %d", apperr.ErrUpstreamFetch, resp.StatusCode)
	}

	return articles, nil
}
