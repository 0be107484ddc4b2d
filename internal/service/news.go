package service

import (
	"context"
	"fmt"
	"time"

	"portfolio-insight/config"
	"portfolio-insight/internal/dto"
	"portfolio-insight/internal/repository"
	"portfolio-insight/pkg/logger"
	"portfolio-insight/pkg/utils"

	"golang.org/x/sync/errgroup"
)

type NewsService interface {
	GetCompanyNews(ctx context.Context, symbols []string, fromDate, toDate string) *dto.NewsResponse
	GetGeneralNews(ctx context.Context, category string) (*dto.NewsResponse, error)
}

type newsService struct {
	cfg         *config.Config
	log         *logger.Logger
	finnhubRepo repository.FinnhubRepository
}

func NewNewsService(cfg *config.Config, log *logger.Logger, finnhubRepo repository.FinnhubRepository) NewsService {
	return &newsService{
		cfg:         cfg,
		log:         log,
		finnhubRepo: finnhubRepo,
	}
}

// GetCompanyNews fetches news for each symbol independently. A failure for
// one symbol is logged and its slot left empty, it never aborts the other
// symbols, so this method does not return an error. Symbols fan out
// concurrently but the result keeps the input symbol order.
func (s *newsService) GetCompanyNews(ctx context.Context, symbols []string, fromDate, toDate string) *dto.NewsResponse {
	if fromDate == "" || toDate == "" {
		defaultFrom, defaultTo := utils.DateRange(s.cfg.Finnhub.NewsMaxAgeDays)
		if fromDate == "" {
			fromDate = defaultFrom
		}
		if toDate == "" {
			toDate = defaultTo
		}
	}

	perSymbol := make([][]dto.NewsArticle, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	for i, symbol := range symbols {
		g.Go(func() error {
			s.log.InfoContext(gctx, "Fetching news for symbol", logger.StringField("symbol", symbol))

			raw, err := s.finnhubRepo.CompanyNews(gctx, symbol, fromDate, toDate)
			if err != nil {
				s.log.ErrorContext(gctx, "Error fetching news for symbol",
					logger.StringField("symbol", symbol),
					logger.ErrorField(err))
				return nil
			}

			perSymbol[i] = s.mapArticles(gctx, symbol, raw, s.cfg.Finnhub.CompanyNewsLimit)
			return nil
		})
	}
	// Workers swallow their own errors, Wait is only a join point here.
	_ = g.Wait()

	articles := []dto.NewsArticle{}
	for _, batch := range perSymbol {
		articles = append(articles, batch...)
	}

	return &dto.NewsResponse{Articles: articles, Count: len(articles)}
}

// GetGeneralNews fetches market-wide news. Unlike company news there is no
// batch to degrade into, so a fetch failure is fatal to this call.
func (s *newsService) GetGeneralNews(ctx context.Context, category string) (*dto.NewsResponse, error) {
	s.log.InfoContext(ctx, "Fetching general news", logger.StringField("category", category))

	raw, err := s.finnhubRepo.GeneralNews(ctx, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}

	articles := s.mapArticles(ctx, "", raw, s.cfg.Finnhub.GeneralNewsLimit)
	return &dto.NewsResponse{Articles: articles, Count: len(articles)}, nil
}

// mapArticles converts raw provider items to NewsArticle, capping at limit
// and keeping the provider's ordering. Missing fields get fixed
// placeholders; a zero timestamp maps to the epoch.
func (s *newsService) mapArticles(ctx context.Context, symbol string, raw []dto.FinnhubArticle, limit int) []dto.NewsArticle {
	if len(raw) > limit {
		raw = raw[:limit]
	}

	articles := make([]dto.NewsArticle, 0, len(raw))
	for _, item := range raw {
		article := dto.NewsArticle{
			Symbol:      symbol,
			Title:       item.Headline,
			Summary:     item.Summary,
			Source:      item.Source,
			URL:         item.URL,
			PublishedAt: time.Unix(item.Datetime, 0).UTC(),
		}
		if article.Title == "" {
			article.Title = dto.PlaceholderTitle
		}
		if article.Summary == "" {
			article.Summary = dto.PlaceholderSummary
		}
		if article.Source == "" {
			article.Source = dto.PlaceholderSource
		}
		articles = append(articles, article)
	}

	s.log.InfoContext(ctx, "Parsed news articles",
		logger.StringField("symbol", symbol),
		logger.IntField("count", len(articles)))

	return articles
}
