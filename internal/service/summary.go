package service

import (
	"context"

	"portfolio-insight/config"
	"portfolio-insight/internal/dto"
	"portfolio-insight/pkg/logger"
)

type SummaryService interface {
	GetSummary(ctx context.Context) (*dto.SummaryResponse, error)
}

type summaryService struct {
	cfg              *config.Config
	log              *logger.Logger
	portfolioService PortfolioService
	newsService      NewsService
	sentimentService SentimentService
}

func NewSummaryService(
	cfg *config.Config,
	log *logger.Logger,
	portfolioService PortfolioService,
	newsService NewsService,
	sentimentService SentimentService,
) SummaryService {
	return &summaryService{
		cfg:              cfg,
		log:              log,
		portfolioService: portfolioService,
		newsService:      newsService,
		sentimentService: sentimentService,
	}
}

// GetSummary runs the aggregation pipeline: portfolio, then company news for
// the held symbols, then sentiment per article. The portfolio fetch is the
// only step that can fail the call. News article order is preserved in the
// response.
func (s *summaryService) GetSummary(ctx context.Context) (*dto.SummaryResponse, error) {
	portfolio, err := s.portfolioService.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}

	symbols := portfolio.Symbols()
	if len(symbols) == 0 {
		s.log.InfoContext(ctx, "Portfolio has no holdings, skipping news fetch")
		return &dto.SummaryResponse{
			Portfolio: portfolio,
			News:      []dto.NewsWithSentiment{},
		}, nil
	}

	news := s.newsService.GetCompanyNews(ctx, symbols, "", "")

	texts := make([]string, 0, len(news.Articles))
	for _, article := range news.Articles {
		texts = append(texts, article.Title+". "+article.Summary)
	}
	sentiments := s.sentimentService.AnalyzeBatch(ctx, texts)

	merged := make([]dto.NewsWithSentiment, 0, len(news.Articles))
	for i, article := range news.Articles {
		merged = append(merged, dto.NewsWithSentiment{
			NewsArticle: article,
			Sentiment:   sentiments[i].Sentiment,
			Confidence:  sentiments[i].Confidence,
		})
	}

	s.log.InfoContext(ctx, "Summary assembled",
		logger.IntField("holdings", len(portfolio.Holdings)),
		logger.IntField("news", len(merged)))

	return &dto.SummaryResponse{
		Portfolio: portfolio,
		News:      merged,
	}, nil
}
