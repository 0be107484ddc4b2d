package service

import (
	"context"
	"fmt"

	"portfolio-insight/config"
	"portfolio-insight/internal/dto"
	"portfolio-insight/internal/repository"
	"portfolio-insight/pkg/logger"
	"portfolio-insight/pkg/utils"
)

type PortfolioService interface {
	GetPortfolio(ctx context.Context) (*dto.PortfolioResponse, error)
	GetPortfolioSymbols(ctx context.Context) []string
	RefreshSession(ctx context.Context) error
}

type portfolioService struct {
	cfg           *config.Config
	log           *logger.Logger
	robinhoodRepo repository.RobinhoodRepository
}

func NewPortfolioService(cfg *config.Config, log *logger.Logger, robinhoodRepo repository.RobinhoodRepository) PortfolioService {
	return &portfolioService{
		cfg:           cfg,
		log:           log,
		robinhoodRepo: robinhoodRepo,
	}
}

// GetPortfolio assembles the full portfolio view. The positions fetch is the
// anchor: its failure aborts the call. Everything per-position is
// best-effort, a position with a missing instrument, unresolvable symbol or
// failed quote is skipped or priced at zero rather than failing the whole
// portfolio.
func (s *portfolioService) GetPortfolio(ctx context.Context) (*dto.PortfolioResponse, error) {
	if err := s.robinhoodRepo.EnsureSession(ctx); err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "Fetching portfolio data")

	totalEquity := s.providerEquity(ctx)
	cashBalance := s.cashBalance(ctx)

	positions, err := s.robinhoodRepo.Positions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch portfolio data: %w", err)
	}

	holdings := make([]dto.Holding, 0, len(positions))
	for _, position := range positions {
		holding, ok := s.buildHolding(ctx, position)
		if !ok {
			continue
		}
		holdings = append(holdings, holding)
	}

	// Provider figure preferred; fall back to the computed sum plus cash
	// when the provider reports zero.
	if totalEquity == 0 && len(holdings) > 0 {
		for _, h := range holdings {
			totalEquity += h.Equity
		}
		totalEquity += cashBalance
		s.log.InfoContext(ctx, "Calculated total equity from holdings",
			logger.FloatField("total_equity", totalEquity))
	}

	s.log.InfoContext(ctx, "Successfully fetched holdings", logger.IntField("count", len(holdings)))

	return &dto.PortfolioResponse{
		TotalEquity: utils.Round2(totalEquity),
		CashBalance: utils.Round2(cashBalance),
		Holdings:    holdings,
	}, nil
}

// providerEquity reads the provider-reported total equity. Failures are
// logged and treated as zero so the computed fallback kicks in.
func (s *portfolioService) providerEquity(ctx context.Context) float64 {
	profile, err := s.robinhoodRepo.PortfolioProfile(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Could not load portfolio profile", logger.ErrorField(err))
		return 0
	}
	return utils.SafeFloat(profile.Equity, 0)
}

// cashBalance reads cash from the account profile, falling back to the
// portfolio profile's withdrawable amount. Failures here are never fatal.
func (s *portfolioService) cashBalance(ctx context.Context) float64 {
	account, err := s.robinhoodRepo.AccountProfile(ctx)
	if err == nil {
		if account.PortfolioCash != "" {
			return utils.SafeFloat(account.PortfolioCash, 0)
		}
		return utils.SafeFloat(account.Cash, 0)
	}

	s.log.WarnContext(ctx, "Could not load account profile", logger.ErrorField(err))

	profile, err := s.robinhoodRepo.PortfolioProfile(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "Could not get cash balance from alternative source", logger.ErrorField(err))
		return 0
	}
	return utils.SafeFloat(profile.WithdrawableAmount, 0)
}

// buildHolding maps a raw position to a Holding. Returns false when the
// position must be skipped entirely.
func (s *portfolioService) buildHolding(ctx context.Context, position dto.RobinhoodPosition) (dto.Holding, bool) {
	if position.Instrument == "" {
		s.log.WarnContext(ctx, "Position missing instrument URL")
		return dto.Holding{}, false
	}

	symbol, err := s.robinhoodRepo.SymbolByInstrument(ctx, position.Instrument)
	if err != nil {
		s.log.WarnContext(ctx, "Could not resolve symbol for instrument",
			logger.StringField("instrument", position.Instrument),
			logger.ErrorField(err))
		return dto.Holding{}, false
	}

	quantity := utils.SafeFloat(position.Quantity, 0)
	averagePrice := utils.SafeFloat(position.AverageBuyPrice, 0)

	// A failed price lookup downgrades to zero: price, equity and percent
	// change all come out zero for this holding instead of aborting the
	// fetch. Profit/loss math only runs against a real quote.
	currentPrice := 0.0
	percentChange := 0.0
	quote, err := s.robinhoodRepo.LatestQuote(ctx, symbol)
	if err != nil {
		s.log.WarnContext(ctx, "Could not get price for symbol",
			logger.StringField("symbol", symbol),
			logger.ErrorField(err))
	} else {
		currentPrice = utils.SafeFloat(quote.LastTradePrice, 0)
		percentChange = utils.CalculateProfitLoss(quantity, averagePrice, currentPrice).PercentChange
	}

	return dto.Holding{
		Symbol:        symbol,
		Quantity:      quantity,
		AveragePrice:  utils.Round2(averagePrice),
		CurrentPrice:  utils.Round2(currentPrice),
		Equity:        utils.Round2(quantity * currentPrice),
		PercentChange: percentChange,
	}, true
}

// GetPortfolioSymbols never propagates an error: a failed portfolio fetch
// yields an empty list.
func (s *portfolioService) GetPortfolioSymbols(ctx context.Context) []string {
	portfolio, err := s.GetPortfolio(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "Error fetching portfolio symbols", logger.ErrorField(err))
		return []string{}
	}
	return portfolio.Symbols()
}

func (s *portfolioService) RefreshSession(ctx context.Context) error {
	return s.robinhoodRepo.RefreshSession(ctx)
}
