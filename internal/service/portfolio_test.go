package service

import (
	"context"
	"errors"
	"testing"

	"portfolio-insight/config"
	"portfolio-insight/internal/dto"
	"portfolio-insight/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRobinhoodRepo struct {
	ensureSessionErr error
	refreshErr       error

	positions    []dto.RobinhoodPosition
	positionsErr error

	symbols    map[string]string
	symbolErrs map[string]error

	quotes    map[string]*dto.RobinhoodQuote
	quoteErrs map[string]error

	portfolioProfile    *dto.RobinhoodPortfolioProfile
	portfolioProfileErr error

	accountProfile    *dto.RobinhoodAccountProfile
	accountProfileErr error
}

func (f *fakeRobinhoodRepo) EnsureSession(ctx context.Context) error  { return f.ensureSessionErr }
func (f *fakeRobinhoodRepo) RefreshSession(ctx context.Context) error { return f.refreshErr }
func (f *fakeRobinhoodRepo) Logout(ctx context.Context)               {}

func (f *fakeRobinhoodRepo) Positions(ctx context.Context) ([]dto.RobinhoodPosition, error) {
	return f.positions, f.positionsErr
}

func (f *fakeRobinhoodRepo) SymbolByInstrument(ctx context.Context, instrumentURL string) (string, error) {
	if err, ok := f.symbolErrs[instrumentURL]; ok {
		return "", err
	}
	return f.symbols[instrumentURL], nil
}

func (f *fakeRobinhoodRepo) LatestQuote(ctx context.Context, symbol string) (*dto.RobinhoodQuote, error) {
	if err, ok := f.quoteErrs[symbol]; ok {
		return nil, err
	}
	return f.quotes[symbol], nil
}

func (f *fakeRobinhoodRepo) PortfolioProfile(ctx context.Context) (*dto.RobinhoodPortfolioProfile, error) {
	return f.portfolioProfile, f.portfolioProfileErr
}

func (f *fakeRobinhoodRepo) AccountProfile(ctx context.Context) (*dto.RobinhoodAccountProfile, error) {
	return f.accountProfile, f.accountProfileErr
}

func testLogger() *logger.Logger {
	return &logger.Logger{Logger: zap.NewNop()}
}

func testConfig() *config.Config {
	return &config.Config{
		Finnhub: config.FinnhubConfig{
			CompanyNewsLimit: 5,
			GeneralNewsLimit: 20,
			NewsMaxAgeDays:   30,
		},
	}
}

func TestGetPortfolio(t *testing.T) {
	ctx := context.Background()

	t.Run("uses provider equity when non-zero", func(t *testing.T) {
		repo := &fakeRobinhoodRepo{
			portfolioProfile: &dto.RobinhoodPortfolioProfile{Equity: "5000.56"},
			accountProfile:   &dto.RobinhoodAccountProfile{PortfolioCash: "100.00"},
			positions: []dto.RobinhoodPosition{
				{Instrument: "https://rh/instruments/1/", Quantity: "10", AverageBuyPrice: "100"},
			},
			symbols: map[string]string{"https://rh/instruments/1/": "AAPL"},
			quotes:  map[string]*dto.RobinhoodQuote{"AAPL": {LastTradePrice: "120"}},
		}
		svc := NewPortfolioService(testConfig(), testLogger(), repo)

		portfolio, err := svc.GetPortfolio(ctx)
		require.NoError(t, err)

		assert.Equal(t, 5000.56, portfolio.TotalEquity)
		assert.Equal(t, 100.0, portfolio.CashBalance)
		require.Len(t, portfolio.Holdings, 1)

		holding := portfolio.Holdings[0]
		assert.Equal(t, "AAPL", holding.Symbol)
		assert.Equal(t, holding.Quantity*holding.CurrentPrice, holding.Equity)
		assert.Equal(t, 20.0, holding.PercentChange)
	})

	t.Run("falls back to computed equity when provider reports zero", func(t *testing.T) {
		repo := &fakeRobinhoodRepo{
			portfolioProfile: &dto.RobinhoodPortfolioProfile{Equity: "0"},
			accountProfile:   &dto.RobinhoodAccountProfile{PortfolioCash: "50"},
			positions: []dto.RobinhoodPosition{
				{Instrument: "https://rh/instruments/1/", Quantity: "2", AverageBuyPrice: "10"},
			},
			symbols: map[string]string{"https://rh/instruments/1/": "TSLA"},
			quotes:  map[string]*dto.RobinhoodQuote{"TSLA": {LastTradePrice: "15"}},
		}
		svc := NewPortfolioService(testConfig(), testLogger(), repo)

		portfolio, err := svc.GetPortfolio(ctx)
		require.NoError(t, err)

		// 2 * 15 + 50 cash
		assert.Equal(t, 80.0, portfolio.TotalEquity)
	})

	t.Run("cash falls back to portfolio profile when account profile fails", func(t *testing.T) {
		repo := &fakeRobinhoodRepo{
			portfolioProfile:  &dto.RobinhoodPortfolioProfile{Equity: "100", WithdrawableAmount: "42.42"},
			accountProfileErr: errors.New("account service down"),
		}
		svc := NewPortfolioService(testConfig(), testLogger(), repo)

		portfolio, err := svc.GetPortfolio(ctx)
		require.NoError(t, err)
		assert.Equal(t, 42.42, portfolio.CashBalance)
	})

	t.Run("skips positions with missing instrument or unresolvable symbol", func(t *testing.T) {
		repo := &fakeRobinhoodRepo{
			portfolioProfile: &dto.RobinhoodPortfolioProfile{Equity: "100"},
			accountProfile:   &dto.RobinhoodAccountProfile{Cash: "0"},
			positions: []dto.RobinhoodPosition{
				{Instrument: "", Quantity: "1", AverageBuyPrice: "1"},
				{Instrument: "https://rh/instruments/bad/", Quantity: "1", AverageBuyPrice: "1"},
				{Instrument: "https://rh/instruments/1/", Quantity: "4", AverageBuyPrice: "25"},
			},
			symbols:    map[string]string{"https://rh/instruments/1/": "MSFT"},
			symbolErrs: map[string]error{"https://rh/instruments/bad/": errors.New("not found")},
			quotes:     map[string]*dto.RobinhoodQuote{"MSFT": {LastTradePrice: "30"}},
		}
		svc := NewPortfolioService(testConfig(), testLogger(), repo)

		portfolio, err := svc.GetPortfolio(ctx)
		require.NoError(t, err)
		require.Len(t, portfolio.Holdings, 1)
		assert.Equal(t, "MSFT", portfolio.Holdings[0].Symbol)
	})

	t.Run("failed price lookup yields zero price, equity and percent change", func(t *testing.T) {
		repo := &fakeRobinhoodRepo{
			portfolioProfile: &dto.RobinhoodPortfolioProfile{Equity: "100"},
			accountProfile:   &dto.RobinhoodAccountProfile{Cash: "0"},
			positions: []dto.RobinhoodPosition{
				{Instrument: "https://rh/instruments/1/", Quantity: "3", AverageBuyPrice: "50"},
			},
			symbols:   map[string]string{"https://rh/instruments/1/": "NVDA"},
			quoteErrs: map[string]error{"NVDA": errors.New("quote service down")},
		}
		svc := NewPortfolioService(testConfig(), testLogger(), repo)

		portfolio, err := svc.GetPortfolio(ctx)
		require.NoError(t, err)
		require.Len(t, portfolio.Holdings, 1)

		holding := portfolio.Holdings[0]
		assert.Equal(t, 0.0, holding.CurrentPrice)
		assert.Equal(t, 0.0, holding.Equity)
		assert.Equal(t, 0.0, holding.PercentChange)
	})

	t.Run("zero average price yields zero percent change", func(t *testing.T) {
		repo := &fakeRobinhoodRepo{
			portfolioProfile: &dto.RobinhoodPortfolioProfile{Equity: "100"},
			accountProfile:   &dto.RobinhoodAccountProfile{Cash: "0"},
			positions: []dto.RobinhoodPosition{
				{Instrument: "https://rh/instruments/1/", Quantity: "1", AverageBuyPrice: "0"},
			},
			symbols: map[string]string{"https://rh/instruments/1/": "AMD"},
			quotes:  map[string]*dto.RobinhoodQuote{"AMD": {LastTradePrice: "80"}},
		}
		svc := NewPortfolioService(testConfig(), testLogger(), repo)

		portfolio, err := svc.GetPortfolio(ctx)
		require.NoError(t, err)
		require.Len(t, portfolio.Holdings, 1)
		assert.Equal(t, 0.0, portfolio.Holdings[0].PercentChange)
	})

	t.Run("positions failure aborts the fetch", func(t *testing.T) {
		repo := &fakeRobinhoodRepo{
			portfolioProfile: &dto.RobinhoodPortfolioProfile{Equity: "100"},
			accountProfile:   &dto.RobinhoodAccountProfile{Cash: "0"},
			positionsErr:     errors.New("positions unavailable"),
		}
		svc := NewPortfolioService(testConfig(), testLogger(), repo)

		_, err := svc.GetPortfolio(ctx)
		assert.Error(t, err)
	})

	t.Run("login failure aborts the fetch", func(t *testing.T) {
		repo := &fakeRobinhoodRepo{ensureSessionErr: errors.New("bad credentials")}
		svc := NewPortfolioService(testConfig(), testLogger(), repo)

		_, err := svc.GetPortfolio(ctx)
		assert.Error(t, err)
	})
}

func TestGetPortfolioSymbols(t *testing.T) {
	ctx := context.Background()

	t.Run("returns ordered duplicate-preserving symbols", func(t *testing.T) {
		repo := &fakeRobinhoodRepo{
			portfolioProfile: &dto.RobinhoodPortfolioProfile{Equity: "1"},
			accountProfile:   &dto.RobinhoodAccountProfile{Cash: "0"},
			positions: []dto.RobinhoodPosition{
				{Instrument: "https://rh/instruments/1/", Quantity: "1", AverageBuyPrice: "1"},
				{Instrument: "https://rh/instruments/2/", Quantity: "1", AverageBuyPrice: "1"},
			},
			symbols: map[string]string{
				"https://rh/instruments/1/": "AAPL",
				"https://rh/instruments/2/": "TSLA",
			},
			quotes: map[string]*dto.RobinhoodQuote{
				"AAPL": {LastTradePrice: "1"},
				"TSLA": {LastTradePrice: "1"},
			},
		}
		svc := NewPortfolioService(testConfig(), testLogger(), repo)

		assert.Equal(t, []string{"AAPL", "TSLA"}, svc.GetPortfolioSymbols(ctx))
	})

	t.Run("returns empty slice when the fetch fails", func(t *testing.T) {
		repo := &fakeRobinhoodRepo{ensureSessionErr: errors.New("bad credentials")}
		svc := NewPortfolioService(testConfig(), testLogger(), repo)

		symbols := svc.GetPortfolioSymbols(ctx)
		assert.NotNil(t, symbols)
		assert.Empty(t, symbols)
	})
}
