package repository

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"portfolio-insight/config"
	"portfolio-insight/internal/apperr"
	"portfolio-insight/internal/dto"
	"portfolio-insight/pkg/cache"
	"portfolio-insight/pkg/httpclient"
	"portfolio-insight/pkg/logger"

	"github.com/google/uuid"
)

type RobinhoodRepository interface {
	EnsureSession(ctx context.Context) error
	RefreshSession(ctx context.Context) error
	Logout(ctx context.Context)
	Positions(ctx context.Context) ([]dto.RobinhoodPosition, error)
	SymbolByInstrument(ctx context.Context, instrumentURL string) (string, error)
	LatestQuote(ctx context.Context, symbol string) (*dto.RobinhoodQuote, error)
	PortfolioProfile(ctx context.Context) (*dto.RobinhoodPortfolioProfile, error)
	AccountProfile(ctx context.Context) (*dto.RobinhoodAccountProfile, error)
}

// robinhoodRepository talks to the Robinhood REST API. The bearer token is
// process-wide state: login happens once on first use and is guarded so
// concurrent first calls produce a single login attempt.
type robinhoodRepository struct {
	httpClient  httpclient.HTTPClient
	cfg         *config.Config
	logger      *logger.Logger
	symbolCache cache.Cache

	mu           sync.Mutex
	loggedIn     bool
	refreshToken string
	deviceToken  string
}

// NewRobinhoodRepository creates a new instance of robinhoodRepository.
func NewRobinhoodRepository(cfg *config.Config, symbolCache cache.Cache, log *logger.Logger) RobinhoodRepository {
	return &robinhoodRepository{
		httpClient:  httpclient.New(log, cfg.Robinhood.BaseURL, cfg.Robinhood.Timeout, ""),
		cfg:         cfg,
		logger:      log,
		symbolCache: symbolCache,
		deviceToken: uuid.NewString(),
	}
}

// EnsureSession logs in only when no live session exists. A failed login is
// not cached: the next call attempts again. Single attempt per call, no
// backoff.
func (r *robinhoodRepository) EnsureSession(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.loggedIn {
		return nil
	}
	return r.login(ctx)
}

// RefreshSession forces a re-login regardless of current session state.
// Driven by the session refresh schedule since brokerage tokens expire.
func (r *robinhoodRepository) RefreshSession(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.loggedIn = false
	return r.login(ctx)
}

// login must be called with r.mu held.
func (r *robinhoodRepository) login(ctx context.Context) error {
	r.logger.InfoContext(ctx, "Attempting Robinhood login")

	payload := map[string]interface{}{
		"username":     r.cfg.Robinhood.Username,
		"password":     r.cfg.Robinhood.Password,
		"grant_type":   "password",
		"scope":        "internal",
		"client_id":    r.cfg.Robinhood.ClientID,
		"device_token": r.deviceToken,
		"expires_in":   86400,
	}

	var tokenResp dto.RobinhoodTokenResponse
	resp, err := r.httpClient.Post(ctx, "/oauth2/token/", payload, nil, &tokenResp)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrAuthentication, err)
	}
	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "Robinhood login returned non-OK status",
			logger.IntField("status_code", resp.StatusCode))
		return fmt.Errorf("%w: login returned status %d", apperr.ErrAuthentication, resp.StatusCode)
	}
	if tokenResp.AccessToken == "" {
		return fmt.Errorf("%w: login response missing access token", apperr.ErrAuthentication)
	}

	r.httpClient.SetAuthToken(tokenResp.AccessToken)
	r.refreshToken = tokenResp.RefreshToken
	r.loggedIn = true
	r.logger.InfoContext(ctx, "Robinhood login successful")
	return nil
}

// Logout revokes the session token. Called on shutdown; failures are logged
// only.
func (r *robinhoodRepository) Logout(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loggedIn {
		return
	}

	payload := map[string]interface{}{
		"client_id": r.cfg.Robinhood.ClientID,
		"token":     r.refreshToken,
	}
	if _, err := r.httpClient.Post(ctx, "/oauth2/revoke_token/", payload, nil, nil); err != nil {
		r.logger.WarnContext(ctx, "Error during Robinhood logout", logger.ErrorField(err))
	}

	r.loggedIn = false
	r.refreshToken = ""
	r.httpClient.SetAuthToken("")
	r.logger.InfoContext(ctx, "Logged out from Robinhood")
}

func (r *robinhoodRepository) Positions(ctx context.Context) ([]dto.RobinhoodPosition, error) {
	var positionsResp dto.RobinhoodPositionsResponse
	resp, err := r.httpClient.Get(ctx, "/positions/", map[string]string{"nonzero": "true"}, nil, &positionsResp)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch positions: %v", apperr.ErrUpstreamFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: positions returned status %d", apperr.ErrUpstreamFetch, resp.StatusCode)
	}
	return positionsResp.Results, nil
}

// SymbolByInstrument resolves an instrument URL to its ticker symbol.
// Instrument records never change symbol in practice, so resolutions are
// cached.
func (r *robinhoodRepository) SymbolByInstrument(ctx context.Context, instrumentURL string) (string, error) {
	if symbol, found := cache.GetTyped[string](r.symbolCache, instrumentURL); found {
		return symbol, nil
	}

	var instrument dto.RobinhoodInstrument
	resp, err := r.httpClient.Get(ctx, instrumentURL, nil, nil, &instrument)
	if err != nil {
		return "", fmt.Errorf("%w: fetch instrument: %v", apperr.ErrUpstreamFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: instrument returned status %d", apperr.ErrUpstreamFetch, resp.StatusCode)
	}
	if instrument.Symbol == "" {
		return "", fmt.Errorf("%w: instrument has no symbol: %s", apperr.ErrParse, instrumentURL)
	}

	r.symbolCache.Set(instrumentURL, instrument.Symbol, r.cfg.Cache.DefaultExpiration)
	return instrument.Symbol, nil
}

func (r *robinhoodRepository) LatestQuote(ctx context.Context, symbol string) (*dto.RobinhoodQuote, error) {
	var quote dto.RobinhoodQuote
	endpoint := fmt.Sprintf("/quotes/%s/", symbol)
	resp, err := r.httpClient.Get(ctx, endpoint, nil, nil, &quote)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch quote for %s: %v", apperr.ErrUpstreamFetch, symbol, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: quote for %s returned status %d", apperr.ErrUpstreamFetch, symbol, resp.StatusCode)
	}
	return &quote, nil
}

func (r *robinhoodRepository) PortfolioProfile(ctx context.Context) (*dto.RobinhoodPortfolioProfile, error) {
	var portfoliosResp dto.RobinhoodPortfoliosResponse
	resp, err := r.httpClient.Get(ctx, "/portfolios/", nil, nil, &portfoliosResp)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch portfolio profile: %v", apperr.ErrUpstreamFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: portfolios returned status %d", apperr.ErrUpstreamFetch, resp.StatusCode)
	}
	if len(portfoliosResp.Results) == 0 {
		return nil, fmt.Errorf("%w: portfolios returned no results", apperr.ErrParse)
	}
	return &portfoliosResp.Results[0], nil
}

func (r *robinhoodRepository) AccountProfile(ctx context.Context) (*dto.RobinhoodAccountProfile, error) {
	var accountsResp dto.RobinhoodAccountsResponse
	resp, err := r.httpClient.Get(ctx, "/accounts/", nil, nil, &accountsResp)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch account profile: %v", apperr.ErrUpstreamFetch, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: accounts returned status %d", apperr.ErrUpstreamFetch, resp.StatusCode)
	}
	if len(accountsResp.Results) == 0 {
		return nil, fmt.Errorf("%w: accounts returned no results", apperr.ErrParse)
	}
	return &accountsResp.Results[0], nil
}
