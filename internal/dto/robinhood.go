package dto

// Raw Robinhood API payloads. Numeric fields arrive as strings and are
// coerced with utils.SafeFloat at the service boundary.

type RobinhoodTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

type RobinhoodPosition struct {
	Instrument      string `json:"instrument"`
	Quantity        string `json:"quantity"`
	AverageBuyPrice string `json:"average_buy_price"`
}

type RobinhoodPositionsResponse struct {
	Results []RobinhoodPosition `json:"results"`
}

type RobinhoodInstrument struct {
	Symbol string `json:"symbol"`
}

type RobinhoodQuote struct {
	Symbol                      string `json:"symbol"`
	LastTradePrice              string `json:"last_trade_price"`
	LastExtendedHoursTradePrice string `json:"last_extended_hours_trade_price"`
}

type RobinhoodPortfolioProfile struct {
	Equity              string `json:"equity"`
	ExtendedHoursEquity string `json:"extended_hours_equity"`
	WithdrawableAmount  string `json:"withdrawable_amount"`
}

type RobinhoodPortfoliosResponse struct {
	Results []RobinhoodPortfolioProfile `json:"results"`
}

type RobinhoodAccountProfile struct {
	Cash          string `json:"cash"`
	PortfolioCash string `json:"portfolio_cash"`
	BuyingPower   string `json:"buying_power"`
}

type RobinhoodAccountsResponse struct {
	Results []RobinhoodAccountProfile `json:"results"`
}
