package dto

// Holding is a single instrument position within a portfolio. Equity is
// always derived from quantity and current price, never taken from the
// provider directly.
type Holding struct {
	Symbol        string  `json:"symbol"`
	Quantity      float64 `json:"quantity"`
	AveragePrice  float64 `json:"average_price"`
	CurrentPrice  float64 `json:"current_price"`
	Equity        float64 `json:"equity"`
	PercentChange float64 `json:"percent_change"`
}

type PortfolioResponse struct {
	TotalEquity float64   `json:"total_equity"`
	CashBalance float64   `json:"cash_balance"`
	Holdings    []Holding `json:"holdings"`
}

// Symbols returns the ordered, duplicate-preserving symbol list of the holdings.
func (p *PortfolioResponse) Symbols() []string {
	symbols := make([]string, 0, len(p.Holdings))
	for _, h := range p.Holdings {
		symbols = append(symbols, h.Symbol)
	}
	return symbols
}
