package utils

import (
	"fmt"
	"math"
	"strings"
)

// ProfitLoss holds the derived metrics for a single position.
type ProfitLoss struct {
	ProfitLoss    float64 `json:"profit_loss"`
	PercentChange float64 `json:"percent_change"`
	TotalValue    float64 `json:"total_value"`
}

// Round2 rounds to 2 decimal places, used for all monetary outputs.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds to 4 decimal places, used for classifier confidences.
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// FormatCurrency formats an amount as a dollar string with thousands
// separators, e.g. 1234.5 -> "$1,234.50".
func FormatCurrency(amount float64) string {
	return "$" + groupThousands(fmt.Sprintf("%.2f", amount))
}

// FormatPercentage formats a value as a percentage string,
// e.g. 12.345 -> "12.35%".
func FormatPercentage(value float64) string {
	return fmt.Sprintf("%.2f%%", value)
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if idx := strings.IndexByte(s, '.'); idx >= 0 {
		intPart = s[:idx]
		fracPart = s[idx:]
	}

	var b strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}

	return sign + b.String() + fracPart
}

// CalculateProfitLoss derives profit/loss metrics for a position. The
// percent change is zero when the average price is zero.
func CalculateProfitLoss(quantity, averagePrice, currentPrice float64) ProfitLoss {
	totalCost := quantity * averagePrice
	totalValue := quantity * currentPrice

	percentChange := 0.0
	if averagePrice > 0 {
		percentChange = (currentPrice - averagePrice) / averagePrice * 100
	}

	return ProfitLoss{
		ProfitLoss:    Round2(totalValue - totalCost),
		PercentChange: Round2(percentChange),
		TotalValue:    Round2(totalValue),
	}
}
