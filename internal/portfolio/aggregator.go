// Package portfolio folds per-symbol quotes into display totals.
package portfolio

import "github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

// AssumedShares is a fixed placeholder position size applied to every symbol.
// Real position tracking is out of scope; totals are illustrative.
const AssumedShares = 100

// Aggregate computes portfolio totals over the current quote set. Pure
// function; the percent total is the mean change percent across symbols, 0
// when the set is empty.
func Aggregate(quotes []domain.Quote) domain.PortfolioSummary {
	summary := domain.PortfolioSummary{
		StockCount: len(quotes),
		Currency:   "USD",
	}
	if len(quotes) == 0 {
		return summary
	}

	pctSum := 0.0
	for _, q := range quotes {
		summary.TotalValue += q.Price * AssumedShares
		summary.TotalChange += q.Change * AssumedShares
		pctSum += q.ChangePercent
	}
	summary.TotalChangePercent = pctSum / float64(len(quotes))
	return summary
}

// Converted returns a copy of the summary with monetary totals scaled by rate
// and the currency label replaced. Percentages are scale-invariant.
func Converted(s domain.PortfolioSummary, rate float64, currency string) domain.PortfolioSummary {
	s.TotalValue *= rate
	s.TotalChange *= rate
	s.Currency = currency
	return s
}
