package domain

import "time"

// Quote is a point-in-time price snapshot for a ticker symbol. Quotes are
// produced fresh on every fetch and never persisted.
type Quote struct {
	Symbol        string  `json:"symbol"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"change_percent"`
	Volume        int64   `json:"volume,omitempty"`
	MarketCap     string  `json:"market_cap,omitempty"`
}

type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

func (s Sentiment) IsValid() bool {
	return s == SentimentPositive || s == SentimentNegative || s == SentimentNeutral
}

type NewsItem struct {
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	URL       string    `json:"url"`
	Published time.Time `json:"published"`
	Sentiment Sentiment `json:"sentiment"`
	Source    string    `json:"source"`
}

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

type Horizon string

const (
	Horizon1Day   Horizon = "1d"
	Horizon1Week  Horizon = "1w"
	Horizon1Month Horizon = "1m"
)

// ForecastPoint is one projected horizon for a symbol. A quote always yields
// exactly three points (1d, 1w, 1m) computed from one shared trend/volatility
// estimate.
type ForecastPoint struct {
	Period     Horizon `json:"period"`
	Label      string  `json:"label"`
	Prediction float64 `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Trend      Trend   `json:"trend"`
	Reasoning  string  `json:"reasoning,omitempty"`
}

type Action string

const (
	ActionBuy  Action = "BUY"
	ActionSell Action = "SELL"
	ActionHold Action = "HOLD"
)

// Recommendation is an advisory entry produced by the ranker. Recomputed per
// request, never persisted.
type Recommendation struct {
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Action       Action    `json:"action"`
	CurrentPrice float64   `json:"current_price"`
	TargetPrice  float64   `json:"target_price"`
	Upside       float64   `json:"upside"`
	Confidence   float64   `json:"confidence"`
	Reason       string    `json:"reason"`
	NewsImpact   Sentiment `json:"news_impact"`
}

// WatchlistEntry is the only entity with a lifecycle beyond a single request.
// Removal is a soft delete; a removed symbol can be re-added as a fresh row.
type WatchlistEntry struct {
	ID       int64     `json:"id"`
	Symbol   string    `json:"symbol"`
	Name     string    `json:"name"`
	AddedAt  time.Time `json:"added_at"`
	IsActive bool      `json:"is_active"`
}

// StockDetail is the merged per-symbol record the dashboard renders: quote,
// analyzed news and the three forecast horizons.
type StockDetail struct {
	Quote     Quote           `json:"quote"`
	News      []NewsItem      `json:"news"`
	Sentiment Sentiment       `json:"sentiment"`
	Forecasts []ForecastPoint `json:"forecasts"`
}

// PortfolioSummary folds the watchlist's per-symbol quotes into totals using
// the fixed AssumedShares multiplier.
type PortfolioSummary struct {
	TotalValue         float64 `json:"total_value"`
	TotalChange        float64 `json:"total_change"`
	TotalChangePercent float64 `json:"total_change_percent"`
	StockCount         int     `json:"stock_count"`
	Currency           string  `json:"currency"`
}

// TrendingSymbols is the fixed candidate list the recommendation ranker scores.
var TrendingSymbols = []string{"AAPL", "MSFT", "GOOGL", "NVDA", "TSLA"}
