package service

import (
	"context"
	"strings"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/portfolio"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type WatchlistRepo interface {
	Add(ctx context.Context, symbol, name string) (*domain.WatchlistEntry, error)
	List(ctx context.Context) ([]domain.WatchlistEntry, error)
	Remove(ctx context.Context, symbol string) error
}

type QuoteGetter interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
	GetQuotes(ctx context.Context, symbols []string) []domain.Quote
}

type RateConverter interface {
	Rate(ctx context.Context) float64
}

// WatchlistService composes persistence, the quote orchestrator and the
// portfolio aggregator for the dashboard's list view.
type WatchlistService struct {
	tracer trace.Tracer
	repo   WatchlistRepo
	stocks QuoteGetter
	rates  RateConverter
}

func NewWatchlistService(tracer trace.Tracer, repo WatchlistRepo, stocks QuoteGetter, rates RateConverter) *WatchlistService {
	return &WatchlistService{tracer: tracer, repo: repo, stocks: stocks, rates: rates}
}

// Add validates the symbol against the quote provider before persisting, so
// the watchlist never accumulates symbols that cannot be quoted. The quote
// also resolves the display name.
func (s *WatchlistService) Add(ctx context.Context, symbol, name string) (*domain.WatchlistEntry, error) {
	ctx, span := s.tracer.Start(ctx, "watchlist-service.add")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	quote, err := s.stocks.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = quote.Name
	}
	return s.repo.Add(ctx, quote.Symbol, name)
}

func (s *WatchlistService) Remove(ctx context.Context, symbol string) error {
	ctx, span := s.tracer.Start(ctx, "watchlist-service.remove")
	defer span.End()

	return s.repo.Remove(ctx, strings.ToUpper(strings.TrimSpace(symbol)))
}

func (s *WatchlistService) Entries(ctx context.Context) ([]domain.WatchlistEntry, error) {
	return s.repo.List(ctx)
}

// Quotes returns fresh quotes for every active watchlist symbol, best-effort.
func (s *WatchlistService) Quotes(ctx context.Context) ([]domain.Quote, error) {
	ctx, span := s.tracer.Start(ctx, "watchlist-service.quotes")
	defer span.End()

	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	symbols := make([]string, 0, len(entries))
	for _, e := range entries {
		symbols = append(symbols, e.Symbol)
	}
	return s.stocks.GetQuotes(ctx, symbols), nil
}

// Portfolio aggregates the active watchlist into totals, converted to EUR on
// request via the cached exchange rate.
func (s *WatchlistService) Portfolio(ctx context.Context, currency string) (*domain.PortfolioSummary, error) {
	ctx, span := s.tracer.Start(ctx, "watchlist-service.portfolio")
	defer span.End()

	quotes, err := s.Quotes(ctx)
	if err != nil {
		return nil, err
	}

	summary := portfolio.Aggregate(quotes)
	if strings.EqualFold(currency, "eur") {
		summary = portfolio.Converted(summary, s.rates.Rate(ctx), "EUR")
	}
	return &summary, nil
}
