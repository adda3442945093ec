package recommend

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type stubStocks struct {
	quotes map[string]*domain.Quote
	news   map[string][]domain.NewsItem
}

func (s *stubStocks) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	q, ok := s.quotes[symbol]
	if !ok {
		return nil, errors.New("symbol not found")
	}
	return q, nil
}

func (s *stubStocks) GetNews(ctx context.Context, symbol, name string) []domain.NewsItem {
	return s.news[symbol]
}

func newTestRanker(stocks *stubStocks, candidates []string, seed int64) *Ranker {
	r := NewRanker(trace.NewNoopTracerProvider().Tracer("test"), stocks, candidates)
	r.rng = rand.New(rand.NewSource(seed))
	return r
}

func positiveNews(n int) []domain.NewsItem {
	items := make([]domain.NewsItem, n)
	for i := range items {
		items[i] = domain.NewsItem{Sentiment: domain.SentimentPositive}
	}
	return items
}

func TestRankScoresAllCandidates(t *testing.T) {
	stocks := &stubStocks{
		quotes: map[string]*domain.Quote{
			"AAPL": {Symbol: "AAPL", Name: "Apple", Price: 180},
			"MSFT": {Symbol: "MSFT", Name: "Microsoft", Price: 410},
		},
		news: map[string][]domain.NewsItem{
			"AAPL": positiveNews(3),
			"MSFT": {{Sentiment: domain.SentimentNegative}, {Sentiment: domain.SentimentNegative}},
		},
	}
	r := newTestRanker(stocks, []string{"AAPL", "MSFT"}, 1)

	recs := r.Rank(context.Background(), 0)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}

	aapl := recs[0]
	if aapl.Action != domain.ActionBuy || aapl.NewsImpact != domain.SentimentPositive {
		t.Fatalf("expected BUY/positive for AAPL, got %s/%s", aapl.Action, aapl.NewsImpact)
	}
	if aapl.TargetPrice <= aapl.CurrentPrice {
		t.Fatalf("expected target above current price, got %v vs %v", aapl.TargetPrice, aapl.CurrentPrice)
	}
	if aapl.Upside < 5 || aapl.Upside >= 20 {
		t.Fatalf("upside outside [5,20): %v", aapl.Upside)
	}

	msft := recs[1]
	if msft.Action != domain.ActionSell || msft.NewsImpact != domain.SentimentNegative {
		t.Fatalf("expected SELL/negative for MSFT, got %s/%s", msft.Action, msft.NewsImpact)
	}
}

func TestRankConfidenceFloor(t *testing.T) {
	negative := make([]domain.NewsItem, 10)
	for i := range negative {
		negative[i] = domain.NewsItem{Sentiment: domain.SentimentNegative}
	}
	stocks := &stubStocks{
		quotes: map[string]*domain.Quote{"TSLA": {Symbol: "TSLA", Name: "Tesla", Price: 250}},
		news:   map[string][]domain.NewsItem{"TSLA": negative},
	}

	for seed := int64(0); seed < 30; seed++ {
		r := newTestRanker(stocks, []string{"TSLA"}, seed)
		recs := r.Rank(context.Background(), 0)
		if len(recs) != 1 {
			t.Fatalf("expected 1 recommendation, got %d", len(recs))
		}
		if recs[0].Confidence < 50 {
			t.Fatalf("confidence below floor: %v", recs[0].Confidence)
		}
	}
}

func TestRankMaxPriceFilter(t *testing.T) {
	stocks := &stubStocks{
		quotes: map[string]*domain.Quote{
			"AAPL": {Symbol: "AAPL", Name: "Apple", Price: 180},
			"NVDA": {Symbol: "NVDA", Name: "NVIDIA", Price: 900},
		},
	}
	r := newTestRanker(stocks, []string{"AAPL", "NVDA"}, 2)

	recs := r.Rank(context.Background(), 200)
	if len(recs) != 1 || recs[0].Symbol != "AAPL" {
		t.Fatalf("expected only AAPL under the ceiling, got %+v", recs)
	}
}

func TestRankOmitsFailingCandidates(t *testing.T) {
	stocks := &stubStocks{
		quotes: map[string]*domain.Quote{
			"AAPL": {Symbol: "AAPL", Name: "Apple", Price: 180},
		},
	}
	r := newTestRanker(stocks, []string{"AAPL", "ZZZZINVALID", "MSFT"}, 3)

	recs := r.Rank(context.Background(), 0)
	if len(recs) != 1 || recs[0].Symbol != "AAPL" {
		t.Fatalf("expected partial results with only AAPL, got %+v", recs)
	}
}

func TestRankHoldOnNeutralNews(t *testing.T) {
	stocks := &stubStocks{
		quotes: map[string]*domain.Quote{"AAPL": {Symbol: "AAPL", Name: "Apple", Price: 180}},
		news: map[string][]domain.NewsItem{
			"AAPL": {{Sentiment: domain.SentimentNeutral}, {Sentiment: domain.SentimentNeutral}},
		},
	}
	r := newTestRanker(stocks, []string{"AAPL"}, 4)

	recs := r.Rank(context.Background(), 0)
	if len(recs) != 1 || recs[0].Action != domain.ActionHold {
		t.Fatalf("expected HOLD on neutral news, got %+v", recs)
	}
}
