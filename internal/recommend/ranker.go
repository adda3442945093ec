// Package recommend scores a fixed list of trending symbols into advisory
// BUY/SELL/HOLD entries. Recommendations are best-effort by design: partial
// data beats no data.
package recommend

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	batchSize     = 3
	minUpside     = 0.05
	maxUpside     = 0.20
	baseScore     = 70.0
	scorePerNews  = 5.0
	jitterSpread  = 15.0
	minConfidence = 50.0
)

type StockFetcher interface {
	GetQuote(ctx context.Context, symbol string) (*domain.Quote, error)
	GetNews(ctx context.Context, symbol, name string) []domain.NewsItem
}

type Ranker struct {
	tracer     trace.Tracer
	stocks     StockFetcher
	candidates []string
	rng        *rand.Rand
}

func NewRanker(tracer trace.Tracer, stocks StockFetcher, candidates []string) *Ranker {
	if len(candidates) == 0 {
		candidates = domain.TrendingSymbols
	}
	return &Ranker{
		tracer:     tracer,
		stocks:     stocks,
		candidates: candidates,
		rng:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Rank scores the candidate list in batches. A failing candidate is logged
// and omitted; callers always get whatever could be computed. maxPrice <= 0
// disables the price ceiling filter.
func (r *Ranker) Rank(ctx context.Context, maxPrice float64) []domain.Recommendation {
	ctx, span := r.tracer.Start(ctx, "ranker.rank")
	defer span.End()
	span.SetAttributes(attribute.Float64("max_price", maxPrice))

	out := make([]domain.Recommendation, 0, len(r.candidates))
	for start := 0; start < len(r.candidates); start += batchSize {
		end := start + batchSize
		if end > len(r.candidates) {
			end = len(r.candidates)
		}
		for _, symbol := range r.candidates[start:end] {
			rec, err := r.score(ctx, symbol)
			if err != nil {
				log.Printf("omitting candidate %s: %v", symbol, err)
				continue
			}
			if maxPrice > 0 && rec.CurrentPrice > maxPrice {
				continue
			}
			out = append(out, *rec)
		}
	}
	return out
}

func (r *Ranker) score(ctx context.Context, symbol string) (*domain.Recommendation, error) {
	quote, err := r.stocks.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	news := r.stocks.GetNews(ctx, quote.Symbol, quote.Name)
	positive, negative := 0, 0
	for _, item := range news {
		switch item.Sentiment {
		case domain.SentimentPositive:
			positive++
		case domain.SentimentNegative:
			negative++
		}
	}
	newsScore := positive - negative

	upside := minUpside + r.rng.Float64()*(maxUpside-minUpside)
	confidence := baseScore + float64(newsScore)*scorePerNews + r.rng.Float64()*jitterSpread
	if confidence < minConfidence {
		confidence = minConfidence
	}

	return &domain.Recommendation{
		Symbol:       quote.Symbol,
		Name:         quote.Name,
		Action:       actionFor(newsScore),
		CurrentPrice: quote.Price,
		TargetPrice:  quote.Price * (1 + upside),
		Upside:       upside * 100,
		Confidence:   confidence,
		Reason: fmt.Sprintf("%d positive vs %d negative headlines; projecting %.1f%% upside.",
			positive, negative, upside*100),
		NewsImpact: impactFor(newsScore),
	}, nil
}

func actionFor(newsScore int) domain.Action {
	switch {
	case newsScore > 0:
		return domain.ActionBuy
	case newsScore < 0:
		return domain.ActionSell
	default:
		return domain.ActionHold
	}
}

func impactFor(newsScore int) domain.Sentiment {
	switch {
	case newsScore > 0:
		return domain.SentimentPositive
	case newsScore < 0:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
