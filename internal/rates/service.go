// Package rates memoizes the USD to EUR conversion rate used for display
// currency conversion.
package rates

import (
	"context"
	"log"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	cacheTTL = time.Hour
	// FallbackRate is returned when the rate provider is unreachable. It is
	// never stored, so a transient failure does not poison future lookups.
	FallbackRate = 0.85
)

type RateFetcher interface {
	LatestRates(ctx context.Context, base string) (map[string]float64, error)
}

// Service caches a single USD->EUR scalar with a fixed TTL. The mutex matters:
// unlike the original single-threaded host, the poller and HTTP handlers call
// Rate concurrently.
type Service struct {
	fetcher RateFetcher
	tracer  trace.Tracer
	now     func() time.Time

	mu        sync.Mutex
	rate      float64
	fetchedAt time.Time
}

func NewService(fetcher RateFetcher, tracer trace.Tracer) *Service {
	return &Service{
		fetcher: fetcher,
		tracer:  tracer,
		now:     time.Now,
	}
}

// Rate returns the cached USD->EUR rate, refreshing it when older than the
// TTL. Provider failure yields FallbackRate without touching the cache entry.
func (s *Service) Rate(ctx context.Context) float64 {
	ctx, span := s.tracer.Start(ctx, "rates.rate")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetchedAt.IsZero() && s.now().Sub(s.fetchedAt) < cacheTTL {
		return s.rate
	}

	table, err := s.fetcher.LatestRates(ctx, "USD")
	if err != nil {
		log.Printf("exchange rate fetch failed, using fallback %.2f: %v", FallbackRate, err)
		return FallbackRate
	}
	eur, ok := table["EUR"]
	if !ok || eur <= 0 {
		log.Printf("exchange rate table missing EUR, using fallback %.2f", FallbackRate)
		return FallbackRate
	}

	s.rate = eur
	s.fetchedAt = s.now()
	return s.rate
}

// Convert converts a USD amount into EUR using the cached rate.
func (s *Service) Convert(ctx context.Context, usd float64) float64 {
	return usd * s.Rate(ctx)
}
