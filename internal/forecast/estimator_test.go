package forecast

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

type stubCloses struct {
	closes []float64
	err    error
}

func (s *stubCloses) RecentCloses(ctx context.Context, symbol string, window int) ([]float64, error) {
	return s.closes, s.err
}

func newTestEstimator(closes *stubCloses, seed int64) *HeuristicEstimator {
	return NewHeuristicEstimator(closes, trace.NewNoopTracerProvider().Tracer("test"), rand.New(rand.NewSource(seed)))
}

func TestForecastProducesThreeHorizons(t *testing.T) {
	e := newTestEstimator(&stubCloses{closes: []float64{100, 101, 102, 101, 103, 104, 105, 106, 107, 108}}, 1)

	points := e.Forecast(context.Background(), "AAPL", 100)
	if len(points) != 3 {
		t.Fatalf("expected 3 forecast points, got %d", len(points))
	}
	if points[0].Period != domain.Horizon1Day || points[1].Period != domain.Horizon1Week || points[2].Period != domain.Horizon1Month {
		t.Fatalf("unexpected horizon order: %+v", points)
	}
}

func TestForecastSharedUpTrend(t *testing.T) {
	// Recent half mean well above prior half mean.
	e := newTestEstimator(&stubCloses{closes: []float64{100, 100, 100, 100, 100, 110, 110, 110, 110, 110}}, 2)

	points := e.Forecast(context.Background(), "AAPL", 100)
	for _, p := range points {
		if p.Trend != domain.TrendUp {
			t.Fatalf("expected shared up trend, got %s for %s", p.Trend, p.Period)
		}
	}
}

func TestForecastDownAndNeutralTrends(t *testing.T) {
	e := newTestEstimator(&stubCloses{closes: []float64{110, 110, 110, 110, 110, 100, 100, 100, 100, 100}}, 3)
	points := e.Forecast(context.Background(), "AAPL", 100)
	if points[0].Trend != domain.TrendDown {
		t.Fatalf("expected down trend, got %s", points[0].Trend)
	}

	// Within the 2% band counts as neutral.
	e = newTestEstimator(&stubCloses{closes: []float64{100, 100, 100, 100, 100, 101, 101, 101, 101, 101}}, 4)
	points = e.Forecast(context.Background(), "AAPL", 100)
	if points[0].Trend != domain.TrendNeutral {
		t.Fatalf("expected neutral trend inside band, got %s", points[0].Trend)
	}
}

func TestForecastHistoryFailureUsesDefaults(t *testing.T) {
	e := newTestEstimator(&stubCloses{err: errors.New("no candle data")}, 5)

	points := e.Forecast(context.Background(), "AAPL", 100)
	if len(points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(points))
	}
	for _, p := range points {
		if p.Trend != domain.TrendNeutral {
			t.Fatalf("expected neutral default trend, got %s", p.Trend)
		}
		if p.Prediction <= 0 {
			t.Fatalf("expected positive prediction around current price, got %v", p.Prediction)
		}
	}
}

func TestForecastConfidenceDecreasesWithHorizon(t *testing.T) {
	closes := &stubCloses{closes: []float64{100, 100, 100, 100, 100, 110, 110, 110, 110, 110}}

	// Statistical property: randomness is involved, so compare averages over
	// repeated trials rather than single values.
	var sumDay, sumMonth float64
	const trials = 200
	for seed := int64(0); seed < trials; seed++ {
		e := newTestEstimator(closes, seed)
		points := e.Forecast(context.Background(), "AAPL", 100)
		sumDay += points[0].Confidence
		sumMonth += points[2].Confidence
	}

	if sumMonth/trials >= sumDay/trials {
		t.Fatalf("expected 1m confidence below 1d on average, got %v vs %v", sumMonth/trials, sumDay/trials)
	}
}

func TestForecastConfidenceClamped(t *testing.T) {
	e := newTestEstimator(&stubCloses{closes: []float64{100, 100, 100, 100, 100, 110, 110, 110, 110, 110}}, 6)

	for seed := int64(0); seed < 50; seed++ {
		e.rng = rand.New(rand.NewSource(seed))
		for _, p := range e.Forecast(context.Background(), "AAPL", 100) {
			if p.Confidence < 0 || p.Confidence > 100 {
				t.Fatalf("confidence out of range: %v", p.Confidence)
			}
		}
	}
}

func TestForecastPredictionBounded(t *testing.T) {
	e := newTestEstimator(&stubCloses{err: errors.New("down")}, 7)

	// Default volatility 0.05 with the 1m scale of 4 bounds the move to ±10%.
	for seed := int64(0); seed < 50; seed++ {
		e.rng = rand.New(rand.NewSource(seed))
		points := e.Forecast(context.Background(), "AAPL", 100)
		month := points[2]
		if month.Prediction < 90 || month.Prediction > 110 {
			t.Fatalf("1m prediction outside bounds: %v", month.Prediction)
		}
	}
}

func TestForecastTotalFallback(t *testing.T) {
	e := newTestEstimator(&stubCloses{err: errors.New("down")}, 8)

	points := e.Forecast(context.Background(), "AAPL", 0)
	if len(points) != 3 {
		t.Fatalf("expected 3 fallback points, got %d", len(points))
	}
	for _, p := range points {
		if p.Trend == domain.TrendNeutral {
			t.Fatalf("fallback trend should be randomized up/down, got %s", p.Trend)
		}
		if p.Reasoning == "" {
			t.Fatal("expected generic fallback reasoning")
		}
	}
}
