// Package forecast derives short-horizon price projections from a recent
// close window. The heuristic is a placeholder estimator behind an interface
// so a real model can replace it without touching callers.
package forecast

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	closeWindow       = 10
	upThreshold       = 1.02
	downThreshold     = 0.98
	defaultVolatility = 0.05
	trendConfidence   = 75.0
	neutralConfidence = 60.0
)

// horizons share one trend/volatility estimate; longer horizons scale the
// volatility up and the confidence down.
var horizons = []struct {
	period     domain.Horizon
	label      string
	scale      float64
	confOffset float64
}{
	{domain.Horizon1Day, "1 Day", 0.5, 0},
	{domain.Horizon1Week, "1 Week", 2, -10},
	{domain.Horizon1Month, "1 Month", 4, -20},
}

// fallbackVolatility is used per horizon when no price context is available.
var fallbackVolatility = []float64{0.03, 0.10, 0.20}

type ClosesFetcher interface {
	RecentCloses(ctx context.Context, symbol string, window int) ([]float64, error)
}

type Estimator interface {
	Forecast(ctx context.Context, symbol string, currentPrice float64) []domain.ForecastPoint
}

type HeuristicEstimator struct {
	closes ClosesFetcher
	tracer trace.Tracer
	rng    *rand.Rand
}

func NewHeuristicEstimator(closes ClosesFetcher, tracer trace.Tracer, rng *rand.Rand) *HeuristicEstimator {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &HeuristicEstimator{closes: closes, tracer: tracer, rng: rng}
}

// Forecast produces exactly three points, one per horizon, from one shared
// trend/volatility estimate. History failures degrade to fixed assumptions;
// nothing here ever returns an error to the caller.
func (e *HeuristicEstimator) Forecast(ctx context.Context, symbol string, currentPrice float64) []domain.ForecastPoint {
	ctx, span := e.tracer.Start(ctx, "forecast.heuristic")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	if currentPrice <= 0 {
		return e.fallback(symbol)
	}

	trend := domain.TrendNeutral
	volatility := defaultVolatility

	closes, err := e.closes.RecentCloses(ctx, symbol, closeWindow)
	if err != nil || len(closes) < 4 {
		if err != nil {
			log.Printf("forecast history unavailable for %s, using defaults: %v", symbol, err)
		}
	} else {
		trend = estimateTrend(closes)
		volatility = estimateVolatility(closes)
	}

	base := neutralConfidence
	if trend != domain.TrendNeutral {
		base = trendConfidence
	}

	points := make([]domain.ForecastPoint, 0, len(horizons))
	for _, h := range horizons {
		move := (e.rng.Float64() - 0.5) * volatility * h.scale
		prediction := currentPrice * (1 + move)
		confidence := clamp(base+h.confOffset+e.rng.Float64()*10, 0, 100)

		points = append(points, domain.ForecastPoint{
			Period:     h.period,
			Label:      h.label,
			Prediction: prediction,
			Confidence: confidence,
			Trend:      trend,
			Reasoning: fmt.Sprintf("Based on %s volatility over the last %d sessions, projecting a %.1f%% move over %s.",
				volatilityBucket(volatility), closeWindow, move*100, h.label),
		})
	}
	return points
}

// fallback covers total failure: no usable price context at all. Trend is
// randomized per horizon instead of shared.
func (e *HeuristicEstimator) fallback(symbol string) []domain.ForecastPoint {
	points := make([]domain.ForecastPoint, 0, len(horizons))
	for i, h := range horizons {
		trend := domain.TrendUp
		if e.rng.Float64() < 0.5 {
			trend = domain.TrendDown
		}
		points = append(points, domain.ForecastPoint{
			Period:     h.period,
			Label:      h.label,
			Prediction: 0,
			Confidence: clamp(neutralConfidence+h.confOffset+e.rng.Float64()*10, 0, 100),
			Trend:      trend,
			Reasoning: fmt.Sprintf("No market data available for %s; assuming %.0f%% volatility over %s.",
				symbol, fallbackVolatility[i]*100, h.label),
		})
	}
	return points
}

// estimateTrend compares the mean of the most recent half-window against the
// prior half. A 2% band around parity counts as neutral.
func estimateTrend(closes []float64) domain.Trend {
	half := len(closes) / 2
	priorMean := mean(closes[:half])
	recentMean := mean(closes[len(closes)-half:])

	switch {
	case priorMean > 0 && recentMean > priorMean*upThreshold:
		return domain.TrendUp
	case priorMean > 0 && recentMean < priorMean*downThreshold:
		return domain.TrendDown
	default:
		return domain.TrendNeutral
	}
}

// estimateVolatility is the mean absolute relative day-over-day change.
func estimateVolatility(closes []float64) float64 {
	if len(closes) < 2 {
		return defaultVolatility
	}
	sum := 0.0
	n := 0
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		change := (closes[i] - closes[i-1]) / closes[i-1]
		if change < 0 {
			change = -change
		}
		sum += change
		n++
	}
	if n == 0 {
		return defaultVolatility
	}
	return sum / float64(n)
}

func volatilityBucket(v float64) string {
	switch {
	case v < 0.02:
		return "low"
	case v < 0.06:
		return "moderate"
	default:
		return "high"
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
