// Package sentiment classifies news text into a three-way tone. Every
// strategy honors the same contract: exactly one of positive/negative/neutral,
// failing open to neutral.
package sentiment

import (
	"context"
	"strings"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"
)

type Classifier interface {
	Classify(ctx context.Context, text string) domain.Sentiment
}

var positiveKeywords = []string{
	"growth", "profit", "gain", "surge", "rally", "beat", "record",
	"upgrade", "strong", "bullish", "outperform", "soar",
}

var negativeKeywords = []string{
	"loss", "decline", "drop", "fall", "miss", "downgrade", "weak",
	"bearish", "crash", "plunge", "lawsuit", "recall",
}

// Keyword counts fixed keyword occurrences, case-insensitively. Deterministic,
// no I/O, no failure mode.
type Keyword struct{}

func NewKeyword() *Keyword { return &Keyword{} }

func (k *Keyword) Classify(_ context.Context, text string) domain.Sentiment {
	lower := strings.ToLower(text)

	positive := 0
	for _, kw := range positiveKeywords {
		positive += strings.Count(lower, kw)
	}
	negative := 0
	for _, kw := range negativeKeywords {
		negative += strings.Count(lower, kw)
	}

	switch {
	case positive > negative:
		return domain.SentimentPositive
	case negative > positive:
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
