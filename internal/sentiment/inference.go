package sentiment

import (
	"context"
	"log"
	"strings"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/provider"
)

type inferenceClient interface {
	Classify(ctx context.Context, text string) ([]provider.LabelScore, error)
}

// Inference delegates classification to a hosted three-class model and picks
// the highest-scoring label. Any failure, missing credentials included, fails
// open to neutral.
type Inference struct {
	client inferenceClient
}

func NewInference(client inferenceClient) *Inference {
	return &Inference{client: client}
}

func (i *Inference) Classify(ctx context.Context, text string) domain.Sentiment {
	scores, err := i.client.Classify(ctx, text)
	if err != nil {
		log.Printf("sentiment inference failed, defaulting to neutral: %v", err)
		return domain.SentimentNeutral
	}

	best := provider.LabelScore{}
	for _, s := range scores {
		if s.Score > best.Score {
			best = s
		}
	}
	return mapLabel(best.Label)
}

func mapLabel(label string) domain.Sentiment {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "positive", "label_2":
		return domain.SentimentPositive
	case "negative", "label_0":
		return domain.SentimentNegative
	default:
		return domain.SentimentNeutral
	}
}
