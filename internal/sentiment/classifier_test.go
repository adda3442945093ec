package sentiment

import (
	"context"
	"errors"
	"testing"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"
	"github.com/andreamilli9/portfolio-oracle-gpt/internal/provider"
)

func TestKeywordClassify(t *testing.T) {
	k := NewKeyword()
	ctx := context.Background()

	cases := []struct {
		text string
		want domain.Sentiment
	}{
		{"Strong GROWTH and profit", domain.SentimentPositive},
		{"steep decline, bearish outlook", domain.SentimentNegative},
		{"quarterly report released", domain.SentimentNeutral},
		{"", domain.SentimentNeutral},
		{"record gains despite one loss", domain.SentimentPositive},
		{"lawsuit and recall outweigh a small gain", domain.SentimentNegative},
	}

	for _, tc := range cases {
		got := k.Classify(ctx, tc.text)
		if got != tc.want {
			t.Fatalf("Classify(%q) = %s, want %s", tc.text, got, tc.want)
		}
		if !got.IsValid() {
			t.Fatalf("Classify(%q) returned invalid sentiment %q", tc.text, got)
		}
	}
}

func TestKeywordClassifyDeterministic(t *testing.T) {
	k := NewKeyword()
	ctx := context.Background()

	first := k.Classify(ctx, "Strong growth and profit")
	for i := 0; i < 10; i++ {
		if got := k.Classify(ctx, "Strong growth and profit"); got != first {
			t.Fatalf("expected deterministic result, got %s then %s", first, got)
		}
	}
}

type stubInference struct {
	scores []provider.LabelScore
	err    error
}

func (s *stubInference) Classify(ctx context.Context, text string) ([]provider.LabelScore, error) {
	return s.scores, s.err
}

func TestInferencePicksHighestScore(t *testing.T) {
	c := NewInference(&stubInference{scores: []provider.LabelScore{
		{Label: "negative", Score: 0.7},
		{Label: "neutral", Score: 0.2},
		{Label: "positive", Score: 0.1},
	}})

	if got := c.Classify(context.Background(), "text"); got != domain.SentimentNegative {
		t.Fatalf("expected negative, got %s", got)
	}
}

func TestInferenceMapsModelLabels(t *testing.T) {
	c := NewInference(&stubInference{scores: []provider.LabelScore{
		{Label: "LABEL_2", Score: 0.9},
		{Label: "LABEL_0", Score: 0.1},
	}})

	if got := c.Classify(context.Background(), "text"); got != domain.SentimentPositive {
		t.Fatalf("expected positive for LABEL_2, got %s", got)
	}
}

func TestInferenceFailsOpenToNeutral(t *testing.T) {
	c := NewInference(&stubInference{err: errors.New("inference unavailable")})

	if got := c.Classify(context.Background(), "text"); got != domain.SentimentNeutral {
		t.Fatalf("expected neutral on failure, got %s", got)
	}
}

type stubChat struct {
	answer string
	err    error
}

func (s *stubChat) complete(ctx context.Context, model, text string) (string, error) {
	return s.answer, s.err
}

func TestOpenAIClassify(t *testing.T) {
	c := &OpenAI{client: &stubChat{answer: "Positive"}, model: "gpt-4o-mini"}
	if got := c.Classify(context.Background(), "record profits"); got != domain.SentimentPositive {
		t.Fatalf("expected positive, got %s", got)
	}
}

func TestOpenAIFailsOpenToNeutral(t *testing.T) {
	c := &OpenAI{client: &stubChat{err: errors.New("quota exceeded")}, model: "gpt-4o-mini"}
	if got := c.Classify(context.Background(), "record profits"); got != domain.SentimentNeutral {
		t.Fatalf("expected neutral on failure, got %s", got)
	}

	c = &OpenAI{client: &stubChat{answer: "I cannot say"}, model: "gpt-4o-mini"}
	if got := c.Classify(context.Background(), "record profits"); got != domain.SentimentNeutral {
		t.Fatalf("expected neutral for unmapped answer, got %s", got)
	}
}
