package sentiment

import (
	"context"
	"log"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const systemPrompt = "You are a financial news sentiment classifier. " +
	"Answer with exactly one word: positive, negative or neutral."

type chatClient interface {
	complete(ctx context.Context, model, text string) (string, error)
}

// OpenAI classifies via a single-word chat completion. Same fail-open
// contract as the other strategies.
type OpenAI struct {
	client chatClient
	model  string
}

func NewOpenAI(apiKey, model string) *OpenAI {
	return &OpenAI{
		client: &openaiChat{client: openai.NewClient(option.WithAPIKey(apiKey))},
		model:  model,
	}
}

func (o *OpenAI) Classify(ctx context.Context, text string) domain.Sentiment {
	answer, err := o.client.complete(ctx, o.model, text)
	if err != nil {
		log.Printf("openai sentiment failed, defaulting to neutral: %v", err)
		return domain.SentimentNeutral
	}
	return mapLabel(answer)
}

type openaiChat struct {
	client openai.Client
}

func (c *openaiChat) complete(ctx context.Context, model, text string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(text),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
