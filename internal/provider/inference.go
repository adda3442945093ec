package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// LabelScore is one class returned by the hosted text classifier.
type LabelScore struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// InferenceProvider posts text to a hosted three-class sentiment model
// (HuggingFace inference API shape: a nested list of label/score pairs).
type InferenceProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	tracer  trace.Tracer
}

func NewInferenceProvider(baseURL, apiKey string, tracer trace.Tracer) *InferenceProvider {
	return &InferenceProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  newHTTPClient(),
		tracer:  tracer,
	}
}

// Classify returns the label/score pairs for the given text.
func (p *InferenceProvider) Classify(ctx context.Context, text string) ([]LabelScore, error) {
	ctx, span := p.tracer.Start(ctx, "inference-provider.classify")
	defer span.End()

	if p.apiKey == "" {
		return nil, &domain.ProviderError{
			Kind: domain.FailureNoData,
			Op:   "classify",
			Err:  fmt.Errorf("no api key configured"),
		}
	}

	payload, err := json.Marshal(map[string]string{"inputs": text})
	if err != nil {
		return nil, &domain.ProviderError{Kind: domain.FailureUnknown, Op: "classify", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, tagNetwork("classify", "", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, tagNetwork("classify", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, tagStatus("classify", "", resp.StatusCode)
	}

	var body [][]LabelScore
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &domain.ProviderError{Kind: domain.FailureUnknown, Op: "classify", Err: err}
	}
	if len(body) == 0 || len(body[0]) == 0 {
		return nil, &domain.ProviderError{
			Kind: domain.FailureNoData,
			Op:   "classify",
			Err:  fmt.Errorf("empty classification"),
		}
	}
	return body[0], nil
}
