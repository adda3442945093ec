package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// RatesProvider fetches currency exchange rates for a base currency.
type RatesProvider struct {
	baseURL string
	client  *http.Client
	tracer  trace.Tracer
}

func NewRatesProvider(baseURL string, tracer trace.Tracer) *RatesProvider {
	return &RatesProvider{
		baseURL: baseURL,
		client:  newHTTPClient(),
		tracer:  tracer,
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// LatestRates returns the current rate table for the given base currency.
func (p *RatesProvider) LatestRates(ctx context.Context, base string) (map[string]float64, error) {
	ctx, span := p.tracer.Start(ctx, "rates-provider.latest")
	defer span.End()

	u := fmt.Sprintf("%s/latest/%s", p.baseURL, url.PathEscape(base))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, tagNetwork("latest-rates", "", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, tagNetwork("latest-rates", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, tagStatus("latest-rates", "", resp.StatusCode)
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &domain.ProviderError{Kind: domain.FailureUnknown, Op: "latest-rates", Err: err}
	}
	if len(body.Rates) == 0 {
		return nil, &domain.ProviderError{
			Kind: domain.FailureNoData,
			Op:   "latest-rates",
			Err:  fmt.Errorf("empty rate table"),
		}
	}
	return body.Rates, nil
}
