package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// QuoteProvider is a Finnhub-style REST client for price quotes, company
// profiles and recent daily closes.
type QuoteProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	tracer  trace.Tracer
	now     func() time.Time
}

func NewQuoteProvider(baseURL, apiKey string, tracer trace.Tracer) *QuoteProvider {
	return &QuoteProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  newHTTPClient(),
		tracer:  tracer,
		now:     time.Now,
	}
}

type quoteResponse struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
}

type profileResponse struct {
	Name                 string  `json:"name"`
	MarketCapitalization float64 `json:"marketCapitalization"`
}

type candleResponse struct {
	Closes []float64 `json:"c"`
	Status string    `json:"s"`
}

// Quote fetches the current price snapshot for one symbol. An all-zero
// response is tagged as an invalid symbol, matching the provider's behavior of
// answering 200 with zeroes for unknown tickers.
func (p *QuoteProvider) Quote(ctx context.Context, symbol string) (*domain.Quote, error) {
	ctx, span := p.tracer.Start(ctx, "quote-provider.quote")
	defer span.End()
	span.SetAttributes(attribute.String("symbol", symbol))

	var body quoteResponse
	if err := p.getJSON(ctx, "quote", symbol, "/quote?symbol="+url.QueryEscape(symbol), &body); err != nil {
		return nil, err
	}

	if body.Current == 0 && body.Change == 0 && body.ChangePercent == 0 {
		return nil, &domain.ProviderError{
			Kind:   domain.FailureInvalidSymbol,
			Op:     "quote",
			Symbol: symbol,
			Err:    fmt.Errorf("empty quote"),
		}
	}

	return &domain.Quote{
		Symbol:        symbol,
		Name:          symbol,
		Price:         body.Current,
		Change:        body.Change,
		ChangePercent: body.ChangePercent,
	}, nil
}

// Profile resolves a display name for a symbol. Callers treat this as
// best-effort and fall back to the symbol itself.
func (p *QuoteProvider) Profile(ctx context.Context, symbol string) (string, error) {
	ctx, span := p.tracer.Start(ctx, "quote-provider.profile")
	defer span.End()

	var body profileResponse
	if err := p.getJSON(ctx, "profile", symbol, "/stock/profile2?symbol="+url.QueryEscape(symbol), &body); err != nil {
		return "", err
	}
	if body.Name == "" {
		return "", &domain.ProviderError{
			Kind:   domain.FailureNoData,
			Op:     "profile",
			Symbol: symbol,
			Err:    fmt.Errorf("no profile data"),
		}
	}
	return body.Name, nil
}

// RecentCloses returns up to window daily closes, oldest first.
func (p *QuoteProvider) RecentCloses(ctx context.Context, symbol string, window int) ([]float64, error) {
	ctx, span := p.tracer.Start(ctx, "quote-provider.recent-closes")
	defer span.End()

	to := p.now().UTC()
	from := to.AddDate(0, 0, -window*2)
	path := fmt.Sprintf("/stock/candle?symbol=%s&resolution=D&from=%d&to=%d",
		url.QueryEscape(symbol), from.Unix(), to.Unix())

	var body candleResponse
	if err := p.getJSON(ctx, "recent-closes", symbol, path, &body); err != nil {
		return nil, err
	}
	if body.Status == "no_data" || len(body.Closes) == 0 {
		return nil, &domain.ProviderError{
			Kind:   domain.FailureNoData,
			Op:     "recent-closes",
			Symbol: symbol,
			Err:    fmt.Errorf("no candle data"),
		}
	}

	closes := body.Closes
	if len(closes) > window {
		closes = closes[len(closes)-window:]
	}
	return closes, nil
}

func (p *QuoteProvider) getJSON(ctx context.Context, op, symbol, path string, out any) error {
	u := p.baseURL + path
	if p.apiKey != "" {
		u += "&token=" + url.QueryEscape(p.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return tagNetwork(op, symbol, err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return tagNetwork(op, symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return tagStatus(op, symbol, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &domain.ProviderError{Kind: domain.FailureUnknown, Op: op, Symbol: symbol, Err: err}
	}
	return nil
}
