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

// Article is the raw shape returned by the news provider before sentiment
// analysis is applied.
type Article struct {
	Title       string
	Description string
	URL         string
	PublishedAt time.Time
	SourceName  string
}

// NewsProvider is a NewsAPI-style client. Credentials are optional; callers
// are expected to degrade to placeholder articles when fetching fails.
type NewsProvider struct {
	baseURL string
	apiKey  string
	client  *http.Client
	tracer  trace.Tracer
}

func NewNewsProvider(baseURL, apiKey string, tracer trace.Tracer) *NewsProvider {
	return &NewsProvider{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  newHTTPClient(),
		tracer:  tracer,
	}
}

type newsResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Articles queries recent articles matching any of the query terms.
func (p *NewsProvider) Articles(ctx context.Context, queryTerms []string) ([]Article, error) {
	ctx, span := p.tracer.Start(ctx, "news-provider.articles")
	defer span.End()
	span.SetAttributes(attribute.Int("terms", len(queryTerms)))

	if p.apiKey == "" {
		return nil, &domain.ProviderError{
			Kind: domain.FailureNoData,
			Op:   "articles",
			Err:  fmt.Errorf("no api key configured"),
		}
	}

	query := ""
	for i, term := range queryTerms {
		if i > 0 {
			query += " OR "
		}
		query += term
	}

	u := fmt.Sprintf("%s/everything?q=%s&sortBy=publishedAt&pageSize=10&apiKey=%s",
		p.baseURL, url.QueryEscape(query), url.QueryEscape(p.apiKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, tagNetwork("articles", "", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, tagNetwork("articles", "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, tagStatus("articles", "", resp.StatusCode)
	}

	var body newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &domain.ProviderError{Kind: domain.FailureUnknown, Op: "articles", Err: err}
	}
	if len(body.Articles) == 0 {
		return nil, &domain.ProviderError{
			Kind: domain.FailureNoData,
			Op:   "articles",
			Err:  fmt.Errorf("no articles returned"),
		}
	}

	out := make([]Article, 0, len(body.Articles))
	for _, a := range body.Articles {
		out = append(out, Article{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			SourceName:  a.Source.Name,
		})
	}
	return out, nil
}
