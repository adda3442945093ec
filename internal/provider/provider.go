package provider

import (
	"fmt"
	"net/http"
	"time"

	"github.com/andreamilli9/portfolio-oracle-gpt/internal/domain"
)

const requestTimeout = 10 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}

// tagStatus converts a non-2xx provider response into a tagged error so the
// classifier never has to sniff upstream message text.
func tagStatus(op, symbol string, status int) *domain.ProviderError {
	kind := domain.FailureUnknown
	switch {
	case status == http.StatusTooManyRequests:
		kind = domain.FailureRateLimit
	case status == http.StatusNotFound:
		kind = domain.FailureInvalidSymbol
	case status >= 500:
		kind = domain.FailureNetwork
	}
	return &domain.ProviderError{
		Kind:   kind,
		Op:     op,
		Symbol: symbol,
		Err:    fmt.Errorf("unexpected status %d", status),
	}
}

func tagNetwork(op, symbol string, err error) *domain.ProviderError {
	return &domain.ProviderError{Kind: domain.FailureNetwork, Op: op, Symbol: symbol, Err: err}
}
