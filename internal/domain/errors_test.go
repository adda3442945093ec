package domain

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifyErrorSubstringPrecedence(t *testing.T) {
	cases := []struct {
		name  string
		err   error
		want  ErrorType
		retry bool
	}{
		{"network", errors.New("Failed to fetch quote"), ErrNetwork, true},
		{"network alt", errors.New("NetworkError when attempting to fetch resource"), ErrNetwork, true},
		{"rate limit", errors.New("rate limit exceeded"), ErrAPILimit, true},
		{"api frequency", errors.New("API call frequency is 5 calls per minute"), ErrAPILimit, true},
		{"invalid symbol", errors.New("symbol not found"), ErrInvalidSymbol, false},
		{"invalid api call", errors.New("Invalid API call for symbol ZZZZ"), ErrInvalidSymbol, false},
		{"no data", errors.New("no data returned for symbol"), ErrNoData, false},
		{"unknown", errors.New("something exploded"), ErrUnknown, true},
	}

	for _, tc := range cases {
		got := ClassifyError(tc.err, "fetching quote")
		if got.Type != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got.Type)
		}
		if got.CanRetry != tc.retry {
			t.Fatalf("%s: expected canRetry=%v, got %v", tc.name, tc.retry, got.CanRetry)
		}
		if got.Message == "" || got.Solution == "" {
			t.Fatalf("%s: expected message and solution to be populated", tc.name)
		}
	}
}

func TestClassifyErrorRateLimitBeatsNotFound(t *testing.T) {
	got := ClassifyError(errors.New("rate limit exceeded, symbol not found"), "fetching quote")
	if got.Type != ErrAPILimit {
		t.Fatalf("expected API_LIMIT to win over INVALID_SYMBOL, got %s", got.Type)
	}
}

func TestClassifyErrorTaggedProviderError(t *testing.T) {
	err := fmt.Errorf("get quote: %w", &ProviderError{
		Kind:   FailureInvalidSymbol,
		Op:     "quote",
		Symbol: "ZZZZ",
		Err:    errors.New("status 404"),
	})

	got := ClassifyError(err, "fetching quote")
	if got.Type != ErrInvalidSymbol {
		t.Fatalf("expected INVALID_SYMBOL from tagged error, got %s", got.Type)
	}
	if got.CanRetry {
		t.Fatal("invalid symbol must not be retryable")
	}
}

func TestClassifyErrorPassesThroughStockError(t *testing.T) {
	orig := &StockError{Type: ErrNoData, Message: "empty", Solution: "none", CanRetry: false}
	got := ClassifyError(fmt.Errorf("wrapped: %w", orig), "fetching quote")
	if got != orig {
		t.Fatal("expected already-classified error to pass through unchanged")
	}
}

func TestClassifyErrorNil(t *testing.T) {
	if got := ClassifyError(nil, "anything"); got != nil {
		t.Fatalf("expected nil for nil error, got %+v", got)
	}
}

func TestClassifyErrorUnknownMentionsContext(t *testing.T) {
	got := ClassifyError(errors.New("boom"), "loading recommendations")
	if got.Type != ErrUnknown {
		t.Fatalf("expected UNKNOWN, got %s", got.Type)
	}
	if want := "loading recommendations"; !strings.Contains(got.Message, want) {
		t.Fatalf("expected message to mention %q, got %q", want, got.Message)
	}
}
