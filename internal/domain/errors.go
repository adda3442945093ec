package domain

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorType string

const (
	ErrNetwork       ErrorType = "NETWORK"
	ErrAPILimit      ErrorType = "API_LIMIT"
	ErrInvalidSymbol ErrorType = "INVALID_SYMBOL"
	ErrNoData        ErrorType = "NO_DATA"
	ErrUnknown       ErrorType = "UNKNOWN"
)

// StockError is the classified form every external failure is converted to
// before it reaches a caller. Solution is a user-facing remediation hint.
type StockError struct {
	Type     ErrorType `json:"type"`
	Message  string    `json:"message"`
	Solution string    `json:"solution"`
	CanRetry bool      `json:"can_retry"`
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// FailureKind tags a provider adapter failure so classification does not have
// to sniff message text for errors produced inside this codebase.
type FailureKind int

const (
	FailureNetwork FailureKind = iota
	FailureRateLimit
	FailureInvalidSymbol
	FailureNoData
	FailureUnknown
)

// ProviderError is the tagged error every provider adapter returns. The raw
// upstream error stays wrapped for logging.
type ProviderError struct {
	Kind   FailureKind
	Op     string
	Symbol string
	Err    error
}

func (e *ProviderError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Symbol, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// ClassifyError maps a caught failure and a context label into a StockError.
// Tagged provider errors are mapped directly by kind; untyped errors fall back
// to substring matching. The substring precedence is deliberate: more specific
// causes are checked before generic ones, since a message can match several
// patterns ("rate limit ... not found" must classify as API_LIMIT).
func ClassifyError(err error, context string) *StockError {
	if err == nil {
		return nil
	}

	var se *StockError
	if errors.As(err, &se) {
		return se
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return fromKind(pe.Kind, context)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "Failed to fetch") || strings.Contains(msg, "NetworkError"):
		return fromKind(FailureNetwork, context)
	case strings.Contains(msg, "API call frequency") || strings.Contains(msg, "rate limit"):
		return fromKind(FailureRateLimit, context)
	case strings.Contains(msg, "not found") || strings.Contains(msg, "Invalid API call"):
		return fromKind(FailureInvalidSymbol, context)
	case strings.Contains(msg, "no data"):
		return fromKind(FailureNoData, context)
	default:
		return &StockError{
			Type:     ErrUnknown,
			Message:  fmt.Sprintf("Something went wrong while %s.", context),
			Solution: "Try again. If the problem persists, check the service status page.",
			CanRetry: true,
		}
	}
}

func fromKind(kind FailureKind, context string) *StockError {
	switch kind {
	case FailureNetwork:
		return &StockError{
			Type:     ErrNetwork,
			Message:  "Unable to reach the data provider.",
			Solution: "Check your internet connection and retry.",
			CanRetry: true,
		}
	case FailureRateLimit:
		return &StockError{
			Type:     ErrAPILimit,
			Message:  "The data provider's request quota was exceeded.",
			Solution: "Wait a minute before retrying, or configure a higher-tier API key.",
			CanRetry: true,
		}
	case FailureInvalidSymbol:
		return &StockError{
			Type:     ErrInvalidSymbol,
			Message:  "No such ticker symbol is known to the data provider.",
			Solution: "Check the symbol spelling, e.g. AAPL for Apple.",
			CanRetry: false,
		}
	case FailureNoData:
		return &StockError{
			Type:     ErrNoData,
			Message:  "The data provider returned an empty response.",
			Solution: "The symbol may be delisted or the market data unavailable.",
			CanRetry: false,
		}
	default:
		return &StockError{
			Type:     ErrUnknown,
			Message:  fmt.Sprintf("Something went wrong while %s.", context),
			Solution: "Try again. If the problem persists, check the service status page.",
			CanRetry: true,
		}
	}
}
