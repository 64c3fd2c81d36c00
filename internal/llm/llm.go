package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
)

// Client abstracts generation providers. Implementations must return a
// zero-value Result rather than failing when the backend produced no
// content.
type Client interface {
	Generate(ctx context.Context, req Request) (Result, error)
}

// Request captures one logical generation call.
type Request struct {
	Kind        string
	Prompt      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Result is the provider-agnostic response shape. Exactly one of Text and
// JSON is usually populated; both may be empty when the backend returned
// nothing usable.
type Result struct {
	Text   string
	JSON   json.RawMessage
	Tokens Usage
	Meta   Meta
}

// Usage reports token accounting when the backend supplies it.
type Usage struct {
	Prompt     int
	Completion int
	Total      int
}

// Meta records provenance for the result.
type Meta struct {
	Provider  string
	Model     string
	RequestID string
}

// ProviderError describes a failed provider call. Transient errors are
// eligible for retry; non-transient ones surface immediately.
type ProviderError struct {
	Status    int
	Message   string
	Transient bool
}

func (e *ProviderError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("provider error: http status %d: %s", e.Status, e.Message)
	}
	return "provider error: " + e.Message
}

// IsTransient reports whether err looks like a failure worth retrying:
// timeouts, connection drops, and 5xx-class provider responses.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	var provErr *ProviderError
	if errors.As(err, &provErr) {
		return provErr.Transient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "http status 5") || strings.Contains(msg, "server_error") {
		return true
	}
	if strings.Contains(msg, "timeout") && (strings.Contains(msg, "provider") || strings.Contains(msg, "llm") || strings.Contains(msg, "client.timeout")) {
		return true
	}
	if strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection closed") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "tls handshake timeout") ||
		strings.Contains(msg, "eof") {
		return true
	}

	return false
}
