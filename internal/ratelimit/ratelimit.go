package ratelimit

// Decision is the outcome of an admission check.
type Decision struct {
	Allowed           bool
	RetryAfterSeconds int
}

// Limiter admits or rejects generation requests per user. Implementations
// must be safe for concurrent use; a single-process sliding window and a
// shared-store limiter are interchangeable behind this interface.
type Limiter interface {
	Admit(userID string) Decision
}
