package generation

import "fmt"

// ErrorCode classifies pipeline failures. Every component error is mapped
// into one of these before it reaches the caller.
type ErrorCode string

const (
	CodeInvalidRequest     ErrorCode = "INVALID_REQUEST"
	CodeRateLimited        ErrorCode = "RATE_LIMITED"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeOwnershipMismatch  ErrorCode = "OWNERSHIP_MISMATCH"
	CodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	CodeProviderError      ErrorCode = "PROVIDER_ERROR"
	CodeMalformedOutput    ErrorCode = "MALFORMED_OUTPUT"
	CodePersistenceError   ErrorCode = "PERSISTENCE_ERROR"
)

// Error is the typed outcome for a failed generation. Retryable tells the
// caller whether trying again later can succeed without changing the
// request. A persistence failure carries the normalized content so the
// model's work is not discarded with it.
type Error struct {
	Code              ErrorCode
	Message           string
	RetryAfterSeconds int
	Retryable         bool
	Content           map[string]any
}

func (e *Error) Error() string {
	return fmt.Sprintf("generation %s: %s", e.Code, e.Message)
}

func newError(code ErrorCode, message string, retryable bool) *Error {
	return &Error{Code: code, Message: message, Retryable: retryable}
}

func invalidRequest(message string) *Error {
	return newError(CodeInvalidRequest, message, false)
}

func rateLimited(retryAfter int) *Error {
	return &Error{
		Code:              CodeRateLimited,
		Message:           "generation rate limit reached",
		RetryAfterSeconds: retryAfter,
		Retryable:         true,
	}
}

func notFound(entity string) *Error {
	return newError(CodeNotFound, entity+" not found", false)
}

func ownershipMismatch() *Error {
	return newError(CodeOwnershipMismatch, "job does not belong to the requesting user", false)
}

func backendUnavailable(message string) *Error {
	return newError(CodeBackendUnavailable, message, true)
}

func providerError(message string, retryable bool) *Error {
	return newError(CodeProviderError, message, retryable)
}

func malformedOutput(message string) *Error {
	return newError(CodeMalformedOutput, message, true)
}

func persistenceError(message string, content map[string]any) *Error {
	return &Error{
		Code:      CodePersistenceError,
		Message:   message,
		Retryable: true,
		Content:   content,
	}
}
