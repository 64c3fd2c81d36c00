package llm

import (
	"context"
	"math/rand"
	"time"

	"jobtrack-backend/internal/shared/telemetry"
)

// RetryPolicy controls how transient provider failures are retried.
// MaxRetries counts additional attempts after the first one.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
	MaxJitter  time.Duration
}

// DefaultRetryPolicy mirrors the configured provider retry budget.
func DefaultRetryPolicy(maxRetries int) RetryPolicy {
	if maxRetries < 0 {
		maxRetries = 0
	}
	return RetryPolicy{
		MaxRetries: maxRetries,
		BaseDelay:  300 * time.Millisecond,
		MaxDelay:   5 * time.Second,
		MaxJitter:  250 * time.Millisecond,
	}
}

// Delay returns the backoff before retry attempt n (1-based): base doubled
// per attempt, capped, plus random jitter.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	delay := p.BaseDelay
	if delay <= 0 {
		delay = 300 * time.Millisecond
	}
	for i := 1; i < attempt; i++ {
		delay *= 2
		if p.MaxDelay > 0 && delay >= p.MaxDelay {
			delay = p.MaxDelay
			break
		}
	}
	if p.MaxDelay > 0 && delay > p.MaxDelay {
		delay = p.MaxDelay
	}
	if p.MaxJitter > 0 {
		delay += time.Duration(rand.Int63n(int64(p.MaxJitter)))
	}
	return delay
}

type retryingClient struct {
	base   Client
	policy RetryPolicy
	sleep  func(ctx context.Context, d time.Duration) error
}

// WithRetry wraps base so transient failures are retried per policy.
// Non-transient failures surface immediately.
func WithRetry(base Client, policy RetryPolicy) Client {
	if base == nil {
		return nil
	}
	return &retryingClient{
		base:   base,
		policy: policy,
		sleep:  sleepContext,
	}
}

func (r *retryingClient) Generate(ctx context.Context, req Request) (Result, error) {
	result, err := r.base.Generate(ctx, req)
	if err == nil || !IsTransient(err) {
		return result, err
	}

	for attempt := 1; attempt <= r.policy.MaxRetries; attempt++ {
		telemetry.Warn("provider.retry", map[string]any{
			"attempt": attempt,
			"kind":    req.Kind,
			"model":   req.Model,
			"error":   err.Error(),
		})
		if sleepErr := r.sleep(ctx, r.policy.Delay(attempt)); sleepErr != nil {
			return Result{}, sleepErr
		}
		result, err = r.base.Generate(ctx, req)
		if err == nil || !IsTransient(err) {
			return result, err
		}
	}
	return Result{}, err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
