package wordstore

import (
	"context"
	"errors"
	"math"
	"time"
)

// RetryConfig tunes the retry decorator.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// OnAttempt, when set, is invoked before each retry sleep with the
	// failed attempt number (1-based) and the attempt budget. The UI uses
	// it for slow-network progress feedback.
	OnAttempt func(attempt, max int)
}

// DefaultRetryConfig matches the remote's cold-start behavior: seven
// attempts starting at one second, doubling.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 7,
		InitialWait: 1 * time.Second,
		MaxWait:     30 * time.Second,
		Multiplier:  2.0,
	}
}

// retryResolver decorates a Resolver with exponential backoff on
// transient lookup failures.
type retryResolver struct {
	inner  Resolver
	config RetryConfig
}

// WithRetry wraps a Resolver with retry logic.
func WithRetry(r Resolver, cfg RetryConfig) Resolver {
	return &retryResolver{inner: r, config: cfg}
}

func (r *retryResolver) Resolve(ctx context.Context, ids []int) (map[int]Word, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		words, err := r.inner.Resolve(ctx, ids)
		if err == nil {
			return words, nil
		}
		lastErr = err

		if !retryable(err) {
			return nil, err
		}

		if r.config.OnAttempt != nil {
			r.config.OnAttempt(attempt+1, r.config.MaxAttempts)
		}

		// Last attempt surfaces the error without sleeping.
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.backoff(attempt)):
		}
	}

	return nil, lastErr
}

// retryable reports whether the error is worth another attempt.
// Context errors never are; lookup failures always are.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var le *LookupError
	return errors.As(err, &le)
}

func (r *retryResolver) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}
	return time.Duration(wait)
}
