// File: internal/services/mail/retry.go
package mail

import (
    "context"
    "time"
)

// RetryConfig defines simple retry behavior
type RetryConfig struct {
    MaxAttempts int
    Delay       time.Duration
}

// DefaultRetryConfig provides sensible defaults
func DefaultRetryConfig() *RetryConfig {
    return &RetryConfig{
        MaxAttempts: 3,
        Delay:       500 * time.Millisecond,
    }
}

// RetryWithBackoff runs fn until it succeeds, fails with a non-retryable error,
// or runs out of attempts. The delay doubles after each failed attempt.
func RetryWithBackoff(ctx context.Context, config *RetryConfig, fn func(ctx context.Context) error) error {
    var lastErr error
    delay := config.Delay

    for attempt := 0; attempt < config.MaxAttempts; attempt++ {
        err := fn(ctx)
        if err == nil {
            return nil
        }

        lastErr = err
        if !retryable(err) {
            return err
        }

        // Don't wait after last attempt
        if attempt < config.MaxAttempts-1 {
            select {
            case <-ctx.Done():
                return ctx.Err()
            case <-time.After(delay):
            }
            delay *= 2
        }
    }

    return lastErr
}
