package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"wanderly-gateway/internal/domain/entity"
	"wanderly-gateway/internal/domain/repository"

	"go.uber.org/zap"
)

const (
	DefaultMaxRetries = 2
	DefaultBaseDelay  = 500 * time.Millisecond
	DefaultDeadline   = 25 * time.Second
)

// DefaultRetryableStatus are the upstream statuses worth another attempt.
var DefaultRetryableStatus = []int{http.StatusTooManyRequests, http.StatusServiceUnavailable}

type RetryPolicy struct {
	MaxRetries      int
	BaseDelay       time.Duration
	RetryableStatus []int
	Deadline        time.Duration // Caps the whole loop, backoff included
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      DefaultMaxRetries, // Total 3 attempts
		BaseDelay:       DefaultBaseDelay,
		RetryableStatus: DefaultRetryableStatus,
		Deadline:        DefaultDeadline,
	}
}

// Backoff returns base * 2^attempt.
func (p RetryPolicy) Backoff(attempt int) time.Duration {
	return p.BaseDelay * time.Duration(int64(1)<<attempt)
}

type ResilientProvider struct {
	provider  repository.CompletionProvider
	policy    RetryPolicy
	retryable map[int]struct{}
	logger    *zap.Logger
	sleep     func(ctx context.Context, d time.Duration) error
}

func NewResilientProvider(provider repository.CompletionProvider, policy RetryPolicy, logger *zap.Logger) *ResilientProvider {
	// Without retries every received status is forwarded.
	retryable := make(map[int]struct{}, len(policy.RetryableStatus))
	if policy.MaxRetries > 0 {
		for _, code := range policy.RetryableStatus {
			retryable[code] = struct{}{}
		}
	}
	return &ResilientProvider{
		provider:  provider,
		policy:    policy,
		retryable: retryable,
		logger:    logger,
		sleep:     sleepContext,
	}
}

// Complete returns the first non-retryable upstream response. It returns an error
// wrapping entity.ErrUpstreamUnavailable once the budget or the deadline is spent.
func (r *ResilientProvider) Complete(ctx context.Context, payload *entity.UpstreamPayload) (*entity.UpstreamResponse, error) {
	resCtx, cancel := context.WithTimeout(ctx, r.policy.Deadline)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt <= r.policy.MaxRetries; attempt++ {
		resp, err := r.provider.Complete(resCtx, payload)
		switch {
		case err != nil:
			lastErr = err
			r.logger.Warn("upstream attempt failed",
				zap.Int("attempt", attempt+1),
				zap.Error(err),
			)
		case r.isRetryable(resp.StatusCode):
			lastErr = fmt.Errorf("upstream returned retryable status %d", resp.StatusCode)
			r.logger.Warn("upstream returned retryable status",
				zap.Int("attempt", attempt+1),
				zap.Int("status", resp.StatusCode),
			)
		default:
			resp.Attempts = attempt + 1
			return resp, nil
		}

		if attempt == r.policy.MaxRetries {
			break
		}

		wait := r.policy.Backoff(attempt)
		r.logger.Debug("backing off before retry", zap.Int("attempt", attempt+1), zap.Duration("delay", wait))
		if err := r.sleep(resCtx, wait); err != nil {
			return nil, fmt.Errorf("%w: %w", entity.ErrUpstreamUnavailable, err)
		}
	}
	return nil, fmt.Errorf("%w after %d attempts: %w", entity.ErrUpstreamUnavailable, r.policy.MaxRetries+1, lastErr)
}

// SingleAttempt reports whether the policy never retries.
func (r *ResilientProvider) SingleAttempt() bool {
	return r.policy.MaxRetries == 0
}

func (r *ResilientProvider) isRetryable(status int) bool {
	_, ok := r.retryable[status]
	return ok
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
