package repository

import (
	"context"
	"wanderly-gateway/internal/domain/entity"
)

// CallerVerifier resolves the caller from the raw Authorization header value.
type CallerVerifier interface {
	Verify(ctx context.Context, authorization string) (*entity.AuthenticatedCaller, error)
}

// CompletionProvider performs a single upstream attempt. A transport failure is an
// error; any received HTTP status is a response.
type CompletionProvider interface {
	Complete(ctx context.Context, payload *entity.UpstreamPayload) (*entity.UpstreamResponse, error)
}

// UsageLimiter counts and checks in one step, so concurrent requests cannot
// overshoot the limit.
type UsageLimiter interface {
	Consume(ctx context.Context, userID string, requests int) (bool, error)
}
