package usecase

import (
	"context"
	"fmt"
	"strings"
	"wanderly-gateway/internal/domain/entity"
	"wanderly-gateway/internal/domain/repository"

	"go.uber.org/zap"
)

type Orchestrator struct {
	usageLimiter repository.UsageLimiter
	aiProvider   repository.CompletionProvider
	logger       *zap.Logger
}

func NewOrchestrator(ul repository.UsageLimiter, ai repository.CompletionProvider, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{usageLimiter: ul, aiProvider: ai, logger: logger}
}

// Execute forwards an already-authenticated request upstream.
func (u *Orchestrator) Execute(ctx context.Context, caller *entity.AuthenticatedCaller, req entity.ProxyRequest) (*entity.UpstreamResponse, error) {
	// 1. Validate prompt
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, entity.ErrMissingPrompt
	}

	// 2. Consume usage. Anonymous callers have nothing to count against.
	if !caller.Anonymous() {
		allowed, err := u.usageLimiter.Consume(ctx, caller.UID, 1)
		switch {
		case err != nil:
			u.logger.Warn("usage limiter unavailable, allowing request", zap.String("uid", caller.UID), zap.Error(err))
		case !allowed:
			return nil, entity.ErrRateLimitExceeded
		}
	}

	// 3. Call the completion endpoint
	resp, err := u.aiProvider.Complete(ctx, entity.NewUpstreamPayload(prompt))
	if err != nil {
		return nil, fmt.Errorf("AI provider generation failed: %w", err)
	}

	return resp, nil
}
