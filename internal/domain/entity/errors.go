package entity

import "errors"

// Standard domain errors
var (
	ErrOriginNotAllowed    = errors.New("origin not allowed")
	ErrMethodNotAllowed    = errors.New("method not allowed")
	ErrMissingToken        = errors.New("missing bearer token")
	ErrInvalidToken        = errors.New("invalid authentication token")
	ErrInvalidJSON         = errors.New("invalid JSON body")
	ErrMissingPrompt       = errors.New("missing prompt")
	ErrRateLimitExceeded   = errors.New("rate limit exceeded: too many requests for this caller")
	ErrUpstreamUnavailable = errors.New("upstream completion service unavailable")
)
