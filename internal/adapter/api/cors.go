package api

import (
	"github.com/gofiber/fiber/v2"
)

const (
	corsAllowMethods   = "POST, OPTIONS"
	corsDefaultHeaders = "Content-Type, Authorization"
	corsMaxAge         = "86400"
)

// OriginPolicy is the CORS allow-list. An empty Origin (non-browser callers) is
// admitted unless RequireOrigin is set.
type OriginPolicy struct {
	allowed       map[string]struct{}
	requireOrigin bool
}

func NewOriginPolicy(origins []string, requireOrigin bool) *OriginPolicy {
	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	return &OriginPolicy{allowed: allowed, requireOrigin: requireOrigin}
}

func (p *OriginPolicy) Allowed(origin string) bool {
	if origin == "" {
		return !p.requireOrigin
	}
	_, ok := p.allowed[origin]
	return ok
}

// setCORSHeaders reflects the request origin, including rejected ones, so the
// browser can read the error response.
func setCORSHeaders(c *fiber.Ctx, origin, allowedHeaders string) {
	if origin == "" {
		origin = "*"
	}
	if allowedHeaders == "" {
		allowedHeaders = corsDefaultHeaders
	}
	c.Set(fiber.HeaderAccessControlAllowOrigin, origin)
	c.Set(fiber.HeaderAccessControlAllowMethods, corsAllowMethods)
	c.Set(fiber.HeaderAccessControlAllowHeaders, allowedHeaders)
	c.Set(fiber.HeaderVary, fiber.HeaderOrigin)
}
