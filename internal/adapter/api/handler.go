package api

import (
	"errors"
	"fmt"

	"wanderly-gateway/internal/domain/entity"
	"wanderly-gateway/internal/domain/repository"
	"wanderly-gateway/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const callerLocalsKey = "caller_uid"

type ProxyHandler struct {
	orchestrator  *usecase.Orchestrator
	verifier      repository.CallerVerifier
	origins       *OriginPolicy
	singleAttempt bool
	logger        *zap.Logger
}

func NewProxyHandler(orch *usecase.Orchestrator, verifier repository.CallerVerifier, origins *OriginPolicy, singleAttempt bool, logger *zap.Logger) *ProxyHandler {
	return &ProxyHandler{
		orchestrator:  orch,
		verifier:      verifier,
		origins:       origins,
		singleAttempt: singleAttempt,
		logger:        logger,
	}
}

// Handle is the single entry point; it dispatches on method so that unsupported
// methods still get CORS headers.
func (h *ProxyHandler) Handle(c *fiber.Ctx) error {
	origin := c.Get(fiber.HeaderOrigin)

	switch c.Method() {
	case fiber.MethodOptions:
		return h.handlePreflight(c, origin)
	case fiber.MethodPost:
		return h.handleForward(c, origin)
	default:
		return h.fail(c, origin, entity.ErrMethodNotAllowed)
	}
}

func (h *ProxyHandler) handlePreflight(c *fiber.Ctx, origin string) error {
	c.Set(fiber.HeaderAccessControlMaxAge, corsMaxAge)

	if !h.origins.Allowed(origin) {
		setCORSHeaders(c, origin, "")
		c.Status(fiber.StatusForbidden)
		return nil
	}

	setCORSHeaders(c, origin, c.Get(fiber.HeaderAccessControlRequestHeaders))
	c.Status(fiber.StatusNoContent)
	return nil
}

func (h *ProxyHandler) handleForward(c *fiber.Ctx, origin string) error {
	if !h.origins.Allowed(origin) {
		return h.fail(c, origin, entity.ErrOriginNotAllowed)
	}

	caller, err := h.verifier.Verify(c.UserContext(), c.Get(fiber.HeaderAuthorization))
	if err != nil {
		if !errors.Is(err, entity.ErrMissingToken) && !errors.Is(err, entity.ErrInvalidToken) {
			err = fmt.Errorf("%w: %w", entity.ErrInvalidToken, err)
		}
		return h.fail(c, origin, err)
	}
	c.Locals(callerLocalsKey, caller.UID)

	var req entity.ProxyRequest
	if err := c.App().Config().JSONDecoder(c.Body(), &req); err != nil {
		return h.fail(c, origin, fmt.Errorf("%w: %w", entity.ErrInvalidJSON, err))
	}

	resp, err := h.orchestrator.Execute(c.UserContext(), caller, req)
	if err != nil {
		return h.fail(c, origin, err)
	}

	h.logger.Info("forwarded completion",
		zap.String("request_id", requestID(c)),
		zap.String("uid", caller.UID),
		zap.Int("status", resp.StatusCode),
		zap.Int("attempts", resp.Attempts),
		zap.Int("bytes", len(resp.Body)),
	)

	setCORSHeaders(c, origin, "")
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(resp.StatusCode).Send(resp.Body)
}

// fail writes a plain-text rejection. The Delivery layer maps the business error to HTTP status codes
func (h *ProxyHandler) fail(c *fiber.Ctx, origin string, err error) error {
	status, message := h.errorResponse(err)

	fields := []zap.Field{
		zap.String("request_id", requestID(c)),
		zap.Int("status", status),
		zap.Error(err),
	}
	if uid, ok := c.Locals(callerLocalsKey).(string); ok {
		fields = append(fields, zap.String("uid", uid))
	}
	if status >= fiber.StatusInternalServerError {
		h.logger.Error("request failed", fields...)
	} else {
		h.logger.Debug("request rejected", fields...)
	}

	setCORSHeaders(c, origin, "")
	return c.Status(status).SendString(message)
}

func (h *ProxyHandler) errorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, entity.ErrOriginNotAllowed):
		return fiber.StatusForbidden, "Origin not allowed"
	case errors.Is(err, entity.ErrMethodNotAllowed):
		return fiber.StatusMethodNotAllowed, "Method not allowed"
	case errors.Is(err, entity.ErrMissingToken):
		return fiber.StatusUnauthorized, "Missing bearer token"
	case errors.Is(err, entity.ErrInvalidToken):
		return fiber.StatusUnauthorized, "Invalid authentication token"
	case errors.Is(err, entity.ErrInvalidJSON):
		return fiber.StatusBadRequest, "Invalid JSON body"
	case errors.Is(err, entity.ErrMissingPrompt):
		return fiber.StatusBadRequest, "Missing prompt"
	case errors.Is(err, entity.ErrRateLimitExceeded):
		return fiber.StatusTooManyRequests, "Rate limit exceeded"
	case errors.Is(err, entity.ErrUpstreamUnavailable):
		if h.singleAttempt {
			return fiber.StatusBadGateway, "Gemini service unavailable"
		}
		return fiber.StatusBadGateway, "Upstream service error"
	default:
		return fiber.StatusInternalServerError, "internal gateway error"
	}
}

func requestID(c *fiber.Ctx) string {
	return c.GetRespHeader(fiber.HeaderXRequestID)
}
