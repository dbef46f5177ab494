package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// StatusError carries a non-2xx gateway answer.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("gateway returned status %d: %s", e.Code, e.Body)
}

type Client struct {
	client   *resty.Client
	proxyURL string
	origin   string
	logger   *zap.Logger
}

func NewClient(proxyURL, origin string, logger *zap.Logger) *Client {
	return &Client{
		client:   resty.New().SetTimeout(60 * time.Second),
		proxyURL: proxyURL,
		origin:   origin,
		logger:   logger,
	}
}

type proxyRequest struct {
	Prompt string `json:"prompt"`
}

// Generate asks the gateway for an itinerary on behalf of the token holder.
func (c *Client) Generate(ctx context.Context, token string, prefs Preferences) (*Result, error) {
	req := c.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(proxyRequest{Prompt: BuildPrompt(prefs)})
	if c.origin != "" {
		req.SetHeader("Origin", c.origin)
	}

	res, err := req.Post(c.proxyURL)
	if err != nil {
		return nil, fmt.Errorf("calling gateway: %w", err)
	}
	c.logger.Debug("gateway answered",
		zap.Int("status", res.StatusCode()),
		zap.Duration("elapsed", res.Time()),
	)
	if res.IsError() {
		return nil, &StatusError{Code: res.StatusCode(), Body: res.String()}
	}

	result, err := ParseResponse(res.Body())
	if err != nil {
		c.logger.Debug("unparseable itinerary", zap.String("raw", res.String()))
		return nil, err
	}
	return result, nil
}
