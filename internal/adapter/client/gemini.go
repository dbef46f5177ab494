package client

import (
	"context"
	"fmt"
	"wanderly-gateway/internal/domain/entity"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const geminiAPIKeyHeader = "x-goog-api-key"

// GeminiClient makes single generateContent attempts against the Gemini REST API.
// The response body is returned untouched.
type GeminiClient struct {
	client *resty.Client
	model  string
	logger *zap.Logger
}

func NewGeminiClient(baseURL, apiKey, model string, logger *zap.Logger) *GeminiClient {
	return &GeminiClient{
		client: resty.New().
			SetBaseURL(baseURL).
			SetHeader(geminiAPIKeyHeader, apiKey).
			SetHeader("Content-Type", "application/json"),
		model:  model,
		logger: logger,
	}
}

func (g *GeminiClient) Complete(ctx context.Context, payload *entity.UpstreamPayload) (*entity.UpstreamResponse, error) {
	res, err := g.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(fmt.Sprintf("/models/%s:generateContent", g.model))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}

	g.logger.Debug("gemini responded",
		zap.String("model", g.model),
		zap.Int("status", res.StatusCode()),
		zap.Duration("latency", res.Time()),
	)

	return &entity.UpstreamResponse{
		StatusCode: res.StatusCode(),
		Body:       res.Body(),
	}, nil
}
