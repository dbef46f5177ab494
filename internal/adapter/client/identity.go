package client

import (
	"context"
	"encoding/json"
	"strings"
	"time"
	"wanderly-gateway/internal/domain/entity"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	bearerPrefix = "Bearer "

	DefaultIdentityTimeout = 10 * time.Second
)

// FirebaseVerifier resolves a Firebase ID token through the Identity Toolkit
// accounts:lookup endpoint.
type FirebaseVerifier struct {
	client *resty.Client
	apiKey string
	logger *zap.Logger
}

func NewFirebaseVerifier(baseURL, apiKey string, logger *zap.Logger) *FirebaseVerifier {
	return &FirebaseVerifier{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(DefaultIdentityTimeout),
		apiKey: apiKey,
		logger: logger,
	}
}

// WithTimeout bounds each accounts:lookup call.
func (v *FirebaseVerifier) WithTimeout(d time.Duration) *FirebaseVerifier {
	v.client.SetTimeout(d)
	return v
}

type accountsLookupResponse struct {
	Users []struct {
		LocalID string `json:"localId"`
	} `json:"users"`
}

// Verify never tells the caller why a token was rejected: expired tokens and an
// unreachable lookup service both come back as ErrInvalidToken.
func (v *FirebaseVerifier) Verify(ctx context.Context, authorization string) (*entity.AuthenticatedCaller, error) {
	token, ok := BearerToken(authorization)
	if !ok {
		return nil, entity.ErrMissingToken
	}

	res, err := v.client.R().
		SetContext(ctx).
		SetQueryParam("key", v.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"idToken": token}).
		Post("/accounts:lookup")
	if err != nil {
		v.logger.Error("error verifying firebase id token", zap.Error(err))
		return nil, entity.ErrInvalidToken
	}

	if !res.IsSuccess() {
		v.logger.Warn("failed to verify firebase id token",
			zap.Int("status", res.StatusCode()),
			zap.String("body", res.String()),
		)
		return nil, entity.ErrInvalidToken
	}

	var lookup accountsLookupResponse
	if err := json.Unmarshal(res.Body(), &lookup); err != nil {
		v.logger.Warn("undecodable accounts:lookup response", zap.Error(err))
		return nil, entity.ErrInvalidToken
	}

	if len(lookup.Users) == 0 || lookup.Users[0].LocalID == "" {
		return nil, entity.ErrInvalidToken
	}

	return &entity.AuthenticatedCaller{UID: lookup.Users[0].LocalID}, nil
}

// NoopVerifier admits every caller anonymously. It serves deployments that do
// not require a signed-in user.
type NoopVerifier struct{}

func NewNoopVerifier() *NoopVerifier {
	return &NoopVerifier{}
}

func (NoopVerifier) Verify(context.Context, string) (*entity.AuthenticatedCaller, error) {
	return &entity.AuthenticatedCaller{}, nil
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(authorization string) (string, bool) {
	if !strings.HasPrefix(authorization, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(authorization[len(bearerPrefix):])
	return token, token != ""
}
