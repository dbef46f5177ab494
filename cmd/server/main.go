package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wanderly-gateway/internal/adapter/api"
	"wanderly-gateway/internal/adapter/client"
	"wanderly-gateway/internal/adapter/store"
	"wanderly-gateway/internal/config"
	"wanderly-gateway/internal/domain/repository"
	"wanderly-gateway/internal/logger"
	"wanderly-gateway/internal/usecase"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog := logger.New(cfg.LogDebug)
	defer zlog.Sync()

	ctx := context.Background()

	// Caller verification
	var verifier repository.CallerVerifier
	switch cfg.AuthMode {
	case config.AuthModeFirebase:
		verifier = client.NewFirebaseVerifier(cfg.IdentityBaseURL, cfg.FirebaseWebAPIKey, zlog.Named("identity")).
			WithTimeout(cfg.IdentityTimeout)
	default:
		zlog.Warn("caller verification disabled", zap.String("auth_mode", cfg.AuthMode))
		verifier = client.NewNoopVerifier()
	}

	// Redis for per-caller usage limits
	var limiter repository.UsageLimiter = store.NoopLimiter{}
	if cfg.LimiterEnabled() {
		rdb, err := store.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			zlog.Fatal("redis connection failed", zap.Error(err))
		}
		defer rdb.Close()
		limiter = store.NewRedisLimiter(rdb, cfg.UserRequestLimit, cfg.UserLimitWindow)
		zlog.Info("usage limiter enabled",
			zap.Int("limit", cfg.UserRequestLimit),
			zap.Duration("window", cfg.UserLimitWindow),
		)
	}

	gemini := client.NewGeminiClient(cfg.GeminiBaseURL, cfg.GeminiAPIKey, cfg.GeminiModel, zlog.Named("gemini"))
	resilientProvider := usecase.NewResilientProvider(gemini, usecase.RetryPolicy{
		MaxRetries:      cfg.MaxRetries,
		BaseDelay:       cfg.RetryBaseDelay,
		RetryableStatus: cfg.RetryableStatuses,
		Deadline:        cfg.UpstreamDeadline,
	}, zlog.Named("retry"))

	// Inject the adapters into the Orchestration Layer
	orchestrator := usecase.NewOrchestrator(limiter, resilientProvider, zlog.Named("proxy"))

	// Initialize API Layer (Delivery Layer)
	app := api.NewApp()
	origins := api.NewOriginPolicy(cfg.AllowedOrigins, cfg.RequireOrigin)
	handler := api.NewProxyHandler(orchestrator, verifier, origins, resilientProvider.SingleAttempt(), zlog.Named("api"))
	api.SetupRouter(app, handler, api.HealthInfo{Version: cfg.AppVersion, Env: cfg.Env})

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		zlog.Info("shutting down")
		if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
			zlog.Error("forced shutdown", zap.Error(err))
		}
	}()

	zlog.Info("wanderly gateway running",
		zap.String("port", cfg.Port),
		zap.String("model", cfg.GeminiModel),
		zap.String("auth_mode", cfg.AuthMode),
		zap.Strings("allowed_origins", cfg.AllowedOrigins),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		zlog.Fatal("server error", zap.Error(err))
	}
}
