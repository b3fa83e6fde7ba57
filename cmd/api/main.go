package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ressKim-io/fraudlens/internal/adapter/client"
	"github.com/ressKim-io/fraudlens/internal/adapter/http/router"
	"github.com/ressKim-io/fraudlens/internal/adapter/model"
	"github.com/ressKim-io/fraudlens/internal/domain/service"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/config"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/keepalive"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/logger"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/metrics"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/tracing"
	"github.com/ressKim-io/fraudlens/internal/usecase"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Log, cfg.Tracing.ServiceName)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize tracing (no-op without an endpoint)
	shutdownTracing, err := tracing.Init(ctx, &cfg.Tracing, log)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}

	// Load the classifier. The service still starts without one.
	classifier, err := loadClassifier(ctx, &cfg.Model, log)
	if err != nil {
		log.Error("Failed to load model, /predict will be unavailable",
			zap.String("backend", cfg.Model.Backend),
			zap.Error(err),
		)
	} else {
		log.Info("Model loaded",
			zap.String("backend", cfg.Model.Backend),
			zap.String("version", classifier.Version()),
			zap.Int("features", len(classifier.FeatureNames())),
		)
	}
	metrics.SetModelLoaded(classifier != nil)

	// Initialize the AI client when a key is configured
	var generator service.TextGenerator
	if cfg.AI.Configured() {
		gemini, err := client.NewGeminiClient(ctx, cfg.AI.APIKey, cfg.AI.Model)
		if err != nil {
			log.Error("Failed to initialize AI client, /ai-prediction will be unavailable", zap.Error(err))
		} else {
			generator = gemini
			log.Info("AI client initialized", zap.String("model", gemini.Model()))
		}
	} else {
		log.Warn("AI API key not set, /ai-prediction will be unavailable")
	}

	predictionUC := usecase.NewPredictionUsecase(classifier, generator,
		usecase.WithAITimeout(cfg.AI.Timeout),
		usecase.WithLogger(log),
	)

	// Setup router
	r := router.Setup(predictionUC, cfg.Server.MaxBodyBytes, log)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("Starting server", zap.String("address", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Start keep-alive pinger
	if cfg.KeepAlive.Active() {
		go keepalive.NewPinger(&cfg.KeepAlive, log).Start(ctx)
	} else {
		log.Info("Keep-alive pinger disabled, no public URL configured")
	}

	// Wait for interrupt signal or a server failure
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		log.Error("Server failed", zap.Error(err))
		stop()
	}

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("Failed to flush traces", zap.Error(err))
	}

	log.Info("Server exited")
	return nil
}

// loadClassifier returns a nil interface on failure, never a typed nil
func loadClassifier(ctx context.Context, cfg *config.ModelConfig, log *zap.Logger) (service.Classifier, error) {
	switch cfg.Backend {
	case "remote":
		c, err := client.NewMLClassifier(ctx, client.NewMLClient(cfg.RemoteURL, cfg.RemoteTimeout))
		if err != nil {
			return nil, err
		}
		if health, err := c.Health(ctx); err != nil {
			log.Warn("Model server health check failed", zap.String("url", cfg.RemoteURL), zap.Error(err))
		} else {
			log.Info("Model server health",
				zap.String("url", cfg.RemoteURL),
				zap.String("status", health.Status),
				zap.Bool("model_loaded", health.ModelLoaded),
			)
		}
		return c, nil
	default:
		c, err := model.Load(cfg.Path)
		if err != nil {
			return nil, err
		}
		log.Debug("Model artifact parameters", zap.String("path", cfg.Path), zap.Any("params", c.Params()))
		return c, nil
	}
}
