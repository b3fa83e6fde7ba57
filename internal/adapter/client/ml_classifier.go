package client

import (
	"context"
	"fmt"
	"math"

	"github.com/ressKim-io/fraudlens/internal/domain/entity"
	"github.com/ressKim-io/fraudlens/internal/domain/service"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/logger"
	"github.com/ressKim-io/fraudlens/internal/infrastructure/tracing"
)

// MLClassifier adapts MLClient to the Classifier interface.
// Scaling happens on the model server, so Scaler is always nil.
type MLClassifier struct {
	client       *MLClient
	featureNames []string
	version      string
}

var (
	_ service.Classifier       = (*MLClassifier)(nil)
	_ service.ReadinessChecker = (*MLClassifier)(nil)
)

// NewMLClassifier fetches the served model's metadata and returns a classifier
// bound to it
func NewMLClassifier(ctx context.Context, client *MLClient) (*MLClassifier, error) {
	meta, err := client.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch model metadata: %w", err)
	}

	return &MLClassifier{
		client:       client,
		featureNames: meta.FeatureNames,
		version:      meta.ModelVersion,
	}, nil
}

func (c *MLClassifier) FeatureNames() []string {
	names := make([]string, len(c.featureNames))
	copy(names, c.featureNames)
	return names
}

func (c *MLClassifier) Scaler() service.Scaler { return nil }

func (c *MLClassifier) Version() string { return c.version }

// Predict scores a vector ordered like FeatureNames
func (c *MLClassifier) Predict(ctx context.Context, vector entity.FeatureVector) (*entity.Prediction, error) {
	if len(vector) != len(c.featureNames) {
		return nil, fmt.Errorf("expected %d features, got %d", len(c.featureNames), len(vector))
	}

	ctx, span := tracing.StartSpan(ctx, "model_server.predict", tracing.ModelVersion(c.version))
	defer span.End()

	features := make(map[string]float64, len(vector))
	for i, name := range c.featureNames {
		features[name] = vector[i]
	}

	resp, err := c.client.Predict(ctx, features, logger.RequestIDFrom(ctx))
	if err != nil {
		tracing.Fail(span, err)
		return nil, err
	}

	if resp.Prediction != 0 && resp.Prediction != 1 {
		err := fmt.Errorf("model server returned class %d", resp.Prediction)
		tracing.Fail(span, err)
		return nil, err
	}

	if math.IsNaN(resp.Probability) || resp.Probability < 0 || resp.Probability > 1 {
		err := fmt.Errorf("model server returned probability %v outside [0, 1]", resp.Probability)
		tracing.Fail(span, err)
		return nil, err
	}

	if resp.ModelVersion != "" {
		span.SetAttributes(tracing.ModelVersion(resp.ModelVersion))
	}

	return &entity.Prediction{
		Class:       resp.Prediction,
		Probability: resp.Probability,
	}, nil
}

// Ready reports whether the model server can take predictions
func (c *MLClassifier) Ready(ctx context.Context) error {
	return c.client.Ready(ctx)
}

// Health returns the model server's own health report
func (c *MLClassifier) Health(ctx context.Context) (*HealthResponse, error) {
	return c.client.Health(ctx)
}
