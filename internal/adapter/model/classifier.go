package model

import (
	"context"
	"fmt"
	"math"

	"github.com/ressKim-io/fraudlens/internal/domain/entity"
	"github.com/ressKim-io/fraudlens/internal/domain/service"
)

// LocalClassifier evaluates an artifact's decision function in-process.
// It holds no mutable state and is shared by all requests.
type LocalClassifier struct {
	version      string
	featureNames []string
	scaler       service.Scaler
	decision     decisionFunction
	threshold    float64
	params       map[string]any
}

// NewLocalClassifier creates a classifier from a validated artifact
func NewLocalClassifier(a *Artifact) (*LocalClassifier, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	names := make([]string, len(a.FeatureNames))
	copy(names, a.FeatureNames)

	c := &LocalClassifier{
		version:      a.Version,
		featureNames: names,
		decision:     a.decisionFunction(),
		threshold:    a.threshold(),
		params:       a.ModelParams,
	}
	// Keep the interface nil, not a typed nil pointer
	if a.Scaler != nil {
		c.scaler = a.Scaler
	}
	if c.version == "" {
		c.version = a.Model.Type
	}
	return c, nil
}

// Load reads an artifact from path and builds a classifier from it
func Load(path string) (*LocalClassifier, error) {
	a, err := LoadArtifact(path)
	if err != nil {
		return nil, err
	}
	return NewLocalClassifier(a)
}

// FeatureNames returns a copy of the expected feature ordering
func (c *LocalClassifier) FeatureNames() []string {
	names := make([]string, len(c.featureNames))
	copy(names, c.featureNames)
	return names
}

// Scaler returns the bundled scaler, or nil
func (c *LocalClassifier) Scaler() service.Scaler {
	return c.scaler
}

// Version returns the artifact version
func (c *LocalClassifier) Version() string {
	return c.version
}

// Params returns the hyperparameter record bundled with the artifact
func (c *LocalClassifier) Params() map[string]any {
	return c.params
}

// Predict scores a single vector
func (c *LocalClassifier) Predict(_ context.Context, vector entity.FeatureVector) (*entity.Prediction, error) {
	if len(vector) != len(c.featureNames) {
		return nil, fmt.Errorf("expected %d features, got %d", len(c.featureNames), len(vector))
	}
	for i, v := range vector {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("feature %s is not finite", c.featureNames[i])
		}
	}

	p, err := c.decision.probability(vector)
	if err != nil {
		return nil, err
	}
	if math.IsNaN(p) {
		return nil, fmt.Errorf("model produced an invalid probability")
	}
	p = math.Min(1, math.Max(0, p))

	class := 0
	if p > c.threshold {
		class = 1
	}

	return &entity.Prediction{Class: class, Probability: p}, nil
}

var _ service.Classifier = (*LocalClassifier)(nil)
