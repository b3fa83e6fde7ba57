package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Model types understood by LoadArtifact
const (
	TypeLogisticRegression = "logistic_regression"
	TypeRandomForest       = "random_forest"
)

// DefaultThreshold is the class-1 cut-off when the artifact does not set one
const DefaultThreshold = 0.5

// ErrInvalidArtifact is returned when an artifact is structurally unusable
var ErrInvalidArtifact = errors.New("invalid model artifact")

// Artifact is the serialized bundle produced by the training pipeline
type Artifact struct {
	Version      string          `json:"version"`
	FeatureNames []string        `json:"feature_names"`
	Scaler       *StandardScaler `json:"scaler,omitempty"`
	Model        ModelSpec       `json:"model"`
	ModelParams  map[string]any  `json:"model_params,omitempty"`
	Threshold    *float64        `json:"threshold,omitempty"`
}

// ModelSpec holds the decision function. Which fields are used depends on Type.
type ModelSpec struct {
	Type string `json:"type"`

	// logistic_regression
	Coefficients []float64 `json:"coefficients,omitempty"`
	Intercept    float64   `json:"intercept,omitempty"`

	// random_forest
	Trees []Tree `json:"trees,omitempty"`
}

// LoadArtifact reads and validates an artifact file
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	return ParseArtifact(data)
}

// ParseArtifact decodes and validates an artifact document
func ParseArtifact(data []byte) (*Artifact, error) {
	var a Artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArtifact, err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}

// Validate checks that every part of the artifact agrees on the feature count
func (a *Artifact) Validate() error {
	n := len(a.FeatureNames)
	if n == 0 {
		return fmt.Errorf("%w: feature_names is empty", ErrInvalidArtifact)
	}

	seen := make(map[string]struct{}, n)
	for _, name := range a.FeatureNames {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: duplicate feature %q", ErrInvalidArtifact, name)
		}
		seen[name] = struct{}{}
	}

	if a.Scaler != nil {
		if len(a.Scaler.Mean) != n || len(a.Scaler.Scale) != n {
			return fmt.Errorf("%w: scaler has %d means and %d scales for %d features",
				ErrInvalidArtifact, len(a.Scaler.Mean), len(a.Scaler.Scale), n)
		}
	}

	if t := a.threshold(); t < 0 || t > 1 {
		return fmt.Errorf("%w: threshold %v outside [0,1]", ErrInvalidArtifact, t)
	}

	switch a.Model.Type {
	case TypeLogisticRegression:
		if len(a.Model.Coefficients) != n {
			return fmt.Errorf("%w: %d coefficients for %d features",
				ErrInvalidArtifact, len(a.Model.Coefficients), n)
		}
	case TypeRandomForest:
		if len(a.Model.Trees) == 0 {
			return fmt.Errorf("%w: random_forest has no trees", ErrInvalidArtifact)
		}
		for i := range a.Model.Trees {
			if err := a.Model.Trees[i].validate(n); err != nil {
				return fmt.Errorf("%w: tree %d: %v", ErrInvalidArtifact, i, err)
			}
		}
	default:
		return fmt.Errorf("%w: unsupported model type %q", ErrInvalidArtifact, a.Model.Type)
	}

	return nil
}

func (a *Artifact) threshold() float64 {
	if a.Threshold == nil {
		return DefaultThreshold
	}
	return *a.Threshold
}

func (a *Artifact) decisionFunction() decisionFunction {
	switch a.Model.Type {
	case TypeRandomForest:
		return &randomForest{trees: a.Model.Trees, nFeatures: len(a.FeatureNames)}
	default:
		return &logisticRegression{coefficients: a.Model.Coefficients, intercept: a.Model.Intercept}
	}
}
