package service

import (
	"context"
	"iter"

	"github.com/ressKim-io/fraudlens/internal/domain/entity"
)

// Scaler applies a fitted per-feature linear transform
type Scaler interface {
	// Transform returns a scaled copy of v
	Transform(v entity.FeatureVector) (entity.FeatureVector, error)
}

// Classifier scores feature vectors with a pre-trained binary model.
// Implementations are immutable after construction and safe for concurrent use.
type Classifier interface {
	// FeatureNames returns the ordered schema the model expects
	FeatureNames() []string

	// Scaler returns the bundled scaler, or nil if inputs are used as-is
	Scaler() Scaler

	// Version identifies the loaded model
	Version() string

	// Predict scores a single vector
	Predict(ctx context.Context, vector entity.FeatureVector) (*entity.Prediction, error)
}

// TextGenerator sends a prompt to a language model and streams back text.
// The sequence ends after the first non-nil error.
type TextGenerator interface {
	GenerateStream(ctx context.Context, prompt string) iter.Seq2[string, error]
}
