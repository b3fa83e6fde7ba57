package model

import (
	"fmt"

	"github.com/ressKim-io/fraudlens/internal/domain/entity"
)

// StandardScaler subtracts a per-feature mean and divides by a per-feature scale
type StandardScaler struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// Transform returns (v - mean) / scale. A zero scale leaves the centered value unchanged.
func (s *StandardScaler) Transform(v entity.FeatureVector) (entity.FeatureVector, error) {
	if len(v) != len(s.Mean) || len(v) != len(s.Scale) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(v))
	}

	out := make(entity.FeatureVector, len(v))
	for i, x := range v {
		scale := s.Scale[i]
		if scale == 0 {
			scale = 1
		}
		out[i] = (x - s.Mean[i]) / scale
	}
	return out, nil
}
