package service

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ressKim-io/fraudlens/internal/domain/entity"
)

// InvalidFieldError reports a schema field whose value is not numeric
type InvalidFieldError struct {
	Field string
	Value any
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("Invalid value for field %s: must be numeric", e.Field)
}

// Normalize builds a vector in schema order from features. Absent fields
// become 0 and keys outside the schema are ignored. When scaler is non-nil
// the vector is transformed before it is returned.
func Normalize(features entity.TransactionFeatures, schema []string, scaler Scaler) (entity.FeatureVector, error) {
	vector := make(entity.FeatureVector, len(schema))
	for i, name := range schema {
		raw, ok := features[name]
		if !ok {
			continue
		}
		v, ok := ToFloat(raw)
		if !ok {
			return nil, &InvalidFieldError{Field: name, Value: raw}
		}
		vector[i] = v
	}

	if scaler == nil {
		return vector, nil
	}

	scaled, err := scaler.Transform(vector)
	if err != nil {
		return nil, fmt.Errorf("failed to scale features: %w", err)
	}
	return scaled, nil
}

// ToFloat coerces a decoded JSON value to float64. Numbers, booleans and
// numeric strings are accepted; null, NaN and everything else are not.
func ToFloat(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case bool:
		if n {
			f = 1
		}
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
