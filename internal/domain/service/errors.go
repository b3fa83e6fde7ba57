package service

import (
	"context"
	"errors"
)

// ErrMalformedResponse marks a backend reply that could not be decoded
var ErrMalformedResponse = errors.New("malformed response")

// ReadinessChecker is implemented by classifiers whose availability can
// change after construction, such as one backed by a remote server
type ReadinessChecker interface {
	Ready(ctx context.Context) error
}
