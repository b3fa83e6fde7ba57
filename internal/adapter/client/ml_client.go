package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ressKim-io/fraudlens/internal/domain/service"
)

// PredictRequest represents a request to the model server
type PredictRequest struct {
	Features  map[string]float64 `json:"features"`
	RequestID string             `json:"request_id,omitempty"`
}

// PredictResponse represents the response from the model server
type PredictResponse struct {
	Success      bool    `json:"success"`
	Prediction   int     `json:"prediction"`
	Probability  float64 `json:"probability"`
	ModelVersion string  `json:"model_version"`
	RequestID    string  `json:"request_id,omitempty"`
}

// MetadataResponse describes the model the server has loaded
type MetadataResponse struct {
	FeatureNames []string `json:"feature_names"`
	ModelVersion string   `json:"model_version"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string `json:"status"`
	ModelLoaded  bool   `json:"model_loaded"`
	ModelVersion string `json:"model_version"`
}

// MLClient is an HTTP client for a remote model server
type MLClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewMLClient creates a new model server client
func NewMLClient(baseURL string, timeout time.Duration) *MLClient {
	return &MLClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Predict sends one named feature vector for scoring
func (c *MLClient) Predict(ctx context.Context, features map[string]float64, requestID string) (*PredictResponse, error) {
	reqBody := PredictRequest{
		Features:  features,
		RequestID: requestID,
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var result PredictResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf("model server reported failure for request %q", result.RequestID)
	}

	return &result, nil
}

// Metadata fetches the feature order and version of the served model
func (c *MLClient) Metadata(ctx context.Context) (*MetadataResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/metadata", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result MetadataResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}
	if len(result.FeatureNames) == 0 {
		return nil, fmt.Errorf("model server returned no feature names")
	}

	return &result, nil
}

// Health checks the model server health
func (c *MLClient) Health(ctx context.Context) (*HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var result HealthResponse
	if err := c.do(req, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

// Ready checks if the model server is ready
func (c *MLClient) Ready(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/ready", http.NoBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("model server not ready: status %d", resp.StatusCode)
	}

	return nil
}

func (c *MLClient) do(req *http.Request, out any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1024))
		if err != nil || len(respBody) == 0 {
			return fmt.Errorf("model server returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("model server returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode model server response: %w: %w", service.ErrMalformedResponse, err)
	}

	return nil
}
