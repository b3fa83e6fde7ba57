package client

import (
	"context"
	"errors"
	"fmt"
	"iter"

	"google.golang.org/genai"

	"github.com/ressKim-io/fraudlens/internal/domain/service"
)

// contentStreamer is the part of *genai.Models the adapter uses
type contentStreamer interface {
	GenerateContentStream(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) iter.Seq2[*genai.GenerateContentResponse, error]
}

// GeminiClient streams text completions from the Gemini API
type GeminiClient struct {
	models contentStreamer
	model  string
	config *genai.GenerateContentConfig
}

var _ service.TextGenerator = (*GeminiClient)(nil)

// NewGeminiClient creates a Gemini API client for the given model
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("gemini api key is empty")
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return newGeminiClient(c.Models, model), nil
}

func newGeminiClient(models contentStreamer, model string) *GeminiClient {
	return &GeminiClient{
		models: models,
		model:  model,
		config: &genai.GenerateContentConfig{
			ThinkingConfig:   &genai.ThinkingConfig{ThinkingBudget: genai.Ptr[int32](0)},
			ResponseMIMEType: "text/plain",
		},
	}
}

// Model returns the configured model name
func (c *GeminiClient) Model() string { return c.model }

// GenerateStream yields the text of each streamed chunk. Chunks without text
// are skipped.
func (c *GeminiClient) GenerateStream(ctx context.Context, prompt string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for resp, err := range c.models.GenerateContentStream(ctx, c.model, genai.Text(prompt), c.config) {
			if err != nil {
				yield("", err)
				return
			}
			text := chunkText(resp)
			if text == "" {
				continue
			}
			if !yield(text, nil) {
				return
			}
		}
	}
}

func chunkText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	return resp.Text()
}
