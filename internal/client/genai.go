package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	"github.com/fintrack/backend/internal/config"
)

// ErrRateLimited marks an upstream 429 so callers can retry without
// depending on the SDK's error types.
var ErrRateLimited = errors.New("model rate limited")

type GenAIClientConfig struct {
	APIKey string
	Model  string
}

// GenAIClient wraps the generative model behind a plain text-in/text-out
// call with a capped output length and low temperature.
type GenAIClient struct {
	client          *genai.Client
	model           string
	temperature     float32
	maxOutputTokens int32
}

func NewGenAIClient(cfg config.AIConfig) (*GenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing AI_API_KEY")
	}
	clientCfg := GenAIClientConfig{APIKey: cfg.APIKey, Model: cfg.Model}
	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{APIKey: clientCfg.APIKey})
	if err != nil {
		return nil, err
	}
	return &GenAIClient{
		client:          client,
		model:           clientCfg.Model,
		temperature:     0.2,
		maxOutputTokens: 500,
	}, nil
}

func (c *GenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	res, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(c.temperature),
		MaxOutputTokens: c.maxOutputTokens,
	})
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %s", ErrRateLimited, apiErr.Message)
		}
		return "", err
	}
	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("empty model response")
	}
	return text, nil
}
