package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/souqlens/backend/internal/domain"
)

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.1-8b-instant"

	maxAttempts = 3
)

// Config holds connection settings for the completion provider.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Client talks to an OpenAI-compatible chat completion API. It implements
// domain.TextCompleter.
type Client struct {
	model       llms.Model
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	modelName   string
}

// NewClient creates a completion client for the configured provider.
// It returns domain.ErrLLMUnavailable when no API key is configured so
// callers can detect the condition and fall back to deterministic
// processing.
func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: no API key configured", domain.ErrLLMUnavailable)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	model, err := openai.New(
		openai.WithBaseURL(cfg.BaseURL),
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrLLMUnavailable, err)
	}

	// Groq's free tier allows 30 requests per minute
	// rate.Limit is requests per second, so 30/60 = 0.5 requests/sec
	limiter := rate.NewLimiter(rate.Limit(0.5), 5) // burst of 5 requests

	return &Client{
		model:       model,
		rateLimiter: limiter,
		logger:      logger,
		modelName:   cfg.Model,
	}, nil
}

// Complete sends a system and user prompt to the completion API and returns
// the text of the first choice, trimmed of surrounding whitespace.
func (c *Client) Complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, system),
		llms.TextParts(llms.ChatMessageTypeHuman, user),
	}

	// Retry up to 3 times for transient failures
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("%w: %v", domain.ErrRateLimited, err)
		}

		resp, err := c.model.GenerateContent(ctx, content, llms.WithTemperature(temperature))
		if err != nil {
			c.logger.Warn("completion request failed",
				zap.String("model", c.modelName),
				zap.Int("attempt", attempt),
				zap.Error(err))
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			time.Sleep(time.Duration(attempt*500) * time.Millisecond)
			continue
		}

		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("%w: response has no choices", domain.ErrEmptyCompletion)
		}
		text := strings.TrimSpace(resp.Choices[0].Content)
		if text == "" {
			return "", fmt.Errorf("%w: choice has no text", domain.ErrEmptyCompletion)
		}
		return text, nil
	}

	return "", fmt.Errorf("completion failed after %d attempts: %w", maxAttempts, lastErr)
}
