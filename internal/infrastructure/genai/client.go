package genai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
	"golang.org/x/time/rate"

	"github.com/furnishly/backend/internal/domain"
)

const maxRetries = 3

// Client wraps the OpenAI API for description generation and query
// embedding. All calls are best-effort; callers degrade to template
// descriptions or keyword scoring on error.
type Client struct {
	api            openai.Client
	chatModel      string
	embeddingModel string
	rateLimiter    *rate.Limiter
	debug          bool
}

// NewClient creates a new OpenAI-backed generation client
func NewClient(apiKey, baseURL, chatModel, embeddingModel string) *Client {
	// Keep well under the per-minute request quota of entry-level API tiers
	limiter := rate.NewLimiter(rate.Limit(2), 5)

	return &Client{
		api: openai.NewClient(
			option.WithAPIKey(apiKey),
			option.WithBaseURL(baseURL),
			option.WithRequestTimeout(30*time.Second),
		),
		chatModel:      chatModel,
		embeddingModel: embeddingModel,
		rateLimiter:    limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// GenerateDescription produces a short marketing description for a product.
// Retries transient failures up to 3 times with backoff before giving up.
func (c *Client) GenerateDescription(ctx context.Context, product *domain.Product) (string, error) {
	if product == nil {
		return "", domain.ErrInvalidRequest
	}

	system, user := descriptionPrompt(product)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter error: %w", err)
		}

		completion, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(system),
				openai.UserMessage(user),
			},
			Model:          shared.ChatModel(c.chatModel),
			ResponseFormat: descriptionResponseFormat(),
			Temperature:    openai.Float(0.7),
		})
		if err != nil {
			if c.debug {
				log.Printf("[GENAI] Completion error (attempt %d): %v", attempt, err)
			}
			lastErr = err
			if sleepCtx(ctx, backoff(attempt)) != nil {
				return "", ctx.Err()
			}
			continue
		}

		if len(completion.Choices) == 0 {
			lastErr = fmt.Errorf("completion returned no choices")
			continue
		}

		var payload descriptionPayload
		if err := json.Unmarshal([]byte(completion.Choices[0].Message.Content), &payload); err != nil {
			if c.debug {
				log.Printf("[GENAI] Malformed completion payload: %v", err)
			}
			lastErr = err
			continue
		}

		if payload.Description == "" {
			lastErr = fmt.Errorf("completion returned empty description")
			continue
		}

		return payload.Description, nil
	}

	return "", fmt.Errorf("%w: %v", domain.ErrGenAIUnavailable, lastErr)
}

// EmbedQuery converts a search query into an embedding vector for semantic
// scoring. Unlike description generation this is on the request path, so it
// is attempted once; the caller falls back to keyword scoring on error.
func (c *Client) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter error: %w", err)
	}

	resp, err := c.api.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(query),
		},
		Model: openai.EmbeddingModel(c.embeddingModel),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrGenAIUnavailable, err)
	}

	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding response", domain.ErrGenAIUnavailable)
	}

	return resp.Data[0].Embedding, nil
}

// backoff returns the wait duration before the given retry attempt
func backoff(attempt int) time.Duration {
	return time.Duration(attempt*500) * time.Millisecond
}

// sleepCtx sleeps for d unless the context is cancelled first
func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
