// Package gemini provides an embedding provider backed by the Google GenAI
// API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/spigell/resume-ranker/internal/utils"
)

const (
	defaultModel = "gemini-embedding-001"

	maxLogLength = 200
)

// retryBackoff is the base delay between attempts; attempt N waits N times
// this long. Shrunk in tests.
var retryBackoff = time.Second

// contentEmbedder is the slice of the GenAI client the embedder depends on.
type contentEmbedder interface {
	EmbedContent(ctx context.Context, model string, contents []*genai.Content, config *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error)
}

// Embedder turns text into dense vectors via the Gemini embedding models.
type Embedder struct {
	models     contentEmbedder
	modelName  string
	maxRetries int
	logger     *zap.Logger
}

// New creates an Embedder configured for the Gemini API backend.
func New(ctx context.Context, apiKey, model string, maxRetries int, logger *zap.Logger) (*Embedder, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}

	if maxRetries < 0 {
		maxRetries = 0
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	return &Embedder{
		models:     client.Models,
		modelName:  model,
		maxRetries: maxRetries,
		logger:     logger,
	}, nil
}

// Embed requests an embedding for the provided text, retrying transient
// failures with a linear backoff.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float64, error) {
	if e == nil || e.models == nil {
		return nil, errors.New("gemini embedder is not initialized")
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("text must not be empty")
	}

	e.logger.Debug("gemini embed content request",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", utils.TruncateForLog(text, maxLogLength)),
	)

	var lastErr error
	for attempt := 0; attempt <= e.maxRetries; attempt++ {
		if attempt > 0 {
			e.logger.Debug("retrying embed request",
				zap.Int("attempt", attempt),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(ctx, time.Duration(attempt)*retryBackoff); err != nil {
				return nil, err
			}
		}

		resp, err := e.models.EmbedContent(ctx, e.modelName, genai.Text(text), nil)
		if err != nil {
			lastErr = fmt.Errorf("embed content: %w", err)
			continue
		}

		values := firstEmbedding(resp)
		if len(values) == 0 {
			lastErr = errors.New("gemini api returned empty embedding")
			continue
		}

		vector := make([]float64, len(values))
		for i, v := range values {
			vector[i] = float64(v)
		}

		return vector, nil
	}

	return nil, lastErr
}

func (e *Embedder) Model() string {
	if e == nil {
		return ""
	}
	return e.modelName
}

func firstEmbedding(resp *genai.EmbedContentResponse) []float32 {
	if resp == nil {
		return nil
	}
	for _, embedding := range resp.Embeddings {
		if embedding != nil && len(embedding.Values) > 0 {
			return embedding.Values
		}
	}
	return nil
}
