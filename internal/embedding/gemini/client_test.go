package gemini

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

type fakeModels struct {
	calls     int
	responses []fakeResponse
	lastModel string
}

type fakeResponse struct {
	resp *genai.EmbedContentResponse
	err  error
}

func (f *fakeModels) EmbedContent(_ context.Context, model string, _ []*genai.Content, _ *genai.EmbedContentConfig) (*genai.EmbedContentResponse, error) {
	f.lastModel = model
	if f.calls >= len(f.responses) {
		return nil, errors.New("unexpected call")
	}
	res := f.responses[f.calls]
	f.calls++
	return res.resp, res.err
}

func embedResponse(values ...float32) *genai.EmbedContentResponse {
	return &genai.EmbedContentResponse{
		Embeddings: []*genai.ContentEmbedding{{Values: values}},
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	_, err := New(context.Background(), "  ", "", 0, zap.NewNop())
	if err == nil {
		t.Fatal("expected error for empty api key")
	}
}

func TestEmbedConvertsValues(t *testing.T) {
	models := &fakeModels{responses: []fakeResponse{
		{resp: embedResponse(0.25, 0.5)},
	}}
	embedder := &Embedder{models: models, modelName: "embed-test", logger: zap.NewNop()}

	vector, err := embedder.Embed(context.Background(), "python backend")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(vector) != 2 || vector[0] != 0.25 || vector[1] != 0.5 {
		t.Fatalf("unexpected vector: %v", vector)
	}

	if models.lastModel != "embed-test" {
		t.Fatalf("unexpected model: %q", models.lastModel)
	}
}

func TestEmbedRetriesOnError(t *testing.T) {
	originalBackoff := retryBackoff
	retryBackoff = time.Millisecond
	defer func() { retryBackoff = originalBackoff }()

	models := &fakeModels{responses: []fakeResponse{
		{err: errors.New("temporary")},
		{resp: embedResponse(1)},
	}}
	embedder := &Embedder{models: models, modelName: "embed-test", maxRetries: 2, logger: zap.NewNop()}

	vector, err := embedder.Embed(context.Background(), "python")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(vector) != 1 {
		t.Fatalf("unexpected vector: %v", vector)
	}

	if models.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", models.calls)
	}
}

func TestEmbedStopsAfterRetriesExhausted(t *testing.T) {
	originalBackoff := retryBackoff
	retryBackoff = time.Millisecond
	defer func() { retryBackoff = originalBackoff }()

	models := &fakeModels{responses: []fakeResponse{
		{err: errors.New("temporary")},
		{err: errors.New("temporary")},
	}}
	embedder := &Embedder{models: models, modelName: "embed-test", maxRetries: 1, logger: zap.NewNop()}

	if _, err := embedder.Embed(context.Background(), "python"); err == nil {
		t.Fatal("expected error after retries exhausted")
	}

	if models.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", models.calls)
	}
}

func TestEmbedRejectsEmptyText(t *testing.T) {
	embedder := &Embedder{models: &fakeModels{}, modelName: "embed-test", logger: zap.NewNop()}

	if _, err := embedder.Embed(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestEmbedEmptyResponse(t *testing.T) {
	models := &fakeModels{responses: []fakeResponse{
		{resp: &genai.EmbedContentResponse{}},
	}}
	embedder := &Embedder{models: models, modelName: "embed-test", logger: zap.NewNop()}

	if _, err := embedder.Embed(context.Background(), "python"); err == nil {
		t.Fatal("expected error for empty embedding response")
	}
}
