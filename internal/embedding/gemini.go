package embedding

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/errgroup"
	"google.golang.org/api/option"
)

const (
	// DefaultModel is the embedding model used when none is configured.
	DefaultModel = "text-embedding-004"

	// batchSize bounds how many texts go into a single BatchEmbedContents call.
	batchSize = 100
	// maxConcurrentBatches bounds parallel embedding requests during rebuild.
	maxConcurrentBatches = 4
)

// GeminiClient implements Client for Google Gemini embedding models
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini embedding client
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// Encode embeds a single text into a dense vector
func (c *GeminiClient) Encode(ctx context.Context, text string) ([]float64, error) {
	em := c.client.EmbeddingModel(c.model)
	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("failed to embed content: %w", err)
	}
	if resp.Embedding == nil {
		return nil, fmt.Errorf("embedding response contained no vector")
	}
	return toFloat64(resp.Embedding.Values), nil
}

// EncodeBatch embeds many texts, one vector per input in order. Inputs are
// chunked and chunks are embedded concurrently.
func (c *GeminiClient) EncodeBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	vectors := make([][]float64, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentBatches)

	for start := 0; start < len(texts); start += batchSize {
		start := start
		end := min(start+batchSize, len(texts))
		g.Go(func() error {
			em := c.client.EmbeddingModel(c.model)
			batch := em.NewBatch()
			for _, text := range texts[start:end] {
				batch = batch.AddContent(genai.Text(text))
			}

			resp, err := em.BatchEmbedContents(gctx, batch)
			if err != nil {
				return fmt.Errorf("failed to embed batch [%d:%d]: %w", start, end, err)
			}
			if len(resp.Embeddings) != end-start {
				return fmt.Errorf("embedding batch [%d:%d] returned %d vectors", start, end, len(resp.Embeddings))
			}

			for i, emb := range resp.Embeddings {
				vectors[start+i] = toFloat64(emb.Values)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return vectors, nil
}

// Model returns the configured embedding model name
func (c *GeminiClient) Model() string {
	return c.model
}

// Close releases the underlying API client
func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func toFloat64(values []float32) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}
